package events

import "time"

const PayrollRunGeneratedTopic = "payroll.run.generated.v1"

type PayrollRunGeneratedEvent struct {
	EventType      string    `json:"event_type"`
	PayrollRunID   string    `json:"payroll_run_id"`
	Label          string    `json:"label"`
	PeriodStart    string    `json:"period_start"`
	PeriodEnd      string    `json:"period_end"`
	TotalEmployees int       `json:"total_employees"`
	TotalNet       string    `json:"total_net"`
	ProcessedBy    string    `json:"processed_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}
