package events

import "time"

const AttendanceClockTopic = "attendance.clock.v1"

type AttendanceClockedEvent struct {
	EventType      string    `json:"event_type"`
	AttendanceID   string    `json:"attendance_id"`
	EmployeeID     string    `json:"employee_id"`
	AttendanceDate string    `json:"attendance_date"`
	OccurredAt     time.Time `json:"occurred_at"`
}
