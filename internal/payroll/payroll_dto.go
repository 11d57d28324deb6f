package payroll

import "time"

type GeneratePayrollRequest struct {
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
	Label       string `json:"label" binding:"required,max=100"`
}

// GenerationFailure is one employee the generator skipped.
type GenerationFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type GeneratePayrollResponse struct {
	Run      PayrollRunResponse  `json:"run"`
	Failures []GenerationFailure `json:"failures,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type PayrollRunResponse struct {
	ID              string  `json:"id"`
	PeriodStart     string  `json:"period_start"`
	PeriodEnd       string  `json:"period_end"`
	Label           string  `json:"label"`
	Status          string  `json:"status"`
	TotalEmployees  int     `json:"total_employees"`
	TotalGross      string  `json:"total_gross"`
	TotalDeductions string  `json:"total_deductions"`
	TotalNet        string  `json:"total_net"`
	ProcessedBy     *string `json:"processed_by,omitempty"`
	ProcessedAt     *string `json:"processed_at,omitempty"`
}

type LineItemResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`

	DaysWorked    float64 `json:"days_worked"`
	HoursWorked   float64 `json:"hours_worked"`
	OvertimeHours float64 `json:"overtime_hours"`
	LateMinutes   int     `json:"late_minutes"`
	Absences      int     `json:"absences"`

	BasicPay    string `json:"basic_pay"`
	OvertimePay string `json:"overtime_pay"`
	Allowance   string `json:"allowance"`
	GrossPay    string `json:"gross_pay"`

	SSSDeduction        string `json:"sss_deduction"`
	PhilhealthDeduction string `json:"philhealth_deduction"`
	PagibigDeduction    string `json:"pagibig_deduction"`
	TaxDeduction        string `json:"tax_deduction"`
	LateDeduction       string `json:"late_deduction"`
	AbsenceDeduction    string `json:"absence_deduction"`
	TotalDeductions     string `json:"total_deductions"`

	NetPay string `json:"net_pay"`
}

type EmployeePayslipInfo struct {
	EmployeeNumber string  `json:"employee_number"`
	FullName       string  `json:"full_name"`
	Position       *string `json:"position,omitempty"`
}

type PayslipResponse struct {
	Run      PayrollRunResponse   `json:"run"`
	LineItem LineItemResponse     `json:"line_item"`
	Employee *EmployeePayslipInfo `json:"employee,omitempty"`
}

type RunsSummaryResponse struct {
	TotalRuns  int            `json:"total_runs"`
	ByStatus   map[string]int `json:"by_status"`
	TotalGross string         `json:"total_gross"`
	TotalNet   string         `json:"total_net"`
}

func mapRunToResponse(run PayrollRun) PayrollRunResponse {
	resp := PayrollRunResponse{
		ID:              run.ID.String(),
		PeriodStart:     run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       run.PeriodEnd.Format("2006-01-02"),
		Label:           run.Label,
		Status:          run.Status,
		TotalEmployees:  run.TotalEmployees,
		TotalGross:      run.TotalGross.StringFixed(2),
		TotalDeductions: run.TotalDeductions.StringFixed(2),
		TotalNet:        run.TotalNet.StringFixed(2),
		ProcessedBy:     run.ProcessedBy,
	}
	if run.ProcessedAt != nil {
		v := run.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &v
	}
	return resp
}

func mapLineItemToResponse(item PayrollLineItem) LineItemResponse {
	return LineItemResponse{
		ID:         item.ID.String(),
		EmployeeID: item.EmployeeID.String(),

		DaysWorked:    item.DaysWorked,
		HoursWorked:   item.HoursWorked,
		OvertimeHours: item.OvertimeHours,
		LateMinutes:   item.LateMinutes,
		Absences:      item.Absences,

		BasicPay:    item.BasicPay.StringFixed(2),
		OvertimePay: item.OvertimePay.StringFixed(2),
		Allowance:   item.Allowance.StringFixed(2),
		GrossPay:    item.GrossPay.StringFixed(2),

		SSSDeduction:        item.SSSDeduction.StringFixed(2),
		PhilhealthDeduction: item.PhilhealthDeduction.StringFixed(2),
		PagibigDeduction:    item.PagibigDeduction.StringFixed(2),
		TaxDeduction:        item.TaxDeduction.StringFixed(2),
		LateDeduction:       item.LateDeduction.StringFixed(2),
		AbsenceDeduction:    item.AbsenceDeduction.StringFixed(2),
		TotalDeductions:     item.TotalDeductions.StringFixed(2),

		NetPay: item.NetPay.StringFixed(2),
	}
}
