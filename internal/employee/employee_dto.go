package employee

type CreateEmployeeRequest struct {
	EmployeeNumber      string  `json:"employee_number" binding:"required"`
	FullName            string  `json:"full_name" binding:"required"`
	Position            *string `json:"position"`
	Department          *string `json:"department"`
	RatePerHour         string  `json:"rate_per_hour" binding:"required"`
	DailyRate           string  `json:"daily_rate" binding:"required"`
	Allowance           string  `json:"allowance"`
	SSSDeduction        string  `json:"sss_deduction"`
	PhilhealthDeduction string  `json:"philhealth_deduction"`
	PagibigDeduction    string  `json:"pagibig_deduction"`
	TaxDeduction        string  `json:"tax_deduction"`
	HireDate            string  `json:"hire_date"`
}

type UpdateEmployeeRequest struct {
	FullName            string  `json:"full_name" binding:"required"`
	Position            *string `json:"position"`
	Department          *string `json:"department"`
	RatePerHour         string  `json:"rate_per_hour" binding:"required"`
	DailyRate           string  `json:"daily_rate" binding:"required"`
	Allowance           string  `json:"allowance"`
	SSSDeduction        string  `json:"sss_deduction"`
	PhilhealthDeduction string  `json:"philhealth_deduction"`
	PagibigDeduction    string  `json:"pagibig_deduction"`
	TaxDeduction        string  `json:"tax_deduction"`
	Status              string  `json:"status"`
}

type EmployeeResponse struct {
	ID                  string  `json:"id"`
	EmployeeNumber      string  `json:"employee_number"`
	FullName            string  `json:"full_name"`
	Position            *string `json:"position,omitempty"`
	Department          *string `json:"department,omitempty"`
	RatePerHour         string  `json:"rate_per_hour"`
	DailyRate           string  `json:"daily_rate"`
	Allowance           string  `json:"allowance"`
	SSSDeduction        string  `json:"sss_deduction"`
	PhilhealthDeduction string  `json:"philhealth_deduction"`
	PagibigDeduction    string  `json:"pagibig_deduction"`
	TaxDeduction        string  `json:"tax_deduction"`
	Status              string  `json:"status"`
	HireDate            *string `json:"hire_date,omitempty"`
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                  e.ID.String(),
		EmployeeNumber:      e.EmployeeNumber,
		FullName:            e.FullName,
		Position:            e.Position,
		Department:          e.Department,
		RatePerHour:         e.RatePerHour.StringFixed(2),
		DailyRate:           e.DailyRate.StringFixed(2),
		Allowance:           e.Allowance.StringFixed(2),
		SSSDeduction:        e.SSSDeduction.StringFixed(2),
		PhilhealthDeduction: e.PhilhealthDeduction.StringFixed(2),
		PagibigDeduction:    e.PagibigDeduction.StringFixed(2),
		TaxDeduction:        e.TaxDeduction.StringFixed(2),
		Status:              e.Status,
	}
	if e.HireDate != nil {
		v := e.HireDate.Format("2006-01-02")
		resp.HireDate = &v
	}
	return resp
}

func mapToListResponse(rows []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		resp[i] = mapToResponse(e)
	}
	return resp
}
