package attendance

import "time"

// ClockRequest covers both time-in and time-out. Time and Date default to
// the current instant and today when omitted.
type ClockRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Time       string `json:"time"`
	Date       string `json:"date"`
}

type DayStatusRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	Date       string  `json:"date" binding:"required"`
	Remarks    *string `json:"remarks"`
}

// UpdateAttendanceRequest is the manual-correction surface. Only non-nil
// fields are applied.
type UpdateAttendanceRequest struct {
	Status           *string  `json:"status"`
	Remarks          *string  `json:"remarks"`
	LateMinutes      *int     `json:"late_minutes"`
	HoursWorked      *float64 `json:"hours_worked"`
	OvertimeHours    *float64 `json:"overtime_hours"`
	UndertimeMinutes *int     `json:"undertime_minutes"`
}

type AttendanceResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	AttendanceDate   string  `json:"attendance_date"`
	TimeIn           *string `json:"time_in,omitempty"`
	TimeOut          *string `json:"time_out,omitempty"`
	Status           string  `json:"status"`
	LateMinutes      int     `json:"late_minutes"`
	HoursWorked      float64 `json:"hours_worked"`
	OvertimeHours    float64 `json:"overtime_hours"`
	UndertimeMinutes int     `json:"undertime_minutes"`
	Remarks          *string `json:"remarks,omitempty"`
}

type PeriodSummaryResponse struct {
	EmployeeID    string  `json:"employee_id"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	DaysWorked    float64 `json:"days_worked"`
	HoursWorked   float64 `json:"hours_worked"`
	OvertimeHours float64 `json:"overtime_hours"`
	LateMinutes   int     `json:"late_minutes"`
	Absences      int     `json:"absences"`
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:               a.ID.String(),
		EmployeeID:       a.EmployeeID.String(),
		AttendanceDate:   a.AttendanceDate.Format("2006-01-02"),
		Status:           a.Status,
		LateMinutes:      a.LateMinutes,
		HoursWorked:      a.HoursWorked,
		OvertimeHours:    a.OvertimeHours,
		UndertimeMinutes: a.UndertimeMinutes,
		Remarks:          a.Remarks,
	}
	if a.TimeIn != nil {
		v := a.TimeIn.Format(time.RFC3339)
		resp.TimeIn = &v
	}
	if a.TimeOut != nil {
		v := a.TimeOut.Format(time.RFC3339)
		resp.TimeOut = &v
	}
	return resp
}
