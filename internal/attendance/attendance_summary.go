package attendance

// PeriodSummary aggregates an employee's attendance over a pay period.
// Present days count as 1 toward DaysWorked, half-days as 0.5.
type PeriodSummary struct {
	DaysWorked    float64
	HoursWorked   float64
	OvertimeHours float64
	LateMinutes   int
	Absences      int
}

// Summarize folds attendance rows into a period summary. Order of rows does
// not matter; the fold is a plain sum.
func Summarize(rows []Attendance) PeriodSummary {
	var sum PeriodSummary
	for _, row := range rows {
		switch row.Status {
		case StatusPresent:
			sum.DaysWorked++
		case StatusHalfDay:
			sum.DaysWorked += 0.5
		case StatusAbsent:
			sum.Absences++
		}
		sum.HoursWorked += row.HoursWorked
		sum.OvertimeHours += row.OvertimeHours
		sum.LateMinutes += row.LateMinutes
	}
	return sum
}
