package payroll

import (
	"swiftpay/internal/attendance"
	"swiftpay/internal/employee"

	"github.com/shopspring/decimal"
)

// OvertimeMultiplier is applied to the hourly rate for overtime hours.
var OvertimeMultiplier = decimal.NewFromFloat(1.25)

var minutesPerHour = decimal.NewFromInt(60)

// CompensationSettings is the slice of an employee record the calculator
// needs. Field values are taken as-is; validation happens upstream.
type CompensationSettings struct {
	RatePerHour         decimal.Decimal
	DailyRate           decimal.Decimal
	Allowance           decimal.Decimal
	SSSDeduction        decimal.Decimal
	PhilhealthDeduction decimal.Decimal
	PagibigDeduction    decimal.Decimal
	TaxDeduction        decimal.Decimal
}

func CompensationFromEmployee(e employee.Employee) CompensationSettings {
	return CompensationSettings{
		RatePerHour:         e.RatePerHour,
		DailyRate:           e.DailyRate,
		Allowance:           e.Allowance,
		SSSDeduction:        e.SSSDeduction,
		PhilhealthDeduction: e.PhilhealthDeduction,
		PagibigDeduction:    e.PagibigDeduction,
		TaxDeduction:        e.TaxDeduction,
	}
}

// LineItemFigures is one employee's computed pay for a period, every monetary
// figure already rounded to 2 decimal places.
type LineItemFigures struct {
	DaysWorked    float64
	HoursWorked   float64
	OvertimeHours float64
	LateMinutes   int
	Absences      int

	BasicPay    decimal.Decimal
	OvertimePay decimal.Decimal
	Allowance   decimal.Decimal
	GrossPay    decimal.Decimal

	SSSDeduction        decimal.Decimal
	PhilhealthDeduction decimal.Decimal
	PagibigDeduction    decimal.Decimal
	TaxDeduction        decimal.Decimal
	LateDeduction       decimal.Decimal
	AbsenceDeduction    decimal.Decimal
	TotalDeductions     decimal.Decimal

	NetPay decimal.Decimal
}

// Calculate maps compensation settings and a period attendance summary to pay
// figures. Pure and deterministic. Intermediate math runs at full decimal
// precision; rounding to 2 decimal places happens only where a monetary
// figure is stored. Net pay may go negative and is returned as computed.
func Calculate(comp CompensationSettings, sum attendance.PeriodSummary) LineItemFigures {
	hoursWorked := decimal.NewFromFloat(sum.HoursWorked)
	overtimeHours := decimal.NewFromFloat(sum.OvertimeHours)
	lateMinutes := decimal.NewFromInt(int64(sum.LateMinutes))
	absences := decimal.NewFromInt(int64(sum.Absences))

	basicPay := hoursWorked.Mul(comp.RatePerHour)
	overtimePay := overtimeHours.Mul(comp.RatePerHour).Mul(OvertimeMultiplier)
	grossPay := basicPay.Add(overtimePay).Add(comp.Allowance)

	lateDeduction := lateMinutes.Mul(comp.RatePerHour.Div(minutesPerHour))
	absenceDeduction := absences.Mul(comp.DailyRate)

	totalDeductions := comp.SSSDeduction.
		Add(comp.PhilhealthDeduction).
		Add(comp.PagibigDeduction).
		Add(comp.TaxDeduction).
		Add(lateDeduction).
		Add(absenceDeduction)

	netPay := grossPay.Sub(totalDeductions)

	return LineItemFigures{
		DaysWorked:    sum.DaysWorked,
		HoursWorked:   sum.HoursWorked,
		OvertimeHours: sum.OvertimeHours,
		LateMinutes:   sum.LateMinutes,
		Absences:      sum.Absences,

		BasicPay:    basicPay.Round(2),
		OvertimePay: overtimePay.Round(2),
		Allowance:   comp.Allowance.Round(2),
		GrossPay:    grossPay.Round(2),

		SSSDeduction:        comp.SSSDeduction.Round(2),
		PhilhealthDeduction: comp.PhilhealthDeduction.Round(2),
		PagibigDeduction:    comp.PagibigDeduction.Round(2),
		TaxDeduction:        comp.TaxDeduction.Round(2),
		LateDeduction:       lateDeduction.Round(2),
		AbsenceDeduction:    absenceDeduction.Round(2),
		TotalDeductions:     totalDeductions.Round(2),

		NetPay: netPay.Round(2),
	}
}
