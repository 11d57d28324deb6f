package payroll

import (
	"testing"

	"swiftpay/internal/attendance"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func sampleComp() CompensationSettings {
	return CompensationSettings{
		RatePerHour:         dec("100"),
		DailyRate:           dec("800"),
		Allowance:           dec("500"),
		SSSDeduction:        dec("100"),
		PhilhealthDeduction: dec("50"),
		PagibigDeduction:    dec("50"),
		TaxDeduction:        dec("200"),
	}
}

func TestCalculate_WorkedExample(t *testing.T) {
	sum := attendance.PeriodSummary{
		DaysWorked:    5.5,
		HoursWorked:   44,
		OvertimeHours: 4,
		LateMinutes:   30,
		Absences:      1,
	}

	figures := Calculate(sampleComp(), sum)

	assert.Equal(t, "4400.00", figures.BasicPay.StringFixed(2))
	assert.Equal(t, "500.00", figures.OvertimePay.StringFixed(2))
	assert.Equal(t, "5400.00", figures.GrossPay.StringFixed(2))
	assert.Equal(t, "50.00", figures.LateDeduction.StringFixed(2))
	assert.Equal(t, "800.00", figures.AbsenceDeduction.StringFixed(2))
	assert.Equal(t, "1250.00", figures.TotalDeductions.StringFixed(2))
	assert.Equal(t, "4150.00", figures.NetPay.StringFixed(2))
}

func TestCalculate_ZeroAttendance(t *testing.T) {
	figures := Calculate(sampleComp(), attendance.PeriodSummary{})

	// No hours means no pay but the configured allowance and statutory
	// figures still apply, so net goes negative.
	assert.Equal(t, "0.00", figures.BasicPay.StringFixed(2))
	assert.Equal(t, "0.00", figures.OvertimePay.StringFixed(2))
	assert.Equal(t, "500.00", figures.GrossPay.StringFixed(2))
	assert.Equal(t, "400.00", figures.TotalDeductions.StringFixed(2))
	assert.Equal(t, "100.00", figures.NetPay.StringFixed(2))
}

func TestCalculate_NegativeNetNotClamped(t *testing.T) {
	comp := sampleComp()
	comp.Allowance = decimal.Zero

	figures := Calculate(comp, attendance.PeriodSummary{Absences: 2})

	assert.Equal(t, "-2000.00", figures.NetPay.StringFixed(2))
}

func TestCalculate_RoundsHalfUpAtBoundary(t *testing.T) {
	comp := CompensationSettings{
		RatePerHour: dec("33.335"),
		DailyRate:   dec("266.68"),
	}
	sum := attendance.PeriodSummary{HoursWorked: 1, LateMinutes: 1}

	figures := Calculate(comp, sum)

	// 33.335 rounds half-up to 33.34 when stored.
	assert.Equal(t, "33.34", figures.BasicPay.StringFixed(2))
	// 1 × (33.335/60) = 0.55558... kept at full precision until rounding.
	assert.Equal(t, "0.56", figures.LateDeduction.StringFixed(2))
}

func TestCalculate_Deterministic(t *testing.T) {
	sum := attendance.PeriodSummary{
		DaysWorked:    10,
		HoursWorked:   80,
		OvertimeHours: 7.25,
		LateMinutes:   95,
		Absences:      1,
	}

	first := Calculate(sampleComp(), sum)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Calculate(sampleComp(), sum))
	}
}

func TestCalculate_OvertimeMultiplier(t *testing.T) {
	comp := CompensationSettings{RatePerHour: dec("100")}
	sum := attendance.PeriodSummary{OvertimeHours: 1}

	figures := Calculate(comp, sum)
	assert.Equal(t, "125.00", figures.OvertimePay.StringFixed(2))
}
