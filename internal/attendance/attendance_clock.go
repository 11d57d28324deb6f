package attendance

import (
	"math"
	"time"

	attendanceerrors "swiftpay/internal/attendance/errors"
)

// ClockConfig holds the workday rules the clock math runs against.
type ClockConfig struct {
	// Clock-in time lateness is measured from, e.g. 08:00.
	StandardInHour   int
	StandardInMinute int
	// Standard workday length in hours.
	StandardHours float64
	// Deducted once from any shift longer than LunchThresholdHours.
	LunchBreakHours     float64
	LunchThresholdHours float64
	// A time-out before OvernightOutBeforeHour paired with a time-in at or
	// after OvernightInAfterHour is treated as an overnight shift.
	OvernightOutBeforeHour int
	OvernightInAfterHour   int
}

func DefaultClockConfig() ClockConfig {
	return ClockConfig{
		StandardInHour:         8,
		StandardInMinute:       0,
		StandardHours:          8,
		LunchBreakHours:        1,
		LunchThresholdHours:    4,
		OvernightOutBeforeHour: 6,
		OvernightInAfterHour:   18,
	}
}

// Duration is the time-derived portion of one attendance day. RegularHours
// and OvertimeHours are rounded to 2 decimal places; everything upstream of
// that rounding runs at full float precision.
type Duration struct {
	RegularHours     float64
	OvertimeHours    float64
	UndertimeMinutes int
}

// CalculateLateMinutes returns whole minutes past the standard clock-in,
// floored at zero for early or on-time arrivals.
func (cfg ClockConfig) CalculateLateMinutes(at time.Time) int {
	standard := time.Date(at.Year(), at.Month(), at.Day(), cfg.StandardInHour, cfg.StandardInMinute, 0, 0, at.Location())
	if !at.After(standard) {
		return 0
	}
	return int(at.Sub(standard).Minutes())
}

// CalculateDuration turns a clock-in/clock-out pair into regular hours,
// overtime and undertime.
//
// Overnight handling: if the out instant lands before the in instant, or the
// pair looks like a night shift (late-evening in, early-morning out), the out
// is shifted to the next day. A span still negative after that adjustment
// means the dates themselves are inverted and is rejected. Spans beyond 24h
// are treated as data errors and capped, not rejected.
func (cfg ClockConfig) CalculateDuration(timeIn, timeOut time.Time, dateIn, dateOut time.Time) (Duration, error) {
	dtIn := combine(dateIn, timeIn)
	dtOut := combine(dateOut, timeOut)

	nightShift := timeOut.Hour() < cfg.OvernightOutBeforeHour && timeIn.Hour() >= cfg.OvernightInAfterHour
	if dtOut.Before(dtIn) || nightShift {
		dtOut = dtOut.AddDate(0, 0, 1)
	}

	totalHours := dtOut.Sub(dtIn).Hours()
	if totalHours < 0 {
		return Duration{}, attendanceerrors.ErrInvalidDateRange
	}
	if totalHours > 24 {
		totalHours = 24
	}

	workHours := totalHours
	if totalHours > cfg.LunchThresholdHours {
		workHours = totalHours - cfg.LunchBreakHours
	}
	if workHours < 0 {
		workHours = 0
	}

	overtime := math.Max(0, workHours-cfg.StandardHours)
	regular := math.Min(workHours, cfg.StandardHours)

	undertime := 0
	if workHours < cfg.StandardHours {
		undertime = int(math.Round((cfg.StandardHours - workHours) * 60))
	}

	return Duration{
		RegularHours:     round2(regular),
		OvertimeHours:    round2(overtime),
		UndertimeMinutes: undertime,
	}, nil
}

// combine rebuilds an instant from one value's calendar date and another's
// wall-clock time.
func combine(date, clock time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0,
		date.Location(),
	)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
