package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/policy"
)

// Period is one pay cycle window. Both bounds are inclusive UTC calendar
// dates at midnight.
type Period struct {
	Start time.Time
	End   time.Time
}

// PeriodCalculator converts a reference date plus a pay cycle policy into
// period boundaries and payday decisions. All arithmetic is done on UTC
// midnight-aligned dates so periods never drift across midnight.
type PeriodCalculator struct {
}

func NewPeriodCalculator() *PeriodCalculator {
	return &PeriodCalculator{}
}

// CurrentPeriod returns the pay period containing today.
func (c *PeriodCalculator) CurrentPeriod(today time.Time, p policy.PayCyclePolicy) (Period, error) {
	today = dateOnly(today)

	switch p.Frequency {
	case policy.FrequencyMonthly:
		return c.monthlyPeriod(today, p), nil
	case policy.FrequencySemiMonthly:
		return c.semiMonthlyPeriod(today), nil
	case policy.FrequencyBiWeekly:
		return c.biWeeklyPeriod(today, p), nil
	case policy.FrequencyWeekly:
		return Period{Start: today.AddDate(0, 0, -6), End: today}, nil
	default:
		return Period{}, fmt.Errorf("%w: %q", policy.ErrUnsupportedFrequency, p.Frequency)
	}
}

// IsPayday reports whether today is a disbursement day under the policy.
func (c *PeriodCalculator) IsPayday(today time.Time, p policy.PayCyclePolicy) (bool, error) {
	today = dateOnly(today)

	switch p.Frequency {
	case policy.FrequencyMonthly:
		payDate := time.Date(today.Year(), today.Month(), p.PayDay+p.PayOffset, 0, 0, 0, 0, time.UTC)
		return today.Equal(payDate), nil
	case policy.FrequencySemiMonthly:
		d := today.Day()
		return d == p.PayDay1+p.PayOffset || d == p.PayDay+p.PayOffset, nil
	case policy.FrequencyBiWeekly:
		days := daysSinceAnchor(today, p.CutoffDay)
		return mod(days+p.PayOffset, 14) == 0, nil
	case policy.FrequencyWeekly:
		want := time.Weekday(mod(int(p.PayWeekday)+p.PayOffset, 7))
		return today.Weekday() == want, nil
	default:
		return false, fmt.Errorf("%w: %q", policy.ErrUnsupportedFrequency, p.Frequency)
	}
}

// monthlyPeriod runs from the day after the cutoff of the prior month
// through the cutoff of the current month, rolling forward one month once
// today has passed the cutoff.
func (c *PeriodCalculator) monthlyPeriod(today time.Time, p policy.PayCyclePolicy) Period {
	y, m := today.Year(), today.Month()

	if today.Day() > p.CutoffDay {
		return Period{
			Start: time.Date(y, m, p.CutoffDay+1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(y, m+1, p.CutoffDay, 0, 0, 0, 0, time.UTC),
		}
	}
	return Period{
		Start: time.Date(y, m-1, p.CutoffDay+1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(y, m, p.CutoffDay, 0, 0, 0, 0, time.UTC),
	}
}

// semiMonthlyPeriod is the 1st-15th or the 16th-end-of-month half,
// whichever contains today. End of month is the true last calendar day.
func (c *PeriodCalculator) semiMonthlyPeriod(today time.Time) Period {
	y, m := today.Year(), today.Month()

	if today.Day() <= 15 {
		return Period{
			Start: time.Date(y, m, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(y, m, 15, 0, 0, 0, 0, time.UTC),
		}
	}
	return Period{
		Start: time.Date(y, m, 16, 0, 0, 0, 0, time.UTC),
		// day 0 of the next month is the last day of this one
		End: time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC),
	}
}

// biWeeklyPeriod tiles fixed 14-day windows from the cutoff-day anchor of
// the current month.
func (c *PeriodCalculator) biWeeklyPeriod(today time.Time, p policy.PayCyclePolicy) Period {
	anchor := time.Date(today.Year(), today.Month(), p.CutoffDay, 0, 0, 0, 0, time.UTC)
	days := daysSinceAnchor(today, p.CutoffDay)
	cycles := floorDiv(days, 14)

	start := anchor.AddDate(0, 0, cycles*14)
	return Period{Start: start, End: start.AddDate(0, 0, 13)}
}

func daysSinceAnchor(today time.Time, cutoffDay int) int {
	anchor := time.Date(today.Year(), today.Month(), cutoffDay, 0, 0, 0, 0, time.UTC)
	return int(today.Sub(anchor) / (24 * time.Hour))
}

// dateOnly truncates a timestamp to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// floorDiv rounds the quotient towards negative infinity, so dates before
// the anchor still land in the correct window.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func mod(a, b int) int {
	return (a%b + b) % b
}
