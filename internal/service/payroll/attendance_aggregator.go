package payroll

import (
	"math"
	"time"

	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/attendance"
)

const regularMinutesPerDay = 8 * 60

// HoursSummary is the aggregated result for one employee over one period.
// Hour values are rounded to one decimal place at this boundary only;
// accumulation happens in whole minutes to avoid rounding drift.
type HoursSummary struct {
	TotalHours    float64
	RegularHours  float64
	OvertimeHours float64
}

// AttendanceAggregator converts raw attendance records into per-day worked
// durations split into regular and overtime.
type AttendanceAggregator struct {
}

func NewAttendanceAggregator() *AttendanceAggregator {
	return &AttendanceAggregator{}
}

// Aggregate sums worked minutes per calendar day. A record contributes only
// when both check-in and check-out are present; worked time is the span
// minus the recorded break total, floored at zero. Overtime is the portion
// of any single day exceeding eight hours, counted only when enabled.
func (a *AttendanceAggregator) Aggregate(records []attendance.Attendance, overtimeEnabled bool) HoursSummary {
	minutesByDay := make(map[string]int)

	for _, rec := range records {
		if rec.CheckIn == nil || rec.CheckOut == nil {
			continue
		}

		worked := int(rec.CheckOut.Sub(*rec.CheckIn)/time.Minute) - rec.TotalBreakMinutes
		if worked < 0 {
			worked = 0
		}

		day := rec.Date.UTC().Format("2006-01-02")
		minutesByDay[day] += worked
	}

	var totalMinutes, overtimeMinutes int
	for _, mins := range minutesByDay {
		totalMinutes += mins
		if overtimeEnabled && mins > regularMinutesPerDay {
			overtimeMinutes += mins - regularMinutesPerDay
		}
	}

	total := roundHours(totalMinutes)
	overtime := roundHours(overtimeMinutes)
	return HoursSummary{
		TotalHours:    total,
		RegularHours:  roundTenth(total - overtime),
		OvertimeHours: overtime,
	}
}

func roundHours(minutes int) float64 {
	return roundTenth(float64(minutes) / 60)
}

func roundTenth(hours float64) float64 {
	return math.Round(hours*10) / 10
}
