package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/attendance"
)

func record(day time.Time, checkIn, checkOut string, breakMinutes int) attendance.Attendance {
	rec := attendance.Attendance{
		ID:                "att-" + day.Format("2006-01-02") + "-" + checkIn,
		EmployeeID:        "emp-1",
		CompanyID:         "co-1",
		Date:              day,
		TotalBreakMinutes: breakMinutes,
	}
	if checkIn != "" {
		t, _ := time.Parse("15:04", checkIn)
		in := day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
		rec.CheckIn = &in
	}
	if checkOut != "" {
		t, _ := time.Parse("15:04", checkOut)
		out := day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
		rec.CheckOut = &out
	}
	return rec
}

func TestAttendanceAggregator_OvertimeSplit(t *testing.T) {
	t.Parallel()
	agg := NewAttendanceAggregator()
	day := date(2025, time.June, 2)

	// 10 worked hours with overtime enabled: 8 regular, 2 overtime
	summary := agg.Aggregate([]attendance.Attendance{record(day, "08:00", "18:00", 0)}, true)
	assert.Equal(t, 10.0, summary.TotalHours)
	assert.Equal(t, 8.0, summary.RegularHours)
	assert.Equal(t, 2.0, summary.OvertimeHours)

	// same day with overtime disabled: everything is regular
	summary = agg.Aggregate([]attendance.Attendance{record(day, "08:00", "18:00", 0)}, false)
	assert.Equal(t, 10.0, summary.TotalHours)
	assert.Equal(t, 10.0, summary.RegularHours)
	assert.Equal(t, 0.0, summary.OvertimeHours)
}

func TestAttendanceAggregator_BreaksSubtracted(t *testing.T) {
	t.Parallel()
	agg := NewAttendanceAggregator()
	day := date(2025, time.June, 3)

	summary := agg.Aggregate([]attendance.Attendance{record(day, "09:00", "17:30", 30)}, true)
	assert.Equal(t, 8.0, summary.TotalHours)
	assert.Equal(t, 0.0, summary.OvertimeHours)
}

func TestAttendanceAggregator_MissingTimestampsContributeZero(t *testing.T) {
	t.Parallel()
	agg := NewAttendanceAggregator()
	day := date(2025, time.June, 4)

	records := []attendance.Attendance{
		record(day, "09:00", "", 0),
		record(day.AddDate(0, 0, 1), "", "", 0),
	}
	summary := agg.Aggregate(records, true)
	assert.Equal(t, 0.0, summary.TotalHours)
}

func TestAttendanceAggregator_NeverNegative(t *testing.T) {
	t.Parallel()
	agg := NewAttendanceAggregator()
	day := date(2025, time.June, 5)

	// Break total exceeds the worked span; the day floors at zero.
	summary := agg.Aggregate([]attendance.Attendance{record(day, "09:00", "09:30", 60)}, true)
	assert.Equal(t, 0.0, summary.TotalHours)
}

func TestAttendanceAggregator_MultipleRecordsSameDay(t *testing.T) {
	t.Parallel()
	agg := NewAttendanceAggregator()
	day := date(2025, time.June, 6)

	// Split shifts on the same calendar day accumulate before the
	// overtime threshold applies.
	records := []attendance.Attendance{
		record(day, "06:00", "12:00", 0),
		record(day, "13:00", "18:00", 0),
	}
	summary := agg.Aggregate(records, true)
	assert.Equal(t, 11.0, summary.TotalHours)
	assert.Equal(t, 8.0, summary.RegularHours)
	assert.Equal(t, 3.0, summary.OvertimeHours)
}

func TestAttendanceAggregator_TenthHourRounding(t *testing.T) {
	t.Parallel()
	agg := NewAttendanceAggregator()
	day := date(2025, time.June, 9)

	// 7h50m = 7.8333h rounds to 7.8 at the output boundary
	summary := agg.Aggregate([]attendance.Attendance{record(day, "09:00", "16:50", 0)}, true)
	assert.Equal(t, 7.8, summary.TotalHours)
	assert.Equal(t, 7.8, summary.RegularHours)
}
