package attendance

import (
	"time"
)

// BreakEpisode is one open-to-close interval of non-working time nested
// within a single day's attendance record.
type BreakEpisode struct {
	ID              string
	AttendanceID    string
	BreakTypeID     string
	Start           time.Time
	End             *time.Time
	DurationMinutes *int
	CreatedAt       time.Time
}

// IsOpen reports whether the episode has started but not ended.
func (b BreakEpisode) IsOpen() bool {
	return b.End == nil
}

// Attendance is one employee's record for one calendar day.
// Invariant: at most one open break episode per record at any time.
type Attendance struct {
	ID                string
	EmployeeID        string
	CompanyID         string
	Date              time.Time
	CheckIn           *time.Time
	CheckOut          *time.Time
	Breaks            []BreakEpisode
	TotalBreakMinutes int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// OpenBreak returns the record's open break episode, or nil if none.
func (a Attendance) OpenBreak() *BreakEpisode {
	for i := range a.Breaks {
		if a.Breaks[i].IsOpen() {
			return &a.Breaks[i]
		}
	}
	return nil
}
