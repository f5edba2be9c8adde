package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines read access to attendance records.
// All methods include companyID where applicable to prevent cross-company
// data access.
type AttendanceRepository interface {
	// ListByEmployeeAndRange retrieves an employee's records whose date
	// falls within [start, end], break episodes included.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]Attendance, error)

	// ListWithOpenBreak retrieves records for the given date that contain
	// an unterminated break episode.
	ListWithOpenBreak(ctx context.Context, date time.Time) ([]Attendance, error)
}
