package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time, companyID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, date, check_in, check_out,
			   total_break_minutes, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1
		  AND company_id = $2
		  AND date BETWEEN $3 AND $4
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.CompanyID, &att.Date, &att.CheckIn, &att.CheckOut,
			&att.TotalBreakMinutes, &att.CreatedAt, &att.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return r.attachBreaks(ctx, records)
}

// ListWithOpenBreak implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListWithOpenBreak(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT a.id, a.employee_id, a.company_id, a.date, a.check_in, a.check_out,
			   a.total_break_minutes, a.created_at, a.updated_at
		FROM attendances a
		JOIN attendance_breaks b ON b.attendance_id = a.id
		WHERE a.date = $1
		  AND b.break_end IS NULL
		ORDER BY a.id
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list open breaks: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		if err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.CompanyID, &att.Date, &att.CheckIn, &att.CheckOut,
			&att.TotalBreakMinutes, &att.CreatedAt, &att.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return r.attachBreaks(ctx, records)
}

// attachBreaks loads break episodes for the given records in one query.
func (r *attendanceRepository) attachBreaks(ctx context.Context, records []attendance.Attendance) ([]attendance.Attendance, error) {
	if len(records) == 0 {
		return records, nil
	}

	q := GetQuerier(ctx, r.db)

	ids := make([]string, len(records))
	index := make(map[string]int, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
		index[rec.ID] = i
	}

	query := `
		SELECT id, attendance_id, break_type_id, break_start, break_end,
			   duration_minutes, created_at
		FROM attendance_breaks
		WHERE attendance_id = ANY($1)
		ORDER BY break_start
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load break episodes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ep attendance.BreakEpisode
		if err := rows.Scan(
			&ep.ID, &ep.AttendanceID, &ep.BreakTypeID, &ep.Start, &ep.End,
			&ep.DurationMinutes, &ep.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan break episode: %w", err)
		}
		if i, ok := index[ep.AttendanceID]; ok {
			records[i].Breaks = append(records[i].Breaks, ep)
		}
	}

	return records, rows.Err()
}
