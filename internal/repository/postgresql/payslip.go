package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/pkg/database"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepository{db: db}
}

// Create implements payslip.PayslipRepository. The payslips table carries a
// unique constraint on (employee_id, period_start); ON CONFLICT DO NOTHING
// plus the row-count check keeps creation idempotent even if a second
// writer ever races the in-flow guard. The payslip row and its rendered
// document commit in one transaction.
func (r *payslipRepository) Create(ctx context.Context, p payslip.Payslip) (payslip.Payslip, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	deductionsJSON, err := json.Marshal(p.Deductions)
	if err != nil {
		return payslip.Payslip{}, fmt.Errorf("failed to marshal deductions: %w", err)
	}

	err = WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		q := GetQuerier(txCtx, r.db)

		query := `
			INSERT INTO payslips (
				id, employee_id, company_id, period_start, period_end,
				total_hours, overtime_hours, overtime_multiplier,
				gross_pay, deductions, net_pay, issue_date, status,
				created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW()
			)
			ON CONFLICT (employee_id, period_start) DO NOTHING
		`

		tag, err := q.Exec(txCtx, query,
			p.ID,
			p.EmployeeID,
			p.CompanyID,
			p.PeriodStart,
			p.PeriodEnd,
			p.TotalHours,
			p.OvertimeHours,
			p.OvertimeMultiplier,
			p.GrossPay,
			deductionsJSON,
			p.NetPay,
			p.IssueDate,
			string(p.Status),
		)
		if err != nil {
			return fmt.Errorf("failed to create payslip: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return payslip.ErrPayslipAlreadyExists
		}

		if len(p.Document) == 0 {
			return nil
		}

		docQuery := `
			INSERT INTO payslip_documents (id, payslip_id, content, created_at)
			VALUES ($1, $2, $3, NOW())
		`
		if _, err := q.Exec(txCtx, docQuery, uuid.New().String(), p.ID, p.Document); err != nil {
			return fmt.Errorf("failed to store payslip document: %w", err)
		}
		return nil
	})
	if err != nil {
		return payslip.Payslip{}, err
	}

	return p, nil
}

// ExistsForPeriod implements payslip.PayslipRepository.
func (r *payslipRepository) ExistsForPeriod(ctx context.Context, employeeID string, periodStart time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM payslips
			WHERE employee_id = $1 AND period_start = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, periodStart).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check payslip existence: %w", err)
	}
	return exists, nil
}
