package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/policy"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/pkg/database"
)

type policyRepository struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) policy.Provider {
	return &policyRepository{db: db}
}

// ListCompanyIDs implements policy.Provider.
func (r *policyRepository) ListCompanyIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT DISTINCT company_id FROM pay_cycle_policies ORDER BY company_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan company id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetPayCyclePolicy implements policy.Provider.
func (r *policyRepository) GetPayCyclePolicy(ctx context.Context, companyID string) (policy.PayCyclePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, frequency, cutoff_day, pay_day, pay_day_1,
			   pay_weekday, pay_offset, overtime_enabled, overtime_multiplier,
			   default_hourly_rate, auto_generate, created_at, updated_at
		FROM pay_cycle_policies
		WHERE company_id = $1
	`

	var p policy.PayCyclePolicy
	var weekday int
	err := q.QueryRow(ctx, query, companyID).Scan(
		&p.ID, &p.CompanyID, &p.Frequency, &p.CutoffDay, &p.PayDay, &p.PayDay1,
		&weekday, &p.PayOffset, &p.OvertimeEnabled, &p.OvertimeMultiplier,
		&p.DefaultHourlyRate, &p.AutoGenerate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.PayCyclePolicy{}, policy.ErrPayCyclePolicyNotFound
		}
		return policy.PayCyclePolicy{}, fmt.Errorf("failed to get pay cycle policy: %w", err)
	}
	p.PayWeekday = weekdayFromInt(weekday)

	return p, nil
}

// GetTaxPolicy implements policy.Provider. Brackets come back sorted
// ascending by min_amount, the order the tax engine requires.
func (r *policyRepository) GetTaxPolicy(ctx context.Context, companyID string) (policy.TaxPolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, enabled, income_tax_enabled,
			   social_security_enabled, social_security_rate, social_security_cap,
			   created_at, updated_at
		FROM tax_policies
		WHERE company_id = $1
	`

	var p policy.TaxPolicy
	err := q.QueryRow(ctx, query, companyID).Scan(
		&p.ID, &p.CompanyID, &p.Enabled, &p.IncomeTaxEnabled,
		&p.SocialSecurityEnabled, &p.SocialSecurityRate, &p.SocialSecurityCap,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.TaxPolicy{}, policy.ErrTaxPolicyNotFound
		}
		return policy.TaxPolicy{}, fmt.Errorf("failed to get tax policy: %w", err)
	}

	bracketRows, err := q.Query(ctx, `
		SELECT min_amount, max_amount, rate, label
		FROM tax_brackets
		WHERE tax_policy_id = $1
		ORDER BY min_amount
	`, p.ID)
	if err != nil {
		return policy.TaxPolicy{}, fmt.Errorf("failed to load tax brackets: %w", err)
	}
	defer bracketRows.Close()

	for bracketRows.Next() {
		var b policy.TaxBracket
		if err := bracketRows.Scan(&b.MinAmount, &b.MaxAmount, &b.Rate, &b.Label); err != nil {
			return policy.TaxPolicy{}, fmt.Errorf("failed to scan tax bracket: %w", err)
		}
		p.Brackets = append(p.Brackets, b)
	}
	if err := bracketRows.Err(); err != nil {
		return policy.TaxPolicy{}, err
	}

	flatRows, err := q.Query(ctx, `
		SELECT name, rate, enabled
		FROM flat_taxes
		WHERE tax_policy_id = $1
		ORDER BY name
	`, p.ID)
	if err != nil {
		return policy.TaxPolicy{}, fmt.Errorf("failed to load flat taxes: %w", err)
	}
	defer flatRows.Close()

	for flatRows.Next() {
		var f policy.FlatTax
		if err := flatRows.Scan(&f.Name, &f.Rate, &f.Enabled); err != nil {
			return policy.TaxPolicy{}, fmt.Errorf("failed to scan flat tax: %w", err)
		}
		p.FlatTaxes = append(p.FlatTaxes, f)
	}

	return p, flatRows.Err()
}

func weekdayFromInt(d int) time.Weekday {
	return time.Weekday(((d % 7) + 7) % 7)
}
