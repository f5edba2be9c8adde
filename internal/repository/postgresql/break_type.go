package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/policy"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/pkg/database"
)

type breakTypeRepository struct {
	db *database.DB
}

func NewBreakTypeRepository(db *database.DB) policy.BreakTypeRepository {
	return &breakTypeRepository{db: db}
}

// GetByID implements policy.BreakTypeRepository with company isolation.
func (r *breakTypeRepository) GetByID(ctx context.Context, id string, companyID string) (policy.BreakTypeConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, display_name, max_duration_minutes, is_active
		FROM break_types
		WHERE id = $1 AND company_id = $2
	`

	var bt policy.BreakTypeConfig
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&bt.ID, &bt.CompanyID, &bt.DisplayName, &bt.MaxDurationMinutes, &bt.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return policy.BreakTypeConfig{}, policy.ErrBreakTypeNotFound
		}
		return policy.BreakTypeConfig{}, fmt.Errorf("failed to get break type: %w", err)
	}

	return bt, nil
}
