package policy

import "context"

// Provider exposes the per-company pay-cycle and tax configuration the
// scheduler reads at the start of every run.
type Provider interface {
	// ListCompanyIDs returns every company that has a pay cycle policy.
	ListCompanyIDs(ctx context.Context) ([]string, error)

	GetPayCyclePolicy(ctx context.Context, companyID string) (PayCyclePolicy, error)
	GetTaxPolicy(ctx context.Context, companyID string) (TaxPolicy, error)
}

// BreakTypeRepository resolves break type identifiers to their quota config.
type BreakTypeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (BreakTypeConfig, error)
}
