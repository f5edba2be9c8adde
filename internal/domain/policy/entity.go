package policy

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayFrequency enumerates the supported pay-cycle frequencies.
type PayFrequency string

const (
	FrequencyMonthly     PayFrequency = "monthly"
	FrequencySemiMonthly PayFrequency = "semi-monthly"
	FrequencyBiWeekly    PayFrequency = "bi-weekly"
	FrequencyWeekly      PayFrequency = "weekly"
)

// PayCyclePolicy - Company pay-cycle configuration. Read-only to the
// scheduler; immutable within a single run.
type PayCyclePolicy struct {
	ID                 string
	CompanyID          string
	Frequency          PayFrequency
	CutoffDay          int
	PayDay             int
	PayDay1            int // first payday of a semi-monthly cycle
	PayWeekday         time.Weekday
	PayOffset          int
	OvertimeEnabled    bool
	OvertimeMultiplier decimal.Decimal
	DefaultHourlyRate  decimal.Decimal
	AutoGenerate       bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TaxBracket is one contiguous income range with its own marginal rate.
// Brackets are stored sorted ascending by MinAmount and must not overlap.
type TaxBracket struct {
	MinAmount decimal.Decimal
	MaxAmount *decimal.Decimal // nil means unbounded
	Rate      decimal.Decimal  // percentage in [0,100]
	Label     string
}

// FlatTax applies a single rate to full gross pay.
type FlatTax struct {
	Name    string
	Rate    decimal.Decimal
	Enabled bool
}

// TaxPolicy - Company tax configuration.
type TaxPolicy struct {
	ID                    string
	CompanyID             string
	Enabled               bool
	IncomeTaxEnabled      bool
	Brackets              []TaxBracket
	SocialSecurityEnabled bool
	SocialSecurityRate    decimal.Decimal
	SocialSecurityCap     *decimal.Decimal
	FlatTaxes             []FlatTax
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// BreakTypeConfig maps a break type to its duration quota.
type BreakTypeConfig struct {
	ID                 string
	CompanyID          string
	DisplayName        string
	MaxDurationMinutes int
	IsActive           bool
}

// MaxDuration returns the quota as a time.Duration.
func (b BreakTypeConfig) MaxDuration() time.Duration {
	return time.Duration(b.MaxDurationMinutes) * time.Minute
}
