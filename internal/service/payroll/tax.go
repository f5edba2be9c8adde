package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/payslip"
	"github.com/cmlabs-hris/payroll-scheduler-go/internal/domain/policy"
)

var hundred = decimal.NewFromInt(100)

// TaxResult is the outcome of applying a tax policy to gross pay.
// Deductions are ordered: income tax, social security, then flat taxes;
// zero-amount entries are elided.
type TaxResult struct {
	Deductions []payslip.Deduction
	TotalTax   decimal.Decimal
	NetPay     decimal.Decimal
}

// taxComponent is one independently evaluable tax kind. The three variants
// (progressive brackets, capped rate, flat rate) compose by summation.
type taxComponent interface {
	evaluate(gross decimal.Decimal) (label string, amount decimal.Decimal)
}

// bracketTax applies classic marginal-bracket semantics: each bracket taxes
// only the income inside its own span, and the contributions are summed.
type bracketTax struct {
	brackets []policy.TaxBracket
}

func (t bracketTax) evaluate(gross decimal.Decimal) (string, decimal.Decimal) {
	tax := decimal.Zero
	for _, b := range t.brackets {
		if gross.LessThanOrEqual(b.MinAmount) {
			continue
		}
		upper := gross
		if b.MaxAmount != nil && b.MaxAmount.LessThan(gross) {
			upper = *b.MaxAmount
		}
		taxable := upper.Sub(b.MinAmount)
		if taxable.IsNegative() {
			continue
		}
		tax = tax.Add(taxable.Mul(b.Rate).Div(hundred))
	}
	return "Income Tax", tax.Round(2)
}

// cappedRateTax applies a single rate to gross, optionally capped.
type cappedRateTax struct {
	label string
	rate  decimal.Decimal
	cap   *decimal.Decimal
}

func (t cappedRateTax) evaluate(gross decimal.Decimal) (string, decimal.Decimal) {
	base := gross
	if t.cap != nil && t.cap.LessThan(gross) {
		base = *t.cap
	}
	return t.label, base.Mul(t.rate).Div(hundred).Round(2)
}

// flatRateTax applies its rate to the full gross, independent of any other
// deduction.
type flatRateTax struct {
	name string
	rate decimal.Decimal
}

func (t flatRateTax) evaluate(gross decimal.Decimal) (string, decimal.Decimal) {
	return t.name, gross.Mul(t.rate).Div(hundred).Round(2)
}

// TaxEngine converts gross pay plus a tax policy into a deduction breakdown
// and net pay. Monetary values are rounded to two decimals only at each
// component's final amount, never mid-bracket.
type TaxEngine struct {
}

func NewTaxEngine() *TaxEngine {
	return &TaxEngine{}
}

func (e *TaxEngine) Apply(gross decimal.Decimal, p policy.TaxPolicy) TaxResult {
	if !p.Enabled {
		return TaxResult{TotalTax: decimal.Zero, NetPay: gross}
	}

	var components []taxComponent
	if p.IncomeTaxEnabled && len(p.Brackets) > 0 {
		components = append(components, bracketTax{brackets: p.Brackets})
	}
	if p.SocialSecurityEnabled {
		components = append(components, cappedRateTax{
			label: "Social Security",
			rate:  p.SocialSecurityRate,
			cap:   p.SocialSecurityCap,
		})
	}
	for _, flat := range p.FlatTaxes {
		if flat.Enabled {
			components = append(components, flatRateTax{name: flat.Name, rate: flat.Rate})
		}
	}

	result := TaxResult{TotalTax: decimal.Zero}
	for _, comp := range components {
		label, amount := comp.evaluate(gross)
		if !amount.IsPositive() {
			continue
		}
		result.Deductions = append(result.Deductions, payslip.Deduction{Type: label, Amount: amount})
		result.TotalTax = result.TotalTax.Add(amount)
	}

	result.TotalTax = result.TotalTax.Round(2)
	result.NetPay = gross.Sub(result.TotalTax).Round(2)
	return result
}
