package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayslipStatus enum
type PayslipStatus string

const (
	PayslipStatusPending PayslipStatus = "pending"
	PayslipStatusPaid    PayslipStatus = "paid"
)

// Deduction is one ordered entry in a payslip's deductions list.
type Deduction struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// Payslip - Generated payroll result. Write-once: exactly one payslip may
// exist per (employee, period start) pair.
type Payslip struct {
	ID                 string
	EmployeeID         string
	CompanyID          string
	PeriodStart        time.Time
	PeriodEnd          time.Time
	TotalHours         float64
	OvertimeHours      float64
	OvertimeMultiplier decimal.Decimal
	GrossPay           decimal.Decimal
	Deductions         []Deduction
	NetPay             decimal.Decimal
	IssueDate          time.Time
	Status             PayslipStatus
	Document           []byte // rendered PDF, stored alongside the record
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
