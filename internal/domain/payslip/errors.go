package payslip

import "errors"

var (
	ErrPayslipAlreadyExists = errors.New("payslip already exists for this period")
)
