package policy

import "errors"

var (
	ErrPayCyclePolicyNotFound = errors.New("pay cycle policy not found")
	ErrTaxPolicyNotFound      = errors.New("tax policy not found")
	ErrBreakTypeNotFound      = errors.New("break type not found")
	ErrUnsupportedFrequency   = errors.New("unsupported pay cycle frequency")
)
