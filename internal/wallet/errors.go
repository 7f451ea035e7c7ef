package wallet

import "errors"

var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrTermsNotAccepted = errors.New("wallet terms must be accepted first")
)
