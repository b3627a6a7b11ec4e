package errors

import "fmt"

// Ledger rule failures. Account operations return these instead of mutating state.
var (
	ErrInvalidAmount           = fmt.Errorf("invalid amount")
	ErrInsufficientFunds       = fmt.Errorf("insufficient funds")
	ErrExceedsWithdrawalLimit  = fmt.Errorf("withdrawal amount exceeds limit")
	ErrWithdrawalCountExceeded = fmt.Errorf("maximum number of withdrawals exceeded")
)

var ErrClientNotFound = fmt.Errorf("client not found")
var ErrClientAlreadyExists = fmt.Errorf("client already exists")
var ErrAccountNotFound = fmt.Errorf("account not found")
