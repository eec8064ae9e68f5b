package usecase

import (
	"errors"

	"github.com/iho/pocketbank/internal/domain"
)

// errorType maps an error to a low-cardinality metrics label.
func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooSmall),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrAmountPrecision):
		return "invalid_amount"
	case errors.Is(err, domain.ErrSameAccount):
		return "same_account"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrAccountInactive):
		return "account_inactive"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrBalanceLimit):
		return "balance_limit"
	case errors.Is(err, domain.ErrEntityNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrLoanNotPending):
		return "loan_not_pending"
	default:
		return "internal"
	}
}
