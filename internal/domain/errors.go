package domain

import (
	"errors"
	"fmt"
)

var (
	// Account errors
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountInactive     = errors.New("account is not active")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidAccountType  = errors.New("invalid account type")
	ErrAccountNumberTaken  = errors.New("could not allocate a unique account number")
	ErrBalanceLimit        = errors.New("balance would exceed the maximum allowed")

	// Transaction errors
	ErrSameAccount   = errors.New("cannot transfer to same account")
	ErrInvalidAmount = errors.New("amount must be positive")

	// Lookup errors
	ErrEntityNotFound       = errors.New("entity not found")
	ErrLoanNotFound         = fmt.Errorf("loan: %w", ErrEntityNotFound)
	ErrUserNotFound         = fmt.Errorf("user: %w", ErrEntityNotFound)
	ErrFixedDepositNotFound = fmt.Errorf("fixed deposit: %w", ErrEntityNotFound)

	// Loan errors
	ErrInvalidTenure  = errors.New("invalid tenure")
	ErrLoanNotPending = errors.New("loan is not pending")

	// User errors
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
)
