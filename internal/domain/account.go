package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxBalance is the largest balance the ledger columns can hold.
const MaxBalance = "99999999999999999.99"

var maxBalance = decimal.RequireFromString(MaxBalance)

// AccountType is the product type of a customer account.
type AccountType string

const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeChecking AccountType = "CHECKING"
)

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	return t == AccountTypeSavings || t == AccountTypeChecking
}

// AccountStatus is the administrative state of an account.
type AccountStatus string

const (
	AccountStatusPending   AccountStatus = "PENDING"
	AccountStatusApproved  AccountStatus = "APPROVED"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
)

// Account represents a customer account that holds a balance.
// Balance is only ever changed by the transaction service.
type Account struct {
	ID        string
	Number    string
	Type      AccountType
	Balance   decimal.Decimal
	Status    AccountStatus
	OwnerID   string
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the account may take part in money movement.
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusApproved
}

// ValidateActive returns ErrAccountInactive unless the account is approved.
func (a *Account) ValidateActive() error {
	if !a.IsActive() {
		return ErrAccountInactive
	}
	return nil
}

// ValidateDebit checks if account can be debited by amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	return nil
}

// ValidateCredit checks that crediting amount keeps the balance storable.
func (a *Account) ValidateCredit(amount decimal.Decimal) error {
	if a.Balance.Add(amount).GreaterThan(maxBalance) {
		return ErrBalanceLimit
	}
	return nil
}

// ApplyDebit returns new balance after debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns new balance after credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}
