package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger row.
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal  TransactionType = "WITHDRAWAL"
	TransactionTypeTransferIn  TransactionType = "TRANSFER_IN"
	TransactionTypeTransferOut TransactionType = "TRANSFER_OUT"
)

// IsCredit reports whether the row increased the account balance.
func (t TransactionType) IsCredit() bool {
	return t == TransactionTypeDeposit || t == TransactionTypeTransferIn
}

// Transaction is an immutable ledger row. It is written once as a side
// effect of a balance mutation and never updated or deleted.
type Transaction struct {
	ID                        string
	AccountID                 string
	AccountNumber             string
	Type                      TransactionType
	Amount                    decimal.Decimal
	BalanceAfter              decimal.Decimal
	Description               string
	CounterpartyAccountNumber string
	CreatedAt                 time.Time
}

// SignedAmount returns the amount with the sign of its effect on the balance.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type.IsCredit() {
		return t.Amount
	}
	return t.Amount.Neg()
}

// Default descriptions used when the caller does not supply one.
const (
	DescriptionDeposit    = "Deposit"
	DescriptionWithdrawal = "Withdrawal"
)

// TransferOutDescription is the default description of the debit leg.
func TransferOutDescription(to string) string {
	return "Transfer to " + to
}

// TransferInDescription is the default description of the credit leg.
func TransferInDescription(from string) string {
	return "Transfer from " + from
}
