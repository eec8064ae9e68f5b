package domain

import "time"

// Event types
const (
	EventTypeAccountOpened       = "account.opened"
	EventTypeAccountApproved     = "account.approved"
	EventTypeAccountSuspended    = "account.suspended"
	EventTypeTransactionPosted   = "transaction.posted"
	EventTypeLoanApplied         = "loan.applied"
	EventTypeLoanDisbursed       = "loan.disbursed"
	EventTypeLoanRejected        = "loan.rejected"
	EventTypeFixedDepositCreated = "fixed_deposit.created"
	EventTypeUserRegistered      = "user.registered"
)

// Aggregate types
const (
	AggregateTypeAccount      = "account"
	AggregateTypeTransaction  = "transaction"
	AggregateTypeLoan         = "loan"
	AggregateTypeFixedDeposit = "fixed_deposit"
	AggregateTypeUser         = "user"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// AccountStatusEvent payload, used for opened/approved/suspended.
type AccountStatusEvent struct {
	AccountID     string `json:"account_id"`
	AccountNumber string `json:"account_number"`
	OwnerID       string `json:"owner_id"`
	Status        string `json:"status"`
}

// TransactionPostedEvent payload
type TransactionPostedEvent struct {
	TransactionID string `json:"transaction_id"`
	AccountNumber string `json:"account_number"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	BalanceAfter  string `json:"balance_after"`
	Counterparty  string `json:"counterparty,omitempty"`
	EventAt       string `json:"event_at"`
}

// LoanEvent payload
type LoanEvent struct {
	LoanID        string `json:"loan_id"`
	OwnerID       string `json:"owner_id"`
	Principal     string `json:"principal"`
	Status        string `json:"status"`
	AccountNumber string `json:"account_number,omitempty"`
}

// FixedDepositCreatedEvent payload
type FixedDepositCreatedEvent struct {
	FixedDepositID string `json:"fixed_deposit_id"`
	OwnerID        string `json:"owner_id"`
	Principal      string `json:"principal"`
	MaturityAmount string `json:"maturity_amount"`
	MaturityDate   string `json:"maturity_date"`
}

// UserRegisteredEvent payload
type UserRegisteredEvent struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
