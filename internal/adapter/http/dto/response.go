package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Details []ValidationError `json:"details,omitempty"`
}

// UserResponse represents a user in API responses. The password hash is never exposed.
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Address     string    `json:"address,omitempty"`
	Role        string    `json:"role"`
	Enabled     bool      `json:"enabled"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserFromDomain converts domain user to response.
func UserFromDomain(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		Role:        string(u.Role),
		Enabled:     u.Enabled,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// UsersFromDomain converts domain users to responses.
func UsersFromDomain(users []*domain.User) []*UserResponse {
	result := make([]*UserResponse, len(users))
	for i, u := range users {
		result[i] = UserFromDomain(u)
	}
	return result
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	Number    string          `json:"number"`
	Type      string          `json:"type"`
	Balance   decimal.Decimal `json:"balance"`
	Status    string          `json:"status"`
	OwnerID   string          `json:"owner_id"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Number:    a.Number,
		Type:      string(a.Type),
		Balance:   a.Balance,
		Status:    string(a.Status),
		OwnerID:   a.OwnerID,
		Version:   a.Version,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// TransactionResponse represents a ledger row in API responses.
type TransactionResponse struct {
	ID                        string          `json:"id"`
	AccountID                 string          `json:"account_id"`
	AccountNumber             string          `json:"account_number"`
	Type                      string          `json:"type"`
	Amount                    decimal.Decimal `json:"amount"`
	BalanceAfter              decimal.Decimal `json:"balance_after"`
	Description               string          `json:"description"`
	CounterpartyAccountNumber string          `json:"counterparty_account_number,omitempty"`
	CreatedAt                 time.Time       `json:"created_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:                        t.ID,
		AccountID:                 t.AccountID,
		AccountNumber:             t.AccountNumber,
		Type:                      string(t.Type),
		Amount:                    t.Amount,
		BalanceAfter:              t.BalanceAfter,
		Description:               t.Description,
		CounterpartyAccountNumber: t.CounterpartyAccountNumber,
		CreatedAt:                 t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// TransferResponse holds both ledger rows written by a transfer.
type TransferResponse struct {
	Debit  *TransactionResponse `json:"debit"`
	Credit *TransactionResponse `json:"credit"`
}

// TransferFromUseCase converts a transfer result to response.
func TransferFromUseCase(r *usecase.TransferResult) *TransferResponse {
	return &TransferResponse{
		Debit:  TransactionFromDomain(r.Debit),
		Credit: TransactionFromDomain(r.Credit),
	}
}

// LoanResponse represents a loan in API responses.
type LoanResponse struct {
	ID                        string          `json:"id"`
	OwnerID                   string          `json:"owner_id"`
	Principal                 decimal.Decimal `json:"principal"`
	TenureMonths              int             `json:"tenure_months"`
	InterestRate              decimal.Decimal `json:"interest_rate"`
	MonthlyInstallment        decimal.Decimal `json:"monthly_installment"`
	Purpose                   string          `json:"purpose,omitempty"`
	Status                    string          `json:"status"`
	DisbursementAccountNumber string          `json:"disbursement_account_number,omitempty"`
	AppliedAt                 time.Time       `json:"applied_at"`
	ApprovedAt                *time.Time      `json:"approved_at,omitempty"`
	UpdatedAt                 time.Time       `json:"updated_at"`
}

// LoanFromDomain converts domain loan to response.
func LoanFromDomain(l *domain.Loan) *LoanResponse {
	return &LoanResponse{
		ID:                        l.ID,
		OwnerID:                   l.OwnerID,
		Principal:                 l.Principal,
		TenureMonths:              l.TenureMonths,
		InterestRate:              l.InterestRate,
		MonthlyInstallment:        l.MonthlyInstallment,
		Purpose:                   l.Purpose,
		Status:                    string(l.Status),
		DisbursementAccountNumber: l.DisbursementAccountNumber,
		AppliedAt:                 l.AppliedAt,
		ApprovedAt:                l.ApprovedAt,
		UpdatedAt:                 l.UpdatedAt,
	}
}

// LoansFromDomain converts domain loans to responses.
func LoansFromDomain(loans []*domain.Loan) []*LoanResponse {
	result := make([]*LoanResponse, len(loans))
	for i, l := range loans {
		result[i] = LoanFromDomain(l)
	}
	return result
}

// FixedDepositResponse represents a fixed deposit in API responses.
type FixedDepositResponse struct {
	ID                   string          `json:"id"`
	OwnerID              string          `json:"owner_id"`
	FundingAccountNumber string          `json:"funding_account_number"`
	Principal            decimal.Decimal `json:"principal"`
	TenureMonths         int             `json:"tenure_months"`
	InterestRate         decimal.Decimal `json:"interest_rate"`
	MaturityAmount       decimal.Decimal `json:"maturity_amount"`
	StartDate            time.Time       `json:"start_date"`
	MaturityDate         time.Time       `json:"maturity_date"`
	Status               string          `json:"status"`
	CreatedAt            time.Time       `json:"created_at"`
}

// FixedDepositFromDomain converts domain fixed deposit to response.
func FixedDepositFromDomain(fd *domain.FixedDeposit) *FixedDepositResponse {
	return &FixedDepositResponse{
		ID:                   fd.ID,
		OwnerID:              fd.OwnerID,
		FundingAccountNumber: fd.FundingAccountNumber,
		Principal:            fd.Principal,
		TenureMonths:         fd.TenureMonths,
		InterestRate:         fd.InterestRate,
		MaturityAmount:       fd.MaturityAmount,
		StartDate:            fd.StartDate,
		MaturityDate:         fd.MaturityDate,
		Status:               string(fd.Status),
		CreatedAt:            fd.CreatedAt,
	}
}

// FixedDepositsFromDomain converts domain fixed deposits to responses.
func FixedDepositsFromDomain(fds []*domain.FixedDeposit) []*FixedDepositResponse {
	result := make([]*FixedDepositResponse, len(fds))
	for i, fd := range fds {
		result[i] = FixedDepositFromDomain(fd)
	}
	return result
}

// AuditLogResponse represents an audit entry in API responses.
type AuditLogResponse struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	Action       string      `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	IPAddress    string      `json:"ip_address,omitempty"`
	UserAgent    string      `json:"user_agent,omitempty"`
	RequestID    string      `json:"request_id,omitempty"`
	BeforeState  domain.JSON `json:"before_state,omitempty"`
	AfterState   domain.JSON `json:"after_state,omitempty"`
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AuditLogsFromDomain converts audit entries to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = &AuditLogResponse{
			ID:           l.ID,
			UserID:       l.UserID,
			Action:       l.Action,
			ResourceType: l.ResourceType,
			ResourceID:   l.ResourceID,
			IPAddress:    l.IPAddress,
			UserAgent:    l.UserAgent,
			RequestID:    l.RequestID,
			BeforeState:  l.BeforeState,
			AfterState:   l.AfterState,
			Status:       l.Status,
			ErrorMessage: l.ErrorMessage,
			CreatedAt:    l.CreatedAt,
		}
	}
	return result
}

// ReconciliationResultResponse represents one account's reconciliation.
type ReconciliationResultResponse struct {
	AccountID         string           `json:"account_id"`
	AccountNumber     string           `json:"account_number"`
	RecordedBalance   decimal.Decimal  `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal  `json:"calculated_balance"`
	LastBalanceAfter  *decimal.Decimal `json:"last_balance_after,omitempty"`
	Difference        decimal.Decimal  `json:"difference"`
	IsReconciled      bool             `json:"is_reconciled"`
}

// ReconciliationReportResponse summarises a full reconciliation run.
type ReconciliationReportResponse struct {
	TotalAccounts      int                             `json:"total_accounts"`
	ReconciledAccounts int                             `json:"reconciled_accounts"`
	Discrepancies      []*ReconciliationResultResponse `json:"discrepancies"`
	LedgerConsistent   bool                            `json:"ledger_consistent"`
	LedgerError        string                          `json:"ledger_error,omitempty"`
	CheckedAt          time.Time                       `json:"checked_at"`
}

// ReconciliationReportFromUseCase converts a reconciliation report to response.
func ReconciliationReportFromUseCase(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	resp := &ReconciliationReportResponse{
		TotalAccounts:      r.TotalAccounts,
		ReconciledAccounts: r.ReconciledAccounts,
		Discrepancies:      make([]*ReconciliationResultResponse, len(r.Discrepancies)),
		LedgerConsistent:   r.LedgerConsistent,
		LedgerError:        r.LedgerError,
		CheckedAt:          r.CheckedAt,
	}
	for i, d := range r.Discrepancies {
		resp.Discrepancies[i] = &ReconciliationResultResponse{
			AccountID:         d.AccountID,
			AccountNumber:     d.AccountNumber,
			RecordedBalance:   d.RecordedBalance,
			CalculatedBalance: d.CalculatedBalance,
			LastBalanceAfter:  d.LastBalanceAfter,
			Difference:        d.Difference,
			IsReconciled:      d.IsReconciled,
		}
	}
	return resp
}

// ListResponse wraps a page of items.
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}
