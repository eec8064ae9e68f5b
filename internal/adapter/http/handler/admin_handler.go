package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/pocketbank/internal/adapter/http/dto"
	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/infrastructure/logger"
	"github.com/iho/pocketbank/internal/usecase"
)

// AdminAccountService is the account behavior administrators use.
type AdminAccountService interface {
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
	ListPendingAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
	ApproveAccount(ctx context.Context, id string) (*domain.Account, error)
	SuspendAccount(ctx context.Context, id string) (*domain.Account, error)
}

// AdminLoanService is the loan behavior administrators use.
type AdminLoanService interface {
	ListLoans(ctx context.Context, limit, offset int) ([]*domain.Loan, error)
	ListPendingLoans(ctx context.Context, limit, offset int) ([]*domain.Loan, error)
	ApproveLoan(ctx context.Context, input usecase.ApproveLoanInput) (*domain.Loan, error)
	RejectLoan(ctx context.Context, loanID string) (*domain.Loan, error)
}

// CustomerLister lists customer users.
type CustomerLister interface {
	ListCustomers(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// RecentTransactionLister returns the bank-wide latest ledger rows.
type RecentTransactionLister interface {
	RecentTransactions(ctx context.Context) ([]*domain.Transaction, error)
}

// FixedDepositLister lists every fixed deposit.
type FixedDepositLister interface {
	ListFixedDeposits(ctx context.Context, limit, offset int) ([]*domain.FixedDeposit, error)
}

// ReportService builds the dashboard summary.
type ReportService interface {
	Summary(ctx context.Context) (*usecase.Summary, error)
	Invalidate(ctx context.Context) error
}

// ReconciliationService checks balances against the ledger.
type ReconciliationService interface {
	ReconcileAccount(ctx context.Context, accountID string) (*usecase.ReconciliationResult, error)
	CheckLedgerConsistency(ctx context.Context) error
	GenerateReconciliationReport(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// AuditLister queries the audit trail.
type AuditLister interface {
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// AdminDeps groups the services behind the admin API.
type AdminDeps struct {
	Accounts       AdminAccountService
	Loans          AdminLoanService
	Customers      CustomerLister
	Transactions   RecentTransactionLister
	FixedDeposits  FixedDepositLister
	Reports        ReportService
	Reconciliation ReconciliationService
	Audit          AuditLister
}

// AdminHandler serves the administrator endpoints.
type AdminHandler struct {
	deps AdminDeps
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(deps AdminDeps) *AdminHandler {
	return &AdminHandler{deps: deps}
}

// Summary returns the dashboard figures.
func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.deps.Reports.Summary(r.Context())
	if err != nil {
		writeDomainError(w, r, "failed to build summary", err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// ListAccounts pages through all accounts.
func (h *AdminHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	accounts, err := h.deps.Accounts.ListAccounts(r.Context(), usecase.ListAccountsInput{Limit: limit, Offset: offset})
	if err != nil {
		writeDomainError(w, r, "failed to list accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse(dto.AccountsFromDomain(accounts), limit, offset))
}

// ListPendingAccounts pages through accounts awaiting approval.
func (h *AdminHandler) ListPendingAccounts(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	accounts, err := h.deps.Accounts.ListPendingAccounts(r.Context(), usecase.ListAccountsInput{Limit: limit, Offset: offset})
	if err != nil {
		writeDomainError(w, r, "failed to list pending accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse(dto.AccountsFromDomain(accounts), limit, offset))
}

// ApproveAccount approves the account in the path.
func (h *AdminHandler) ApproveAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.deps.Accounts.ApproveAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to approve account", err)
		return
	}

	h.invalidateSummary(r)
	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// SuspendAccount suspends the account in the path.
func (h *AdminHandler) SuspendAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.deps.Accounts.SuspendAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to suspend account", err)
		return
	}

	h.invalidateSummary(r)
	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// ListLoans pages through all loans.
func (h *AdminHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	loans, err := h.deps.Loans.ListLoans(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, r, "failed to list loans", err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse(dto.LoansFromDomain(loans), limit, offset))
}

// ListPendingLoans pages through loans awaiting a decision.
func (h *AdminHandler) ListPendingLoans(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	loans, err := h.deps.Loans.ListPendingLoans(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, r, "failed to list pending loans", err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse(dto.LoansFromDomain(loans), limit, offset))
}

// ApproveLoan approves and disburses the loan in the path.
func (h *AdminHandler) ApproveLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.ApproveLoanRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	loan, err := h.deps.Loans.ApproveLoan(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, r, "failed to approve loan", err)
		return
	}

	h.invalidateSummary(r)
	writeJSON(w, http.StatusOK, dto.LoanFromDomain(loan))
}

// RejectLoan rejects the loan in the path.
func (h *AdminHandler) RejectLoan(w http.ResponseWriter, r *http.Request) {
	loan, err := h.deps.Loans.RejectLoan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to reject loan", err)
		return
	}

	h.invalidateSummary(r)
	writeJSON(w, http.StatusOK, dto.LoanFromDomain(loan))
}

// ListCustomers pages through customer users.
func (h *AdminHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	users, err := h.deps.Customers.ListCustomers(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, r, "failed to list customers", err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse(dto.UsersFromDomain(users), limit, offset))
}

// RecentTransactions returns the latest ledger rows across all accounts.
func (h *AdminHandler) RecentTransactions(w http.ResponseWriter, r *http.Request) {
	records, err := h.deps.Transactions.RecentTransactions(r.Context())
	if err != nil {
		writeDomainError(w, r, "failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse(dto.TransactionsFromDomain(records), 0, 0))
}

// ListFixedDeposits pages through all fixed deposits.
func (h *AdminHandler) ListFixedDeposits(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	fds, err := h.deps.FixedDeposits.ListFixedDeposits(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, r, "failed to list fixed deposits", err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse(dto.FixedDepositsFromDomain(fds), limit, offset))
}

// Reconciliation runs a full reconciliation report.
func (h *AdminHandler) Reconciliation(w http.ResponseWriter, r *http.Request) {
	report, err := h.deps.Reconciliation.GenerateReconciliationReport(r.Context())
	if err != nil {
		writeDomainError(w, r, "reconciliation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationReportFromUseCase(report))
}

// ReconcileAccount reconciles the account in the path.
func (h *AdminHandler) ReconcileAccount(w http.ResponseWriter, r *http.Request) {
	result, err := h.deps.Reconciliation.ReconcileAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "reconciliation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationResultResponse{
		AccountID:         result.AccountID,
		AccountNumber:     result.AccountNumber,
		RecordedBalance:   result.RecordedBalance,
		CalculatedBalance: result.CalculatedBalance,
		LastBalanceAfter:  result.LastBalanceAfter,
		Difference:        result.Difference,
		IsReconciled:      result.IsReconciled,
	})
}

// Consistency checks that balances equal the signed ledger total.
func (h *AdminHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Reconciliation.CheckLedgerConsistency(r.Context()); err != nil {
		writeDomainError(w, r, "ledger check failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "consistent"})
}

// AuditLogs lists audit entries matching the query filters.
func (h *AdminHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	q := r.URL.Query()

	filter := domain.AuditFilter{
		UserID:       q.Get("user_id"),
		Action:       q.Get("action"),
		ResourceType: q.Get("resource_type"),
		ResourceID:   q.Get("resource_id"),
		Limit:        limit,
		Offset:       offset,
	}

	for key, dst := range map[string]**time.Time{"start": &filter.StartDate, "end": &filter.EndDate} {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid "+key+" time", err.Error())
			return
		}
		*dst = &ts
	}

	if err := filter.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid time range", err.Error())
		return
	}

	logs, err := h.deps.Audit.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, "failed to list audit logs", err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse(dto.AuditLogsFromDomain(logs), limit, offset))
}

func (h *AdminHandler) invalidateSummary(r *http.Request) {
	if h.deps.Reports == nil {
		return
	}
	if err := h.deps.Reports.Invalidate(r.Context()); err != nil {
		l := logger.WithRequest(r.Context())
		l.Warn().Err(err).Msg("failed to invalidate report summary")
	}
}
