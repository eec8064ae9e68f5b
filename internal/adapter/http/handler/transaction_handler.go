package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/pocketbank/internal/adapter/http/dto"
	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	Deposit(ctx context.Context, input usecase.DepositInput) (*domain.Transaction, error)
	Withdraw(ctx context.Context, input usecase.WithdrawInput) (*domain.Transaction, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error)
	ListAccountTransactions(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	RecentAccountTransactions(ctx context.Context, accountID string) ([]*domain.Transaction, error)
}

// TransactionHandler handles money movement requests.
type TransactionHandler struct {
	txUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txUC TransactionService) *TransactionHandler {
	return &TransactionHandler{txUC: txUC}
}

// Deposit credits an account.
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req dto.DepositRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	record, err := h.txUC.Deposit(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "deposit failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(record))
}

// Withdraw debits an account.
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.WithdrawRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	record, err := h.txUC.Withdraw(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "withdrawal failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(record))
}

// Transfer moves money between two accounts.
func (h *TransactionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.txUC.Transfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "transfer failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromUseCase(result))
}

// ListByAccount pages through an account's ledger, newest first.
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	records, err := h.txUC.ListAccountTransactions(r.Context(), chi.URLParam(r, "id"), limit, offset)
	if err != nil {
		writeDomainError(w, r, "failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse(dto.TransactionsFromDomain(records), limit, offset))
}

// RecentByAccount returns the latest ledger rows of an account.
func (h *TransactionHandler) RecentByAccount(w http.ResponseWriter, r *http.Request) {
	records, err := h.txUC.RecentAccountTransactions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse(dto.TransactionsFromDomain(records), 0, 0))
}
