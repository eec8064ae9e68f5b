package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/pocketbank/internal/adapter/http/dto"
	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/usecase"
)

// LoanService defines the behavior needed by LoanHandler.
type LoanService interface {
	ApplyForLoan(ctx context.Context, input usecase.ApplyForLoanInput) (*domain.Loan, error)
	GetLoan(ctx context.Context, id string) (*domain.Loan, error)
	ListLoansByOwner(ctx context.Context, ownerID string) ([]*domain.Loan, error)
}

// LoanHandler handles customer loan requests.
type LoanHandler struct {
	loanUC LoanService
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(loanUC LoanService) *LoanHandler {
	return &LoanHandler{loanUC: loanUC}
}

// Apply submits a loan application.
func (h *LoanHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplyForLoanRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	loan, err := h.loanUC.ApplyForLoan(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "failed to apply for loan", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.LoanFromDomain(loan))
}

// Get retrieves a loan by ID.
func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	loan, err := h.loanUC.GetLoan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to get loan", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LoanFromDomain(loan))
}

// ListByOwner lists the loans of the user in the path.
func (h *LoanHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loanUC.ListLoansByOwner(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to list loans", err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse(dto.LoansFromDomain(loans), 0, 0))
}
