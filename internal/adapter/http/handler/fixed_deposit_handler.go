package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/pocketbank/internal/adapter/http/dto"
	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/usecase"
)

// FixedDepositService defines the behavior needed by FixedDepositHandler.
type FixedDepositService interface {
	CreateFixedDeposit(ctx context.Context, input usecase.CreateFixedDepositInput) (*domain.FixedDeposit, error)
	GetFixedDeposit(ctx context.Context, id string) (*domain.FixedDeposit, error)
	ListFixedDepositsByOwner(ctx context.Context, ownerID string) ([]*domain.FixedDeposit, error)
}

// FixedDepositHandler handles fixed deposit requests.
type FixedDepositHandler struct {
	fdUC FixedDepositService
}

// NewFixedDepositHandler creates a new FixedDepositHandler.
func NewFixedDepositHandler(fdUC FixedDepositService) *FixedDepositHandler {
	return &FixedDepositHandler{fdUC: fdUC}
}

// Create funds a fixed deposit from an approved account.
func (h *FixedDepositHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFixedDepositRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	fd, err := h.fdUC.CreateFixedDeposit(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "failed to create fixed deposit", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.FixedDepositFromDomain(fd))
}

// Get retrieves a fixed deposit by ID.
func (h *FixedDepositHandler) Get(w http.ResponseWriter, r *http.Request) {
	fd, err := h.fdUC.GetFixedDeposit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to get fixed deposit", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FixedDepositFromDomain(fd))
}

// ListByOwner lists the fixed deposits of the user in the path.
func (h *FixedDepositHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	fds, err := h.fdUC.ListFixedDepositsByOwner(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to list fixed deposits", err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse(dto.FixedDepositsFromDomain(fds), 0, 0))
}
