package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketbank/internal/adapter/http/dto"
	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/usecase"
)

type loanServiceStub struct {
	applyFn func(ctx context.Context, input usecase.ApplyForLoanInput) (*domain.Loan, error)
	getFn   func(ctx context.Context, id string) (*domain.Loan, error)
}

func (s *loanServiceStub) ApplyForLoan(ctx context.Context, input usecase.ApplyForLoanInput) (*domain.Loan, error) {
	return s.applyFn(ctx, input)
}

func (s *loanServiceStub) GetLoan(ctx context.Context, id string) (*domain.Loan, error) {
	return s.getFn(ctx, id)
}

func (s *loanServiceStub) ListLoansByOwner(ctx context.Context, ownerID string) ([]*domain.Loan, error) {
	return []*domain.Loan{{ID: "loan-1", OwnerID: ownerID}, {ID: "loan-2", OwnerID: ownerID}}, nil
}

func TestLoanHandler_Apply(t *testing.T) {
	var captured usecase.ApplyForLoanInput
	handler := NewLoanHandler(&loanServiceStub{
		applyFn: func(ctx context.Context, input usecase.ApplyForLoanInput) (*domain.Loan, error) {
			captured = input
			rate := domain.LoanInterestRate(input.TenureMonths)
			return &domain.Loan{
				ID:                 "loan-1",
				OwnerID:            input.OwnerID,
				Principal:          input.Principal,
				TenureMonths:       input.TenureMonths,
				InterestRate:       rate,
				MonthlyInstallment: domain.CalculateEMI(input.Principal, rate, input.TenureMonths),
				Status:             domain.LoanStatusPending,
			}, nil
		},
	})

	body := `{"owner_id":"user-1","principal":"100000","tenure_months":12,"purpose":"car"}`
	rec := httptest.NewRecorder()
	handler.Apply(rec, httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.OwnerID != "user-1" || captured.Purpose != "car" || !captured.Principal.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("unexpected input %+v", captured)
	}

	var resp dto.LoanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.MonthlyInstallment.StringFixed(2) != "8721.98" || resp.Status != "PENDING" {
		t.Fatalf("unexpected loan %+v", resp)
	}
}

func TestLoanHandler_ApplyValidation(t *testing.T) {
	called := false
	handler := NewLoanHandler(&loanServiceStub{
		applyFn: func(ctx context.Context, input usecase.ApplyForLoanInput) (*domain.Loan, error) {
			called = true
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Apply(rec, httptest.NewRequest(http.MethodPost, "/loans",
		strings.NewReader(`{"owner_id":"user-1","principal":"100","tenure_months":400}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if called {
		t.Fatal("service must not be called for invalid input")
	}
}

func TestLoanHandler_ApplyDomainErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown owner", domain.ErrUserNotFound, http.StatusNotFound},
		{"bad principal", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"purpose too long", domain.ErrPurposeTooLong, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewLoanHandler(&loanServiceStub{
				applyFn: func(ctx context.Context, input usecase.ApplyForLoanInput) (*domain.Loan, error) {
					return nil, tt.err
				},
			})

			rec := httptest.NewRecorder()
			handler.Apply(rec, httptest.NewRequest(http.MethodPost, "/loans",
				strings.NewReader(`{"owner_id":"user-1","principal":"100","tenure_months":6}`)))

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestLoanHandler_GetAndList(t *testing.T) {
	handler := NewLoanHandler(&loanServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Loan, error) {
			if id == "loan-1" {
				return &domain.Loan{ID: id, Status: domain.LoanStatusRejected}, nil
			}
			return nil, domain.ErrLoanNotFound
		},
	})

	rec := httptest.NewRecorder()
	handler.Get(rec, withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), "id", "loan-1"))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"REJECTED"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.Get(rec, withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), "id", "nope"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ListByOwner(rec, withURLParams(httptest.NewRequest(http.MethodGet, "/", nil), "id", "user-1"))

	var list dto.ListResponse[*dto.LoanResponse]
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Items) != 2 || list.Items[0].OwnerID != "user-1" {
		t.Fatalf("unexpected list %+v", list)
	}
}
