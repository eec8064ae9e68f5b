package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/usecase"
)

func TestOpenAccountRequest_ToUseCaseInput(t *testing.T) {
	req := &OpenAccountRequest{OwnerID: "user-1", Type: "CHECKING"}

	got := req.ToUseCaseInput()
	want := usecase.OpenAccountInput{OwnerID: "user-1", Type: domain.AccountTypeChecking}

	if got != want {
		t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, want)
	}
}

func TestTransferRequest_DecodesAmount(t *testing.T) {
	var req TransferRequest
	body := `{"from_account_number":"PB001","to_account_number":"PB002","amount":"30.50"}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}

	in := req.ToUseCaseInput()
	if in.FromAccountNumber != "PB001" || in.ToAccountNumber != "PB002" {
		t.Fatalf("unexpected accounts: %+v", in)
	}
	if !in.Amount.Equal(decimal.RequireFromString("30.50")) {
		t.Fatalf("unexpected amount %s", in.Amount)
	}
}

func TestApproveLoanRequest_ToUseCaseInput(t *testing.T) {
	req := &ApproveLoanRequest{AccountNumber: "PB001"}
	got := req.ToUseCaseInput("loan-1")

	if got.LoanID != "loan-1" || got.AccountNumber != "PB001" {
		t.Fatalf("unexpected input %+v", got)
	}
}

func TestUpdateProfileRequest_KeepsAbsentFields(t *testing.T) {
	var req UpdateProfileRequest
	if err := json.Unmarshal([]byte(`{"email":"new@example.com"}`), &req); err != nil {
		t.Fatalf("decode: %v", err)
	}

	in := req.ToUseCaseInput("user-1")
	if in.ID != "user-1" || in.Email == nil || *in.Email != "new@example.com" {
		t.Fatalf("unexpected input %+v", in)
	}
	if in.FullName != nil || in.PhoneNumber != nil || in.Address != nil {
		t.Fatalf("expected absent fields to stay nil, got %+v", in)
	}
}

func TestValidate(t *testing.T) {
	email := "not-an-email"

	tests := []struct {
		name       string
		request    any
		wantFields []string
	}{
		{
			name: "valid registration",
			request: &RegisterUserRequest{
				Username: "alice",
				Password: "Secret123",
				FullName: "Alice",
				Email:    "alice@example.com",
			},
		},
		{
			name:       "missing registration fields",
			request:    &RegisterUserRequest{Username: "al", Password: "short"},
			wantFields: []string{"username", "password", "full_name", "email"},
		},
		{
			name:       "unknown account type",
			request:    &OpenAccountRequest{OwnerID: "user-1", Type: "BROKERAGE"},
			wantFields: []string{"type"},
		},
		{
			name:       "loan tenure out of range",
			request:    &ApplyForLoanRequest{OwnerID: "user-1", TenureMonths: 400},
			wantFields: []string{"tenure_months"},
		},
		{
			name:       "bad profile email",
			request:    &UpdateProfileRequest{Email: &email},
			wantFields: []string{"email"},
		},
		{
			name:       "transfer without accounts",
			request:    &TransferRequest{Amount: decimal.NewFromInt(1)},
			wantFields: []string{"from_account_number", "to_account_number"},
		},
		{
			name:    "empty profile update is valid",
			request: &UpdateProfileRequest{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.request)

			if len(errs) != len(tt.wantFields) {
				t.Fatalf("expected %d errors, got %+v", len(tt.wantFields), errs)
			}
			for i, field := range tt.wantFields {
				if errs[i].Field != field {
					t.Fatalf("error %d: expected field %q, got %q", i, field, errs[i].Field)
				}
				if errs[i].Message == "" || errs[i].Type == "" {
					t.Fatalf("error %d: expected message and type, got %+v", i, errs[i])
				}
			}
		})
	}
}
