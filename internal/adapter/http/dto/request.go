package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/usecase"
)

// RegisterUserRequest represents a customer sign-up.
type RegisterUserRequest struct {
	Username    string `json:"username"     validate:"required,min=3,max=50"`
	Password    string `json:"password"     validate:"required,min=8,max=128"`
	FullName    string `json:"full_name"    validate:"required,max=100"`
	Email       string `json:"email"        validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"max=32"`
	Address     string `json:"address"      validate:"max=500"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterUserRequest) ToUseCaseInput() usecase.RegisterUserInput {
	return usecase.RegisterUserInput{
		Username:    r.Username,
		Password:    r.Password,
		FullName:    r.FullName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
	}
}

// UpdateProfileRequest carries the contact fields to change. Absent fields are kept.
type UpdateProfileRequest struct {
	FullName    *string `json:"full_name,omitempty"    validate:"omitempty,min=1,max=100"`
	Email       *string `json:"email,omitempty"        validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=32"`
	Address     *string `json:"address,omitempty"      validate:"omitempty,max=500"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateProfileRequest) ToUseCaseInput(id string) usecase.UpdateProfileInput {
	return usecase.UpdateProfileInput{
		ID:          id,
		FullName:    r.FullName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
	}
}

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	OwnerID string `json:"owner_id" validate:"required"`
	Type    string `json:"type"     validate:"required,oneof=SAVINGS CHECKING"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenAccountRequest) ToUseCaseInput() usecase.OpenAccountInput {
	return usecase.OpenAccountInput{
		OwnerID: r.OwnerID,
		Type:    domain.AccountType(r.Type),
	}
}

// DepositRequest represents a cash deposit.
type DepositRequest struct {
	AccountNumber string          `json:"account_number" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"    validate:"max=255"`
}

// ToUseCaseInput converts to use case input.
func (r *DepositRequest) ToUseCaseInput() usecase.DepositInput {
	return usecase.DepositInput{
		AccountNumber: r.AccountNumber,
		Amount:        r.Amount,
		Description:   r.Description,
	}
}

// WithdrawRequest represents a cash withdrawal.
type WithdrawRequest struct {
	AccountNumber string          `json:"account_number" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"    validate:"max=255"`
}

// ToUseCaseInput converts to use case input.
func (r *WithdrawRequest) ToUseCaseInput() usecase.WithdrawInput {
	return usecase.WithdrawInput{
		AccountNumber: r.AccountNumber,
		Amount:        r.Amount,
		Description:   r.Description,
	}
}

// TransferRequest represents a request to move money between two accounts.
type TransferRequest struct {
	FromAccountNumber string          `json:"from_account_number" validate:"required"`
	ToAccountNumber   string          `json:"to_account_number"   validate:"required"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"         validate:"max=255"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		FromAccountNumber: r.FromAccountNumber,
		ToAccountNumber:   r.ToAccountNumber,
		Amount:            r.Amount,
		Description:       r.Description,
	}
}

// ApplyForLoanRequest represents a loan application.
type ApplyForLoanRequest struct {
	OwnerID      string          `json:"owner_id"      validate:"required"`
	Principal    decimal.Decimal `json:"principal"`
	TenureMonths int             `json:"tenure_months" validate:"required,min=1,max=360"`
	Purpose      string          `json:"purpose"       validate:"max=1000"`
}

// ToUseCaseInput converts to use case input.
func (r *ApplyForLoanRequest) ToUseCaseInput() usecase.ApplyForLoanInput {
	return usecase.ApplyForLoanInput{
		OwnerID:      r.OwnerID,
		Principal:    r.Principal,
		TenureMonths: r.TenureMonths,
		Purpose:      r.Purpose,
	}
}

// ApproveLoanRequest names the account the principal is disbursed into.
type ApproveLoanRequest struct {
	AccountNumber string `json:"account_number" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *ApproveLoanRequest) ToUseCaseInput(loanID string) usecase.ApproveLoanInput {
	return usecase.ApproveLoanInput{
		LoanID:        loanID,
		AccountNumber: r.AccountNumber,
	}
}

// CreateFixedDepositRequest represents a request to open a fixed deposit.
type CreateFixedDepositRequest struct {
	OwnerID       string          `json:"owner_id"       validate:"required"`
	AccountNumber string          `json:"account_number" validate:"required"`
	Principal     decimal.Decimal `json:"principal"`
	TenureMonths  int             `json:"tenure_months"  validate:"required,min=1,max=360"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateFixedDepositRequest) ToUseCaseInput() usecase.CreateFixedDepositInput {
	return usecase.CreateFixedDepositInput{
		OwnerID:       r.OwnerID,
		AccountNumber: r.AccountNumber,
		Principal:     r.Principal,
		TenureMonths:  r.TenureMonths,
	}
}
