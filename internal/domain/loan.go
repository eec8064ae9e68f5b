package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

const (
	LoanStatusPending   LoanStatus = "PENDING"
	LoanStatusApproved  LoanStatus = "APPROVED"
	LoanStatusRejected  LoanStatus = "REJECTED"
	LoanStatusDisbursed LoanStatus = "DISBURSED"
	LoanStatusClosed    LoanStatus = "CLOSED"
)

// Loan limits.
const (
	MinTenureMonths  = 1
	MaxTenureMonths  = 360
	MaxPurposeLength = 1000
)

// Loan is a customer's request for credit and, once approved, its terms.
type Loan struct {
	ID                        string
	OwnerID                   string
	Principal                 decimal.Decimal
	TenureMonths              int
	InterestRate              decimal.Decimal
	MonthlyInstallment        decimal.Decimal
	Purpose                   string
	Status                    LoanStatus
	DisbursementAccountNumber string
	AppliedAt                 time.Time
	ApprovedAt                *time.Time
	UpdatedAt                 time.Time
}

// IsPending reports whether an administrator can still act on the loan.
func (l *Loan) IsPending() bool {
	return l.Status == LoanStatusPending
}

// LoanDisbursementDescription is the ledger description of a disbursement.
func LoanDisbursementDescription(loanID string) string {
	return "Loan disbursement - Loan ID: " + loanID
}

// LoanInterestRate returns the annual rate in percent for a tenure.
func LoanInterestRate(tenureMonths int) decimal.Decimal {
	switch {
	case tenureMonths <= 12:
		return decimal.RequireFromString("8.5")
	case tenureMonths <= 24:
		return decimal.RequireFromString("9.0")
	case tenureMonths <= 36:
		return decimal.RequireFromString("9.5")
	default:
		return decimal.RequireFromString("10.0")
	}
}

// CalculateEMI returns the equated monthly installment
// P*r*(1+r)^n / ((1+r)^n - 1) where r is the monthly rate, rounded half-up
// to two decimal places.
func CalculateEMI(principal, annualRate decimal.Decimal, tenureMonths int) decimal.Decimal {
	p := principal.InexactFloat64()
	r := annualRate.InexactFloat64() / 12 / 100
	n := float64(tenureMonths)

	if r == 0 {
		return decimal.NewFromFloat(p / n).Round(2)
	}

	growth := math.Pow(1+r, n)
	emi := p * r * growth / (growth - 1)

	return decimal.NewFromFloat(emi).Round(2)
}
