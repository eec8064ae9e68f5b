package domain

import (
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// FixedDepositStatus is the state of a fixed deposit.
type FixedDepositStatus string

const (
	FixedDepositStatusActive FixedDepositStatus = "ACTIVE"
)

// FixedDeposit is principal locked away for a tenure at a fixed rate.
type FixedDeposit struct {
	ID                   string
	OwnerID              string
	FundingAccountNumber string
	Principal            decimal.Decimal
	TenureMonths         int
	InterestRate         decimal.Decimal
	MaturityAmount       decimal.Decimal
	StartDate            time.Time
	MaturityDate         time.Time
	Status               FixedDepositStatus
	CreatedAt            time.Time
}

// FixedDepositRate returns the annual rate in percent for a tenure.
func FixedDepositRate(tenureMonths int) decimal.Decimal {
	switch {
	case tenureMonths <= 6:
		return decimal.RequireFromString("5.5")
	case tenureMonths <= 12:
		return decimal.RequireFromString("6.0")
	case tenureMonths <= 24:
		return decimal.RequireFromString("6.5")
	default:
		return decimal.RequireFromString("7.0")
	}
}

// CalculateMaturity compounds principal annually over the tenure:
// P*(1+r/100)^(months/12), rounded half-up to two decimal places.
func CalculateMaturity(principal, annualRate decimal.Decimal, tenureMonths int) decimal.Decimal {
	p := principal.InexactFloat64()
	r := annualRate.InexactFloat64()
	years := float64(tenureMonths) / 12

	return decimal.NewFromFloat(p * math.Pow(1+r/100, years)).Round(2)
}

// MaturityDate returns the day the deposit matures.
func MaturityDate(start time.Time, tenureMonths int) time.Time {
	return start.AddDate(0, tenureMonths, 0)
}

// FixedDepositDescription is the ledger description of the funding withdrawal.
func FixedDepositDescription(tenureMonths int) string {
	return "Fixed deposit creation for " + strconv.Itoa(tenureMonths) + " months"
}
