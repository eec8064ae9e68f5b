package postgres

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
)

func TestLedgerRepositoryCheckConsistency(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery("total_account_balance").
		WillReturnRows(pgxmock.NewRows([]string{"total_account_balance", "total_transaction_amount"}).AddRow(
			decimalToNumeric(decimal.RequireFromString("300.00")),
			decimalToNumeric(decimal.RequireFromString("300.00")),
		))

	repo := newLedgerRepositoryWithDB(pool)
	balance, amount, err := repo.CheckConsistency(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(300)) || !amount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("unexpected totals: %s %s", balance, amount)
	}

	assertExpectations(t, pool)
}
