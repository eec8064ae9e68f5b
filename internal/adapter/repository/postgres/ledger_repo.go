package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/pocketbank/internal/infrastructure/postgres/generated"
)

// LedgerRepository answers whole-ledger questions that span accounts and
// transactions.
type LedgerRepository struct {
	queries *generated.Queries
}

func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return newLedgerRepositoryWithDB(pool)
}

func newLedgerRepositoryWithDB(db generated.DBTX) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(db)}
}

// CheckConsistency sums every account balance and the signed amount of every
// transaction row in one statement. Credits count positive and debits
// negative, so a healthy ledger returns two equal figures.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	totals, err := r.queries.CheckLedgerConsistency(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("sum ledger: %w", err)
	}

	balances, err := toDecimal(totals.TotalAccountBalance)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("total account balance: %w", err)
	}

	movements, err := toDecimal(totals.TotalTransactionAmount)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("total transaction amount: %w", err)
	}

	return balances, movements, nil
}
