package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/infrastructure/postgres/generated"
	"github.com/iho/pocketbank/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return newTransactionRepositoryWithDB(pool)
}

func newTransactionRepositoryWithDB(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{queries: generated.New(db)}
}

// Create appends a transaction row inside tx.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Tx, record *domain.Transaction) error {
	queries, err := queriesFor(tx)
	if err != nil {
		return err
	}

	return queries.CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:                        record.ID,
		AccountID:                 record.AccountID,
		AccountNumber:             record.AccountNumber,
		Type:                      string(record.Type),
		Amount:                    decimalToNumeric(record.Amount),
		BalanceAfter:              decimalToNumeric(record.BalanceAfter),
		Description:               record.Description,
		CounterpartyAccountNumber: record.CounterpartyAccountNumber,
		CreatedAt:                 timeToPgTimestamptz(record.CreatedAt),
	})
}

// ListByAccount lists an account's transactions, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactionsByAccount(ctx, generated.ListTransactionsByAccountParams{
		AccountID: accountID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToTransactions(rows), nil
}

// ListRecent lists the newest transactions across all accounts.
func (r *TransactionRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListRecentTransactions(ctx, int32(limit))
	if err != nil {
		return nil, err
	}

	return rowsToTransactions(rows), nil
}

// Count returns the total number of transaction rows.
func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	return r.queries.CountTransactions(ctx)
}

// SumByType sums amounts of all rows of one type.
func (r *TransactionRepository) SumByType(ctx context.Context, typ domain.TransactionType) (decimal.Decimal, error) {
	total, err := r.queries.SumTransactionsByType(ctx, string(typ))
	if err != nil {
		return decimal.Zero, err
	}

	return toDecimal(total)
}

// SumSignedByAccount returns credits minus debits for one account.
func (r *TransactionRepository) SumSignedByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	total, err := r.queries.SumSignedByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	return toDecimal(total)
}

// GetLatestByAccount returns the most recent row for an account, or nil.
func (r *TransactionRepository) GetLatestByAccount(ctx context.Context, accountID string) (*domain.Transaction, error) {
	row, err := r.queries.GetLatestTransactionByAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return rowToTransaction(row), nil
}

func rowsToTransactions(rows []generated.Transaction) []*domain.Transaction {
	records := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		records = append(records, rowToTransaction(row))
	}

	return records
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:                        row.ID,
		AccountID:                 row.AccountID,
		AccountNumber:             row.AccountNumber,
		Type:                      domain.TransactionType(row.Type),
		Amount:                    numericToDecimal(row.Amount),
		BalanceAfter:              numericToDecimal(row.BalanceAfter),
		Description:               row.Description,
		CounterpartyAccountNumber: row.CounterpartyAccountNumber,
		CreatedAt:                 row.CreatedAt.Time,
	}
}
