package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/infrastructure/postgres/generated"
	"github.com/iho/pocketbank/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return newAccountRepositoryWithDB(pool)
}

func newAccountRepositoryWithDB(db generated.DBTX) *AccountRepository {
	return &AccountRepository{queries: generated.New(db)}
}

// Create inserts a new account inside tx.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Tx, account *domain.Account) error {
	queries, err := queriesFor(tx)
	if err != nil {
		return err
	}

	err = queries.CreateAccount(ctx, generated.CreateAccountParams{
		ID:        account.ID,
		Number:    account.Number,
		Type:      string(account.Type),
		Balance:   decimalToNumeric(account.Balance),
		Status:    string(account.Status),
		OwnerID:   account.OwnerID,
		Version:   account.Version,
		CreatedAt: timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(account.UpdatedAt),
	})

	return translateError(err)
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return accountOrNotFound(r.queries.GetAccountByID(ctx, id))
}

// GetByNumber retrieves an account by its public number.
func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	return accountOrNotFound(r.queries.GetAccountByNumber(ctx, number))
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Account, error) {
	queries, err := queriesFor(tx)
	if err != nil {
		return nil, err
	}

	return accountOrNotFound(queries.GetAccountByIDForUpdate(ctx, id))
}

// GetByNumberForUpdate retrieves an account by number with a FOR UPDATE lock.
func (r *AccountRepository) GetByNumberForUpdate(ctx context.Context, tx usecase.Tx, number string) (*domain.Account, error) {
	queries, err := queriesFor(tx)
	if err != nil {
		return nil, err
	}

	return accountOrNotFound(queries.GetAccountByNumberForUpdate(ctx, number))
}

// GetByNumbersForUpdate locks several accounts at once. Rows come back
// ordered by number so concurrent callers acquire locks in the same order.
func (r *AccountRepository) GetByNumbersForUpdate(ctx context.Context, tx usecase.Tx, numbers []string) ([]*domain.Account, error) {
	queries, err := queriesFor(tx)
	if err != nil {
		return nil, err
	}

	rows, err := queries.GetAccountsByNumbersForUpdate(ctx, numbers)
	if err != nil {
		return nil, err
	}

	return rowsToAccounts(rows), nil
}

// ExistsByNumber reports whether an account number is already in use.
func (r *AccountRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	return r.queries.AccountNumberExists(ctx, number)
}

// UpdateBalance updates the balance of an account and bumps its version.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Tx, id string, balance decimal.Decimal, updatedAt time.Time) error {
	queries, err := queriesFor(tx)
	if err != nil {
		return err
	}

	err = queries.UpdateAccountBalance(ctx, generated.UpdateAccountBalanceParams{
		ID:        id,
		Balance:   decimalToNumeric(balance),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})

	return translateError(err)
}

// UpdateStatus sets the lifecycle status of an account.
func (r *AccountRepository) UpdateStatus(ctx context.Context, tx usecase.Tx, id string, status domain.AccountStatus, updatedAt time.Time) error {
	queries, err := queriesFor(tx)
	if err != nil {
		return err
	}

	return queries.UpdateAccountStatus(ctx, generated.UpdateAccountStatusParams{
		ID:        id,
		Status:    string(status),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// ListByOwner lists every account held by a user, oldest first.
func (r *AccountRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccountsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return rowsToAccounts(rows), nil
}

// ListByStatus lists accounts in a given status, newest first.
func (r *AccountRepository) ListByStatus(ctx context.Context, status domain.AccountStatus, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccountsByStatus(ctx, generated.ListAccountsByStatusParams{
		Status: string(status),
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToAccounts(rows), nil
}

// List lists accounts with pagination.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccounts(ctx, generated.ListAccountsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToAccounts(rows), nil
}

// Count returns the total number of accounts.
func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	return r.queries.CountAccounts(ctx)
}

// CountByStatus returns the number of accounts in a status.
func (r *AccountRepository) CountByStatus(ctx context.Context, status domain.AccountStatus) (int64, error) {
	return r.queries.CountAccountsByStatus(ctx, string(status))
}

// TotalBalanceByStatus sums balances of accounts in a status.
func (r *AccountRepository) TotalBalanceByStatus(ctx context.Context, status domain.AccountStatus) (decimal.Decimal, error) {
	total, err := r.queries.SumBalanceByStatus(ctx, string(status))
	if err != nil {
		return decimal.Zero, err
	}

	return toDecimal(total)
}

func accountOrNotFound(row generated.Account, err error) (*domain.Account, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

func rowsToAccounts(rows []generated.Account) []*domain.Account {
	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:        row.ID,
		Number:    row.Number,
		Type:      domain.AccountType(row.Type),
		Balance:   numericToDecimal(row.Balance),
		Status:    domain.AccountStatus(row.Status),
		OwnerID:   row.OwnerID,
		Version:   row.Version,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func optionalTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}

	return timeToPgTimestamptz(*t)
}
