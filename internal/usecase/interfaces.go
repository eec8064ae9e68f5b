package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketbank/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx Tx, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.Account, error)
	GetByNumberForUpdate(ctx context.Context, tx Tx, number string) (*domain.Account, error)
	// GetByNumbersForUpdate locks the accounts in the order given. Missing
	// numbers are silently skipped.
	GetByNumbersForUpdate(ctx context.Context, tx Tx, numbers []string) ([]*domain.Account, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	UpdateBalance(ctx context.Context, tx Tx, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateStatus(ctx context.Context, tx Tx, id string, status domain.AccountStatus, updatedAt time.Time) error
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error)
	ListByStatus(ctx context.Context, status domain.AccountStatus, limit, offset int) ([]*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.AccountStatus) (int64, error)
	TotalBalanceByStatus(ctx context.Context, status domain.AccountStatus) (decimal.Decimal, error)
}

// TransactionRepository defines data access for the append-only transaction log.
type TransactionRepository interface {
	Create(ctx context.Context, tx Tx, record *domain.Transaction) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Transaction, error)
	Count(ctx context.Context) (int64, error)
	SumByType(ctx context.Context, typ domain.TransactionType) (decimal.Decimal, error)
	SumSignedByAccount(ctx context.Context, accountID string) (decimal.Decimal, error)
	// GetLatestByAccount returns nil, nil when the account has no rows.
	GetLatestByAccount(ctx context.Context, accountID string) (*domain.Transaction, error)
}

// LoanRepository defines data access for loans.
type LoanRepository interface {
	Create(ctx context.Context, tx Tx, loan *domain.Loan) error
	GetByID(ctx context.Context, id string) (*domain.Loan, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.Loan, error)
	Update(ctx context.Context, tx Tx, loan *domain.Loan) error
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Loan, error)
	ListByStatus(ctx context.Context, status domain.LoanStatus, limit, offset int) ([]*domain.Loan, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Loan, error)
	CountByStatus(ctx context.Context, status domain.LoanStatus) (int64, error)
}

// FixedDepositRepository defines data access for fixed deposits.
type FixedDepositRepository interface {
	Create(ctx context.Context, tx Tx, fd *domain.FixedDeposit) error
	GetByID(ctx context.Context, id string) (*domain.FixedDeposit, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.FixedDeposit, error)
	List(ctx context.Context, limit, offset int) ([]*domain.FixedDeposit, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, tx Tx, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, tx Tx, user *domain.User) error
	ListByRole(ctx context.Context, role domain.Role, limit, offset int) ([]*domain.User, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
}

// LedgerRepository defines data access for ledger-wide operations.
type LedgerRepository interface {
	// CheckConsistency returns the sum of all account balances and the
	// signed sum of all transaction rows.
	CheckConsistency(ctx context.Context) (totalBalance, totalAmount decimal.Decimal, err error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Tx, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error)
	// DeletePublished purges published events older than before and
	// reports how many were removed.
	DeletePublished(ctx context.Context, before time.Time) (int64, error)
	CountUnpublished(ctx context.Context) (int64, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	CreateTx(ctx context.Context, tx Tx, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
	GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// Tx represents a database transaction.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager handles transaction lifecycle.
type TxManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// AccountNumberGenerator hands out candidate account numbers. Candidates are
// checked for collisions before use.
type AccountNumberGenerator interface {
	Next(ctx context.Context) (string, error)
}

// Retrier re-runs an operation on transient database failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
