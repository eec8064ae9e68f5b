package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/infrastructure/postgres/generated"
	"github.com/iho/pocketbank/internal/usecase"
)

const fixedDepositColumns = `id, owner_id, funding_account_number, principal, tenure_months, interest_rate, maturity_amount, start_date, maturity_date, status, created_at`

// FixedDepositRepository implements usecase.FixedDepositRepository.
type FixedDepositRepository struct {
	db generated.DBTX
}

// NewFixedDepositRepository creates a new FixedDepositRepository.
func NewFixedDepositRepository(pool *pgxpool.Pool) *FixedDepositRepository {
	return newFixedDepositRepositoryWithDB(pool)
}

func newFixedDepositRepositoryWithDB(db generated.DBTX) *FixedDepositRepository {
	return &FixedDepositRepository{db: db}
}

// Create inserts a fixed deposit.
func (r *FixedDepositRepository) Create(ctx context.Context, tx usecase.Tx, fd *domain.FixedDeposit) error {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO fixed_deposits (` + fixedDepositColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = pgxTx.Exec(ctx, query,
		fd.ID,
		fd.OwnerID,
		fd.FundingAccountNumber,
		decimalToNumeric(fd.Principal),
		int32(fd.TenureMonths),
		decimalToNumeric(fd.InterestRate),
		decimalToNumeric(fd.MaturityAmount),
		timeToPgTimestamptz(fd.StartDate),
		timeToPgTimestamptz(fd.MaturityDate),
		string(fd.Status),
		timeToPgTimestamptz(fd.CreatedAt),
	)

	return err
}

// GetByID retrieves a fixed deposit by ID.
func (r *FixedDepositRepository) GetByID(ctx context.Context, id string) (*domain.FixedDeposit, error) {
	query := `SELECT ` + fixedDepositColumns + ` FROM fixed_deposits WHERE id = $1`

	return scanFixedDeposit(r.db.QueryRow(ctx, query, id))
}

// ListByOwner lists a user's fixed deposits, newest first.
func (r *FixedDepositRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.FixedDeposit, error) {
	query := `SELECT ` + fixedDepositColumns + ` FROM fixed_deposits WHERE owner_id = $1 ORDER BY created_at DESC, id DESC`

	return r.list(ctx, query, ownerID)
}

// List lists all fixed deposits with pagination.
func (r *FixedDepositRepository) List(ctx context.Context, limit, offset int) ([]*domain.FixedDeposit, error) {
	query := `SELECT ` + fixedDepositColumns + ` FROM fixed_deposits ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`

	return r.list(ctx, query, limit, offset)
}

func (r *FixedDepositRepository) list(ctx context.Context, query string, args ...any) ([]*domain.FixedDeposit, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deposits := []*domain.FixedDeposit{}
	for rows.Next() {
		fd, err := scanFixedDeposit(rows)
		if err != nil {
			return nil, err
		}
		deposits = append(deposits, fd)
	}

	return deposits, rows.Err()
}

func scanFixedDeposit(row pgx.Row) (*domain.FixedDeposit, error) {
	var (
		fd                                 domain.FixedDeposit
		principal, rate, maturity          pgtype.Numeric
		tenure                             int32
		status                             string
		startDate, maturityDate, createdAt pgtype.Timestamptz
	)

	err := row.Scan(
		&fd.ID,
		&fd.OwnerID,
		&fd.FundingAccountNumber,
		&principal,
		&tenure,
		&rate,
		&maturity,
		&startDate,
		&maturityDate,
		&status,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFixedDepositNotFound
		}

		return nil, err
	}

	fd.Principal = numericToDecimal(principal)
	fd.TenureMonths = int(tenure)
	fd.InterestRate = numericToDecimal(rate)
	fd.MaturityAmount = numericToDecimal(maturity)
	fd.StartDate = startDate.Time
	fd.MaturityDate = maturityDate.Time
	fd.Status = domain.FixedDepositStatus(status)
	fd.CreatedAt = createdAt.Time

	return &fd, nil
}
