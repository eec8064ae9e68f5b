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

const loanColumns = `id, owner_id, principal, tenure_months, interest_rate, monthly_installment, purpose, status, disbursement_account_number, applied_at, approved_at, updated_at`

// LoanRepository implements usecase.LoanRepository.
type LoanRepository struct {
	db generated.DBTX
}

// NewLoanRepository creates a new LoanRepository.
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return newLoanRepositoryWithDB(pool)
}

func newLoanRepositoryWithDB(db generated.DBTX) *LoanRepository {
	return &LoanRepository{db: db}
}

// Create inserts a loan application.
func (r *LoanRepository) Create(ctx context.Context, tx usecase.Tx, loan *domain.Loan) error {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = pgxTx.Exec(ctx, query,
		loan.ID,
		loan.OwnerID,
		decimalToNumeric(loan.Principal),
		int32(loan.TenureMonths),
		decimalToNumeric(loan.InterestRate),
		decimalToNumeric(loan.MonthlyInstallment),
		loan.Purpose,
		string(loan.Status),
		loan.DisbursementAccountNumber,
		timeToPgTimestamptz(loan.AppliedAt),
		optionalTimestamptz(loan.ApprovedAt),
		timeToPgTimestamptz(loan.UpdatedAt),
	)

	return err
}

// GetByID retrieves a loan by ID.
func (r *LoanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`

	return scanLoan(r.db.QueryRow(ctx, query, id))
}

// GetByIDForUpdate retrieves a loan by ID with a FOR UPDATE lock.
func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Loan, error) {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1 FOR UPDATE`

	return scanLoan(pgxTx.QueryRow(ctx, query, id))
}

// Update persists the decision fields of a loan.
func (r *LoanRepository) Update(ctx context.Context, tx usecase.Tx, loan *domain.Loan) error {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return err
	}

	query := `
		UPDATE loans
		SET status = $2, disbursement_account_number = $3, approved_at = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query,
		loan.ID,
		string(loan.Status),
		loan.DisbursementAccountNumber,
		optionalTimestamptz(loan.ApprovedAt),
		timeToPgTimestamptz(loan.UpdatedAt),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrLoanNotFound
	}

	return nil
}

// ListByOwner lists a user's loans, newest first.
func (r *LoanRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE owner_id = $1 ORDER BY applied_at DESC, id DESC`

	return r.list(ctx, query, ownerID)
}

// ListByStatus lists loans in a status, newest first.
func (r *LoanRepository) ListByStatus(ctx context.Context, status domain.LoanStatus, limit, offset int) ([]*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE status = $1 ORDER BY applied_at DESC, id DESC LIMIT $2 OFFSET $3`

	return r.list(ctx, query, string(status), limit, offset)
}

// List lists all loans with pagination, newest first.
func (r *LoanRepository) List(ctx context.Context, limit, offset int) ([]*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans ORDER BY applied_at DESC, id DESC LIMIT $1 OFFSET $2`

	return r.list(ctx, query, limit, offset)
}

// CountByStatus counts loans in a status.
func (r *LoanRepository) CountByStatus(ctx context.Context, status domain.LoanStatus) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM loans WHERE status = $1`, string(status)).Scan(&count)

	return count, err
}

func (r *LoanRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Loan, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans := []*domain.Loan{}
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}

	return loans, rows.Err()
}

func scanLoan(row pgx.Row) (*domain.Loan, error) {
	var (
		loan                             domain.Loan
		principal, rate, installment     pgtype.Numeric
		tenure                           int32
		status                           string
		appliedAt, approvedAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&loan.ID,
		&loan.OwnerID,
		&principal,
		&tenure,
		&rate,
		&installment,
		&loan.Purpose,
		&status,
		&loan.DisbursementAccountNumber,
		&appliedAt,
		&approvedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}

		return nil, err
	}

	loan.Principal = numericToDecimal(principal)
	loan.TenureMonths = int(tenure)
	loan.InterestRate = numericToDecimal(rate)
	loan.MonthlyInstallment = numericToDecimal(installment)
	loan.Status = domain.LoanStatus(status)
	loan.AppliedAt = appliedAt.Time
	loan.UpdatedAt = updatedAt.Time
	if approvedAt.Valid {
		t := approvedAt.Time
		loan.ApprovedAt = &t
	}

	return &loan, nil
}
