package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/infrastructure/postgres/generated"
	"github.com/iho/pocketbank/internal/usecase"
)

const userColumns = `id, username, hashed_password, full_name, email, phone_number, address, role, enabled, created_at, updated_at`

// UserRepository implements user persistence
type UserRepository struct {
	db generated.DBTX
}

// NewUserRepository creates a new user repository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return newUserRepositoryWithDB(pool)
}

func newUserRepositoryWithDB(db generated.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, tx usecase.Tx, user *domain.User) error {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = pgxTx.Exec(ctx, query,
		user.ID,
		user.Username,
		user.HashedPassword,
		user.FullName,
		user.Email,
		user.PhoneNumber,
		user.Address,
		string(user.Role),
		user.Enabled,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return translateError(err)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	return scanUser(r.db.QueryRow(ctx, query, id))
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	return scanUser(r.db.QueryRow(ctx, query, username))
}

// ExistsByUsername reports whether the username is taken
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)

	return exists, err
}

// ExistsByEmail reports whether the email is taken
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)

	return exists, err
}

// Update rewrites the mutable profile fields of a user
func (r *UserRepository) Update(ctx context.Context, tx usecase.Tx, user *domain.User) error {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET full_name = $2, email = $3, phone_number = $4, address = $5, enabled = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Email,
		user.PhoneNumber,
		user.Address,
		user.Enabled,
		user.UpdatedAt,
	)
	if err != nil {
		return translateError(err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// ListByRole retrieves users of one role with pagination, newest first
func (r *UserRepository) ListByRole(ctx context.Context, role domain.Role, limit, offset int) ([]*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, string(role), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// CountByRole counts users of one role
func (r *UserRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, string(role)).Scan(&count)

	return count, err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user domain.User
		role string
	)

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.HashedPassword,
		&user.FullName,
		&user.Email,
		&user.PhoneNumber,
		&user.Address,
		&role,
		&user.Enabled,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}

		return nil, err
	}

	user.Role = domain.Role(role)

	return &user, nil
}
