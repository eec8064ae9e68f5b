package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/pocketbank/internal/domain"
)

const (
	pgErrUniqueViolation = "23505"
	pgErrNumericOverflow = "22003"

	usersUsernameKey  = "users_username_key"
	usersEmailKey     = "users_email_key"
	accountsNumberKey = "accounts_number_key"
)

// uniqueViolations maps unique constraints to the error a caller can act on.
var uniqueViolations = map[string]error{
	usersUsernameKey:  domain.ErrUsernameTaken,
	usersEmailKey:     domain.ErrEmailTaken,
	accountsNumberKey: domain.ErrAccountNumberTaken,
}

// translateError turns constraint failures the check-then-write paths can
// still lose into domain errors. Anything else is returned unchanged.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgErrUniqueViolation:
		if mapped, ok := uniqueViolations[pgErr.ConstraintName]; ok {
			return mapped
		}
	case pgErrNumericOverflow:
		return domain.ErrBalanceLimit
	}

	return err
}
