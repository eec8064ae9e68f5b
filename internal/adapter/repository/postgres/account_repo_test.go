package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/iho/pocketbank/internal/domain"
)

var accountColumnNames = []string{"id", "number", "type", "balance", "status", "owner_id", "version", "created_at", "updated_at"}

func TestAccountRepositoryGetByNumber(t *testing.T) {
	pool := newMockPool(t)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	pool.ExpectQuery("FROM accounts WHERE number = \\$1").
		WithArgs("PB0000000001").
		WillReturnRows(pgxmock.NewRows(accountColumnNames).AddRow(
			"acc-1", "PB0000000001", "SAVINGS",
			decimalToNumeric(decimal.RequireFromString("150.25")),
			"APPROVED", "user-1", int64(3),
			timeToPgTimestamptz(now), timeToPgTimestamptz(now),
		))

	repo := newAccountRepositoryWithDB(pool)
	acc, err := repo.GetByNumber(context.Background(), "PB0000000001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if acc.ID != "acc-1" || acc.Type != domain.AccountTypeSavings || acc.Status != domain.AccountStatusApproved {
		t.Fatalf("unexpected account: %+v", acc)
	}
	if !acc.Balance.Equal(decimal.RequireFromString("150.25")) {
		t.Fatalf("expected balance 150.25, got %s", acc.Balance)
	}
	if acc.Version != 3 || !acc.CreatedAt.Equal(now) {
		t.Fatalf("unexpected version/created_at: %d %s", acc.Version, acc.CreatedAt)
	}

	assertExpectations(t, pool)
}

func TestAccountRepositoryGetByIDNotFound(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery("FROM accounts WHERE id = \\$1").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := newAccountRepositoryWithDB(pool)
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountRepositoryUpdateBalanceInTx(t *testing.T) {
	pool := newMockPool(t)
	tx := beginMockTx(t, pool)

	pool.ExpectExec("UPDATE accounts SET balance").
		WithArgs("acc-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	pool.ExpectCommit()

	repo := newAccountRepositoryWithDB(pool)
	if err := repo.UpdateBalance(context.Background(), tx, "acc-1", decimal.NewFromInt(10), time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tx.Commit(context.Background()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	assertExpectations(t, pool)
}

func TestAccountRepositoryUpdateBalanceOverflow(t *testing.T) {
	pool := newMockPool(t)
	tx := beginMockTx(t, pool)

	pool.ExpectExec("UPDATE accounts SET balance").
		WithArgs("acc-1", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "22003", Message: "numeric field overflow"})

	repo := newAccountRepositoryWithDB(pool)
	err := repo.UpdateBalance(context.Background(), tx, "acc-1", decimal.RequireFromString(domain.MaxBalance), time.Now())
	if !errors.Is(err, domain.ErrBalanceLimit) {
		t.Fatalf("expected ErrBalanceLimit, got %v", err)
	}
}

func TestAccountRepositoryRejectsForeignTx(t *testing.T) {
	repo := newAccountRepositoryWithDB(newMockPool(t))

	err := repo.UpdateStatus(context.Background(), foreignTx{}, "acc-1", domain.AccountStatusApproved, time.Now())
	if !errors.Is(err, ErrForeignTx) {
		t.Fatalf("expected ErrForeignTx, got %v", err)
	}
}
