package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/pocketbank/internal/infrastructure/postgres/generated"
	"github.com/iho/pocketbank/internal/usecase"
)

// ErrForeignTx is returned when a repository receives a usecase.Tx that was
// not started by TxManager.
var ErrForeignTx = errors.New("transaction was not started by the postgres tx manager")

// ledgerTxOptions: row locks taken with SELECT ... FOR UPDATE serialize
// postings, so READ COMMITTED is enough and avoids spurious 40001 aborts.
var ledgerTxOptions = pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

type txBeginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// TxManager starts the transactions every ledger mutation runs in.
type TxManager struct {
	db txBeginner
}

func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return newTxManagerWithPool(pool)
}

func newTxManagerWithPool(db txBeginner) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	tx, err := m.db.BeginTx(ctx, ledgerTxOptions)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	return &Tx{tx: tx}, nil
}

// Tx is the postgres implementation of usecase.Tx.
type Tx struct {
	tx pgx.Tx
}

func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Rollback is safe to defer: rolling back a finished transaction is a no-op.
func (t *Tx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err == nil || errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return fmt.Errorf("rollback transaction: %w", err)
}

// pgxTxFrom unwraps a transaction for repositories that issue raw SQL.
func pgxTxFrom(tx usecase.Tx) (pgx.Tx, error) {
	t, ok := tx.(*Tx)
	if !ok || t == nil {
		return nil, ErrForeignTx
	}

	return t.tx, nil
}

// queriesFor binds the sqlc queries to tx.
func queriesFor(tx usecase.Tx) (*generated.Queries, error) {
	pgxTx, err := pgxTxFrom(tx)
	if err != nil {
		return nil, err
	}

	return generated.New(pgxTx), nil
}
