package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const countTransactions = `-- name: CountTransactions :one
SELECT COUNT(*) FROM transactions
`

func (q *Queries) CountTransactions(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countTransactions)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createTransaction = `-- name: CreateTransaction :exec
INSERT INTO transactions (id, account_id, account_number, type, amount, balance_after, description, counterparty_account_number, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

type CreateTransactionParams struct {
	ID                        string             `json:"id"`
	AccountID                 string             `json:"account_id"`
	AccountNumber             string             `json:"account_number"`
	Type                      string             `json:"type"`
	Amount                    pgtype.Numeric     `json:"amount"`
	BalanceAfter              pgtype.Numeric     `json:"balance_after"`
	Description               string             `json:"description"`
	CounterpartyAccountNumber string             `json:"counterparty_account_number"`
	CreatedAt                 pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) error {
	_, err := q.db.Exec(ctx, createTransaction,
		arg.ID,
		arg.AccountID,
		arg.AccountNumber,
		arg.Type,
		arg.Amount,
		arg.BalanceAfter,
		arg.Description,
		arg.CounterpartyAccountNumber,
		arg.CreatedAt,
	)
	return err
}

const getLatestTransactionByAccount = `-- name: GetLatestTransactionByAccount :one
SELECT id, account_id, account_number, type, amount, balance_after, description, counterparty_account_number, created_at FROM transactions WHERE account_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1
`

func (q *Queries) GetLatestTransactionByAccount(ctx context.Context, accountID string) (Transaction, error) {
	row := q.db.QueryRow(ctx, getLatestTransactionByAccount, accountID)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.AccountID,
		&i.AccountNumber,
		&i.Type,
		&i.Amount,
		&i.BalanceAfter,
		&i.Description,
		&i.CounterpartyAccountNumber,
		&i.CreatedAt,
	)
	return i, err
}

const listRecentTransactions = `-- name: ListRecentTransactions :many
SELECT id, account_id, account_number, type, amount, balance_after, description, counterparty_account_number, created_at FROM transactions ORDER BY created_at DESC, id DESC LIMIT $1
`

func (q *Queries) ListRecentTransactions(ctx context.Context, limit int32) ([]Transaction, error) {
	rows, err := q.db.Query(ctx, listRecentTransactions, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Transaction{}
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.ID,
			&i.AccountID,
			&i.AccountNumber,
			&i.Type,
			&i.Amount,
			&i.BalanceAfter,
			&i.Description,
			&i.CounterpartyAccountNumber,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listTransactionsByAccount = `-- name: ListTransactionsByAccount :many
SELECT id, account_id, account_number, type, amount, balance_after, description, counterparty_account_number, created_at FROM transactions WHERE account_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3
`

type ListTransactionsByAccountParams struct {
	AccountID string `json:"account_id"`
	Limit     int32  `json:"limit"`
	Offset    int32  `json:"offset"`
}

func (q *Queries) ListTransactionsByAccount(ctx context.Context, arg ListTransactionsByAccountParams) ([]Transaction, error) {
	rows, err := q.db.Query(ctx, listTransactionsByAccount, arg.AccountID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Transaction{}
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.ID,
			&i.AccountID,
			&i.AccountNumber,
			&i.Type,
			&i.Amount,
			&i.BalanceAfter,
			&i.Description,
			&i.CounterpartyAccountNumber,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const sumSignedByAccount = `-- name: SumSignedByAccount :one
SELECT COALESCE(SUM(CASE WHEN type IN ('DEPOSIT', 'TRANSFER_IN') THEN amount ELSE -amount END), 0)::numeric AS total
FROM transactions WHERE account_id = $1
`

func (q *Queries) SumSignedByAccount(ctx context.Context, accountID string) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumSignedByAccount, accountID)
	var total pgtype.Numeric
	err := row.Scan(&total)
	return total, err
}

const sumTransactionsByType = `-- name: SumTransactionsByType :one
SELECT COALESCE(SUM(amount), 0)::numeric AS total FROM transactions WHERE type = $1
`

func (q *Queries) SumTransactionsByType(ctx context.Context, type_ string) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumTransactionsByType, type_)
	var total pgtype.Numeric
	err := row.Scan(&total)
	return total, err
}
