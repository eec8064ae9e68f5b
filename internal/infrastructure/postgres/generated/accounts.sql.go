package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const accountNumberExists = `-- name: AccountNumberExists :one
SELECT EXISTS (SELECT 1 FROM accounts WHERE number = $1)
`

func (q *Queries) AccountNumberExists(ctx context.Context, number string) (bool, error) {
	row := q.db.QueryRow(ctx, accountNumberExists, number)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const countAccounts = `-- name: CountAccounts :one
SELECT COUNT(*) FROM accounts
`

func (q *Queries) CountAccounts(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countAccounts)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countAccountsByStatus = `-- name: CountAccountsByStatus :one
SELECT COUNT(*) FROM accounts WHERE status = $1
`

func (q *Queries) CountAccountsByStatus(ctx context.Context, status string) (int64, error) {
	row := q.db.QueryRow(ctx, countAccountsByStatus, status)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createAccount = `-- name: CreateAccount :exec
INSERT INTO accounts (id, number, type, balance, status, owner_id, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`

type CreateAccountParams struct {
	ID        string             `json:"id"`
	Number    string             `json:"number"`
	Type      string             `json:"type"`
	Balance   pgtype.Numeric     `json:"balance"`
	Status    string             `json:"status"`
	OwnerID   string             `json:"owner_id"`
	Version   int64              `json:"version"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) error {
	_, err := q.db.Exec(ctx, createAccount,
		arg.ID,
		arg.Number,
		arg.Type,
		arg.Balance,
		arg.Status,
		arg.OwnerID,
		arg.Version,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getAccountByID = `-- name: GetAccountByID :one
SELECT id, number, type, balance, status, owner_id, version, created_at, updated_at FROM accounts WHERE id = $1
`

func (q *Queries) GetAccountByID(ctx context.Context, id string) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByID, id)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.Number,
		&i.Type,
		&i.Balance,
		&i.Status,
		&i.OwnerID,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccountByIDForUpdate = `-- name: GetAccountByIDForUpdate :one
SELECT id, number, type, balance, status, owner_id, version, created_at, updated_at FROM accounts WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetAccountByIDForUpdate(ctx context.Context, id string) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByIDForUpdate, id)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.Number,
		&i.Type,
		&i.Balance,
		&i.Status,
		&i.OwnerID,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccountByNumber = `-- name: GetAccountByNumber :one
SELECT id, number, type, balance, status, owner_id, version, created_at, updated_at FROM accounts WHERE number = $1
`

func (q *Queries) GetAccountByNumber(ctx context.Context, number string) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByNumber, number)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.Number,
		&i.Type,
		&i.Balance,
		&i.Status,
		&i.OwnerID,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccountByNumberForUpdate = `-- name: GetAccountByNumberForUpdate :one
SELECT id, number, type, balance, status, owner_id, version, created_at, updated_at FROM accounts WHERE number = $1 FOR UPDATE
`

func (q *Queries) GetAccountByNumberForUpdate(ctx context.Context, number string) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByNumberForUpdate, number)
	var i Account
	err := row.Scan(
		&i.ID,
		&i.Number,
		&i.Type,
		&i.Balance,
		&i.Status,
		&i.OwnerID,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getAccountsByNumbersForUpdate = `-- name: GetAccountsByNumbersForUpdate :many
SELECT id, number, type, balance, status, owner_id, version, created_at, updated_at FROM accounts WHERE number = ANY($1::text[]) ORDER BY number FOR UPDATE
`

func (q *Queries) GetAccountsByNumbersForUpdate(ctx context.Context, dollar_1 []string) ([]Account, error) {
	rows, err := q.db.Query(ctx, getAccountsByNumbersForUpdate, dollar_1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.Number,
			&i.Type,
			&i.Balance,
			&i.Status,
			&i.OwnerID,
			&i.Version,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const listAccounts = `-- name: ListAccounts :many
SELECT id, number, type, balance, status, owner_id, version, created_at, updated_at FROM accounts ORDER BY created_at, id LIMIT $1 OFFSET $2
`

type ListAccountsParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListAccounts(ctx context.Context, arg ListAccountsParams) ([]Account, error) {
	rows, err := q.db.Query(ctx, listAccounts, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.Number,
			&i.Type,
			&i.Balance,
			&i.Status,
			&i.OwnerID,
			&i.Version,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const listAccountsByOwner = `-- name: ListAccountsByOwner :many
SELECT id, number, type, balance, status, owner_id, version, created_at, updated_at FROM accounts WHERE owner_id = $1 ORDER BY created_at, id
`

func (q *Queries) ListAccountsByOwner(ctx context.Context, ownerID string) ([]Account, error) {
	rows, err := q.db.Query(ctx, listAccountsByOwner, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.Number,
			&i.Type,
			&i.Balance,
			&i.Status,
			&i.OwnerID,
			&i.Version,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const listAccountsByStatus = `-- name: ListAccountsByStatus :many
SELECT id, number, type, balance, status, owner_id, version, created_at, updated_at FROM accounts WHERE status = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3
`

type ListAccountsByStatusParams struct {
	Status string `json:"status"`
	Limit  int32  `json:"limit"`
	Offset int32  `json:"offset"`
}

func (q *Queries) ListAccountsByStatus(ctx context.Context, arg ListAccountsByStatusParams) ([]Account, error) {
	rows, err := q.db.Query(ctx, listAccountsByStatus, arg.Status, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.ID,
			&i.Number,
			&i.Type,
			&i.Balance,
			&i.Status,
			&i.OwnerID,
			&i.Version,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const nextAccountNumber = `-- name: NextAccountNumber :one
SELECT nextval('account_number_seq')::bigint
`

func (q *Queries) NextAccountNumber(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, nextAccountNumber)
	var column_1 int64
	err := row.Scan(&column_1)
	return column_1, err
}

const sumBalanceByStatus = `-- name: SumBalanceByStatus :one
SELECT COALESCE(SUM(balance), 0)::numeric AS total FROM accounts WHERE status = $1
`

func (q *Queries) SumBalanceByStatus(ctx context.Context, status string) (pgtype.Numeric, error) {
	row := q.db.QueryRow(ctx, sumBalanceByStatus, status)
	var total pgtype.Numeric
	err := row.Scan(&total)
	return total, err
}

const updateAccountBalance = `-- name: UpdateAccountBalance :exec
UPDATE accounts SET balance = $2, version = version + 1, updated_at = $3 WHERE id = $1
`

type UpdateAccountBalanceParams struct {
	ID        string             `json:"id"`
	Balance   pgtype.Numeric     `json:"balance"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateAccountBalance(ctx context.Context, arg UpdateAccountBalanceParams) error {
	_, err := q.db.Exec(ctx, updateAccountBalance, arg.ID, arg.Balance, arg.UpdatedAt)
	return err
}

const updateAccountStatus = `-- name: UpdateAccountStatus :exec
UPDATE accounts SET status = $2, updated_at = $3 WHERE id = $1
`

type UpdateAccountStatusParams struct {
	ID        string             `json:"id"`
	Status    string             `json:"status"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateAccountStatus(ctx context.Context, arg UpdateAccountStatusParams) error {
	_, err := q.db.Exec(ctx, updateAccountStatus, arg.ID, arg.Status, arg.UpdatedAt)
	return err
}
