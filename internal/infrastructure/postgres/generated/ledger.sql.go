package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const checkLedgerConsistency = `-- name: CheckLedgerConsistency :one
SELECT
    (SELECT COALESCE(SUM(balance), 0) FROM accounts)::numeric AS total_account_balance,
    (SELECT COALESCE(SUM(CASE WHEN type IN ('DEPOSIT', 'TRANSFER_IN') THEN amount ELSE -amount END), 0) FROM transactions)::numeric AS total_transaction_amount
`

type CheckLedgerConsistencyRow struct {
	TotalAccountBalance    pgtype.Numeric `json:"total_account_balance"`
	TotalTransactionAmount pgtype.Numeric `json:"total_transaction_amount"`
}

func (q *Queries) CheckLedgerConsistency(ctx context.Context) (CheckLedgerConsistencyRow, error) {
	row := q.db.QueryRow(ctx, checkLedgerConsistency)
	var i CheckLedgerConsistencyRow
	err := row.Scan(&i.TotalAccountBalance, &i.TotalTransactionAmount)
	return i, err
}
