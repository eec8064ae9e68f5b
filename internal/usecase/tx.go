package usecase

import "context"

// runInTx begins a transaction bounded by DefaultTransactionTimeout, runs fn
// and commits. The whole unit is retried by retrier when one is configured,
// so fn must only assign its results once it returns nil.
func runInTx(ctx context.Context, txManager TxManager, retrier Retrier, fn func(ctx context.Context, tx Tx) error) error {
	operation := func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		if err := fn(txCtx, tx); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	}

	if retrier == nil {
		return operation()
	}

	return retrier.Retry(ctx, operation)
}
