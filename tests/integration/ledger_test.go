package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/usecase"
	"github.com/iho/pocketbank/tests/testutil"
)

func TestLedgerPosting(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := testDB.NewStack()
	owner := stack.RegisterCustomer(t, ctx)

	t.Run("deposit and withdraw update balance and log", func(t *testing.T) {
		account := stack.OpenApprovedAccount(t, ctx, owner.ID, decimal.Zero)

		dep, err := stack.Transactions.Deposit(ctx, usecase.DepositInput{
			AccountNumber: account.Number,
			Amount:        decimal.RequireFromString("250.75"),
		})
		require.NoError(t, err)
		require.Equal(t, "250.75", dep.BalanceAfter.StringFixed(2))
		require.Equal(t, domain.DescriptionDeposit, dep.Description)

		wd, err := stack.Transactions.Withdraw(ctx, usecase.WithdrawInput{
			AccountNumber: account.Number,
			Amount:        decimal.RequireFromString("50.25"),
			Description:   "ATM",
		})
		require.NoError(t, err)
		require.Equal(t, "200.50", wd.BalanceAfter.StringFixed(2))

		reloaded, err := stack.Accounts.GetAccount(ctx, account.ID)
		require.NoError(t, err)
		require.Equal(t, "200.50", reloaded.Balance.StringFixed(2))

		rows, err := stack.Transactions.ListAccountTransactions(ctx, account.ID, 10, 0)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, domain.TransactionTypeWithdrawal, rows[0].Type, "newest first")
	})

	t.Run("overdraft is rejected and leaves no trace", func(t *testing.T) {
		account := stack.OpenApprovedAccount(t, ctx, owner.ID, decimal.NewFromInt(100))

		_, err := stack.Transactions.Withdraw(ctx, usecase.WithdrawInput{
			AccountNumber: account.Number,
			Amount:        decimal.RequireFromString("100.01"),
		})
		require.True(t, errors.Is(err, domain.ErrInsufficientBalance), "got %v", err)

		reloaded, err := stack.Accounts.GetAccount(ctx, account.ID)
		require.NoError(t, err)
		require.True(t, reloaded.Balance.Equal(decimal.NewFromInt(100)))

		rows, err := stack.Transactions.ListAccountTransactions(ctx, account.ID, 10, 0)
		require.NoError(t, err)
		require.Len(t, rows, 1)
	})

	t.Run("pending account cannot move money", func(t *testing.T) {
		account, err := stack.Accounts.OpenAccount(ctx, usecase.OpenAccountInput{OwnerID: owner.ID, Type: domain.AccountTypeChecking})
		require.NoError(t, err)

		_, err = stack.Transactions.Deposit(ctx, usecase.DepositInput{AccountNumber: account.Number, Amount: decimal.NewFromInt(10)})
		require.True(t, errors.Is(err, domain.ErrAccountInactive), "got %v", err)
	})

	t.Run("transfer moves money atomically", func(t *testing.T) {
		from := stack.OpenApprovedAccount(t, ctx, owner.ID, decimal.NewFromInt(500))
		to := stack.OpenApprovedAccount(t, ctx, owner.ID, decimal.Zero)

		result, err := stack.Transactions.Transfer(ctx, usecase.TransferInput{
			FromAccountNumber: from.Number,
			ToAccountNumber:   to.Number,
			Amount:            decimal.RequireFromString("125.25"),
		})
		require.NoError(t, err)
		require.Equal(t, domain.TransactionTypeTransferOut, result.Debit.Type)
		require.Equal(t, to.Number, result.Debit.CounterpartyAccountNumber)
		require.Equal(t, "374.75", result.Debit.BalanceAfter.StringFixed(2))
		require.Equal(t, "125.25", result.Credit.BalanceAfter.StringFixed(2))

		_, err = stack.Transactions.Transfer(ctx, usecase.TransferInput{
			FromAccountNumber: to.Number,
			ToAccountNumber:   from.Number,
			Amount:            decimal.NewFromInt(1000),
		})
		require.True(t, errors.Is(err, domain.ErrInsufficientBalance), "got %v", err)

		reloadedTo, err := stack.Accounts.GetAccount(ctx, to.ID)
		require.NoError(t, err)
		require.Equal(t, "125.25", reloadedTo.Balance.StringFixed(2))
	})

	t.Run("ledger stays consistent and reconciled", func(t *testing.T) {
		require.NoError(t, stack.Reconciliation.CheckLedgerConsistency(ctx))

		report, err := stack.Reconciliation.GenerateReconciliationReport(ctx)
		require.NoError(t, err)
		require.True(t, report.LedgerConsistent)
		require.Empty(t, report.Discrepancies)
		require.Equal(t, report.TotalAccounts, report.ReconciledAccounts)
	})

	t.Run("audit trail records account approval", func(t *testing.T) {
		account := stack.OpenApprovedAccount(t, ctx, owner.ID, decimal.Zero)

		logs, err := stack.Audit.GetByResourceID(ctx, domain.AggregateTypeAccount, account.ID)
		require.NoError(t, err)

		actions := make([]string, 0, len(logs))
		for _, l := range logs {
			actions = append(actions, l.Action)
		}
		require.Contains(t, actions, string(domain.AuditActionAccountApprove))
	})
}
