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

func TestLoanLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := testDB.NewStack()
	owner := stack.RegisterCustomer(t, ctx)
	account := stack.OpenApprovedAccount(t, ctx, owner.ID, decimal.Zero)

	t.Run("approval disburses into the account", func(t *testing.T) {
		loan, err := stack.Loans.ApplyForLoan(ctx, usecase.ApplyForLoanInput{
			OwnerID:      owner.ID,
			Principal:    decimal.NewFromInt(100000),
			TenureMonths: 12,
			Purpose:      "home repairs",
		})
		require.NoError(t, err)
		require.Equal(t, domain.LoanStatusPending, loan.Status)
		require.Equal(t, "8721.98", loan.MonthlyInstallment.StringFixed(2))

		approved, err := stack.Loans.ApproveLoan(ctx, usecase.ApproveLoanInput{LoanID: loan.ID, AccountNumber: account.Number})
		require.NoError(t, err)
		require.Equal(t, domain.LoanStatusDisbursed, approved.Status)
		require.NotNil(t, approved.ApprovedAt)

		reloaded, err := stack.Accounts.GetAccount(ctx, account.ID)
		require.NoError(t, err)
		require.Equal(t, "100000.00", reloaded.Balance.StringFixed(2))

		rows, err := stack.Transactions.RecentAccountTransactions(ctx, account.ID)
		require.NoError(t, err)
		require.NotEmpty(t, rows)
		require.Equal(t, domain.LoanDisbursementDescription(loan.ID), rows[0].Description)

		_, err = stack.Loans.ApproveLoan(ctx, usecase.ApproveLoanInput{LoanID: loan.ID, AccountNumber: account.Number})
		require.True(t, errors.Is(err, domain.ErrLoanNotPending), "got %v", err)
	})

	t.Run("rejection leaves balances alone", func(t *testing.T) {
		loan, err := stack.Loans.ApplyForLoan(ctx, usecase.ApplyForLoanInput{
			OwnerID:      owner.ID,
			Principal:    decimal.NewFromInt(5000),
			TenureMonths: 6,
		})
		require.NoError(t, err)

		rejected, err := stack.Loans.RejectLoan(ctx, loan.ID)
		require.NoError(t, err)
		require.Equal(t, domain.LoanStatusRejected, rejected.Status)

		_, err = stack.Loans.RejectLoan(ctx, loan.ID)
		require.True(t, errors.Is(err, domain.ErrLoanNotPending), "got %v", err)
	})

	t.Run("approval into a suspended account fails and keeps the loan pending", func(t *testing.T) {
		suspended := stack.OpenApprovedAccount(t, ctx, owner.ID, decimal.Zero)
		_, err := stack.Accounts.SuspendAccount(ctx, suspended.ID)
		require.NoError(t, err)

		loan, err := stack.Loans.ApplyForLoan(ctx, usecase.ApplyForLoanInput{
			OwnerID:      owner.ID,
			Principal:    decimal.NewFromInt(1000),
			TenureMonths: 24,
		})
		require.NoError(t, err)

		_, err = stack.Loans.ApproveLoan(ctx, usecase.ApproveLoanInput{LoanID: loan.ID, AccountNumber: suspended.Number})
		require.True(t, errors.Is(err, domain.ErrAccountInactive), "got %v", err)

		reloaded, err := stack.Loans.GetLoan(ctx, loan.ID)
		require.NoError(t, err)
		require.Equal(t, domain.LoanStatusPending, reloaded.Status)
	})

	t.Run("summary counts pending loans", func(t *testing.T) {
		summary, err := stack.Reports.Summary(ctx)
		require.NoError(t, err)
		require.Equal(t, int64(1), summary.PendingLoans)
		require.Equal(t, int64(1), summary.Customers)
	})
}
