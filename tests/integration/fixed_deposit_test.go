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

func TestFixedDeposits(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := testDB.NewStack()
	owner := stack.RegisterCustomer(t, ctx)
	account := stack.OpenApprovedAccount(t, ctx, owner.ID, decimal.NewFromInt(15000))

	fd, err := stack.FixedDeposits.CreateFixedDeposit(ctx, usecase.CreateFixedDepositInput{
		OwnerID:       owner.ID,
		AccountNumber: account.Number,
		Principal:     decimal.NewFromInt(10000),
		TenureMonths:  12,
	})
	require.NoError(t, err)
	require.Equal(t, domain.FixedDepositStatusActive, fd.Status)
	require.Equal(t, "10600.00", fd.MaturityAmount.StringFixed(2))
	require.True(t, fd.MaturityDate.Equal(fd.StartDate.AddDate(0, 12, 0)))

	reloaded, err := stack.Accounts.GetAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Equal(t, "5000.00", reloaded.Balance.StringFixed(2))

	_, err = stack.FixedDeposits.CreateFixedDeposit(ctx, usecase.CreateFixedDepositInput{
		OwnerID:       owner.ID,
		AccountNumber: account.Number,
		Principal:     decimal.NewFromInt(6000),
		TenureMonths:  6,
	})
	require.True(t, errors.Is(err, domain.ErrInsufficientBalance), "got %v", err)

	fds, err := stack.FixedDeposits.ListFixedDepositsByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, fds, 1, "failed creation must not leave a deposit behind")

	require.NoError(t, stack.Reconciliation.CheckLedgerConsistency(ctx))
}
