package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/usecase"
	"github.com/iho/pocketbank/internal/usecase/gomocks"
)

func TestAccountUseCase_OpenAccount(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.OpenAccountInput
		expectError error
	}{
		{
			name:  "savings account",
			input: usecase.OpenAccountInput{OwnerID: "user-1", Type: domain.AccountTypeSavings},
		},
		{
			name:  "checking account",
			input: usecase.OpenAccountInput{OwnerID: "user-1", Type: domain.AccountTypeChecking},
		},
		{
			name:        "invalid type",
			input:       usecase.OpenAccountInput{OwnerID: "user-1", Type: "BROKERAGE"},
			expectError: domain.ErrInvalidAccountType,
		},
		{
			name:        "unknown owner",
			input:       usecase.OpenAccountInput{OwnerID: "ghost", Type: domain.AccountTypeSavings},
			expectError: domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBank(t)
			b.seedUser("user-1")

			account, err := b.accountUC.OpenAccount(context.Background(), tt.input)
			if tt.expectError != nil {
				require.ErrorIs(t, err, tt.expectError)
				require.Nil(t, account)
				return
			}

			require.NoError(t, err)
			require.Equal(t, domain.AccountStatusPending, account.Status)
			require.True(t, account.Balance.IsZero())
			require.Equal(t, "PB0000000001", account.Number)
			require.Equal(t, tt.input.Type, account.Type)

			stored, err := b.accountUC.GetAccountByNumber(context.Background(), account.Number)
			require.NoError(t, err)
			require.Equal(t, account.ID, stored.ID)

			require.Len(t, b.outbox.Events(domain.EventTypeAccountOpened), 1)
			require.Len(t, b.audit.Logs(), 1)
		})
	}
}

func TestAccountUseCase_OpenAccountSkipsTakenNumbers(t *testing.T) {
	b := newBank(t)
	b.seedUser("user-1")
	b.seedAccount("PB0000000001", "0", domain.AccountStatusApproved)
	b.seedAccount("PB0000000002", "0", domain.AccountStatusApproved)

	account, err := b.accountUC.OpenAccount(context.Background(), usecase.OpenAccountInput{
		OwnerID: "user-1",
		Type:    domain.AccountTypeSavings,
	})
	require.NoError(t, err)
	require.Equal(t, "PB0000000003", account.Number)
}

func TestAccountUseCase_OpenAccountGivesUpOnCollisions(t *testing.T) {
	ctrl := gomock.NewController(t)
	numbers := gomocks.NewMockAccountNumberGenerator(ctrl)
	numbers.EXPECT().Next(gomock.Any()).Return("PB0000000001", nil).Times(usecase.MaxAccountNumberAttempts)

	b := newBank(t)
	b.seedUser("user-1")
	b.seedAccount("PB0000000001", "0", domain.AccountStatusApproved)

	uc := usecase.NewAccountUseCase(b.txManager, b.accounts, b.users, b.outbox, b.audit, b.idGen, numbers, b.metrics)
	_, err := uc.OpenAccount(context.Background(), usecase.OpenAccountInput{OwnerID: "user-1", Type: domain.AccountTypeSavings})
	require.ErrorIs(t, err, domain.ErrAccountNumberTaken)
	require.Equal(t, 0, b.txManager.Begun())
}

func TestAccountUseCase_OpenAccountGeneratorError(t *testing.T) {
	ctrl := gomock.NewController(t)
	genErr := errors.New("sequence unavailable")
	numbers := gomocks.NewMockAccountNumberGenerator(ctrl)
	numbers.EXPECT().Next(gomock.Any()).Return("", genErr)

	b := newBank(t)
	b.seedUser("user-1")

	uc := usecase.NewAccountUseCase(b.txManager, b.accounts, b.users, b.outbox, b.audit, b.idGen, numbers, b.metrics)
	_, err := uc.OpenAccount(context.Background(), usecase.OpenAccountInput{OwnerID: "user-1", Type: domain.AccountTypeChecking})
	require.ErrorIs(t, err, genErr)
}

func TestAccountUseCase_ApproveAndSuspend(t *testing.T) {
	b := newBank(t)
	acc := b.seedAccount("PB001", "0", domain.AccountStatusPending)

	ctx := domain.WithActor(context.Background(), "admin-1")

	approved, err := b.accountUC.ApproveAccount(ctx, acc.ID)
	require.NoError(t, err)
	require.Equal(t, domain.AccountStatusApproved, approved.Status)

	// Now money can move.
	_, err = b.transactions.Deposit(ctx, usecase.DepositInput{AccountNumber: "PB001", Amount: dec("10")})
	require.NoError(t, err)

	suspended, err := b.accountUC.SuspendAccount(ctx, acc.ID)
	require.NoError(t, err)
	require.Equal(t, domain.AccountStatusSuspended, suspended.Status)

	_, err = b.transactions.Deposit(ctx, usecase.DepositInput{AccountNumber: "PB001", Amount: dec("10")})
	require.ErrorIs(t, err, domain.ErrAccountInactive)

	logs := b.audit.Logs()
	require.Len(t, logs, 2)
	require.Equal(t, string(domain.AuditActionAccountApprove), logs[0].Action)
	require.Equal(t, "admin-1", logs[0].UserID)
	require.Equal(t, string(domain.AccountStatusPending), logs[0].BeforeState["Status"])
	require.Equal(t, string(domain.AuditActionAccountSuspend), logs[1].Action)

	require.Len(t, b.outbox.Events(domain.EventTypeAccountApproved), 1)
	require.Len(t, b.outbox.Events(domain.EventTypeAccountSuspended), 1)
}

func TestAccountUseCase_ApproveUnknownAccount(t *testing.T) {
	b := newBank(t)

	_, err := b.accountUC.ApproveAccount(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	require.Empty(t, b.audit.Logs())
}

func TestAccountUseCase_ListsAndTotals(t *testing.T) {
	b := newBank(t)
	b.seedAccount("PB001", "100.50", domain.AccountStatusApproved)
	b.seedAccount("PB002", "20", domain.AccountStatusApproved)
	b.seedAccount("PB003", "999", domain.AccountStatusSuspended)
	b.seedAccount("PB004", "0", domain.AccountStatusPending)

	pending, err := b.accountUC.ListPendingAccounts(context.Background(), usecase.ListAccountsInput{})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, "PB004", pending[0].Number)

	count, err := b.accountUC.CountPendingAccounts(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	total, err := b.accountUC.TotalBalance(context.Background())
	require.NoError(t, err)
	require.True(t, total.Equal(dec("120.50")), "only approved accounts count, got %s", total)

	all, err := b.accountUC.ListAccounts(context.Background(), usecase.ListAccountsInput{Limit: 2})
	require.NoError(t, err)
	require.Len(t, all, 2)

	owned, err := b.accountUC.ListAccountsByOwner(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, owned, 4)
}
