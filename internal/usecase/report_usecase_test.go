package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/usecase"
	"github.com/iho/pocketbank/internal/usecase/gomocks"
	"github.com/iho/pocketbank/internal/usecase/mocks"
)

func seedReportData(t *testing.T, b *bank) {
	t.Helper()
	b.seedUser("user-1")
	b.seedUser("user-2")
	b.seedAccount("PB001", "0", domain.AccountStatusApproved)
	b.seedAccount("PB002", "0", domain.AccountStatusPending)

	_, err := b.transactions.Deposit(context.Background(), usecase.DepositInput{AccountNumber: "PB001", Amount: dec("300")})
	require.NoError(t, err)
	_, err = b.transactions.Withdraw(context.Background(), usecase.WithdrawInput{AccountNumber: "PB001", Amount: dec("120.50")})
	require.NoError(t, err)
	_, err = b.loanUC.ApplyForLoan(context.Background(), usecase.ApplyForLoanInput{OwnerID: "user-1", Principal: dec("1000"), TenureMonths: 12})
	require.NoError(t, err)
}

func TestReportUseCase_Summary(t *testing.T) {
	b := newBank(t)
	seedReportData(t, b)

	uc := usecase.NewReportUseCase(b.users, b.accounts, b.records, b.loans, nil, 0, zerolog.Nop(), b.metrics)
	summary, err := uc.Summary(context.Background())
	require.NoError(t, err)

	require.EqualValues(t, 2, summary.Customers)
	require.EqualValues(t, 2, summary.Accounts)
	require.EqualValues(t, 1, summary.PendingAccounts)
	require.True(t, summary.TotalBalance.Equal(dec("179.50")))
	require.EqualValues(t, 2, summary.Transactions)
	require.True(t, summary.TotalDeposits.Equal(dec("300")))
	require.True(t, summary.TotalWithdrawals.Equal(dec("120.50")))
	require.EqualValues(t, 1, summary.PendingLoans)
}

func TestReportUseCase_SummaryIsCached(t *testing.T) {
	b := newBank(t)
	seedReportData(t, b)
	cache := mocks.NewMockCache()

	uc := usecase.NewReportUseCase(b.users, b.accounts, b.records, b.loans, cache, time.Minute, zerolog.Nop(), b.metrics)

	first, err := uc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"report:summary"}, cache.Keys())

	// New activity is not visible until the cache is invalidated.
	_, err = b.transactions.Deposit(context.Background(), usecase.DepositInput{AccountNumber: "PB001", Amount: dec("1")})
	require.NoError(t, err)

	second, err := uc.Summary(context.Background())
	require.NoError(t, err)
	require.Equal(t, first.Transactions, second.Transactions)

	require.NoError(t, uc.Invalidate(context.Background()))
	third, err := uc.Summary(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 3, third.Transactions)

	require.Equal(t, float64(1), testutil.ToFloat64(b.metrics.ReportCacheLookups.WithLabelValues("hit")))
	require.Equal(t, float64(2), testutil.ToFloat64(b.metrics.ReportCacheLookups.WithLabelValues("miss")))
}

func TestReportUseCase_CacheFailuresFallBackToStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := gomocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), "report:summary").Return(nil, errors.New("redis down"))
	cache.EXPECT().Set(gomock.Any(), "report:summary", gomock.Any(), 30*time.Second).Return(errors.New("redis down"))

	b := newBank(t)
	seedReportData(t, b)

	uc := usecase.NewReportUseCase(b.users, b.accounts, b.records, b.loans, cache, 0, zerolog.Nop(), b.metrics)
	summary, err := uc.Summary(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 2, summary.Transactions)
	require.Equal(t, float64(1), testutil.ToFloat64(b.metrics.ReportCacheLookups.WithLabelValues("error")))
}

func TestReportUseCase_MalformedCacheEntryIsRebuilt(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := gomocks.NewMockCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), "report:summary").Return([]byte("{not json"), nil)
	cache.EXPECT().Set(gomock.Any(), "report:summary", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value []byte, _ time.Duration) error {
			var s usecase.Summary
			require.NoError(t, json.Unmarshal(value, &s))
			return nil
		})

	b := newBank(t)
	uc := usecase.NewReportUseCase(b.users, b.accounts, b.records, b.loans, cache, 0, zerolog.Nop(), nil)
	_, err := uc.Summary(context.Background())
	require.NoError(t, err)
}
