package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/infrastructure/metrics"
)

const summaryCacheKey = "report:summary"

// Summary is the administrator dashboard view of the bank.
type Summary struct {
	Customers        int64           `json:"customers"`
	Accounts         int64           `json:"accounts"`
	PendingAccounts  int64           `json:"pending_accounts"`
	TotalBalance     decimal.Decimal `json:"total_balance"`
	Transactions     int64           `json:"transactions"`
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	PendingLoans     int64           `json:"pending_loans"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

// ReportUseCase builds aggregate reports.
type ReportUseCase struct {
	userRepo    UserRepository
	accountRepo AccountRepository
	txRepo      TransactionRepository
	loanRepo    LoanRepository
	cache       Cache
	ttl         time.Duration
	logger      zerolog.Logger
	metrics     *metrics.Metrics
}

// NewReportUseCase creates a new ReportUseCase. cache may be nil.
func NewReportUseCase(
	userRepo UserRepository,
	accountRepo AccountRepository,
	txRepo TransactionRepository,
	loanRepo LoanRepository,
	cache Cache,
	ttl time.Duration,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *ReportUseCase {
	if ttl <= 0 {
		ttl = DefaultReportCacheTTL
	}

	return &ReportUseCase{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		txRepo:      txRepo,
		loanRepo:    loanRepo,
		cache:       cache,
		ttl:         ttl,
		logger:      logger,
		metrics:     m,
	}
}

// Summary returns the dashboard figures, served from cache when fresh.
func (uc *ReportUseCase) Summary(ctx context.Context) (*Summary, error) {
	if cached := uc.cached(ctx); cached != nil {
		return cached, nil
	}

	summary, err := uc.build(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		data, err := json.Marshal(summary)
		if err == nil {
			err = uc.cache.Set(ctx, summaryCacheKey, data, uc.ttl)
		}
		if err != nil {
			uc.logger.Warn().Err(err).Msg("failed to cache report summary")
		}
	}

	return summary, nil
}

// Invalidate drops the cached summary.
func (uc *ReportUseCase) Invalidate(ctx context.Context) error {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.Delete(ctx, summaryCacheKey)
}

func (uc *ReportUseCase) cached(ctx context.Context) *Summary {
	if uc.cache == nil {
		return nil
	}

	data, err := uc.cache.Get(ctx, summaryCacheKey)
	if err != nil {
		uc.logger.Warn().Err(err).Msg("report cache lookup failed")
		uc.countLookup("error")
		return nil
	}
	if data == nil {
		uc.countLookup("miss")
		return nil
	}

	var summary Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		uc.logger.Warn().Err(err).Msg("discarding malformed cached summary")
		uc.countLookup("error")
		return nil
	}

	uc.countLookup("hit")
	return &summary
}

func (uc *ReportUseCase) build(ctx context.Context) (*Summary, error) {
	var (
		s   Summary
		err error
	)

	if s.Customers, err = uc.userRepo.CountByRole(ctx, domain.RoleCustomer); err != nil {
		return nil, err
	}
	if s.Accounts, err = uc.accountRepo.Count(ctx); err != nil {
		return nil, err
	}
	if s.PendingAccounts, err = uc.accountRepo.CountByStatus(ctx, domain.AccountStatusPending); err != nil {
		return nil, err
	}
	if s.TotalBalance, err = uc.accountRepo.TotalBalanceByStatus(ctx, domain.AccountStatusApproved); err != nil {
		return nil, err
	}
	if s.Transactions, err = uc.txRepo.Count(ctx); err != nil {
		return nil, err
	}
	if s.TotalDeposits, err = uc.txRepo.SumByType(ctx, domain.TransactionTypeDeposit); err != nil {
		return nil, err
	}
	if s.TotalWithdrawals, err = uc.txRepo.SumByType(ctx, domain.TransactionTypeWithdrawal); err != nil {
		return nil, err
	}
	if s.PendingLoans, err = uc.loanRepo.CountByStatus(ctx, domain.LoanStatusPending); err != nil {
		return nil, err
	}

	s.GeneratedAt = time.Now().UTC()
	return &s, nil
}

func (uc *ReportUseCase) countLookup(result string) {
	if uc.metrics != nil {
		uc.metrics.ReportCacheLookups.WithLabelValues(result).Inc()
	}
}
