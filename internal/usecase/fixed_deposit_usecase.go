package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/infrastructure/metrics"
)

// FixedDepositUseCase opens fixed deposits funded from a customer account.
type FixedDepositUseCase struct {
	txManager  TxManager
	fdRepo     FixedDepositRepository
	userRepo   UserRepository
	outboxRepo OutboxRepository
	ledger     LedgerPoster
	idGen      IDGenerator
	retrier    Retrier
	metrics    *metrics.Metrics
}

// NewFixedDepositUseCase creates a new FixedDepositUseCase.
func NewFixedDepositUseCase(
	txManager TxManager,
	fdRepo FixedDepositRepository,
	userRepo UserRepository,
	outboxRepo OutboxRepository,
	ledger LedgerPoster,
	idGen IDGenerator,
	m *metrics.Metrics,
) *FixedDepositUseCase {
	return &FixedDepositUseCase{
		txManager:  txManager,
		fdRepo:     fdRepo,
		userRepo:   userRepo,
		outboxRepo: outboxRepo,
		ledger:     ledger,
		idGen:      idGen,
		metrics:    m,
	}
}

// WithRetrier enables retries on deadlocks and serialization failures.
func (uc *FixedDepositUseCase) WithRetrier(r Retrier) *FixedDepositUseCase {
	uc.retrier = r
	return uc
}

// CreateFixedDepositInput represents input for opening a fixed deposit.
type CreateFixedDepositInput struct {
	OwnerID       string
	AccountNumber string
	Principal     decimal.Decimal
	TenureMonths  int
}

// CreateFixedDeposit withdraws the principal from the funding account and
// stores an ACTIVE deposit in the same transaction.
func (uc *FixedDepositUseCase) CreateFixedDeposit(ctx context.Context, input CreateFixedDepositInput) (*domain.FixedDeposit, error) {
	if err := domain.ValidateAmount(input.Principal); err != nil {
		return nil, err
	}
	if err := domain.ValidateTenure(input.TenureMonths); err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.GetByID(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	rate := domain.FixedDepositRate(input.TenureMonths)

	var created *domain.FixedDeposit
	err := runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Tx) error {
		if _, err := uc.ledger.PostWithdrawal(ctx, tx, WithdrawInput{
			AccountNumber: input.AccountNumber,
			Amount:        input.Principal,
			Description:   domain.FixedDepositDescription(input.TenureMonths),
		}); err != nil {
			return err
		}

		now := time.Now().UTC()
		fd := &domain.FixedDeposit{
			ID:                   uc.idGen.Generate(),
			OwnerID:              input.OwnerID,
			FundingAccountNumber: input.AccountNumber,
			Principal:            input.Principal,
			TenureMonths:         input.TenureMonths,
			InterestRate:         rate,
			MaturityAmount:       domain.CalculateMaturity(input.Principal, rate, input.TenureMonths),
			StartDate:            now,
			MaturityDate:         domain.MaturityDate(now, input.TenureMonths),
			Status:               domain.FixedDepositStatusActive,
			CreatedAt:            now,
		}

		if err := uc.fdRepo.Create(ctx, tx, fd); err != nil {
			return err
		}

		if err := uc.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   fd.ID,
			AggregateType: domain.AggregateTypeFixedDeposit,
			EventType:     domain.EventTypeFixedDepositCreated,
			Payload: domain.MarshalState(domain.FixedDepositCreatedEvent{
				FixedDepositID: fd.ID,
				OwnerID:        fd.OwnerID,
				Principal:      fd.Principal.StringFixed(2),
				MaturityAmount: fd.MaturityAmount.StringFixed(2),
				MaturityDate:   fd.MaturityDate.Format(time.DateOnly),
			}),
			CreatedAt: now,
		}); err != nil {
			return err
		}

		created = fd
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.FixedDepositsCreated.Inc()
		uc.metrics.FixedDepositPrincipal.Add(created.Principal.InexactFloat64())
	}

	return created, nil
}

// GetFixedDeposit retrieves a fixed deposit by ID.
func (uc *FixedDepositUseCase) GetFixedDeposit(ctx context.Context, id string) (*domain.FixedDeposit, error) {
	return uc.fdRepo.GetByID(ctx, id)
}

// ListFixedDepositsByOwner lists a user's fixed deposits, newest first.
func (uc *FixedDepositUseCase) ListFixedDepositsByOwner(ctx context.Context, ownerID string) ([]*domain.FixedDeposit, error) {
	return uc.fdRepo.ListByOwner(ctx, ownerID)
}

// ListFixedDeposits lists all fixed deposits.
func (uc *FixedDepositUseCase) ListFixedDeposits(ctx context.Context, limit, offset int) ([]*domain.FixedDeposit, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.fdRepo.List(ctx, limit, offset)
}
