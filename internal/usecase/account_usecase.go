package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/infrastructure/metrics"
)

// AccountUseCase handles account lifecycle.
type AccountUseCase struct {
	txManager   TxManager
	accountRepo AccountRepository
	userRepo    UserRepository
	outboxRepo  OutboxRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
	numbers     AccountNumberGenerator
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TxManager,
	accountRepo AccountRepository,
	userRepo UserRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	numbers AccountNumberGenerator,
	m *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		userRepo:    userRepo,
		outboxRepo:  outboxRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
		numbers:     numbers,
		metrics:     m,
	}
}

// WithRetrier enables retries on deadlocks and serialization failures.
func (uc *AccountUseCase) WithRetrier(r Retrier) *AccountUseCase {
	uc.retrier = r
	return uc
}

// OpenAccountInput represents input for opening an account.
type OpenAccountInput struct {
	OwnerID string
	Type    domain.AccountType
}

// OpenAccount creates a PENDING account with a zero balance.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	if !input.Type.IsValid() {
		return nil, domain.ErrInvalidAccountType
	}

	if _, err := uc.userRepo.GetByID(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	number, err := uc.allocateNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		Number:    number,
		Type:      input.Type,
		Balance:   decimal.Zero,
		Status:    domain.AccountStatusPending,
		OwnerID:   input.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Tx) error {
		if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
			return err
		}

		if err := uc.emitStatusEvent(ctx, tx, account, domain.EventTypeAccountOpened, now); err != nil {
			return err
		}

		return recordAudit(ctx, tx, uc.auditRepo, uc.idGen, uc.metrics, auditEntry{
			action:       domain.AuditActionAccountOpen,
			resourceType: domain.AggregateTypeAccount,
			resourceID:   account.ID,
			after:        account,
		})
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsOpened.Inc()
	}

	return account, nil
}

// allocateNumber draws candidates until one is not already in use.
func (uc *AccountUseCase) allocateNumber(ctx context.Context) (string, error) {
	for range MaxAccountNumberAttempts {
		number, err := uc.numbers.Next(ctx)
		if err != nil {
			return "", err
		}

		exists, err := uc.accountRepo.ExistsByNumber(ctx, number)
		if err != nil {
			return "", err
		}

		if !exists {
			return number, nil
		}
	}

	return "", domain.ErrAccountNumberTaken
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetAccountByNumber retrieves an account by its account number.
func (uc *AccountUseCase) GetAccountByNumber(ctx context.Context, number string) (*domain.Account, error) {
	return uc.accountRepo.GetByNumber(ctx, number)
}

// ListAccountsByOwner returns every account of a user.
func (uc *AccountUseCase) ListAccountsByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	return uc.accountRepo.ListByOwner(ctx, ownerID)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accountRepo.List(ctx, limit, offset)
}

// ListPendingAccounts lists accounts awaiting approval, newest first.
func (uc *AccountUseCase) ListPendingAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accountRepo.ListByStatus(ctx, domain.AccountStatusPending, limit, offset)
}

// ApproveAccount makes an account eligible for money movement.
func (uc *AccountUseCase) ApproveAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.changeStatus(ctx, id, domain.AccountStatusApproved, domain.EventTypeAccountApproved, domain.AuditActionAccountApprove)
}

// SuspendAccount blocks an account from money movement.
func (uc *AccountUseCase) SuspendAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.changeStatus(ctx, id, domain.AccountStatusSuspended, domain.EventTypeAccountSuspended, domain.AuditActionAccountSuspend)
}

func (uc *AccountUseCase) changeStatus(
	ctx context.Context,
	id string,
	status domain.AccountStatus,
	eventType string,
	action domain.AuditAction,
) (*domain.Account, error) {
	var updated *domain.Account

	err := runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Tx) error {
		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		before := *account
		now := time.Now().UTC()

		if err := uc.accountRepo.UpdateStatus(ctx, tx, id, status, now); err != nil {
			return err
		}

		account.Status = status
		account.UpdatedAt = now

		if err := uc.emitStatusEvent(ctx, tx, account, eventType, now); err != nil {
			return err
		}

		if err := recordAudit(ctx, tx, uc.auditRepo, uc.idGen, uc.metrics, auditEntry{
			action:       action,
			resourceType: domain.AggregateTypeAccount,
			resourceID:   id,
			before:       before,
			after:        account,
		}); err != nil {
			return err
		}

		updated = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountStatusChanges.WithLabelValues(string(status)).Inc()
	}

	return updated, nil
}

func (uc *AccountUseCase) emitStatusEvent(ctx context.Context, tx Tx, account *domain.Account, eventType string, now time.Time) error {
	return uc.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   account.ID,
		AggregateType: domain.AggregateTypeAccount,
		EventType:     eventType,
		Payload: domain.MarshalState(domain.AccountStatusEvent{
			AccountID:     account.ID,
			AccountNumber: account.Number,
			OwnerID:       account.OwnerID,
			Status:        string(account.Status),
		}),
		CreatedAt: now,
	})
}

// CountAccounts returns the number of accounts.
func (uc *AccountUseCase) CountAccounts(ctx context.Context) (int64, error) {
	return uc.accountRepo.Count(ctx)
}

// CountPendingAccounts returns the number of accounts awaiting approval.
func (uc *AccountUseCase) CountPendingAccounts(ctx context.Context) (int64, error) {
	return uc.accountRepo.CountByStatus(ctx, domain.AccountStatusPending)
}

// TotalBalance returns the sum of balances held in approved accounts.
func (uc *AccountUseCase) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	return uc.accountRepo.TotalBalanceByStatus(ctx, domain.AccountStatusApproved)
}
