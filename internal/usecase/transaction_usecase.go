package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/infrastructure/metrics"
)

// LedgerPoster posts balance mutations inside a transaction owned by the
// caller. Loan disbursement and fixed deposit funding use it so that their
// own state change and the money movement commit together.
type LedgerPoster interface {
	PostDeposit(ctx context.Context, tx Tx, input DepositInput) (*domain.Transaction, error)
	PostWithdrawal(ctx context.Context, tx Tx, input WithdrawInput) (*domain.Transaction, error)
}

// TransactionUseCase handles deposits, withdrawals and transfers.
type TransactionUseCase struct {
	txManager   TxManager
	accountRepo AccountRepository
	txRepo      TransactionRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TxManager,
	accountRepo AccountRepository,
	txRepo TransactionRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txRepo:      txRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		metrics:     m,
	}
}

// WithRetrier enables retries on deadlocks and serialization failures.
func (uc *TransactionUseCase) WithRetrier(r Retrier) *TransactionUseCase {
	uc.retrier = r
	return uc
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	AccountNumber string
	Amount        decimal.Decimal
	Description   string
}

// WithdrawInput represents input for a withdrawal.
type WithdrawInput struct {
	AccountNumber string
	Amount        decimal.Decimal
	Description   string
}

// TransferInput represents input for a transfer between two accounts.
type TransferInput struct {
	FromAccountNumber string
	ToAccountNumber   string
	Amount            decimal.Decimal
	Description       string
}

// TransferResult holds both legs of a transfer.
type TransferResult struct {
	Debit  *domain.Transaction
	Credit *domain.Transaction
}

// Deposit credits an approved account.
func (uc *TransactionUseCase) Deposit(ctx context.Context, input DepositInput) (*domain.Transaction, error) {
	start := time.Now()

	var record *domain.Transaction
	err := runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Tx) error {
		r, err := uc.PostDeposit(ctx, tx, input)
		if err != nil {
			return err
		}
		record = r
		return nil
	})
	if err != nil {
		uc.observeError("deposit", err)
		return nil, err
	}

	uc.observe("deposit", start, record)
	return record, nil
}

// Withdraw debits an approved account.
func (uc *TransactionUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*domain.Transaction, error) {
	start := time.Now()

	var record *domain.Transaction
	err := runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Tx) error {
		r, err := uc.PostWithdrawal(ctx, tx, input)
		if err != nil {
			return err
		}
		record = r
		return nil
	})
	if err != nil {
		uc.observeError("withdraw", err)
		return nil, err
	}

	uc.observe("withdraw", start, record)
	return record, nil
}

// Transfer moves money between two approved accounts. Both legs commit
// together or not at all.
func (uc *TransactionUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	start := time.Now()

	// Validate inputs before starting transaction
	if err := domain.ValidateAmount(input.Amount); err != nil {
		uc.observeError("transfer", err)
		return nil, err
	}

	if input.FromAccountNumber == input.ToAccountNumber {
		uc.observeError("transfer", domain.ErrSameAccount)
		return nil, domain.ErrSameAccount
	}

	var result *TransferResult
	err := runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Tx) error {
		r, err := uc.postTransfer(ctx, tx, input)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		uc.observeError("transfer", err)
		return nil, err
	}

	uc.observe("transfer", start, result.Debit, result.Credit)
	return result, nil
}

// PostDeposit credits an account inside the caller's transaction.
func (uc *TransactionUseCase) PostDeposit(ctx context.Context, tx Tx, input DepositInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByNumberForUpdate(ctx, tx, input.AccountNumber)
	if err != nil {
		return nil, err
	}

	if err := account.ValidateActive(); err != nil {
		return nil, err
	}

	if err := account.ValidateCredit(input.Amount); err != nil {
		return nil, err
	}

	description := input.Description
	if description == "" {
		description = domain.DescriptionDeposit
	}

	return uc.post(ctx, tx, account, domain.TransactionTypeDeposit, input.Amount, description, "", time.Now().UTC())
}

// PostWithdrawal debits an account inside the caller's transaction.
func (uc *TransactionUseCase) PostWithdrawal(ctx context.Context, tx Tx, input WithdrawInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByNumberForUpdate(ctx, tx, input.AccountNumber)
	if err != nil {
		return nil, err
	}

	if err := account.ValidateActive(); err != nil {
		return nil, err
	}

	if err := account.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	description := input.Description
	if description == "" {
		description = domain.DescriptionWithdrawal
	}

	return uc.post(ctx, tx, account, domain.TransactionTypeWithdrawal, input.Amount, description, "", time.Now().UTC())
}

func (uc *TransactionUseCase) postTransfer(ctx context.Context, tx Tx, input TransferInput) (*TransferResult, error) {
	// Lock both accounts in sorted order (DEADLOCK PREVENTION)
	numbers := []string{input.FromAccountNumber, input.ToAccountNumber}
	sort.Strings(numbers)

	accounts, err := uc.accountRepo.GetByNumbersForUpdate(ctx, tx, numbers)
	if err != nil {
		return nil, err
	}

	byNumber := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		byNumber[a.Number] = a
	}

	from := byNumber[input.FromAccountNumber]
	to := byNumber[input.ToAccountNumber]
	if from == nil || to == nil {
		return nil, domain.ErrAccountNotFound
	}

	if err := from.ValidateActive(); err != nil {
		return nil, err
	}
	if err := to.ValidateActive(); err != nil {
		return nil, err
	}

	if err := from.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	if err := to.ValidateCredit(input.Amount); err != nil {
		return nil, err
	}

	outDescription, inDescription := input.Description, input.Description
	if input.Description == "" {
		outDescription = domain.TransferOutDescription(to.Number)
		inDescription = domain.TransferInDescription(from.Number)
	}

	now := time.Now().UTC()

	debit, err := uc.post(ctx, tx, from, domain.TransactionTypeTransferOut, input.Amount, outDescription, to.Number, now)
	if err != nil {
		return nil, err
	}

	credit, err := uc.post(ctx, tx, to, domain.TransactionTypeTransferIn, input.Amount, inDescription, from.Number, now)
	if err != nil {
		return nil, err
	}

	return &TransferResult{Debit: debit, Credit: credit}, nil
}

// post writes the new balance, the ledger row and its outbox event. The
// account must already be locked in tx.
func (uc *TransactionUseCase) post(
	ctx context.Context,
	tx Tx,
	account *domain.Account,
	typ domain.TransactionType,
	amount decimal.Decimal,
	description, counterparty string,
	now time.Time,
) (*domain.Transaction, error) {
	newBalance := account.ApplyCredit(amount)
	if !typ.IsCredit() {
		newBalance = account.ApplyDebit(amount)
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
		return nil, err
	}

	account.Balance = newBalance
	account.Version++
	account.UpdatedAt = now

	record := &domain.Transaction{
		ID:                        uc.idGen.Generate(),
		AccountID:                 account.ID,
		AccountNumber:             account.Number,
		Type:                      typ,
		Amount:                    amount,
		BalanceAfter:              newBalance,
		Description:               description,
		CounterpartyAccountNumber: counterparty,
		CreatedAt:                 now,
	}

	if err := uc.txRepo.Create(ctx, tx, record); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   record.ID,
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeTransactionPosted,
		Payload: domain.MarshalState(domain.TransactionPostedEvent{
			TransactionID: record.ID,
			AccountNumber: record.AccountNumber,
			Type:          string(record.Type),
			Amount:        record.Amount.StringFixed(2),
			BalanceAfter:  record.BalanceAfter.StringFixed(2),
			Counterparty:  counterparty,
			EventAt:       now.Format(time.RFC3339),
		}),
		CreatedAt: now,
	}
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	return record, nil
}

// ListAccountTransactions lists an account's ledger rows, newest first.
func (uc *TransactionUseCase) ListAccountTransactions(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.txRepo.ListByAccount(ctx, accountID, limit, offset)
}

// RecentAccountTransactions returns the latest rows of one account.
func (uc *TransactionUseCase) RecentAccountTransactions(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	return uc.txRepo.ListByAccount(ctx, accountID, RecentAccountTransactions, 0)
}

// RecentTransactions returns the latest rows across the bank.
func (uc *TransactionUseCase) RecentTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	return uc.txRepo.ListRecent(ctx, RecentTransactions)
}

// CountTransactions returns the number of ledger rows.
func (uc *TransactionUseCase) CountTransactions(ctx context.Context) (int64, error) {
	return uc.txRepo.Count(ctx)
}

// TotalDeposits returns the sum of all DEPOSIT rows.
func (uc *TransactionUseCase) TotalDeposits(ctx context.Context) (decimal.Decimal, error) {
	return uc.txRepo.SumByType(ctx, domain.TransactionTypeDeposit)
}

// TotalWithdrawals returns the sum of all WITHDRAWAL rows.
func (uc *TransactionUseCase) TotalWithdrawals(ctx context.Context) (decimal.Decimal, error) {
	return uc.txRepo.SumByType(ctx, domain.TransactionTypeWithdrawal)
}

func (uc *TransactionUseCase) observe(operation string, start time.Time, records ...*domain.Transaction) {
	if uc.metrics == nil {
		return
	}

	for _, record := range records {
		uc.metrics.TransactionsPosted.WithLabelValues(string(record.Type)).Inc()
		uc.metrics.TransactionAmount.WithLabelValues(string(record.Type)).Observe(record.Amount.InexactFloat64())
	}
	uc.metrics.TransactionDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (uc *TransactionUseCase) observeError(operation string, err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.TransactionErrors.WithLabelValues(operation, errorType(err)).Inc()
}
