package usecase_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/infrastructure/metrics"
	"github.com/iho/pocketbank/internal/usecase"
	"github.com/iho/pocketbank/internal/usecase/mocks"
)

// bank wires every use case to one set of in-memory repositories.
type bank struct {
	txManager *mocks.MockTxManager
	accounts  *mocks.MockAccountRepository
	records   *mocks.MockTransactionRepository
	loans     *mocks.MockLoanRepository
	deposits  *mocks.MockFixedDepositRepository
	users     *mocks.MockUserRepository
	outbox    *mocks.MockOutboxRepository
	audit     *mocks.MockAuditRepository
	idGen     *mocks.MockIDGenerator
	numbers   *mocks.MockAccountNumberGenerator
	metrics   *metrics.Metrics

	transactions *usecase.TransactionUseCase
	accountUC    *usecase.AccountUseCase
	loanUC       *usecase.LoanUseCase
	fdUC         *usecase.FixedDepositUseCase
	userUC       *usecase.UserUseCase
}

func newBank(t *testing.T) *bank {
	t.Helper()

	b := &bank{
		txManager: mocks.NewMockTxManager(),
		accounts:  mocks.NewMockAccountRepository(),
		records:   mocks.NewMockTransactionRepository(),
		loans:     mocks.NewMockLoanRepository(),
		deposits:  mocks.NewMockFixedDepositRepository(),
		users:     mocks.NewMockUserRepository(),
		outbox:    mocks.NewMockOutboxRepository(),
		audit:     mocks.NewMockAuditRepository(),
		idGen:     mocks.NewMockIDGenerator(),
		numbers:   mocks.NewMockAccountNumberGenerator(),
		metrics:   metrics.NewWithRegistry(prometheus.NewRegistry()),
	}

	b.transactions = usecase.NewTransactionUseCase(b.txManager, b.accounts, b.records, b.outbox, b.idGen, b.metrics)
	b.accountUC = usecase.NewAccountUseCase(b.txManager, b.accounts, b.users, b.outbox, b.audit, b.idGen, b.numbers, b.metrics)
	b.loanUC = usecase.NewLoanUseCase(b.txManager, b.loans, b.users, b.outbox, b.audit, b.transactions, b.idGen, b.metrics)
	b.fdUC = usecase.NewFixedDepositUseCase(b.txManager, b.deposits, b.users, b.outbox, b.transactions, b.idGen, b.metrics)
	b.userUC = usecase.NewUserUseCase(b.txManager, b.users, b.outbox, b.audit, b.idGen, b.metrics).WithHashCost(4)

	return b
}

func (b *bank) seedUser(id string) *domain.User {
	now := time.Now().UTC()
	user := &domain.User{
		ID:        id,
		Username:  id,
		FullName:  "User " + id,
		Email:     id + "@example.com",
		Role:      domain.RoleCustomer,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.users.Put(user)
	return user
}

func (b *bank) seedAccount(number, balance string, status domain.AccountStatus) *domain.Account {
	now := time.Now().UTC()
	acc := &domain.Account{
		ID:        "acc-" + number,
		Number:    number,
		Type:      domain.AccountTypeSavings,
		Balance:   decimal.RequireFromString(balance),
		Status:    status,
		OwnerID:   "owner-1",
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.accounts.Put(acc)
	return acc
}

func (b *bank) balance(t *testing.T, number string) decimal.Decimal {
	t.Helper()
	acc, err := b.accounts.GetByNumber(t.Context(), number)
	if err != nil {
		t.Fatalf("account %s: %v", number, err)
	}
	return acc.Balance
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
