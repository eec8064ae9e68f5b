// Package mocks provides in-memory fakes of the usecase ports. Each fake keeps
// enough state to behave like the real store and exposes Func hooks so tests
// can inject failures.
package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
// Accounts are stored and returned by value so callers cannot alias state.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	order    []string

	CreateFunc                func(ctx context.Context, tx usecase.Tx, account *domain.Account) error
	GetByNumberForUpdateFunc  func(ctx context.Context, tx usecase.Tx, number string) (*domain.Account, error)
	GetByNumbersForUpdateFunc func(ctx context.Context, tx usecase.Tx, numbers []string) ([]*domain.Account, error)
	UpdateBalanceFunc         func(ctx context.Context, tx usecase.Tx, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateStatusFunc          func(ctx context.Context, tx usecase.Tx, id string, status domain.AccountStatus, updatedAt time.Time) error
	ExistsByNumberFunc        func(ctx context.Context, number string) (bool, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Put seeds an account directly.
func (m *MockAccountRepository) Put(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.ID]; !ok {
		m.order = append(m.order, account.ID)
	}
	acc := *account
	m.accounts[account.ID] = &acc
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Tx, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.Put(account)
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		cp := *acc
		return &cp, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Number == number {
			cp := *acc
			return &cp, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Account, error) {
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByNumberForUpdate(ctx context.Context, tx usecase.Tx, number string) (*domain.Account, error) {
	if m.GetByNumberForUpdateFunc != nil {
		return m.GetByNumberForUpdateFunc(ctx, tx, number)
	}
	return m.GetByNumber(ctx, number)
}

func (m *MockAccountRepository) GetByNumbersForUpdate(ctx context.Context, tx usecase.Tx, numbers []string) ([]*domain.Account, error) {
	if m.GetByNumbersForUpdateFunc != nil {
		return m.GetByNumbersForUpdateFunc(ctx, tx, numbers)
	}
	var accounts []*domain.Account
	for _, number := range numbers {
		if acc, err := m.GetByNumber(ctx, number); err == nil {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	if m.ExistsByNumberFunc != nil {
		return m.ExistsByNumberFunc(ctx, number)
	}
	_, err := m.GetByNumber(ctx, number)
	return err == nil, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Tx, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Balance = balance
	acc.Version++
	acc.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) UpdateStatus(ctx context.Context, tx usecase.Tx, id string, status domain.AccountStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Status = status
	acc.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	return m.filter(func(a *domain.Account) bool { return a.OwnerID == ownerID }), nil
}

func (m *MockAccountRepository) ListByStatus(ctx context.Context, status domain.AccountStatus, limit, offset int) ([]*domain.Account, error) {
	return page(m.filter(func(a *domain.Account) bool { return a.Status == status }), limit, offset), nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	return page(m.filter(func(*domain.Account) bool { return true }), limit, offset), nil
}

func (m *MockAccountRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.filter(func(*domain.Account) bool { return true }))), nil
}

func (m *MockAccountRepository) CountByStatus(ctx context.Context, status domain.AccountStatus) (int64, error) {
	return int64(len(m.filter(func(a *domain.Account) bool { return a.Status == status }))), nil
}

func (m *MockAccountRepository) TotalBalanceByStatus(ctx context.Context, status domain.AccountStatus) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, acc := range m.filter(func(a *domain.Account) bool { return a.Status == status }) {
		total = total.Add(acc.Balance)
	}
	return total, nil
}

func (m *MockAccountRepository) filter(keep func(*domain.Account) bool) []*domain.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := []*domain.Account{}
	for _, id := range m.order {
		if acc := m.accounts[id]; keep(acc) {
			cp := *acc
			accounts = append(accounts, &cp)
		}
	}
	return accounts
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu      sync.RWMutex
	records []*domain.Transaction

	CreateFunc func(ctx context.Context, tx usecase.Tx, record *domain.Transaction) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// Records returns every stored row in insertion order.
func (m *MockTransactionRepository) Records() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Transaction(nil), m.records...)
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Tx, record *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *record
	m.records = append(m.records, &cp)
	return nil
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	var rows []*domain.Transaction
	for _, r := range m.newestFirst() {
		if r.AccountID == accountID {
			rows = append(rows, r)
		}
	}
	return page(rows, limit, offset), nil
}

func (m *MockTransactionRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	return page(m.newestFirst(), limit, 0), nil
}

func (m *MockTransactionRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.Records())), nil
}

func (m *MockTransactionRepository) SumByType(ctx context.Context, typ domain.TransactionType) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, r := range m.Records() {
		if r.Type == typ {
			total = total.Add(r.Amount)
		}
	}
	return total, nil
}

func (m *MockTransactionRepository) SumSignedByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, r := range m.Records() {
		if r.AccountID == accountID {
			total = total.Add(r.SignedAmount())
		}
	}
	return total, nil
}

func (m *MockTransactionRepository) GetLatestByAccount(ctx context.Context, accountID string) (*domain.Transaction, error) {
	for _, r := range m.newestFirst() {
		if r.AccountID == accountID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *MockTransactionRepository) newestFirst() []*domain.Transaction {
	records := m.Records()
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records
}

// MockLoanRepository is a mock implementation of LoanRepository.
type MockLoanRepository struct {
	mu    sync.RWMutex
	loans map[string]*domain.Loan
	order []string

	CreateFunc func(ctx context.Context, tx usecase.Tx, loan *domain.Loan) error
	UpdateFunc func(ctx context.Context, tx usecase.Tx, loan *domain.Loan) error
}

func NewMockLoanRepository() *MockLoanRepository {
	return &MockLoanRepository{loans: make(map[string]*domain.Loan)}
}

// Put seeds a loan directly.
func (m *MockLoanRepository) Put(loan *domain.Loan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.loans[loan.ID]; !ok {
		m.order = append(m.order, loan.ID)
	}
	cp := *loan
	m.loans[loan.ID] = &cp
}

func (m *MockLoanRepository) Create(ctx context.Context, tx usecase.Tx, loan *domain.Loan) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, loan)
	}
	m.Put(loan)
	return nil
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if loan, ok := m.loans[id]; ok {
		cp := *loan
		return &cp, nil
	}
	return nil, domain.ErrLoanNotFound
}

func (m *MockLoanRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Loan, error) {
	return m.GetByID(ctx, id)
}

func (m *MockLoanRepository) Update(ctx context.Context, tx usecase.Tx, loan *domain.Loan) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, loan)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.loans[loan.ID]; !ok {
		return domain.ErrLoanNotFound
	}
	cp := *loan
	m.loans[loan.ID] = &cp
	return nil
}

func (m *MockLoanRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Loan, error) {
	return m.filter(func(l *domain.Loan) bool { return l.OwnerID == ownerID }), nil
}

func (m *MockLoanRepository) ListByStatus(ctx context.Context, status domain.LoanStatus, limit, offset int) ([]*domain.Loan, error) {
	return page(m.filter(func(l *domain.Loan) bool { return l.Status == status }), limit, offset), nil
}

func (m *MockLoanRepository) List(ctx context.Context, limit, offset int) ([]*domain.Loan, error) {
	return page(m.filter(func(*domain.Loan) bool { return true }), limit, offset), nil
}

func (m *MockLoanRepository) CountByStatus(ctx context.Context, status domain.LoanStatus) (int64, error) {
	return int64(len(m.filter(func(l *domain.Loan) bool { return l.Status == status }))), nil
}

func (m *MockLoanRepository) filter(keep func(*domain.Loan) bool) []*domain.Loan {
	m.mu.RLock()
	defer m.mu.RUnlock()
	loans := []*domain.Loan{}
	for _, id := range m.order {
		if loan := m.loans[id]; keep(loan) {
			cp := *loan
			loans = append(loans, &cp)
		}
	}
	return loans
}

// MockFixedDepositRepository is a mock implementation of FixedDepositRepository.
type MockFixedDepositRepository struct {
	mu       sync.RWMutex
	deposits []*domain.FixedDeposit

	CreateFunc func(ctx context.Context, tx usecase.Tx, fd *domain.FixedDeposit) error
}

func NewMockFixedDepositRepository() *MockFixedDepositRepository {
	return &MockFixedDepositRepository{}
}

func (m *MockFixedDepositRepository) Create(ctx context.Context, tx usecase.Tx, fd *domain.FixedDeposit) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, fd)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *fd
	m.deposits = append(m.deposits, &cp)
	return nil
}

func (m *MockFixedDepositRepository) GetByID(ctx context.Context, id string) (*domain.FixedDeposit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, fd := range m.deposits {
		if fd.ID == id {
			cp := *fd
			return &cp, nil
		}
	}
	return nil, domain.ErrFixedDepositNotFound
}

func (m *MockFixedDepositRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.FixedDeposit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	deposits := []*domain.FixedDeposit{}
	for _, fd := range m.deposits {
		if fd.OwnerID == ownerID {
			cp := *fd
			deposits = append(deposits, &cp)
		}
	}
	return deposits, nil
}

func (m *MockFixedDepositRepository) List(ctx context.Context, limit, offset int) ([]*domain.FixedDeposit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return page(append([]*domain.FixedDeposit(nil), m.deposits...), limit, offset), nil
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
	order []string

	CreateFunc func(ctx context.Context, tx usecase.Tx, user *domain.User) error
	UpdateFunc func(ctx context.Context, tx usecase.Tx, user *domain.User) error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

// Put seeds a user directly.
func (m *MockUserRepository) Put(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		m.order = append(m.order, user.ID)
	}
	cp := *user
	m.users[user.ID] = &cp
}

func (m *MockUserRepository) Create(ctx context.Context, tx usecase.Tx, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, user)
	}
	m.Put(user)
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.ID == id })
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.Username == username })
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := m.GetByUsername(ctx, username)
	return err == nil, nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.find(func(u *domain.User) bool { return u.Email == email })
	return err == nil, nil
}

func (m *MockUserRepository) Update(ctx context.Context, tx usecase.Tx, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role domain.Role, limit, offset int) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := []*domain.User{}
	for _, id := range m.order {
		if u := m.users[id]; u.Role == role {
			cp := *u
			users = append(users, &cp)
		}
	}
	return page(users, limit, offset), nil
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	users, _ := m.ListByRole(ctx, role, 0, 0)
	return int64(len(users)), nil
}

func (m *MockUserRepository) find(match func(*domain.User) bool) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		if u := m.users[id]; match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// MockOutboxRepository records outbox events.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Tx, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

// Events returns recorded events, optionally filtered by type.
func (m *MockOutboxRepository) Events(eventType ...string) []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, e := range m.events {
		if len(eventType) == 0 || e.EventType == eventType[0] {
			events = append(events, e)
		}
	}
	return events
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Tx, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	var events []*domain.OutboxEvent
	for _, e := range m.Events() {
		if !e.Published {
			events = append(events, e)
		}
	}
	return page(events, limit, 0), nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error) {
	var events []*domain.OutboxEvent
	for _, e := range m.Events() {
		if e.AggregateType == aggregateType && e.AggregateID == aggregateID {
			events = append(events, e)
		}
	}
	return page(events, limit, offset), nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	for _, e := range m.events {
		if !e.Published || e.PublishedAt == nil || !e.PublishedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	removed := int64(len(m.events) - len(kept))
	m.events = kept
	return removed, nil
}

func (m *MockOutboxRepository) CountUnpublished(ctx context.Context) (int64, error) {
	var n int64
	for _, e := range m.Events() {
		if !e.Published {
			n++
		}
	}
	return n, nil
}

// MockAuditRepository records audit logs.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateTxFunc func(ctx context.Context, tx usecase.Tx, log *domain.AuditLog) error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

// Logs returns every recorded entry.
func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.AuditLog(nil), m.logs...)
}

func (m *MockAuditRepository) CreateTx(ctx context.Context, tx usecase.Tx, log *domain.AuditLog) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	var logs []*domain.AuditLog
	for _, l := range m.Logs() {
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		if filter.ResourceType != "" && l.ResourceType != filter.ResourceType {
			continue
		}
		if filter.ResourceID != "" && l.ResourceID != filter.ResourceID {
			continue
		}
		if filter.UserID != "" && l.UserID != filter.UserID {
			continue
		}
		logs = append(logs, l)
	}
	return page(logs, filter.Limit, filter.Offset), nil
}

func (m *MockAuditRepository) GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	return m.List(ctx, domain.AuditFilter{ResourceType: resourceType, ResourceID: resourceID})
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	CheckConsistencyFunc func(ctx context.Context) (decimal.Decimal, decimal.Decimal, error)
}

func (m *MockLedgerRepository) CheckConsistency(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	if m.CheckConsistencyFunc != nil {
		return m.CheckConsistencyFunc(ctx)
	}
	return decimal.Zero, decimal.Zero, nil
}

// MockTxManager is a mock implementation of TxManager.
type MockTxManager struct {
	mu        sync.Mutex
	begun     int
	committed int

	BeginFunc  func(ctx context.Context) (usecase.Tx, error)
	CommitFunc func(ctx context.Context) error
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	m.begun++
	m.mu.Unlock()
	return &MockTx{manager: m, CommitFunc: m.CommitFunc}, nil
}

// Begun returns how many transactions were started.
func (m *MockTxManager) Begun() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.begun
}

// Committed returns how many transactions committed successfully.
func (m *MockTxManager) Committed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.committed
}

// MockTx is a mock implementation of Tx.
type MockTx struct {
	manager *MockTxManager

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTx) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		if err := m.CommitFunc(ctx); err != nil {
			return err
		}
	}
	if m.manager != nil {
		m.manager.mu.Lock()
		m.manager.committed++
		m.manager.mu.Unlock()
	}
	return nil
}

func (m *MockTx) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockAccountNumberGenerator hands out PB-prefixed sequential numbers.
type MockAccountNumberGenerator struct {
	NextFunc func(ctx context.Context) (string, error)
	counter  int
	mu       sync.Mutex
}

func NewMockAccountNumberGenerator() *MockAccountNumberGenerator {
	return &MockAccountNumberGenerator{}
}

func (m *MockAccountNumberGenerator) Next(ctx context.Context) (string, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("PB%010d", m.counter), nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

// MockCache is an in-memory Cache that ignores TTLs.
type MockCache struct {
	mu   sync.RWMutex
	data map[string][]byte

	GetFunc func(ctx context.Context, key string) ([]byte, error)
	SetFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys returns the cached keys, sorted.
func (m *MockCache) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

var (
	_ usecase.AccountRepository      = (*MockAccountRepository)(nil)
	_ usecase.TransactionRepository  = (*MockTransactionRepository)(nil)
	_ usecase.LoanRepository         = (*MockLoanRepository)(nil)
	_ usecase.FixedDepositRepository = (*MockFixedDepositRepository)(nil)
	_ usecase.UserRepository         = (*MockUserRepository)(nil)
	_ usecase.OutboxRepository       = (*MockOutboxRepository)(nil)
	_ usecase.AuditRepository        = (*MockAuditRepository)(nil)
	_ usecase.LedgerRepository       = (*MockLedgerRepository)(nil)
	_ usecase.TxManager              = (*MockTxManager)(nil)
	_ usecase.IDGenerator            = (*MockIDGenerator)(nil)
	_ usecase.AccountNumberGenerator = (*MockAccountNumberGenerator)(nil)
	_ usecase.IdempotencyStore       = (*MockIdempotencyStore)(nil)
	_ usecase.Cache                  = (*MockCache)(nil)
)
