package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// RecentAccountTransactions is the size of the per-account recent list.
	RecentAccountTransactions = 10

	// RecentTransactions is the size of the bank-wide recent list.
	RecentTransactions = 20

	// MaxAccountNumberAttempts bounds the collision-check loop when opening accounts.
	MaxAccountNumberAttempts = 5

	// DefaultReportCacheTTL is how long the admin summary is cached.
	DefaultReportCacheTTL = 30 * time.Second
)
