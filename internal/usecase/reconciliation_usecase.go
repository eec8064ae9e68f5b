package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketbank/internal/domain"
)

// ErrInconsistentLedger is returned when balances do not match the transaction log.
var ErrInconsistentLedger = errors.New("ledger is inconsistent: balances do not match transaction log")

// reconcilePageSize bounds each page when walking every account.
const reconcilePageSize = 100

// ReconciliationUseCase handles balance reconciliation operations
type ReconciliationUseCase struct {
	accountRepo AccountRepository
	txRepo      TransactionRepository
	ledgerRepo  LedgerRepository
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	accountRepo AccountRepository,
	txRepo TransactionRepository,
	ledgerRepo LedgerRepository,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	AccountID         string
	AccountNumber     string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	LastBalanceAfter  *decimal.Decimal
	Difference        decimal.Decimal
	IsReconciled      bool
	LastChecked       time.Time
}

// ReconcileAccount compares the stored balance with the signed sum of the
// account's transactions and with the latest balance-after snapshot.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, accountID string) (*ReconciliationResult, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return uc.reconcile(ctx, account)
}

func (uc *ReconciliationUseCase) reconcile(ctx context.Context, account *domain.Account) (*ReconciliationResult, error) {
	calculated, err := uc.txRepo.SumSignedByAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	latest, err := uc.txRepo.GetLatestByAccount(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	result := &ReconciliationResult{
		AccountID:         account.ID,
		AccountNumber:     account.Number,
		RecordedBalance:   account.Balance,
		CalculatedBalance: calculated,
		Difference:        account.Balance.Sub(calculated),
		LastChecked:       time.Now().UTC(),
	}

	result.IsReconciled = result.Difference.IsZero()

	if latest != nil {
		snapshot := latest.BalanceAfter
		result.LastBalanceAfter = &snapshot
		if !snapshot.Equal(account.Balance) {
			result.IsReconciled = false
		}
	}

	return result, nil
}

// ReconcileAllAccounts reconciles all accounts in the system
func (uc *ReconciliationUseCase) ReconcileAllAccounts(ctx context.Context) ([]*ReconciliationResult, error) {
	var results []*ReconciliationResult

	for offset := 0; ; offset += reconcilePageSize {
		accounts, err := uc.accountRepo.List(ctx, reconcilePageSize, offset)
		if err != nil {
			return nil, err
		}

		for _, account := range accounts {
			result, err := uc.reconcile(ctx, account)
			if err != nil {
				return nil, fmt.Errorf("failed to reconcile account %s: %w", account.Number, err)
			}
			results = append(results, result)
		}

		if len(accounts) < reconcilePageSize {
			return results, nil
		}
	}
}

// CheckLedgerConsistency verifies that the sum of all balances equals the
// signed sum of all transactions.
func (uc *ReconciliationUseCase) CheckLedgerConsistency(ctx context.Context) error {
	totalBalance, totalAmount, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return err
	}

	if !totalBalance.Equal(totalAmount) {
		return fmt.Errorf(
			"%w: balances=%s transactions=%s difference=%s",
			ErrInconsistentLedger,
			totalBalance.String(),
			totalAmount.String(),
			totalBalance.Sub(totalAmount).String(),
		)
	}

	return nil
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	TotalAccounts      int
	ReconciledAccounts int
	Discrepancies      []*ReconciliationResult
	LedgerConsistent   bool
	LedgerError        string
	CheckedAt          time.Time
}

// GenerateReconciliationReport generates a comprehensive reconciliation report
func (uc *ReconciliationUseCase) GenerateReconciliationReport(ctx context.Context) (*ReconciliationReport, error) {
	results, err := uc.ReconcileAllAccounts(ctx)
	if err != nil {
		return nil, err
	}

	ledgerErr := uc.CheckLedgerConsistency(ctx)

	report := &ReconciliationReport{
		TotalAccounts:    len(results),
		Discrepancies:    make([]*ReconciliationResult, 0),
		LedgerConsistent: ledgerErr == nil,
		CheckedAt:        time.Now().UTC(),
	}
	if ledgerErr != nil {
		report.LedgerError = ledgerErr.Error()
	}

	for _, result := range results {
		if result.IsReconciled {
			report.ReconciledAccounts++
		} else {
			report.Discrepancies = append(report.Discrepancies, result)
		}
	}

	return report, nil
}
