package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/infrastructure/metrics"
)

// LoanUseCase handles loan applications and their approval.
type LoanUseCase struct {
	txManager  TxManager
	loanRepo   LoanRepository
	userRepo   UserRepository
	outboxRepo OutboxRepository
	auditRepo  AuditRepository
	ledger     LedgerPoster
	idGen      IDGenerator
	retrier    Retrier
	metrics    *metrics.Metrics
}

// NewLoanUseCase creates a new LoanUseCase.
func NewLoanUseCase(
	txManager TxManager,
	loanRepo LoanRepository,
	userRepo UserRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	ledger LedgerPoster,
	idGen IDGenerator,
	m *metrics.Metrics,
) *LoanUseCase {
	return &LoanUseCase{
		txManager:  txManager,
		loanRepo:   loanRepo,
		userRepo:   userRepo,
		outboxRepo: outboxRepo,
		auditRepo:  auditRepo,
		ledger:     ledger,
		idGen:      idGen,
		metrics:    m,
	}
}

// WithRetrier enables retries on deadlocks and serialization failures.
func (uc *LoanUseCase) WithRetrier(r Retrier) *LoanUseCase {
	uc.retrier = r
	return uc
}

// ApplyForLoanInput represents a loan application.
type ApplyForLoanInput struct {
	OwnerID      string
	Principal    decimal.Decimal
	TenureMonths int
	Purpose      string
}

// ApplyForLoan prices a loan from the tenure rate table and stores it PENDING.
func (uc *LoanUseCase) ApplyForLoan(ctx context.Context, input ApplyForLoanInput) (*domain.Loan, error) {
	if err := domain.ValidateAmount(input.Principal); err != nil {
		return nil, err
	}
	if err := domain.ValidateTenure(input.TenureMonths); err != nil {
		return nil, err
	}
	if err := domain.ValidatePurpose(input.Purpose); err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.GetByID(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	rate := domain.LoanInterestRate(input.TenureMonths)
	now := time.Now().UTC()

	loan := &domain.Loan{
		ID:                 uc.idGen.Generate(),
		OwnerID:            input.OwnerID,
		Principal:          input.Principal,
		TenureMonths:       input.TenureMonths,
		InterestRate:       rate,
		MonthlyInstallment: domain.CalculateEMI(input.Principal, rate, input.TenureMonths),
		Purpose:            input.Purpose,
		Status:             domain.LoanStatusPending,
		AppliedAt:          now,
		UpdatedAt:          now,
	}

	err := runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Tx) error {
		if err := uc.loanRepo.Create(ctx, tx, loan); err != nil {
			return err
		}
		return uc.emit(ctx, tx, loan, domain.EventTypeLoanApplied, now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.LoansApplied.Inc()
	}

	return loan, nil
}

// ApproveLoanInput identifies the loan and the account that receives the funds.
type ApproveLoanInput struct {
	LoanID        string
	AccountNumber string
}

// ApproveLoan approves a pending loan and disburses the principal. The status
// change and the disbursement deposit commit as one unit.
func (uc *LoanUseCase) ApproveLoan(ctx context.Context, input ApproveLoanInput) (*domain.Loan, error) {
	var approved *domain.Loan

	err := runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Tx) error {
		loan, err := uc.loanRepo.GetByIDForUpdate(ctx, tx, input.LoanID)
		if err != nil {
			return err
		}

		if !loan.IsPending() {
			return domain.ErrLoanNotPending
		}

		before := *loan
		now := time.Now().UTC()

		loan.Status = domain.LoanStatusApproved
		loan.ApprovedAt = &now
		loan.DisbursementAccountNumber = input.AccountNumber
		loan.UpdatedAt = now
		if err := uc.loanRepo.Update(ctx, tx, loan); err != nil {
			return err
		}

		if _, err := uc.ledger.PostDeposit(ctx, tx, DepositInput{
			AccountNumber: input.AccountNumber,
			Amount:        loan.Principal,
			Description:   domain.LoanDisbursementDescription(loan.ID),
		}); err != nil {
			return err
		}

		loan.Status = domain.LoanStatusDisbursed
		if err := uc.loanRepo.Update(ctx, tx, loan); err != nil {
			return err
		}

		if err := uc.emit(ctx, tx, loan, domain.EventTypeLoanDisbursed, now); err != nil {
			return err
		}

		if err := recordAudit(ctx, tx, uc.auditRepo, uc.idGen, uc.metrics, auditEntry{
			action:       domain.AuditActionLoanApprove,
			resourceType: domain.AggregateTypeLoan,
			resourceID:   loan.ID,
			before:       before,
			after:        loan,
		}); err != nil {
			return err
		}

		approved = loan
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.LoanDecisions.WithLabelValues(string(domain.LoanStatusDisbursed)).Inc()
		uc.metrics.LoanDisbursedTotal.Add(approved.Principal.InexactFloat64())
	}

	return approved, nil
}

// RejectLoan marks a pending loan as rejected.
func (uc *LoanUseCase) RejectLoan(ctx context.Context, loanID string) (*domain.Loan, error) {
	var rejected *domain.Loan

	err := runInTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Tx) error {
		loan, err := uc.loanRepo.GetByIDForUpdate(ctx, tx, loanID)
		if err != nil {
			return err
		}

		if !loan.IsPending() {
			return domain.ErrLoanNotPending
		}

		before := *loan
		now := time.Now().UTC()

		loan.Status = domain.LoanStatusRejected
		loan.UpdatedAt = now
		if err := uc.loanRepo.Update(ctx, tx, loan); err != nil {
			return err
		}

		if err := uc.emit(ctx, tx, loan, domain.EventTypeLoanRejected, now); err != nil {
			return err
		}

		if err := recordAudit(ctx, tx, uc.auditRepo, uc.idGen, uc.metrics, auditEntry{
			action:       domain.AuditActionLoanReject,
			resourceType: domain.AggregateTypeLoan,
			resourceID:   loan.ID,
			before:       before,
			after:        loan,
		}); err != nil {
			return err
		}

		rejected = loan
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.LoanDecisions.WithLabelValues(string(domain.LoanStatusRejected)).Inc()
	}

	return rejected, nil
}

func (uc *LoanUseCase) emit(ctx context.Context, tx Tx, loan *domain.Loan, eventType string, now time.Time) error {
	return uc.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   loan.ID,
		AggregateType: domain.AggregateTypeLoan,
		EventType:     eventType,
		Payload: domain.MarshalState(domain.LoanEvent{
			LoanID:        loan.ID,
			OwnerID:       loan.OwnerID,
			Principal:     loan.Principal.StringFixed(2),
			Status:        string(loan.Status),
			AccountNumber: loan.DisbursementAccountNumber,
		}),
		CreatedAt: now,
	})
}

// GetLoan retrieves a loan by ID.
func (uc *LoanUseCase) GetLoan(ctx context.Context, id string) (*domain.Loan, error) {
	return uc.loanRepo.GetByID(ctx, id)
}

// ListLoansByOwner lists a user's loans, newest first.
func (uc *LoanUseCase) ListLoansByOwner(ctx context.Context, ownerID string) ([]*domain.Loan, error) {
	return uc.loanRepo.ListByOwner(ctx, ownerID)
}

// ListPendingLoans lists loans awaiting a decision.
func (uc *LoanUseCase) ListPendingLoans(ctx context.Context, limit, offset int) ([]*domain.Loan, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.loanRepo.ListByStatus(ctx, domain.LoanStatusPending, limit, offset)
}

// ListLoans lists all loans.
func (uc *LoanUseCase) ListLoans(ctx context.Context, limit, offset int) ([]*domain.Loan, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.loanRepo.List(ctx, limit, offset)
}

// CountPendingLoans returns the number of loans awaiting a decision.
func (uc *LoanUseCase) CountPendingLoans(ctx context.Context) (int64, error) {
	return uc.loanRepo.CountByStatus(ctx, domain.LoanStatusPending)
}
