package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/usecase"
)

func TestAccountFromDomain(t *testing.T) {
	now := time.Now()
	account := &domain.Account{
		ID:        "acc-1",
		Number:    "PB0000000001",
		Type:      domain.AccountTypeSavings,
		Balance:   decimal.RequireFromString("123.45"),
		Status:    domain.AccountStatusApproved,
		OwnerID:   "user-1",
		Version:   2,
		CreatedAt: now,
		UpdatedAt: now,
	}

	resp := AccountFromDomain(account)
	if resp.ID != account.ID || resp.Number != "PB0000000001" || resp.Version != 2 {
		t.Fatalf("unexpected account response: %+v", resp)
	}
	if resp.Status != "APPROVED" || resp.Type != "SAVINGS" {
		t.Fatalf("unexpected enums: %+v", resp)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"balance":"123.45"`) {
		t.Fatalf("expected balance as decimal string, got %s", data)
	}
}

func TestUserFromDomainOmitsPassword(t *testing.T) {
	user := &domain.User{
		ID:             "user-1",
		Username:       "alice",
		HashedPassword: "$2a$10$secret",
		Role:           domain.RoleCustomer,
	}

	data, err := json.Marshal(UserFromDomain(user))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "secret") || strings.Contains(string(data), "password") {
		t.Fatalf("password leaked into response: %s", data)
	}
}

func TestTransferFromUseCase(t *testing.T) {
	result := &usecase.TransferResult{
		Debit: &domain.Transaction{
			ID:                        "tx-1",
			AccountNumber:             "PB001",
			Type:                      domain.TransactionTypeTransferOut,
			Amount:                    decimal.NewFromInt(30),
			CounterpartyAccountNumber: "PB002",
		},
		Credit: &domain.Transaction{
			ID:                        "tx-2",
			AccountNumber:             "PB002",
			Type:                      domain.TransactionTypeTransferIn,
			Amount:                    decimal.NewFromInt(30),
			CounterpartyAccountNumber: "PB001",
		},
	}

	resp := TransferFromUseCase(result)
	if resp.Debit.Type != "TRANSFER_OUT" || resp.Credit.Type != "TRANSFER_IN" {
		t.Fatalf("unexpected legs: %+v %+v", resp.Debit, resp.Credit)
	}
	if resp.Debit.CounterpartyAccountNumber != "PB002" || resp.Credit.CounterpartyAccountNumber != "PB001" {
		t.Fatalf("unexpected counterparties: %+v %+v", resp.Debit, resp.Credit)
	}
}

func TestLoanFromDomain(t *testing.T) {
	approved := time.Now()
	loan := &domain.Loan{
		ID:                        "loan-1",
		Principal:                 decimal.NewFromInt(100000),
		TenureMonths:              12,
		InterestRate:              decimal.RequireFromString("8.5"),
		MonthlyInstallment:        decimal.RequireFromString("8721.98"),
		Status:                    domain.LoanStatusDisbursed,
		DisbursementAccountNumber: "PB001",
		ApprovedAt:                &approved,
	}

	resp := LoanFromDomain(loan)
	if resp.Status != "DISBURSED" || resp.ApprovedAt == nil || resp.DisbursementAccountNumber != "PB001" {
		t.Fatalf("unexpected loan response: %+v", resp)
	}
	if !resp.MonthlyInstallment.Equal(decimal.RequireFromString("8721.98")) {
		t.Fatalf("unexpected installment %s", resp.MonthlyInstallment)
	}
}

func TestReconciliationReportFromUseCase(t *testing.T) {
	report := &usecase.ReconciliationReport{
		TotalAccounts:      2,
		ReconciledAccounts: 1,
		Discrepancies: []*usecase.ReconciliationResult{{
			AccountNumber: "PB002",
			Difference:    decimal.NewFromInt(1),
		}},
		LedgerError: "ledger is inconsistent",
	}

	resp := ReconciliationReportFromUseCase(report)
	if len(resp.Discrepancies) != 1 || resp.Discrepancies[0].AccountNumber != "PB002" {
		t.Fatalf("unexpected discrepancies %+v", resp.Discrepancies)
	}
	if resp.LedgerConsistent || resp.LedgerError == "" {
		t.Fatalf("expected ledger error to be carried over, got %+v", resp)
	}
}

func TestListsFromDomainKeepOrder(t *testing.T) {
	txs := TransactionsFromDomain([]*domain.Transaction{{ID: "a"}, {ID: "b"}})
	if len(txs) != 2 || txs[0].ID != "a" || txs[1].ID != "b" {
		t.Fatalf("unexpected order %+v", txs)
	}

	empty := AccountsFromDomain(nil)
	data, _ := json.Marshal(ListResponse[*AccountResponse]{Items: empty})
	if !strings.Contains(string(data), `"items":[]`) {
		t.Fatalf("expected empty array, got %s", data)
	}
}
