package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Account struct {
	ID        string             `json:"id"`
	Number    string             `json:"number"`
	Type      string             `json:"type"`
	Balance   pgtype.Numeric     `json:"balance"`
	Status    string             `json:"status"`
	OwnerID   string             `json:"owner_id"`
	Version   int64              `json:"version"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type OutboxEvent struct {
	ID            string             `json:"id"`
	AggregateID   string             `json:"aggregate_id"`
	AggregateType string             `json:"aggregate_type"`
	EventType     string             `json:"event_type"`
	Payload       []byte             `json:"payload"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	PublishedAt   pgtype.Timestamptz `json:"published_at"`
	Published     bool               `json:"published"`
}

type Transaction struct {
	ID                        string             `json:"id"`
	AccountID                 string             `json:"account_id"`
	AccountNumber             string             `json:"account_number"`
	Type                      string             `json:"type"`
	Amount                    pgtype.Numeric     `json:"amount"`
	BalanceAfter              pgtype.Numeric     `json:"balance_after"`
	Description               string             `json:"description"`
	CounterpartyAccountNumber string             `json:"counterparty_account_number"`
	CreatedAt                 pgtype.Timestamptz `json:"created_at"`
}
