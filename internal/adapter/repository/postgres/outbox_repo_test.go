package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
)

var outboxColumnNames = []string{"id", "aggregate_id", "aggregate_type", "event_type", "payload", "created_at", "published_at", "published"}

func TestOutboxRepositoryGetUnpublished(t *testing.T) {
	pool := newMockPool(t)
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	pool.ExpectQuery("FROM outbox_events WHERE published = FALSE").
		WithArgs(int32(50)).
		WillReturnRows(pgxmock.NewRows(outboxColumnNames).AddRow(
			"evt-1", "txn-1", "transaction", "transaction.posted",
			[]byte(`{"transaction_id":"txn-1","amount":"10.00"}`),
			timeToPgTimestamptz(now), pgtype.Timestamptz{}, false,
		))

	repo := newOutboxRepositoryWithDB(pool)
	events, err := repo.GetUnpublished(context.Background(), 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	if events[0].Payload["amount"] != "10.00" || events[0].PublishedAt != nil {
		t.Fatalf("unexpected event: %+v", events[0])
	}

	assertExpectations(t, pool)
}

func TestOutboxRepositoryRejectsCorruptPayload(t *testing.T) {
	pool := newMockPool(t)
	now := time.Now().UTC()

	pool.ExpectQuery("FROM outbox_events WHERE aggregate_type = \\$1").
		WithArgs("loan", "loan-1", int32(10), int32(0)).
		WillReturnRows(pgxmock.NewRows(outboxColumnNames).AddRow(
			"evt-2", "loan-1", "loan", "loan.applied",
			[]byte(`{not json`),
			timeToPgTimestamptz(now), timeToPgTimestamptz(now), true,
		))

	repo := newOutboxRepositoryWithDB(pool)
	if _, err := repo.GetByAggregate(context.Background(), "loan", "loan-1", 10, 0); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestOutboxRepositoryDeletePublishedReportsRows(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectExec("DELETE FROM outbox_events").
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	repo := newOutboxRepositoryWithDB(pool)
	n, err := repo.DeletePublished(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected 3 purged rows, got %d", n)
	}

	assertExpectations(t, pool)
}

func TestOutboxRepositoryCountUnpublished(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery("SELECT COUNT\\(\\*\\) FROM outbox_events").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	repo := newOutboxRepositoryWithDB(pool)
	n, err := repo.CountUnpublished(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 7 {
		t.Fatalf("expected backlog of 7, got %d", n)
	}

	assertExpectations(t, pool)
}
