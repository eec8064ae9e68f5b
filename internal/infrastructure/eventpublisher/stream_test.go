package eventpublisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/iho/pocketbank/internal/domain"
)

func TestRedisStreamPublisherAppendsEvent(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	pub := NewRedisStreamPublisher(client, "", 0)
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	err := pub.Publish(context.Background(), &domain.OutboxEvent{
		ID:            "evt-1",
		AggregateID:   "tx-1",
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeTransactionPosted,
		Payload:       map[string]any{"amount": "25.00", "type": "DEPOSIT"},
		CreatedAt:     created,
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	entries, err := client.XRange(context.Background(), DefaultStream, "-", "+").Result()
	if err != nil {
		t.Fatalf("xrange failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one stream entry, got %d", len(entries))
	}

	values := entries[0].Values
	if values["event_id"] != "evt-1" || values["event_type"] != "transaction.posted" {
		t.Fatalf("unexpected entry values %#v", values)
	}
	if values["created_at"] != "2024-03-01T12:00:00Z" {
		t.Fatalf("unexpected created_at %v", values["created_at"])
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(values["payload"].(string)), &payload); err != nil {
		t.Fatalf("payload is not json: %v", err)
	}
	if payload["amount"] != "25.00" {
		t.Fatalf("unexpected payload %#v", payload)
	}
}

func TestRedisStreamPublisherReportsErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()

	pub := NewRedisStreamPublisher(client, "custom.events", 100)
	mr.Close()

	err := pub.Publish(context.Background(), &domain.OutboxEvent{ID: "evt-1"})
	if err == nil {
		t.Fatal("expected error when redis is unavailable")
	}
}
