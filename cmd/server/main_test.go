package main

import (
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/pocketbank/internal/infrastructure/config"
	"github.com/iho/pocketbank/internal/infrastructure/eventpublisher"
)

func TestNewEventSink(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	tests := []struct {
		name   string
		sink   string
		client goredis.Cmdable
		redis  bool
	}{
		{"redis stream", sinkRedis, client, true},
		{"log sink", sinkLog, client, false},
		{"no redis client", sinkRedis, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{OutboxSink: tt.sink, OutboxStream: "pocketbank.events"}

			sink := newEventSink(cfg, tt.client, zerolog.Nop())

			_, isRedis := sink.(*eventpublisher.RedisStreamPublisher)
			if isRedis != tt.redis {
				t.Fatalf("expected redis sink=%v, got %T", tt.redis, sink)
			}
		})
	}
}

func TestShutdownTimeout(t *testing.T) {
	if got := shutdownTimeout(&config.Config{}); got != 30*time.Second {
		t.Fatalf("expected fallback of 30s, got %s", got)
	}

	if got := shutdownTimeout(&config.Config{HTTPShutdownTimeout: 5 * time.Second}); got != 5*time.Second {
		t.Fatalf("expected configured timeout, got %s", got)
	}
}
