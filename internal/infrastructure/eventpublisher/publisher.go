package eventpublisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/infrastructure/metrics"
	"github.com/iho/pocketbank/internal/usecase"
)

// EventPublisher relays committed outbox rows to a Publisher.
type EventPublisher struct {
	outboxRepo usecase.OutboxRepository
	publisher  Publisher
	logger     zerolog.Logger
	metrics    *metrics.Metrics
	batchSize  int
	interval   time.Duration
	retention  time.Duration
}

// Publisher delivers one event to a downstream sink.
type Publisher interface {
	Publish(ctx context.Context, event *domain.OutboxEvent) error
}

// Config for EventPublisher.
type Config struct {
	OutboxRepo usecase.OutboxRepository
	Publisher  Publisher
	Logger     *zerolog.Logger
	Metrics    *metrics.Metrics
	BatchSize  int
	Interval   time.Duration
	Retention  time.Duration // Published events older than this are purged; zero keeps them
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(cfg Config) *EventPublisher {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.Interval == 0 {
		cfg.Interval = 5 * time.Second
	}

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &EventPublisher{
		outboxRepo: cfg.OutboxRepo,
		publisher:  cfg.Publisher,
		logger:     logger.With().Str("component", "outbox").Logger(),
		metrics:    cfg.Metrics,
		batchSize:  cfg.BatchSize,
		interval:   cfg.Interval,
		retention:  cfg.Retention,
	}
}

// Start polls the outbox every interval until ctx is cancelled.
func (ep *EventPublisher) Start(ctx context.Context) error {
	ep.logger.Info().
		Int("batch_size", ep.batchSize).
		Dur("interval", ep.interval).
		Dur("retention", ep.retention).
		Msg("event publisher started")

	ticker := time.NewTicker(ep.interval)
	defer ticker.Stop()

	ep.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			ep.logger.Info().Msg("event publisher shutting down")
			return ctx.Err()
		case <-ticker.C:
			ep.tick(ctx)
		}
	}
}

func (ep *EventPublisher) tick(ctx context.Context) {
	result, err := ep.publishBatch(ctx)
	if err != nil {
		ep.logger.Error().Err(err).Msg("failed to load outbox batch")
	} else if result.published+result.failed > 0 {
		ep.logger.Debug().
			Int("published", result.published).
			Int("failed", result.failed).
			Msg("outbox batch done")
	}

	ep.refreshBacklog(ctx)

	if ep.retention > 0 {
		ep.purge(ctx, time.Now().UTC().Add(-ep.retention))
	}
}

type batchResult struct {
	published int
	failed    int
}

// publishBatch hands one batch of pending events to the sink. An event the
// sink rejects stays pending and is retried on the next tick; the rest of
// the batch still goes out.
func (ep *EventPublisher) publishBatch(ctx context.Context) (batchResult, error) {
	var result batchResult

	events, err := ep.outboxRepo.GetUnpublished(ctx, ep.batchSize)
	if err != nil {
		return result, err
	}

	for _, event := range events {
		eventLog := ep.logger.With().
			Str("event_id", event.ID).
			Str("event_type", event.EventType).
			Str("aggregate_id", event.AggregateID).
			Logger()

		if err := ep.publisher.Publish(ctx, event); err != nil {
			eventLog.Error().Err(err).Msg("failed to publish event")
			result.failed++
			ep.count("failed")
			continue
		}

		if err := ep.outboxRepo.MarkPublished(ctx, event.ID, time.Now().UTC()); err != nil {
			// Delivered but not marked: the event is sent again next tick.
			eventLog.Error().Err(err).Msg("failed to mark event as published")
		}

		result.published++
		ep.count("published")
	}

	return result, nil
}

func (ep *EventPublisher) refreshBacklog(ctx context.Context) {
	if ep.metrics == nil {
		return
	}

	n, err := ep.outboxRepo.CountUnpublished(ctx)
	if err != nil {
		ep.logger.Warn().Err(err).Msg("failed to count outbox backlog")
		return
	}

	ep.metrics.OutboxBacklog.Set(float64(n))
}

func (ep *EventPublisher) purge(ctx context.Context, cutoff time.Time) {
	n, err := ep.outboxRepo.DeletePublished(ctx, cutoff)
	if err != nil {
		ep.logger.Error().Err(err).Msg("failed to purge published events")
		return
	}

	if n == 0 {
		return
	}

	ep.logger.Info().Int64("purged", n).Time("cutoff", cutoff).Msg("purged published events")
	if ep.metrics != nil {
		ep.metrics.OutboxPurged.Add(float64(n))
	}
}

func (ep *EventPublisher) count(result string) {
	if ep.metrics != nil {
		ep.metrics.OutboxPublished.WithLabelValues(result).Inc()
	}
}

// LogPublisher is a simple publisher that logs events.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event.
func (p *LogPublisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	p.logger.Info().
		Str("event_id", event.ID).
		Str("event_type", event.EventType).
		Str("aggregate_type", event.AggregateType).
		Str("aggregate_id", event.AggregateID).
		RawJSON("payload", payload).
		Msg("event published")

	return nil
}
