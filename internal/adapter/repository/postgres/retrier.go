package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iho/pocketbank/internal/infrastructure/metrics"
)

// SQLSTATE codes worth another attempt: the transaction lost a race, not an argument.
const (
	pgErrSerializationFailure = "40001"
	pgErrDeadlock             = "40P01"
	pgErrLockNotAvailable     = "55P03"
)

// RetryConfig tunes the backoff of a Retrier. Zero fields take defaults.
type RetryConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.InitialInterval == 0 {
		c.InitialInterval = 50 * time.Millisecond
	}
	if c.MaxInterval == 0 {
		c.MaxInterval = time.Second
	}
	if c.MaxElapsedTime == 0 {
		c.MaxElapsedTime = 10 * time.Second
	}
	return c
}

// Retrier reruns a whole unit of work when Postgres aborts it for
// concurrency reasons. Every other error is returned on the first attempt.
type Retrier struct {
	cfg     RetryConfig
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewRetrier creates a Retrier; call with no argument for the defaults.
func NewRetrier(cfg ...RetryConfig) *Retrier {
	var c RetryConfig
	if len(cfg) > 0 {
		c = cfg[0]
	}

	return &Retrier{cfg: c.withDefaults(), logger: log.Logger}
}

func (r *Retrier) WithLogger(logger zerolog.Logger) *Retrier {
	r.logger = logger
	return r
}

// WithMetrics counts each retry by SQLSTATE.
func (r *Retrier) WithMetrics(m *metrics.Metrics) *Retrier {
	r.metrics = m
	return r
}

// Retry runs operation until it succeeds, fails permanently, or the retry
// budget is spent. The last error is returned unchanged.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.cfg.InitialInterval
	b.MaxInterval = r.cfg.MaxInterval
	b.MaxElapsedTime = r.cfg.MaxElapsedTime

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(r.cfg.MaxRetries)), ctx)

	attempt := 0
	return backoff.RetryNotify(func() error {
		attempt++
		err := operation()
		if err == nil {
			return nil
		}

		if _, ok := retryableCode(err); !ok {
			return backoff.Permanent(err)
		}

		return err
	}, policy, func(err error, wait time.Duration) {
		code, _ := retryableCode(err)
		r.logger.Warn().
			Err(err).
			Str("sqlstate", code).
			Int("attempt", attempt).
			Dur("backoff", wait).
			Msg("transaction aborted by postgres, retrying")

		if r.metrics != nil {
			r.metrics.DBRetries.WithLabelValues(code).Inc()
		}
	})
}

func retryableCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}

	switch pgErr.Code {
	case pgErrSerializationFailure, pgErrDeadlock, pgErrLockNotAvailable:
		return pgErr.Code, true
	}

	return pgErr.Code, false
}
