package usecase

import (
	"context"
	"time"

	"github.com/iho/pocketbank/internal/domain"
	"github.com/iho/pocketbank/internal/infrastructure/metrics"
)

type auditEntry struct {
	action       domain.AuditAction
	resourceType string
	resourceID   string
	before       any
	after        any
}

// recordAudit writes an audit log row in tx. A nil repository disables auditing.
func recordAudit(ctx context.Context, tx Tx, repo AuditRepository, idGen IDGenerator, m *metrics.Metrics, e auditEntry) error {
	if repo == nil {
		return nil
	}

	meta := domain.RequestMetaFromContext(ctx)
	log := &domain.AuditLog{
		ID:           idGen.Generate(),
		UserID:       domain.ActorFromContext(ctx),
		Action:       string(e.action),
		ResourceType: e.resourceType,
		ResourceID:   e.resourceID,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
		RequestID:    meta.RequestID,
		BeforeState:  domain.MarshalState(e.before),
		AfterState:   domain.MarshalState(e.after),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	}

	if err := repo.CreateTx(ctx, tx, log); err != nil {
		return err
	}

	if m != nil {
		m.AuditLogsCreated.WithLabelValues(log.Action, log.Status).Inc()
	}

	return nil
}
