package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/headcount/account-service/internal/core/domain"
)

// AuditRecorder accepts audit events for asynchronous persistence. Record
// must not block the caller; a full queue is the recorder's problem.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditService persists one audit event at a time; called by queue workers.
type AuditService interface {
	Process(ctx context.Context, event domain.AuditEvent) error
}

// AuditRepository is the storage side of the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.AuditEvent, error)
}
