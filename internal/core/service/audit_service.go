package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/headcount/account-service/internal/core/domain"
	"github.com/headcount/account-service/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists events to the audit
// repository. It runs on the dispatcher's worker goroutines, never on a
// request path.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single audit event. Events arrive from the dispatcher
// already sharded by user, so per-user ordering is the insertion order.
func (s *auditService) Process(ctx context.Context, event domain.AuditEvent) error {
	if event.UserID == uuid.Nil || event.Action == "" {
		return fmt.Errorf("process audit event: missing user id or action")
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("process audit event: %w", err)
	}

	s.log.Debug().
		Str("user_id", event.UserID.String()).
		Str("action", string(event.Action)).
		Msg("audit event recorded")

	return nil
}
