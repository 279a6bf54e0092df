package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/headcount/account-service/internal/core/domain"
	"github.com/headcount/account-service/internal/core/ports"
)

// AuditRepository persists the append-only trail of account activity.
type AuditRepository struct {
	db *bun.DB
}

func NewAuditRepository(db *bun.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	if _, err := r.db.NewInsert().Model(event).Exec(ctx); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.AuditEvent, error) {
	var events []*domain.AuditEvent
	err := r.db.NewSelect().
		Model(&events).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}
