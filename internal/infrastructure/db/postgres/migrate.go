package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/headcount/account-service/internal/core/domain"
)

// Migrate creates the tables and indexes the service needs. Idempotent; runs
// on every startup before the HTTP server accepts traffic.
//
// Username and email get partial unique indexes scoped to live rows, so a
// soft-deleted account frees its username/email while the constraint still
// closes the check-then-insert race between concurrent registrations.
func Migrate(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*domain.User)(nil),
		(*domain.AuditEvent)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	indexes := []*bun.CreateIndexQuery{
		db.NewCreateIndex().
			Model((*domain.User)(nil)).
			Unique().
			Index("idx_users_username_live").
			Column("username").
			Where("deleted_at IS NULL"),
		db.NewCreateIndex().
			Model((*domain.User)(nil)).
			Unique().
			Index("idx_users_email_live").
			Column("email").
			Where("deleted_at IS NULL"),
		db.NewCreateIndex().
			Model((*domain.AuditEvent)(nil)).
			Index("idx_audit_events_user_id").
			Column("user_id"),
	}
	for _, idx := range indexes {
		if _, err := idx.IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}
