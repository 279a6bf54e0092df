package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AuditAction identifies the kind of account activity being recorded.
type AuditAction string

const (
	AuditUserRegistered  AuditAction = "user.registered"
	AuditUserLoggedIn    AuditAction = "user.logged_in"
	AuditUserUpdated     AuditAction = "user.updated"
	AuditUserDeactivated AuditAction = "user.deactivated"
	AuditUserDeleted     AuditAction = "user.deleted"
)

// AuditEvent is one append-only record of account activity. Events are
// written asynchronously by the queue dispatcher and never mutated.
type AuditEvent struct {
	bun.BaseModel `bun:"table:audit_events,alias:aev"`

	ID        uuid.UUID   `bun:"id,pk,type:uuid" json:"id"`
	UserID    uuid.UUID   `bun:"user_id,notnull,type:uuid" json:"user_id"`
	Username  string      `bun:"username,notnull" json:"username"`
	Action    AuditAction `bun:"action,notnull" json:"action"`
	Timestamp time.Time   `bun:"timestamp,notnull" json:"timestamp"`
}
