package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User models one account. PasswordHash never leaves the process: it is
// excluded from JSON and only the password package reads it.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Username     string    `bun:"username,notnull" json:"username"`
	Email        string    `bun:"email,notnull" json:"email"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	Role         string    `bun:"role,notnull,default:'user'" json:"role"`
	IsActive     bool      `bun:"is_active,notnull" json:"is_active"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,notnull" json:"updated_at"`
	DeletedAt    time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}
