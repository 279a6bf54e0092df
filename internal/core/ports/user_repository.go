package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/headcount/account-service/internal/core/domain"
)

// UpdateUserInput carries a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Email    *string
	Role     *string
	IsActive *bool
}

// UserRepository defines persistence for user accounts. Every method filters
// out soft-deleted rows; a lookup that matches nothing returns
// domain.ErrUserNotFound.
type UserRepository interface {
	// Create inserts a new user. A unique-constraint violation on username or
	// email surfaces as domain.ErrUsernameTaken / domain.ErrEmailTaken, which
	// closes the check-then-insert race under concurrent registrations.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// Update applies the non-nil fields of input and bumps updated_at.
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error)
	// SoftDelete stamps deleted_at; the record is retained but invisible to
	// every other method.
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// List returns live users ordered by id ascending.
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
}
