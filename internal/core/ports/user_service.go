package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/headcount/account-service/internal/core/domain"
)

// UserService implements the administrative account operations.
type UserService interface {
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
