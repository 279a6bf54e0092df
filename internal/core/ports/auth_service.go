package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/headcount/account-service/internal/core/domain"
)

// AuthResult pairs a freshly issued token with the public view of the user.
type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// AuthService implements registration, login, and profile retrieval.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}
