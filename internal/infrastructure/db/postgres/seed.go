package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/headcount/account-service/internal/core/domain"
	"github.com/headcount/account-service/internal/pkg/password"
)

// AdminSeed holds the credentials for the default administrator account.
type AdminSeed struct {
	Username string
	Email    string
	Password string
}

// SeedAdmin creates the default admin account when it does not exist yet.
// Runs after Migrate on startup; a second run is a no-op.
func SeedAdmin(ctx context.Context, repo *UserRepository, seed AdminSeed, log zerolog.Logger) error {
	_, err := repo.FindByUsername(ctx, seed.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("seed admin: %w", err)
	}

	hash, err := password.Hash(seed.Password)
	if err != nil {
		return fmt.Errorf("seed admin: hash password: %w", err)
	}

	now := time.Now().UTC()
	admin := &domain.User{
		ID:           uuid.New(),
		Username:     seed.Username,
		Email:        seed.Email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := repo.Create(ctx, admin); err != nil {
		// Another instance may have seeded concurrently.
		if errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrEmailTaken) {
			return nil
		}
		return fmt.Errorf("seed admin: %w", err)
	}

	log.Info().Str("username", seed.Username).Msg("default admin user created")
	return nil
}
