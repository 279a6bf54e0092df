package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/headcount/account-service/internal/core/domain"
	"github.com/headcount/account-service/internal/core/ports"
	"github.com/headcount/account-service/internal/pkg/password"
	"github.com/headcount/account-service/internal/pkg/token"
)

// AuthService implements registration, login, and profile retrieval.
type AuthService struct {
	repo  ports.UserRepository
	codec *token.Codec
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, codec *token.Codec, audit ports.AuditRecorder, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, audit: audit, log: log}
}

// Register creates a new account with role "user" and returns a token for it.
// Uniqueness is checked here first for a friendly error, but the store's
// unique indexes are the authority under concurrent registration: a
// constraint violation from Create surfaces as the same conflict errors.
func (s *AuthService) Register(ctx context.Context, username, email, plaintext string) (*ports.AuthResult, error) {
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	signed, err := s.codec.Issue(created)
	if err != nil {
		return nil, fmt.Errorf("register: issue token: %w", err)
	}

	s.audit.Record(domain.AuditEvent{
		UserID:    created.ID,
		Username:  created.Username,
		Action:    domain.AuditUserRegistered,
		Timestamp: now,
	})
	s.log.Info().Str("username", created.Username).Str("user_id", created.ID.String()).Msg("user registered")

	return &ports.AuthResult{Token: signed, User: created}, nil
}

// Login verifies credentials and issues a token. A missing user and a wrong
// password return the identical ErrInvalidCredentials so the response cannot
// be used to probe which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, plaintext string) (*ports.AuthResult, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !password.Verify(plaintext, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrAccountDeactivated
	}

	signed, err := s.codec.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.audit.Record(domain.AuditEvent{
		UserID:    user.ID,
		Username:  user.Username,
		Action:    domain.AuditUserLoggedIn,
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Str("username", user.Username).Msg("user logged in")

	return &ports.AuthResult{Token: signed, User: user}, nil
}

// GetProfile returns the public view of the user; the password hash is never
// serialized (json:"-" on the model).
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}
