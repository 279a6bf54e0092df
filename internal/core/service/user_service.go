package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/headcount/account-service/internal/core/domain"
	"github.com/headcount/account-service/internal/core/ports"
)

// UserService implements the administrative account operations: listing,
// partial updates, and soft deletion.
type UserService struct {
	repo  ports.UserRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, audit ports.AuditRecorder, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, audit: audit, log: log}
}

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// List returns live users ordered by id, paginated.
func (s *UserService) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.repo.List(ctx, offset, limit)
}

// Update applies a partial update. A role change to anything but user/admin
// is rejected before touching the store.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input ports.UpdateUserInput) (*domain.User, error) {
	if input.Role != nil && !domain.ValidRole(*input.Role) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, *input.Role)
	}

	updated, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	action := domain.AuditUserUpdated
	if input.IsActive != nil && !*input.IsActive {
		action = domain.AuditUserDeactivated
	}
	s.audit.Record(domain.AuditEvent{
		UserID:    updated.ID,
		Username:  updated.Username,
		Action:    action,
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Str("user_id", id.String()).Str("action", string(action)).Msg("user updated")

	return updated, nil
}

// Delete soft-deletes the user: the row is kept but disappears from every
// lookup, which also kills any outstanding tokens at the access gate's
// liveness re-check.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEvent{
		UserID:    user.ID,
		Username:  user.Username,
		Action:    domain.AuditUserDeleted,
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Str("user_id", id.String()).Str("username", user.Username).Msg("user soft-deleted")

	return nil
}
