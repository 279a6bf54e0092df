package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/headcount/account-service/internal/core/domain"
	"github.com/headcount/account-service/internal/core/ports"
)

// UserRepository is the bun-backed implementation of ports.UserRepository.
// The soft_delete tag on the model keeps deleted rows out of every select;
// partial unique indexes (see Migrate) are the authority on username/email
// uniqueness among live users.
type UserRepository struct {
	db *bun.DB
}

func NewUserRepository(db *bun.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ ports.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if _, err := r.db.NewInsert().Model(user).Exec(ctx); err != nil {
		if conflictErr := conflictError(err); conflictErr != nil {
			return nil, conflictErr
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.findOne(ctx, "usr.id = ?", id)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	user := new(domain.User)
	err := r.db.NewSelect().Model(user).Where(where, arg).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, input ports.UpdateUserInput) (*domain.User, error) {
	q := r.db.NewUpdate().
		Model((*domain.User)(nil)).
		Where("usr.id = ?", id).
		Where("usr.deleted_at IS NULL").
		Set("updated_at = ?", time.Now().UTC())

	if input.Email != nil {
		q = q.Set("email = ?", *input.Email)
	}
	if input.Role != nil {
		q = q.Set("role = ?", *input.Role)
	}
	if input.IsActive != nil {
		q = q.Set("is_active = ?", *input.IsActive)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		if conflictErr := conflictError(err); conflictErr != nil {
			return nil, conflictErr
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrUserNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *UserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	// The soft_delete tag turns this into UPDATE ... SET deleted_at = now()
	// and skips rows that are already deleted.
	res, err := r.db.NewDelete().
		Model((*domain.User)(nil)).
		Where("usr.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("soft delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	var users []*domain.User
	err := r.db.NewSelect().
		Model(&users).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// conflictError maps a driver unique-violation to the matching domain error,
// or returns nil when err is something else. Postgres reports SQLSTATE 23505
// through pgdriver; the sqlite shim used in tests reports a message naming
// the violated column.
func conflictError(err error) error {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == "23505" {
		if strings.Contains(pgErr.Field('n'), "email") {
			return domain.ErrEmailTaken
		}
		return domain.ErrUsernameTaken
	}

	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "unique constraint") {
		if strings.Contains(msg, "email") {
			return domain.ErrEmailTaken
		}
		return domain.ErrUsernameTaken
	}
	return nil
}
