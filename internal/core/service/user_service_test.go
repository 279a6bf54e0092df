package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/headcount/account-service/internal/core/domain"
	"github.com/headcount/account-service/internal/core/ports"
)

func seedUser(repo *stubUserRepo, username string) *domain.User {
	now := time.Now().UTC()
	u := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		Role:         domain.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	repo.users[u.ID] = u
	return u
}

func newUserService() (*UserService, *stubUserRepo, *stubRecorder) {
	repo := newStubUserRepo()
	audit := &stubRecorder{}
	return NewUserService(repo, audit, zerolog.Nop()), repo, audit
}

func TestUserService_Update_Partial(t *testing.T) {
	svc, repo, audit := newUserService()
	u := seedUser(repo, "alice")

	email := "new@example.com"
	updated, err := svc.Update(context.Background(), u.ID, ports.UpdateUserInput{Email: &email})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Email != "new@example.com" {
		t.Fatalf("email not updated: %+v", updated)
	}
	if updated.Username != "alice" || updated.Role != domain.RoleUser {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditUserUpdated {
		t.Fatalf("expected updated audit event, got %+v", audit.events)
	}
}

func TestUserService_Update_DeactivationAudited(t *testing.T) {
	svc, repo, audit := newUserService()
	u := seedUser(repo, "bob")

	inactive := false
	if _, err := svc.Update(context.Background(), u.ID, ports.UpdateUserInput{IsActive: &inactive}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditUserDeactivated {
		t.Fatalf("expected deactivated audit event, got %+v", audit.events)
	}
}

func TestUserService_Update_InvalidRole(t *testing.T) {
	svc, repo, _ := newUserService()
	u := seedUser(repo, "carol")

	role := "superuser"
	_, err := svc.Update(context.Background(), u.ID, ports.UpdateUserInput{Role: &role})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc, _, _ := newUserService()

	email := "x@example.com"
	if _, err := svc.Update(context.Background(), uuid.New(), ports.UpdateUserInput{Email: &email}); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	svc, repo, audit := newUserService()
	u := seedUser(repo, "dave")

	if err := svc.Delete(context.Background(), u.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), u.ID); err != domain.ErrUserNotFound {
		t.Fatalf("deleted user still visible: %v", err)
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditUserDeleted {
		t.Fatalf("expected deleted audit event, got %+v", audit.events)
	}

	if err := svc.Delete(context.Background(), u.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestUserService_List_ClampsLimit(t *testing.T) {
	svc, repo, _ := newUserService()
	seedUser(repo, "erin")

	users, err := svc.List(context.Background(), -5, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
}
