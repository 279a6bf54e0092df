package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/headcount/account-service/internal/core/domain"
	"github.com/headcount/account-service/internal/core/ports"
)

type stubAuthService struct {
	registerFn   func(ctx context.Context, username, email, password string) (*ports.AuthResult, error)
	loginFn      func(ctx context.Context, username, password string) (*ports.AuthResult, error)
	getProfileFn func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (*ports.AuthResult, error) {
	return s.registerFn(ctx, username, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.getProfileFn(ctx, userID)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (*ports.AuthResult, error) {
			if username != "alice" || email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s %s", username, email, password)
			}
			return &ports.AuthResult{
				Token: "token123",
				User: &domain.User{
					ID:           uuid.New(),
					Username:     username,
					Email:        email,
					PasswordHash: "$2a$10$hash",
					Role:         domain.RoleUser,
					IsActive:     true,
				},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	req := jsonRequest(http.MethodPost, "/api/v1/auth/register", `{"username":"alice","email":"alice@example.com","password":"secret1"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "success" || resp["message"] != "User registered successfully" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}

	data, _ := resp["data"].(map[string]any)
	if data["token"] != "token123" {
		t.Fatalf("expected token in data: %+v", data)
	}
	user, _ := data["user"].(map[string]any)
	if user["username"] != "alice" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	for _, key := range []string{"password", "password_hash"} {
		if _, exists := user[key]; exists {
			t.Fatalf("response leaks %s: %+v", key, user)
		}
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (*ports.AuthResult, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	cases := map[string]string{
		"short username": `{"username":"ab","email":"a@example.com","password":"secret1"}`,
		"bad email":      `{"username":"alice","email":"not-an-email","password":"secret1"}`,
		"short password": `{"username":"alice","email":"a@example.com","password":"12345"}`,
		"long password":  `{"username":"alice","email":"a@example.com","password":"` + strings.Repeat("a", 80) + `"}`,
		"missing fields": `{}`,
	}

	for name, body := range cases {
		req := jsonRequest(http.MethodPost, "/api/v1/auth/register", body)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := h.Register(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 HTTPError, got %v", name, err)
		}
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (*ports.AuthResult, error) {
			return nil, domain.ErrUsernameTaken
		},
	}
	h := NewAuthHandler(stub)

	req := jsonRequest(http.MethodPost, "/api/v1/auth/register", `{"username":"bob","email":"bob@example.com","password":"secret1"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.AuthResult, error) {
			if username != "alice" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &ports.AuthResult{
				Token: "token123",
				User:  &domain.User{ID: uuid.New(), Username: "alice", Role: domain.RoleUser, IsActive: true},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	req := jsonRequest(http.MethodPost, "/api/v1/auth/login", `{"username":"alice","password":"secret1"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Login successful" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	req := jsonRequest(http.MethodPost, "/api/v1/auth/login", `{"username":"alice","password":"bad"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.AuthResult, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	req := jsonRequest(http.MethodPost, "/api/v1/auth/login", "{")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Profile(t *testing.T) {
	e := newEcho()
	userID := uuid.New()
	stub := &stubAuthService{
		getProfileFn: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			if id != userID {
				t.Fatalf("unexpected id: %s", id)
			}
			return &domain.User{ID: id, Username: "alice", Role: domain.RoleUser, IsActive: true}, nil
		},
	}
	h := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	c.Set("username", "alice")

	if err := h.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Profile_NoClaims(t *testing.T) {
	e := newEcho()
	h := NewAuthHandler(&stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Profile(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
