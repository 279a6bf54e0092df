package handler

import (
	"github.com/headcount/account-service/internal/core/domain"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	// bcrypt only reads the first 72 bytes of input; longer values are
	// rejected up front instead of surfacing a hashing error.
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required"`
}

// authResponse is the data payload for register and login.
type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type updateUserRequest struct {
	Email    *string `json:"email,omitempty"     validate:"omitempty,email"`
	Role     *string `json:"role,omitempty"      validate:"omitempty,oneof=user admin"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type listUsersResponse struct {
	Users  []*domain.User `json:"users"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}
