package domain

import "errors"

// Expected business errors. The HTTP error handler maps each one to a
// deterministic status code; anything else becomes a 500.
//
// ErrInvalidCredentials covers both "no such user" and "wrong password" on
// login so the response cannot be used to enumerate usernames.
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("invalid role")
)
