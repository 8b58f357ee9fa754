package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password does not meet policy")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
)

// Token validation failures. The HTTP layer collapses all of them into a
// single generic 401 so callers cannot tell which stage rejected the token.
var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrBadSignature   = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token is expired")
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}
