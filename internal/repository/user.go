package repository

import (
	"context"

	"github.com/azimbek-dev/converter-api/internal/domain"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create persists a new user and returns it with generated fields
	// filled in. Returns domain.ErrEmailTaken if the email is already
	// registered; the unique index makes this atomic under concurrent
	// registrations.
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
}
