package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/azimbek-dev/converter-api/internal/domain"
	"github.com/azimbek-dev/converter-api/internal/email"
	"github.com/azimbek-dev/converter-api/internal/password"
	"github.com/azimbek-dev/converter-api/internal/repository"
	"github.com/azimbek-dev/converter-api/internal/token"
)

type AuthUsecase struct {
	users  repository.UserRepository
	hasher *password.Hasher
	issuer *token.Issuer
	email  email.Sender
	logger *slog.Logger

	// Verified against on the unknown-email login path so that path
	// costs the same as a real password check.
	dummyHash string
}

func NewAuthUsecase(users repository.UserRepository, hasher *password.Hasher, issuer *token.Issuer, emailSender email.Sender, logger *slog.Logger) *AuthUsecase {
	dummyHash, err := hasher.Hash("timing-equalizer")
	if err != nil {
		// bcrypt only fails on an out-of-range cost, which NewHasher
		// clamps away.
		panic(fmt.Sprintf("hash dummy password: %v", err))
	}

	return &AuthUsecase{
		users:     users,
		hasher:    hasher,
		issuer:    issuer,
		email:     emailSender,
		logger:    logger.With("component", "auth_usecase"),
		dummyHash: dummyHash,
	}
}

// Register creates a new account. The plaintext password is hashed
// immediately and never stored or logged.
func (u *AuthUsecase) Register(ctx context.Context, emailAddr, plaintext string) (*domain.User, error) {
	if err := password.CheckPolicy(plaintext); err != nil {
		return nil, err
	}

	_, err := u.users.FindByEmail(ctx, emailAddr)
	if err == nil {
		return nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := u.hasher.Hash(plaintext)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// The unique index still backstops the pre-check above: two
	// concurrent registrations race here and the loser gets
	// ErrEmailTaken from Create.
	user, err := u.users.Create(ctx, emailAddr, hash)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := u.email.Send(ctx, user.Email, "Welcome to Converter API",
		"<p>Your account is ready. Sign in at POST /auth/login to get an access token.</p>"); err != nil {
		u.logger.ErrorContext(ctx, "send welcome email", "error", err)
	}

	return user, nil
}

// Login verifies credentials and returns a signed access token. Unknown
// email and wrong password return the same ErrInvalidCredentials value,
// and both paths run one bcrypt comparison.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, plaintext string, now time.Time) (string, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			u.hasher.Verify(plaintext, u.dummyHash)
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !u.hasher.Verify(plaintext, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", domain.ErrAccountInactive
	}

	signed, err := u.issuer.Issue(user.ID, now)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// CurrentUser loads the account behind a validated token subject.
func (u *AuthUsecase) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
