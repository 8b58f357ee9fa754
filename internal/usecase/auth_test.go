package usecase_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/azimbek-dev/converter-api/internal/domain"
	"github.com/azimbek-dev/converter-api/internal/password"
	"github.com/azimbek-dev/converter-api/internal/token"
	"github.com/azimbek-dev/converter-api/internal/usecase"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ---- fakes ----

type fakeUserRepo struct {
	findByEmail func(ctx context.Context, email string) (*domain.User, error)
	findByID    func(ctx context.Context, id string) (*domain.User, error)
	create      func(ctx context.Context, email, passwordHash string) (*domain.User, error)
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findByEmail(ctx, email)
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findByID(ctx, id)
}

func (r *fakeUserRepo) Create(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	return r.create(ctx, email, passwordHash)
}

type fakeEmailSender struct {
	send func(ctx context.Context, to, subject, body string) error
}

func (s *fakeEmailSender) Send(ctx context.Context, to, subject, body string) error {
	if s.send == nil {
		return nil
	}
	return s.send(ctx, to, subject, body)
}

// ---- helpers ----

var testSigningKey = mustGenerateKey()

func mustGenerateKey() *rsa.PrivateKey {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}
	return key
}

const tokenTTL = time.Hour

func newUsecase(repo *fakeUserRepo, sender *fakeEmailSender) *usecase.AuthUsecase {
	hasher := password.NewHasher(bcrypt.MinCost)
	issuer := token.NewIssuer(testSigningKey, tokenTTL)
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return usecase.NewAuthUsecase(repo, hasher, issuer, sender, logger)
}

func notFoundRepo() *fakeUserRepo {
	return &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
}

func activeUser(hash string) *domain.User {
	return &domain.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
}

func hashOf(t *testing.T, plaintext string) string {
	t.Helper()
	h, err := password.NewHasher(bcrypt.MinCost).Hash(plaintext)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return h
}

// ---- Register ----

func TestRegister_WeakPassword_Rejected(t *testing.T) {
	uc := newUsecase(notFoundRepo(), &fakeEmailSender{})

	for _, pw := range []string{"short1A", "nouppercase1", "NoDigitsHere"} {
		_, err := uc.Register(context.Background(), "alice@example.com", pw)
		if !errors.Is(err, domain.ErrWeakPassword) {
			t.Errorf("Register with %q: err = %v, want ErrWeakPassword", pw, err)
		}
	}
}

func TestRegister_EmailTaken_Rejected(t *testing.T) {
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return activeUser("irrelevant"), nil
		},
	}

	_, err := newUsecase(repo, &fakeEmailSender{}).Register(context.Background(), "alice@example.com", "Secret123!")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegister_ConcurrentDuplicate_SurfacesEmailTaken(t *testing.T) {
	// The pre-check misses the duplicate; the unique index rejects the insert.
	repo := notFoundRepo()
	repo.create = func(_ context.Context, _, _ string) (*domain.User, error) {
		return nil, domain.ErrEmailTaken
	}

	_, err := newUsecase(repo, &fakeEmailSender{}).Register(context.Background(), "alice@example.com", "Secret123!")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	const plaintext = "Secret123!"
	var storedHash string

	repo := notFoundRepo()
	repo.create = func(_ context.Context, email, passwordHash string) (*domain.User, error) {
		storedHash = passwordHash
		u := activeUser(passwordHash)
		u.Email = email
		return u, nil
	}

	user, err := newUsecase(repo, &fakeEmailSender{}).Register(context.Background(), "alice@example.com", plaintext)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email = %q", user.Email)
	}

	if storedHash == plaintext {
		t.Fatal("plaintext password was persisted")
	}
	if !password.NewHasher(bcrypt.MinCost).Verify(plaintext, storedHash) {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestRegister_WelcomeEmailFailure_DoesNotFailRegistration(t *testing.T) {
	repo := notFoundRepo()
	repo.create = func(_ context.Context, email, passwordHash string) (*domain.User, error) {
		u := activeUser(passwordHash)
		u.Email = email
		return u, nil
	}
	sender := &fakeEmailSender{
		send: func(_ context.Context, _, _, _ string) error {
			return errors.New("smtp unavailable")
		},
	}

	if _, err := newUsecase(repo, sender).Register(context.Background(), "alice@example.com", "Secret123!"); err != nil {
		t.Errorf("register failed on email error: %v", err)
	}
}

// ---- Login ----

func TestLogin_UnknownEmailAndWrongPassword_SameError(t *testing.T) {
	hash := hashOf(t, "Secret123!")

	unknownRepo := notFoundRepo()
	knownRepo := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return activeUser(hash), nil
		},
	}

	_, errUnknown := newUsecase(unknownRepo, &fakeEmailSender{}).
		Login(context.Background(), "bob@example.com", "Whatever1", time.Now())
	_, errWrongPass := newUsecase(knownRepo, &fakeEmailSender{}).
		Login(context.Background(), "alice@example.com", "WrongPass1", time.Now())

	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", errUnknown)
	}
	if !errors.Is(errWrongPass, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", errWrongPass)
	}
	if errUnknown != errWrongPass {
		t.Error("the two failure modes return different error values")
	}
}

func TestLogin_InactiveAccount_Rejected(t *testing.T) {
	hash := hashOf(t, "Secret123!")
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			u := activeUser(hash)
			u.IsActive = false
			return u, nil
		},
	}

	_, err := newUsecase(repo, &fakeEmailSender{}).
		Login(context.Background(), "alice@example.com", "Secret123!", time.Now())
	if !errors.Is(err, domain.ErrAccountInactive) {
		t.Errorf("err = %v, want ErrAccountInactive", err)
	}
}

func TestLogin_Success_IssuesTokenForUser(t *testing.T) {
	hash := hashOf(t, "Secret123!")
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return activeUser(hash), nil
		},
	}

	now := time.Now()
	signed, err := newUsecase(repo, &fakeEmailSender{}).
		Login(context.Background(), "alice@example.com", "Secret123!", now)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	subject, err := token.NewValidator(&testSigningKey.PublicKey, 0).Validate(signed, now)
	if err != nil {
		t.Fatalf("validate issued token: %v", err)
	}
	if subject != "user-1" {
		t.Errorf("subject = %q, want user-1", subject)
	}

	// Claims carry the expected expiry window.
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(signed, claims); err != nil {
		t.Fatalf("parse claims: %v", err)
	}
	wantExp := now.Add(tokenTTL).Unix()
	if got := claims.ExpiresAt.Unix(); got != wantExp {
		t.Errorf("exp = %d, want %d", got, wantExp)
	}
}

func TestLogin_RepoError_Propagates(t *testing.T) {
	repoErr := errors.New("db down")
	repo := &fakeUserRepo{
		findByEmail: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, repoErr
		},
	}

	_, err := newUsecase(repo, &fakeEmailSender{}).
		Login(context.Background(), "alice@example.com", "Secret123!", time.Now())
	if !errors.Is(err, repoErr) {
		t.Errorf("want wrapped repoErr, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Error("infrastructure error must not be reported as invalid credentials")
	}
}

// ---- CurrentUser ----

func TestCurrentUser_NotFound(t *testing.T) {
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	_, err := newUsecase(repo, &fakeEmailSender{}).CurrentUser(context.Background(), "missing")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestCurrentUser_Found(t *testing.T) {
	repo := &fakeUserRepo{
		findByID: func(_ context.Context, id string) (*domain.User, error) {
			u := activeUser("hash")
			u.ID = id
			return u, nil
		},
	}

	user, err := newUsecase(repo, &fakeEmailSender{}).CurrentUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if user.ID != "user-1" {
		t.Errorf("id = %q, want user-1", user.ID)
	}
}
