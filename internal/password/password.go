package password

import (
	"fmt"
	"unicode"

	"github.com/azimbek-dev/converter-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// Hasher wraps bcrypt hashing and verification. bcrypt embeds a random
// salt in each hash, so hashing the same password twice yields different
// outputs, and comparison is constant-time inside the library.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plaintext matches storedHash. Any failure,
// including a malformed stored hash, reads as a plain mismatch.
func (h *Hasher) Verify(plaintext, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}

// CheckPolicy enforces the registration password policy: at least 8
// characters, at least one digit, at least one uppercase letter.
func CheckPolicy(plaintext string) error {
	if len(plaintext) < 8 {
		return domain.ErrWeakPassword
	}
	var hasDigit, hasUpper bool
	for _, r := range plaintext {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	if !hasDigit || !hasUpper {
		return domain.ErrWeakPassword
	}
	return nil
}
