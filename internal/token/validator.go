package token

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/azimbek-dev/converter-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Validator checks access tokens with the public key only. The expected
// algorithm is pinned to RS256 on the validator side; a token whose
// header declares anything else is rejected regardless of its signature.
type Validator struct {
	key    *rsa.PublicKey
	leeway time.Duration
}

// NewValidator builds a validator with the given clock-skew tolerance.
// leeway of zero means exact expiry comparison.
func NewValidator(key *rsa.PublicKey, leeway time.Duration) *Validator {
	return &Validator{key: key, leeway: leeway}
}

// Validate parses and checks tokenString against now and returns the
// subject claim. Failures map to domain.ErrTokenMalformed,
// domain.ErrBadSignature, or domain.ErrTokenExpired, in that stage order.
func (v *Validator) Validate(tokenString string, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, domain.ErrBadSignature
		}
		return v.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", domain.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrTokenUnverifiable):
			return "", domain.ErrBadSignature
		default:
			return "", domain.ErrTokenMalformed
		}
	}

	if claims.Subject == "" {
		return "", domain.ErrTokenMalformed
	}
	return claims.Subject, nil
}
