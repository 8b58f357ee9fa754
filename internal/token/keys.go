package token

import (
	"crypto/rsa"
	"encoding/base64"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// KeyPair holds the RSA keys for RS256 signing. The private key stays on
// the issuing side only; a verifier needs nothing but the public key.
// Loaded once at startup and shared read-only across requests.
type KeyPair struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
}

// LoadKeyPair decodes a base64-encoded PEM private/public key pair.
// A missing or malformed key is a startup configuration error; the
// caller is expected to refuse to serve.
func LoadKeyPair(privateB64, publicB64 string) (*KeyPair, error) {
	priv, err := decodePrivateKey(privateB64)
	if err != nil {
		return nil, err
	}
	pub, err := DecodePublicKey(publicB64)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Private: priv, Public: pub}, nil
}

func decodePrivateKey(b64 string) (*rsa.PrivateKey, error) {
	pemBytes, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode private key base64: %w", err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key PEM: %w", err)
	}
	return key, nil
}

// DecodePublicKey parses a base64-encoded PEM public key. Exposed
// separately so a verify-only service can load just the public half.
func DecodePublicKey(b64 string) (*rsa.PublicKey, error) {
	pemBytes, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode public key base64: %w", err)
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key PEM: %w", err)
	}
	return key, nil
}
