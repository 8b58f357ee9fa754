// Command keygen generates an RSA key pair for local development and
// prints it as the base64-encoded PEM values the server expects in
// JWT_PRIVATE_KEY_BASE64 and JWT_PUBLIC_KEY_BASE64.
package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"flag"
	"fmt"
	"log"
)

func main() {
	bits := flag.Int("bits", 2048, "RSA key size in bits")
	flag.Parse()

	key, err := rsa.GenerateKey(rand.Reader, *bits)
	if err != nil {
		log.Fatalf("generate key: %v", err)
	}

	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		log.Fatalf("marshal public key: %v", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubBytes,
	})

	fmt.Printf("JWT_PRIVATE_KEY_BASE64=%s\n", base64.StdEncoding.EncodeToString(privPEM))
	fmt.Printf("JWT_PUBLIC_KEY_BASE64=%s\n", base64.StdEncoding.EncodeToString(pubPEM))
}
