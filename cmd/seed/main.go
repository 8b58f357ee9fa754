// seed inserts a demo user into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/azimbek-dev/converter-api/internal/infrastructure/postgres"
	"github.com/azimbek-dev/converter-api/internal/password"
	"github.com/google/uuid"
)

const (
	seedEmail    = "demo@test.local"
	seedPassword = "Demo1234"
)

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	if err := postgres.Migrate(ctx, dbURL); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := password.NewHasher(0).Hash(seedPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Idempotent re-runs: keep the existing user if already seeded.
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id`,
		uuid.NewString(), seedEmail, hash,
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:     %s\n", seedEmail)
	fmt.Printf("  Password: %s\n", seedPassword)
	fmt.Printf("  User ID:  %s\n", userID)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println("    # → {\"access_token\":\"eyJ...\",\"token_type\":\"bearer\"}")
	fmt.Println()
	fmt.Println("  Step 2 — call a protected route:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/api/v1/users/me -H \"Authorization: Bearer $JWT\"")
}
