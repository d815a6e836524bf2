// seed inserts test accounts into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dbfpn/account-service/internal/infrastructure/postgres"
)

const (
	verifiedEmail = "seed@test.local"
	pendingEmail  = "pending@test.local"
	pendingOTP    = "123456"
)

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	if err := postgres.Migrate(dbURL); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	// Verified user with a complete profile, ready to sign in.
	var userID int64
	err = pool.QueryRow(ctx, `
		INSERT INTO users (email, email_verified, name, username)
		VALUES ($1, NOW(), 'Seed User', 'seeduser')
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		verifiedEmail,
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert user: %v", err)
	}

	// Pending registration with a known code, ten minutes to verify.
	expiresAt := time.Now().Add(10 * time.Minute)
	_, err = pool.Exec(ctx, `
		INSERT INTO pending_registrations (email, otp, attempts, expires_at)
		VALUES ($1, $2, 0, $3)
		ON CONFLICT (email) DO UPDATE SET otp = $2, attempts = 0, expires_at = $3, created_at = NOW()`,
		pendingEmail, pendingOTP, expiresAt,
	)
	if err != nil {
		log.Fatalf("upsert pending registration: %v", err)
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Verified user:        %s  (id %d, profile complete)\n", verifiedEmail, userID)
	fmt.Printf("  Pending registration: %s  (code %s, expires %s)\n",
		pendingEmail, pendingOTP, expiresAt.Format(time.RFC3339))
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Finish the pending registration:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/register/verify \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"otp\":\"%s\"}'\n", pendingEmail, pendingOTP)
	fmt.Println("    # → {\"success\":true,\"user_id\":N,\"token\":\"eyJ...\"}")
	fmt.Println()
	fmt.Println("  Sign in as the verified user:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/auth/magic-link \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\"}'\n", verifiedEmail)
	fmt.Println()
	fmt.Println("    # Copy the link from the server log, then:")
	fmt.Println()
	fmt.Println("    curl -s 'http://localhost:8080/auth/verify?token=TOKEN'")
	fmt.Println("    # → {\"token\":\"eyJ...\"}")
	fmt.Println()
	fmt.Println("  Complete a profile:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Printf("    curl -s -X POST http://localhost:8080/profile/complete \\\n")
	fmt.Printf("      -H \"Authorization: Bearer $JWT\" -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"name\":\"New User\",\"username\":\"newuser\"}'\n")
}
