// seed applies migrations and inserts the demo accounts and links into the
// Postgres database named by DATABASE_URL.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ErlanBelekov/tinyapp/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/tinyapp/internal/password"
	"github.com/ErlanBelekov/tinyapp/internal/seed"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	logger := slog.New(tint.NewHandler(os.Stdout, nil))

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		log.Fatalf("migrate: %v", err)
	}

	users := postgres.NewUserRepository(pool)
	links := postgres.NewLinkRepository(pool)
	if err := seed.Demo(ctx, users, links, password.NewHasher(bcrypt.DefaultCost), logger); err != nil {
		pool.Close()
		log.Fatalf("seed: %v", err)
	}

	userCount, _ := users.Count(ctx)
	linkCount, _ := links.Count(ctx)

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Users: %d\n", userCount)
	fmt.Printf("  Links: %d\n", linkCount)
	fmt.Println()
	fmt.Println("Log in at http://localhost:8080/login with:")
	fmt.Println("    user@example.com  / purple-monkey-dinosaur")
	fmt.Println("    user2@example.com / dishwasher-funk")
	fmt.Println()
	fmt.Println("Then try http://localhost:8080/u/b2xVn2")
}
