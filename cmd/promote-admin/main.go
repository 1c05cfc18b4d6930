// Command promote-admin grants the admin role to an existing user. Role
// promotion normally requires an admin token, so the very first admin has
// to be bootstrapped from the CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/artoasis/artoasis-backend/internal/config"
	"github.com/artoasis/artoasis-backend/internal/database"
	"github.com/artoasis/artoasis-backend/internal/logger"
	"github.com/artoasis/artoasis-backend/internal/model"
	"github.com/artoasis/artoasis-backend/internal/repository"
	"github.com/artoasis/artoasis-backend/internal/service"
)

func main() {
	var email string
	flag.StringVar(&email, "email", "", "Email of the user to promote")
	flag.Parse()

	if email == "" {
		fmt.Println("Usage: promote-admin -email <user@example.com>")
		os.Exit(1)
	}

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Logic ─────────────────────────────────────────────────────────
	userService := service.NewUserService(repository.NewUserRepository(pool))

	user, err := userService.GetByEmail(ctx, email)
	if err != nil {
		log.Fatal().Err(err).Msg("Lookup failed")
	}
	if user == nil {
		log.Fatal().Str("email", email).Msg("No user with that email; sign up first")
	}

	if err := userService.Promote(ctx, user.ID, model.RoleAdmin); err != nil {
		log.Fatal().Err(err).Msg("Promotion failed")
	}

	fmt.Printf("Success! %s (%s) is now an admin\n", user.Name, user.Email)
}
