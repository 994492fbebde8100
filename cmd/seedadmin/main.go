// seedadmin creates or resets an admin account. Accounts are only ever
// provisioned from the command line; the HTTP surface has no sign-up.
//
//	seedadmin -email editor@example.com -password 's3cret'
package main

import (
	"context"
	"flag"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/CoalValleyTech/span-sportshub/internal/auth"
	"github.com/CoalValleyTech/span-sportshub/internal/config"
	"github.com/CoalValleyTech/span-sportshub/internal/store"
)

func main() {
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal().Msg("Both -email and -password are required")
	}

	cfg := config.Load()

	db, err := store.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	authService := auth.NewService(db, nil, cfg.AdminEmails)
	if err := authService.SetPassword(ctx, *email, *password); err != nil {
		log.Fatal().Err(err).Msg("Failed to set password")
	}

	if !authService.IsAdmin(*email) {
		log.Warn().Str("email", *email).Msg("Account created but not on the admin allow list; set ADMIN_EMAILS")
	}
	log.Info().Str("email", *email).Msg("Admin account ready")
}
