// Command devtoken mints a bearer token for local development, signed with
// the JWT_SECRET of the current configuration.
//
//	go run ./cmd/devtoken -company <uuid> -role gestionnaire
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/config"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/middleware"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	company := flag.String("company", "", "company id (random when empty)")
	user := flag.String("user", "", "user id (random when empty)")
	role := flag.String("role", middleware.RoleAdmin, "admin | gestionnaire | lecteur")
	ttl := flag.Duration("ttl", 8*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.IsProduction() {
		log.Fatal().Msg("refusing to mint tokens in production")
	}

	if *company == "" {
		*company = uuid.NewString()
	}
	if *user == "" {
		*user = uuid.NewString()
	}
	for _, id := range []string{*company, *user} {
		if _, err := uuid.Parse(id); err != nil {
			log.Fatal().Str("id", id).Msg("not a uuid")
		}
	}

	tok, err := middleware.SignToken(cfg.JWTSecret, *user, *company, *role, *ttl)
	if err != nil {
		log.Fatal().Err(err).Msg("sign token")
	}
	log.Info().Str("company_id", *company).Str("user_id", *user).Str("role", *role).Msg("token issued")
	fmt.Println(tok)
}
