package main

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bm254now/team-coconut/internal/config"
	"github.com/bm254now/team-coconut/internal/db"
	"github.com/bm254now/team-coconut/internal/gateway"
	"github.com/bm254now/team-coconut/internal/registry"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Warn().Err(err).Msg("failed to load .env")
	}
	cfg := config.Load()

	var results gateway.ResultSaver
	conn, err := db.Open(cfg)
	if err != nil {
		// Results persistence is optional; active rooms live in memory only.
		log.Warn().Err(err).Msg("running without result persistence")
	} else {
		// Dev convenience; production schemas come from cmd/migrate.
		if os.Getenv("AUTO_MIGRATE") == "true" {
			if err := db.Migrate(conn); err != nil {
				log.Fatal().Err(err).Msg("auto-migration failed")
			}
		}
		results = db.NewResultStore(conn)
	}

	reg := registry.New(cfg)
	gw := gateway.New(cfg, reg, results)

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}
	log.Info().Str("addr", addr).Int("party_size", cfg.PartySize).Msg("game server listening")
	if err := http.ListenAndServe(addr, gw.Routes()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
