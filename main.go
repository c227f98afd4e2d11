package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hofgolf/go-server/internal/game"
	"github.com/hofgolf/go-server/internal/httpserver"
	"github.com/hofgolf/go-server/internal/modes"
	"github.com/hofgolf/go-server/internal/notify"
	"github.com/hofgolf/go-server/internal/pools"
	"github.com/hofgolf/go-server/internal/refdata"
	"github.com/hofgolf/go-server/internal/stats"
	"github.com/hofgolf/go-server/internal/store"
	"github.com/hofgolf/go-server/internal/targets"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ref, err := refdata.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load reference data")
	}
	reg, err := modes.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load modes")
	}

	statsDB, err := openStatsDB(getEnv("STATS_DB", "./data/lahman.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open stats db")
	}
	stateDB, err := openStateDB(getEnv("STATE_DB", "./data/state.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open state db")
	}

	st, err := store.NewSQLite(stateDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init state store")
	}

	ctx := context.Background()
	session, err := game.NewSession(ctx, reg, st)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to restore session")
	}

	statsStore := stats.New(statsDB)
	scanner := targets.NewScanner(statsStore, targets.NewCatalog(ref))
	resolver := pools.NewResolver(statsStore, scanner, ref.FreePickTeams)

	hub := notify.New(session)
	hub.Start()
	go hub.StartRoundClock(ctx)
	session.SetBroadcaster(hub)

	srv := httpserver.New(session, reg, statsStore, scanner, resolver, hub)
	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting hofgolf-go")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
