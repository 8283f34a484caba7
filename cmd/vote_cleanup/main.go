package main

import (
	"context"

	"reviewdesk/internal/config"
	"reviewdesk/internal/database"
	"reviewdesk/internal/logger"
	"reviewdesk/internal/repository"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// vote_cleanup removes ledger rows whose reply no longer exists.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.AppEnv, cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	removed, err := repository.NewVoteRepository(db).DeleteOrphans(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("cleanup review_reply_votes failed")
	}

	log.Info().Int64("review_reply_votes", removed).Msg("vote cleanup completed")
}
