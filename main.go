package main

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-engine/internal/cryptorand"
	"github.com/robalobadob/wordle/apps/go-engine/internal/db"
	"github.com/robalobadob/wordle/apps/go-engine/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-engine/internal/store"
	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	lists, err := words.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	log.Info().
		Int("answers", lists.Answers.Len()).
		Int("allowed", lists.Allowed.Len()).
		Int("skipped", lists.Skipped).
		Msg("word lists loaded")

	sqlDB, err := db.Open(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}
	if err := db.Migrate(sqlDB); err != nil {
		log.Fatal().Err(err).Msg("migrate db")
	}

	maxTurns, err := strconv.Atoi(getEnv("MAX_TURNS", "6"))
	if err != nil || maxTurns <= 0 {
		log.Fatal().Str("MAX_TURNS", os.Getenv("MAX_TURNS")).Msg("MAX_TURNS must be a positive integer")
	}

	srv := httpserver.New(store.NewMemoryStore(), sqlDB, httpserver.Config{
		Lists:     lists,
		MaxTurns:  maxTurns,
		DailySalt: getEnv("DAILY_SALT", "local_dev_salt"),
		Rand:      cryptorand.New(),
	})

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-c
		sqlDB.Close()
		os.Exit(1)
	}()

	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting go-engine")
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
