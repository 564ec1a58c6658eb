package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/NicolasSauli/Projet-Wordle/internal/httpserver"
	"github.com/NicolasSauli/Projet-Wordle/internal/realtime"
	"github.com/NicolasSauli/Projet-Wordle/internal/store"
	"github.com/NicolasSauli/Projet-Wordle/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Warn().Msg("JWT_SECRET is empty; tokens are not secure")
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	db, err := store.OpenDB(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := store.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	users := store.NewUsers(db)
	lobbies := store.NewLobbies()

	hub := realtime.NewHub(log.Logger)
	coord := realtime.NewCoordinator(hub, lobbies, users, words.RandomAnswer, log.Logger)
	ws := realtime.NewWSServer(coord, lobbies, users, log.Logger)

	srv := httpserver.New(users, lobbies, coord, ws)
	port := getEnv("PORT", "8000")
	log.Info().Str("port", port).Int("words", words.Count()).Msg("starting wordle server")
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
