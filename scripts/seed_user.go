package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/khoahotran/video-hub/adapters/persistence"
	"github.com/khoahotran/video-hub/internal/config"
	"github.com/khoahotran/video-hub/internal/domain/user"
	"github.com/khoahotran/video-hub/pkg/auth"
	"github.com/khoahotran/video-hub/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	appLogger, err := logger.New(logger.Options{Env: cfg.App.Env, Service: "video-hub-seed", Level: cfg.App.LogLevel})
	if err != nil {
		log.Fatalf("cannot init logger: %v", err)
	}
	defer appLogger.Sync()

	email := os.Getenv("SEED_EMAIL")
	password := os.Getenv("SEED_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("SEED_EMAIL and SEED_PASSWORD are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	ctx := context.Background()
	store, err := persistence.OpenStore(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("cannot open store: %v", err)
	}
	defer store.Close(ctx)

	u := &user.User{ID: uuid.New(), Email: email, PasswordHash: hash}
	if err := store.Users.Upsert(ctx, u); err != nil {
		log.Fatalf("cannot add user: %v", err)
	}

	log.Printf("added or updated user '%s' (%s) successfully", email, u.ID)
}
