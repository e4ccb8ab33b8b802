package main

import (
	"context"
	"log"
	"time"

	"class-tracker/app/config"
	"class-tracker/app/database"
	"class-tracker/app/database/memory"
	"class-tracker/app/server"
)

func openStore(cfg *config.Config) (database.Store, error) {
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL is not set, using the in-memory store (data is lost on exit)")
		return memory.New(), nil
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	// Run database migrations
	if err := database.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}
	return database.NewPostgresStore(db), nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	time.Local = cfg.Timezone
	log.Printf("Application time zone set to: %s", time.Local.String())

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal("Failed to open store:", err)
	}
	defer store.Close()

	app := server.New(cfg, store)

	log.Printf("Server starting on %s (auth mode: %s)", cfg.Addr(), cfg.AuthMode)
	if err := app.Listen(cfg.Addr()); err != nil {
		log.Println("Server stopped:", err)
	}
}
