package main

import (
	"context"
	"log"

	"class-tracker/app/config"
	"class-tracker/app/database"
)

func main() {
	log.Println("Starting schema migration...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL must be set to run migrations")
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := database.RunMigrations(context.Background(), db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Schema migration completed successfully!")
}
