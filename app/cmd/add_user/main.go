package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"class-tracker/app/config"
	"class-tracker/app/database"
	"class-tracker/app/models"
	"class-tracker/app/routes/auth"
)

func main() {
	username := flag.String("username", "", "login name of the new user")
	password := flag.String("password", "", "password of the new user")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Println("Usage: add_user -username NAME -password SECRET")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		fmt.Println("DATABASE_URL must be set")
		os.Exit(1)
	}

	// Initialize database connection
	db, err := config.OpenDB(cfg)
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.RunMigrations(ctx, db); err != nil {
		fmt.Printf("Error preparing schema: %v\n", err)
		os.Exit(1)
	}

	hash, err := auth.HashPassword(*password, cfg.Auth.BcryptCost)
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		os.Exit(1)
	}

	// Create user
	user := &models.User{Username: *username, PasswordHash: hash}
	store := database.NewPostgresStore(db)
	if err := store.CreateUser(ctx, user); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User created successfully: %s (id %d)\n", user.Username, user.ID)
}
