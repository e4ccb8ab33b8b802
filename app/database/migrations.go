package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/pkg/errors"
)

type migration struct {
	name  string
	query string
}

var migrations = []migration{
	{"users table", `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`},
	{"sessions table", `
		CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`},
	{"classes table", `
		CREATE TABLE IF NOT EXISTS classes (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			day TEXT NOT NULL,
			period TEXT NOT NULL,
			room TEXT NOT NULL,
			user_id BIGINT REFERENCES users(id)
		)`},
	{"classes owner index", `CREATE INDEX IF NOT EXISTS classes_user_id_idx ON classes (user_id)`},
	{"attendance table", `
		CREATE TABLE IF NOT EXISTS attendance (
			id BIGSERIAL PRIMARY KEY,
			class_id BIGINT NOT NULL REFERENCES classes(id) ON DELETE CASCADE,
			date TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT ''
		)`},
	{"evaluation table", `
		CREATE TABLE IF NOT EXISTS evaluation (
			id BIGSERIAL PRIMARY KEY,
			class_id BIGINT NOT NULL REFERENCES classes(id) ON DELETE CASCADE,
			method TEXT NOT NULL,
			percentage INTEGER NOT NULL
		)`},
	{"assignments table", `
		CREATE TABLE IF NOT EXISTS assignments (
			id BIGSERIAL PRIMARY KEY,
			class_id BIGINT NOT NULL REFERENCES classes(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			deadline TEXT NOT NULL,
			submitted BOOLEAN NOT NULL DEFAULT false,
			note TEXT NOT NULL DEFAULT ''
		)`},
}

// RunMigrations creates the schema if it does not exist yet. It is safe to run on every start.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	log.Println("Running database migrations...")

	for _, m := range migrations {
		if _, err := db.ExecContext(ctx, m.query); err != nil {
			log.Printf("Failed to run migration for %s: %v", m.name, err)
			return errors.Wrapf(err, "migration %q", m.name)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
