package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// AuthMode selects whether the app runs with per-user logins or as a single tenant.
type AuthMode string

const (
	AuthLogin  AuthMode = "login"
	AuthSingle AuthMode = "single"
)

type Config struct {
	Port        int
	DatabaseURL string
	AuthMode    AuthMode
	Timezone    *time.Location
	Auth        AuthConfig
	Pool        PoolConfig
}

type AuthConfig struct {
	JWTSecret  []byte
	SessionTTL time.Duration
	BcryptCost int
}

type PoolConfig struct {
	MaxOpenConns int
	MaxIdleConns int
}

// LoginEnabled reports whether identity routes and session checks are active.
func (c *Config) LoginEnabled() bool {
	return c.AuthMode != AuthSingle
}

// Addr returns the listen address for the configured port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("port", 5000)
	v.SetDefault("database_url", "")
	v.SetDefault("auth_mode", string(AuthLogin))
	v.SetDefault("jwt_secret", "class-tracker-secret-key") // Default for development
	v.SetDefault("session_ttl", 24*time.Hour)
	v.SetDefault("bcrypt_cost", 12)
	v.SetDefault("db_max_open_conns", 25)
	v.SetDefault("db_max_idle_conns", 5)
	v.SetDefault("timezone", "")
	v.AutomaticEnv()
	return v
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.Wrap(err, "config: load .env")
		}
	}
	return fromViper(newViper())
}

func fromViper(v *viper.Viper) (*Config, error) {
	mode := AuthMode(strings.ToLower(strings.TrimSpace(v.GetString("auth_mode"))))
	switch mode {
	case AuthLogin, AuthSingle:
	default:
		return nil, errors.Errorf("config: unknown AUTH_MODE %q", mode)
	}

	port := v.GetInt("port")
	if port <= 0 || port > 65535 {
		return nil, errors.Errorf("config: invalid PORT %d", port)
	}

	loc := time.Local
	if name := v.GetString("timezone"); name != "" {
		l, err := time.LoadLocation(name)
		if err != nil {
			return nil, errors.Wrapf(err, "config: load TIMEZONE %q", name)
		}
		loc = l
	}

	cfg := &Config{
		Port:        port,
		DatabaseURL: v.GetString("database_url"),
		AuthMode:    mode,
		Timezone:    loc,
		Auth: AuthConfig{
			JWTSecret:  []byte(v.GetString("jwt_secret")),
			SessionTTL: v.GetDuration("session_ttl"),
			BcryptCost: v.GetInt("bcrypt_cost"),
		},
		Pool: PoolConfig{
			MaxOpenConns: v.GetInt("db_max_open_conns"),
			MaxIdleConns: v.GetInt("db_max_idle_conns"),
		},
	}
	if cfg.Auth.SessionTTL <= 0 {
		return nil, errors.New("config: SESSION_TTL must be positive")
	}
	return cfg, nil
}

// OpenDB opens and pings the Postgres pool described by cfg.
func OpenDB(cfg *Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "open database connection")
	}

	// Set connection pool settings
	db.SetMaxOpenConns(cfg.Pool.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Pool.MaxIdleConns)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database connection failed")
	}

	log.Println("Database connected successfully")
	return db, nil
}
