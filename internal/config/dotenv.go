package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	Port                     string
	Env                      string
	LogLevel                 string
	DatabaseURL              string
	DatabasePath             string
	SeedDatabaseURL          string
	SeedTimeoutSeconds       int
	MaxRoomIDLength          int
	PreviewChars             int
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	DBConnMaxIdleTimeSeconds int
	DBBusyTimeoutMillis      int
	CORSAllowOrigins         []string
}

func Default() Config {
	return Config{
		Port:                     "8080",
		Env:                      "dev",
		LogLevel:                 "info",
		DatabasePath:             "guess_game.db",
		SeedTimeoutSeconds:       15,
		MaxRoomIDLength:          20,
		PreviewChars:             100,
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		DBConnMaxIdleTimeSeconds: 60,
		DBBusyTimeoutMillis:      5000,
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("PORT"); raw != "" {
		cfg.Port = raw
	}
	if raw := os.Getenv("ENV"); raw != "" {
		cfg.Env = raw
	}
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		cfg.LogLevel = strings.ToLower(raw)
	}
	if raw := os.Getenv("DATABASE_URL"); raw != "" {
		cfg.DatabaseURL = raw
	}
	if raw := os.Getenv("DATABASE_PATH"); raw != "" {
		cfg.DatabasePath = raw
	}
	if raw := os.Getenv("SEED_DATABASE_URL"); raw != "" {
		cfg.SeedDatabaseURL = raw
	}
	if raw := os.Getenv("SEED_TIMEOUT_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.SeedTimeoutSeconds = value
		}
	}
	if raw := os.Getenv("MAX_ROOM_ID_LENGTH"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.MaxRoomIDLength = value
		}
	}
	if raw := os.Getenv("PREVIEW_CHARS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			cfg.PreviewChars = value
		}
	}
	if raw := os.Getenv("DB_MAX_OPEN_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxOpenConns = value
		}
	}
	if raw := os.Getenv("DB_MAX_IDLE_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxIdleConns = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_LIFETIME_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxLifetimeSeconds = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_IDLE_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxIdleTimeSeconds = value
		}
	}
	if raw := os.Getenv("DB_BUSY_TIMEOUT_MS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			cfg.DBBusyTimeoutMillis = value
		}
	}
	if raw := os.Getenv("CORS_ALLOW_ORIGINS"); raw != "" {
		cfg.CORSAllowOrigins = splitList(raw)
	}
	return cfg
}

// UsesPostgres reports whether the store is a Postgres server rather than the
// local database file.
func (c Config) UsesPostgres() bool {
	return c.DatabaseURL != ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
