package db

import (
	"errors"
	"fmt"
	"time"

	"picture-guess/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Open connects to Postgres when DATABASE_URL is set and to the local
// database file otherwise.
func Open(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.UsesPostgres() {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		if cfg.DatabasePath == "" {
			return nil, errors.New("DATABASE_PATH is not set")
		}
		dialector = sqlite.Open(sqliteDSN(cfg.DatabasePath, cfg.DBBusyTimeoutMillis))
	}
	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeSeconds) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DBConnMaxIdleTimeSeconds) * time.Second)
	return conn, nil
}

// OpenFile opens a local database file with default settings.
func OpenFile(path string) (*gorm.DB, error) {
	cfg := config.Default()
	cfg.DatabasePath = path
	cfg.LogLevel = "silent"
	return Open(cfg)
}

// Close releases the underlying connection pool.
func Close(conn *gorm.DB) error {
	if conn == nil {
		return nil
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// sqliteDSN opens write transactions with BEGIN IMMEDIATE. A deferred
// transaction that reads before writing cannot upgrade its lock while another
// writer holds one, and fails without waiting for the busy timeout.
func sqliteDSN(path string, busyTimeoutMillis int) string {
	return fmt.Sprintf("file:%s?_busy_timeout=%d&_txlock=immediate", path, busyTimeoutMillis)
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "info", "warn":
		return gormlogger.Warn
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Silent
	}
}
