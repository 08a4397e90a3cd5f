package config

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	DB   *gorm.DB
	dbMu sync.Mutex
)

// ConnectDatabase opens the database configured in cfg and stores it as the shared handle.
// SQLite runs on a single connection with foreign keys enforced.
func ConnectDatabase(cfg *Config) error {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseURL)
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(cfg.LogLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.DatabaseDriver == DriverSQLite {
		if err := configureSQLite(db); err != nil {
			return err
		}
	}

	DB = db
	log.Printf("Database connection established successfully (%s)", cfg.DatabaseDriver)
	return nil
}

// configureSQLite pins the pool to one connection and turns on foreign key enforcement.
// The pragma is per connection, so it must run after the pool is pinned.
func configureSQLite(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return nil
}

// NewGormLogger maps LOG_LEVEL onto gorm's SQL logger
func NewGormLogger(level string) logger.Interface {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Default.LogMode(logger.Silent)
	case "error":
		return logger.Default.LogMode(logger.Error)
	case "debug":
		return logger.Default.LogMode(logger.Info)
	default:
		return logger.Default.LogMode(logger.Warn)
	}
}

// Connection returns the shared database handle, opening, migrating and (when AUTO_SEED
// is on) seeding it on first use. Later calls reuse the same handle.
func Connection() (*gorm.DB, error) {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		return DB, nil
	}

	cfg := GetConfig()
	if cfg == nil {
		loaded, err := Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := ConnectDatabase(cfg); err != nil {
		return nil, err
	}

	if err := Migrate(DB); err != nil {
		DB = nil
		return nil, err
	}

	if cfg.AutoSeed {
		if err := Seed(DB); err != nil {
			DB = nil
			return nil, err
		}
	}

	return DB, nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	dbMu.Lock()
	defer dbMu.Unlock()
	DB = db
}

// CloseDatabase closes the shared handle, if any
func CloseDatabase() error {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	DB = nil
	return sqlDB.Close()
}
