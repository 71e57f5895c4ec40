package config

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jbweber/homelab/cornerstone/internal/domain"
	"github.com/jbweber/homelab/cornerstone/internal/gormstore"
	"github.com/jbweber/homelab/cornerstone/internal/migrations"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// PoolConfig holds database connection pool configuration
type PoolConfig struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
}

// DefaultPoolConfig returns the pool settings used when none are configured
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: time.Minute,
	}
}

// Apply sets the pool parameters on db.
func (p PoolConfig) Apply(db *sql.DB) {
	db.SetMaxOpenConns(p.MaxOpenConns)
	db.SetMaxIdleConns(p.MaxIdleConns)
	db.SetConnMaxLifetime(p.ConnMaxLifetime)
	db.SetConnMaxIdleTime(p.ConnMaxIdleTime)

	slog.Debug("database connection pool configured",
		"maxOpenConns", p.MaxOpenConns,
		"maxIdleConns", p.MaxIdleConns,
		"connMaxLifetime", p.ConnMaxLifetime,
		"connMaxIdleTime", p.ConnMaxIdleTime,
	)
}

// SQLiteDSN returns a modernc.org/sqlite DSN for path with foreign keys
// enforced on every pooled connection.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", path)
}

// ApplyPragmaOptimizations applies SQLite-specific performance pragmas
func ApplyPragmaOptimizations(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = 10000",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA mmap_size = 268435456",
		"PRAGMA optimize",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}

	return nil
}

// InitializeDatabase opens the SQLite database, configures it and runs
// all migrations.
func (c *Config) InitializeDatabase(ctx context.Context) (*sql.DB, error) {
	if c.Driver != DriverSQLite {
		return nil, fmt.Errorf("InitializeDatabase requires the %s driver, got %q", DriverSQLite, c.Driver)
	}

	dbPath := c.expandPath(c.DBPath)

	// Ensure database directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", SQLiteDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	c.Pool.Apply(db)

	if err := ApplyPragmaOptimizations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply performance optimizations: %w", err)
	}

	if err := migrations.NewDefaultMigrator(db).RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// OpenGorm connects to Postgres through gorm and migrates the domain models.
func (c *Config) OpenGorm(ctx context.Context) (*gorm.DB, error) {
	if c.Driver != DriverPostgres {
		return nil, fmt.Errorf("OpenGorm requires the %s driver, got %q", DriverPostgres, c.Driver)
	}

	logLevel := logger.Warn
	if c.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(c.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying connection: %w", err)
	}
	c.Pool.Apply(sqlDB)

	if err := gormstore.AutoMigrate(db.WithContext(ctx), domain.Models()...); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
