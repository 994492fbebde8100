package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rs/zerolog/log"
)

// Database wraps the PostgreSQL connection backing the document collections.
type Database struct {
	conn *sql.DB
	dsn  string
}

// NewDatabase opens a connection pool and verifies it with a ping.
func NewDatabase(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		conn: db,
		dsn:  dsn,
	}, nil
}

// Close closes the database connection.
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries.
func (db *Database) DB() *sql.DB {
	return db.conn
}

// HealthCheck performs a health check on the database.
func (db *Database) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return db.conn.PingContext(ctx)
}

type migration struct {
	version string
	sql     string
}

// migrations holds the full schema inline. Each statement runs once,
// tracked through schema_migrations.
var migrations = []migration{
	{
		version: "001_create_schools",
		sql: `
			CREATE TABLE IF NOT EXISTS schools (
				id         TEXT PRIMARY KEY,
				name       TEXT NOT NULL,
				location   TEXT NOT NULL,
				logo_url   TEXT NOT NULL DEFAULT '',
				sports     JSONB NOT NULL DEFAULT '[]',
				schedules  JSONB NOT NULL DEFAULT '{}',
				rosters    JSONB NOT NULL DEFAULT '{}',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`,
	},
	{
		version: "002_create_schedules",
		sql: `
			CREATE TABLE IF NOT EXISTS schedules (
				id          TEXT PRIMARY KEY,
				school_id   TEXT,
				school_name TEXT NOT NULL,
				sport       TEXT NOT NULL,
				entry       JSONB NOT NULL,
				created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_schedules_sport ON schedules (sport)
		`,
	},
	{
		version: "003_create_articles",
		sql: `
			CREATE TABLE IF NOT EXISTS articles (
				id         TEXT PRIMARY KEY,
				title      TEXT NOT NULL,
				excerpt    TEXT NOT NULL,
				content    TEXT NOT NULL DEFAULT '',
				date       TEXT NOT NULL,
				category   TEXT NOT NULL,
				image_data TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`,
	},
	{
		version: "004_create_stats",
		sql: `
			CREATE TABLE IF NOT EXISTS stats (
				id          TEXT PRIMARY KEY,
				player_name TEXT NOT NULL,
				team_name   TEXT NOT NULL,
				school_name TEXT NOT NULL,
				sport       TEXT NOT NULL,
				division    TEXT NOT NULL,
				season      TEXT NOT NULL,
				stat_values JSONB NOT NULL DEFAULT '{}',
				created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_stats_sport_division ON stats (sport, division)
		`,
	},
	{
		version: "005_create_users",
		sql: `
			CREATE TABLE IF NOT EXISTS users (
				email         TEXT PRIMARY KEY,
				password_hash TEXT NOT NULL,
				created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`,
	},
}

// RunMigrations applies every pending migration in order.
func (db *Database) RunMigrations() error {
	log.Info().Msg("running database migrations")

	if err := db.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, m := range migrations {
		if err := db.runMigration(m); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", m.version, err)
		}
	}

	log.Info().Msg("all migrations applied")
	return nil
}

func (db *Database) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := db.conn.Exec(query)
	return err
}

func (db *Database) runMigration(m migration) error {
	var exists bool
	err := db.conn.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", m.version).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		log.Debug().Str("version", m.version).Msg("migration already applied")
		return nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.sql); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}

	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", m.version); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info().Str("version", m.version).Msg("migration applied")
	return nil
}
