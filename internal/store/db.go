package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB wraps sql.DB for Postgres using pgx.
type DB struct {
	Client *sql.DB
}

// NewDB creates a Postgres connection with sane defaults.
func NewDB(connString string) (*DB, error) {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	return &DB{Client: db}, db.PingContext(context.Background())
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Close()
}

// Migrate creates the portal tables if they do not exist. The unique
// constraint on roles.name makes role seeding idempotent under
// concurrent callers.
func Migrate(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS roles (
		id         TEXT PRIMARY KEY,
		name       TEXT UNIQUE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		role_id    TEXT REFERENCES roles(id),
		status     TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS system_health (
		uptime_percent DOUBLE PRECISION NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS security_alerts (
		id         TEXT PRIMARY KEY,
		message    TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS database_usage (
		storage_used_gb DOUBLE PRECISION NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS backup_status (
		status      TEXT NOT NULL,
		last_backup TIMESTAMPTZ,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS system_analytics (
		daily_active_users     INTEGER NOT NULL,
		applications_processed INTEGER NOT NULL,
		average_response_time  DOUBLE PRECISION NOT NULL,
		storage_usage_percent  DOUBLE PRECISION NOT NULL,
		date                   DATE NOT NULL DEFAULT CURRENT_DATE
	);

	CREATE INDEX IF NOT EXISTS idx_users_created   ON users(created_at);
	CREATE INDEX IF NOT EXISTS idx_alerts_status   ON security_alerts(status);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
