// Package monitor reads the admin dashboard's operational metric
// collections. Every dataset is optional: a failed or empty read renders
// as "not available", never as an error to the viewer.
package monitor

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Health is the latest uptime sample.
type Health struct {
	UptimePercent float64   `json:"uptime_percent"`
	CreatedAt     time.Time `json:"created_at"`
}

// Alert is an active security alert.
type Alert struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Usage is the latest storage sample.
type Usage struct {
	StorageUsedGB float64   `json:"storage_used_gb"`
	CreatedAt     time.Time `json:"created_at"`
}

// Backup is the latest backup report.
type Backup struct {
	Status     string     `json:"status"`
	LastBackup *time.Time `json:"last_backup"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Analytics is the latest platform usage snapshot.
type Analytics struct {
	DailyActiveUsers      int       `json:"daily_active_users"`
	ApplicationsProcessed int       `json:"applications_processed"`
	AverageResponseTime   float64   `json:"average_response_time"`
	StorageUsagePercent   float64   `json:"storage_usage_percent"`
	Date                  time.Time `json:"date"`
}

// Repository reads metric tables from Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// LatestHealth returns the most recent health sample, nil when none exists.
func (r *Repository) LatestHealth(ctx context.Context) (*Health, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT uptime_percent, created_at
		FROM system_health
		ORDER BY created_at DESC
		LIMIT 1
	`)
	var h Health
	if err := row.Scan(&h.UptimePercent, &h.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

// ActiveAlerts returns all alerts still marked active.
func (r *Repository) ActiveAlerts(ctx context.Context) ([]Alert, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, message, status, created_at
		FROM security_alerts
		WHERE status = 'active'
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []Alert
	for rows.Next() {
		var a Alert
		if err := rows.Scan(&a.ID, &a.Message, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// LatestUsage returns the most recent storage sample, nil when none exists.
func (r *Repository) LatestUsage(ctx context.Context) (*Usage, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT storage_used_gb, created_at
		FROM database_usage
		ORDER BY created_at DESC
		LIMIT 1
	`)
	var u Usage
	if err := row.Scan(&u.StorageUsedGB, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// LatestBackup returns the most recent backup report, nil when none exists.
func (r *Repository) LatestBackup(ctx context.Context) (*Backup, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT status, last_backup, created_at
		FROM backup_status
		ORDER BY created_at DESC
		LIMIT 1
	`)
	var b Backup
	if err := row.Scan(&b.Status, &b.LastBackup, &b.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// LatestAnalytics returns the most recent analytics row, nil when none exists.
func (r *Repository) LatestAnalytics(ctx context.Context) (*Analytics, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT daily_active_users, applications_processed, average_response_time, storage_usage_percent, date
		FROM system_analytics
		ORDER BY date DESC
		LIMIT 1
	`)
	var a Analytics
	if err := row.Scan(&a.DailyActiveUsers, &a.ApplicationsProcessed, &a.AverageResponseTime, &a.StorageUsagePercent, &a.Date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
