package monitor

import (
	"context"
	"log"
	"sync"
)

// Source is the metric read surface. *Repository is the Postgres
// implementation; tests substitute fakes.
type Source interface {
	LatestHealth(ctx context.Context) (*Health, error)
	ActiveAlerts(ctx context.Context) ([]Alert, error)
	LatestUsage(ctx context.Context) (*Usage, error)
	LatestBackup(ctx context.Context) (*Backup, error)
	LatestAnalytics(ctx context.Context) (*Analytics, error)
}

// Overview aggregates the admin metric datasets. A nil field means that
// dataset was unavailable when the overview was assembled.
type Overview struct {
	Health    *Health    `json:"health"`
	Alerts    []Alert    `json:"alerts"`
	Usage     *Usage     `json:"usage"`
	Backup    *Backup    `json:"backup"`
	Analytics *Analytics `json:"analytics"`
}

// Service assembles admin overviews.
type Service struct {
	src Source
}

// NewService creates a service over the given source.
func NewService(src Source) *Service {
	return &Service{src: src}
}

// Overview fetches all five datasets concurrently. Each fetch is
// independent; a failure is logged and its field left nil so the page
// still renders with partial data.
func (s *Service) Overview(ctx context.Context) Overview {
	var (
		ov Overview
		wg sync.WaitGroup
	)

	fetch := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				log.Printf("overview: %s fetch failed: %v", name, err)
			}
		}()
	}

	fetch("system_health", func() error {
		h, err := s.src.LatestHealth(ctx)
		if err == nil {
			ov.Health = h
		}
		return err
	})
	fetch("security_alerts", func() error {
		alerts, err := s.src.ActiveAlerts(ctx)
		if err == nil {
			ov.Alerts = alerts
		}
		return err
	})
	fetch("database_usage", func() error {
		u, err := s.src.LatestUsage(ctx)
		if err == nil {
			ov.Usage = u
		}
		return err
	})
	fetch("backup_status", func() error {
		b, err := s.src.LatestBackup(ctx)
		if err == nil {
			ov.Backup = b
		}
		return err
	})
	fetch("system_analytics", func() error {
		a, err := s.src.LatestAnalytics(ctx)
		if err == nil {
			ov.Analytics = a
		}
		return err
	})

	wg.Wait()
	return ov
}
