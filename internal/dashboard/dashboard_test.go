package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"gradportal/internal/directory"
	"gradportal/internal/identity"
	"gradportal/internal/monitor"
	"gradportal/internal/portal"
)

type stubDirStore struct {
	users     []directory.User
	selectErr error
}

func (s *stubDirStore) SelectRoles(ctx context.Context) ([]directory.Role, error) { return nil, nil }
func (s *stubDirStore) InsertRoles(ctx context.Context, roles []directory.Role) error {
	return nil
}
func (s *stubDirStore) SelectUsers(ctx context.Context, limit int) ([]directory.User, error) {
	return s.users, s.selectErr
}
func (s *stubDirStore) InsertUser(ctx context.Context, u directory.User) error { return nil }
func (s *stubDirStore) CountUsers(ctx context.Context) (int, error)            { return len(s.users), nil }

type stubMetricSource struct {
	health *monitor.Health
}

func (s *stubMetricSource) LatestHealth(ctx context.Context) (*monitor.Health, error) {
	return s.health, nil
}
func (s *stubMetricSource) ActiveAlerts(ctx context.Context) ([]monitor.Alert, error) {
	return nil, nil
}
func (s *stubMetricSource) LatestUsage(ctx context.Context) (*monitor.Usage, error)   { return nil, nil }
func (s *stubMetricSource) LatestBackup(ctx context.Context) (*monitor.Backup, error) { return nil, nil }
func (s *stubMetricSource) LatestAnalytics(ctx context.Context) (*monitor.Analytics, error) {
	return nil, nil
}

func newTestRegistry(dirStore *stubDirStore, src *stubMetricSource) *Registry {
	return NewRegistry(
		directory.NewService(dirStore, nil, time.Second),
		monitor.NewService(src),
		50,
	)
}

func TestRegistryCoversAllDashboardViews(t *testing.T) {
	r := newTestRegistry(&stubDirStore{}, &stubMetricSource{})
	id := identity.Identity{ID: "1", Name: "John Student", Role: identity.RoleStudent}

	for _, view := range []portal.View{
		portal.ViewStudent, portal.ViewFaculty, portal.ViewFinance,
		portal.ViewAdministration, portal.ViewAdmin,
	} {
		payload, ok, err := r.Present(context.Background(), view, id)
		if err != nil {
			t.Fatalf("present %s failed: %v", view, err)
		}
		if !ok {
			t.Fatalf("expected a presenter for view %s", view)
		}
		if payload.View != view {
			t.Fatalf("expected payload view %s, got %s", view, payload.View)
		}
		if payload.Greeting != "Welcome, John Student" {
			t.Fatalf("unexpected greeting %q", payload.Greeting)
		}
		if len(payload.Cards) == 0 {
			t.Fatalf("expected cards for view %s", view)
		}
	}
}

func TestRegistryHasNoPresenterForLoginViews(t *testing.T) {
	r := newTestRegistry(&stubDirStore{}, &stubMetricSource{})
	for _, view := range []portal.View{portal.ViewLogin, portal.ViewRoleSelect} {
		if _, ok, _ := r.Present(context.Background(), view, identity.Identity{}); ok {
			t.Fatalf("expected no presenter for %s", view)
		}
	}
}

func TestAdminPresenterIncludesDirectoryAndOverview(t *testing.T) {
	dirStore := &stubDirStore{users: []directory.User{
		{ID: "u1", Name: "Jane", Email: "jane@u.edu", RoleName: "faculty", Status: "active"},
	}}
	src := &stubMetricSource{health: &monitor.Health{UptimePercent: 99.9, CreatedAt: time.Now()}}
	r := newTestRegistry(dirStore, src)

	payload, ok, err := r.Present(context.Background(), portal.ViewAdmin, identity.Identity{ID: "4", Name: "Admin User", Role: identity.RoleAdmin})
	if err != nil || !ok {
		t.Fatalf("admin present failed: ok=%v err=%v", ok, err)
	}
	if len(payload.Users) != 1 {
		t.Fatalf("expected directory users in payload, got %d", len(payload.Users))
	}
	if payload.Overview == nil || payload.Overview.Health == nil {
		t.Fatalf("expected overview with health, got %+v", payload.Overview)
	}
	if payload.Cards[0].Value != "1" {
		t.Fatalf("expected total users card of 1, got %q", payload.Cards[0].Value)
	}
	if payload.Cards[1].Value != "99.9%" {
		t.Fatalf("expected health card 99.9%%, got %q", payload.Cards[1].Value)
	}
}

func TestAdminPresenterSurfacesUsersReadFailure(t *testing.T) {
	dirStore := &stubDirStore{selectErr: errors.New("connection refused")}
	r := newTestRegistry(dirStore, &stubMetricSource{})

	_, _, err := r.Present(context.Background(), portal.ViewAdmin, identity.Identity{ID: "4", Role: identity.RoleAdmin})
	var readErr *directory.ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected directory ReadError, got %v", err)
	}
}

func TestAdminCardsDegradeToNA(t *testing.T) {
	cards := adminCards(0, monitor.Overview{})
	for _, card := range cards[1:] {
		if card.Title == "Security Alerts" {
			if card.Value != "0" {
				t.Fatalf("expected zero alerts, got %q", card.Value)
			}
			continue
		}
		if card.Value != "N/A" {
			t.Fatalf("expected %s card to degrade to N/A, got %q", card.Title, card.Value)
		}
	}
}
