package directory

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"gradportal/internal/identity"
	"gradportal/internal/obs"
)

const seedLockKey = "gradportal:roles:seed"

// Store is the persistence surface the gateway needs. *Repository is the
// Postgres implementation; tests substitute fakes.
type Store interface {
	SelectRoles(ctx context.Context) ([]Role, error)
	InsertRoles(ctx context.Context, roles []Role) error
	SelectUsers(ctx context.Context, limit int) ([]User, error)
	InsertUser(ctx context.Context, u User) error
	CountUsers(ctx context.Context) (int, error)
}

// Locker single-flights the role seed across concurrent callers.
// *store.Redis implements it; a nil-safe no-op is acceptable because the
// unique constraint on role names is the hard guard.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) bool
	Unlock(ctx context.Context, key string)
}

// Service is the user-directory gateway.
type Service struct {
	store   Store
	locker  Locker
	lockTTL time.Duration
}

// NewService creates the gateway. locker may be nil.
func NewService(store Store, locker Locker, lockTTL time.Duration) *Service {
	if lockTTL <= 0 {
		lockTTL = 10 * time.Second
	}
	return &Service{store: store, locker: locker, lockTTL: lockTTL}
}

// ListRoles reads all roles, seeding the defaults first when the
// collection is empty so the role selector is never blank on a fresh
// store. A seed failure is logged and an empty list returned; callers
// continue.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	roles, err := s.store.SelectRoles(ctx)
	if err != nil {
		return nil, &ReadError{Op: "list roles", Err: err}
	}
	if len(roles) > 0 {
		return sortRoles(roles), nil
	}

	if s.locker != nil && !s.locker.TryLock(ctx, seedLockKey, s.lockTTL) {
		// Another caller is seeding; read whatever has landed.
		roles, err = s.store.SelectRoles(ctx)
		if err != nil {
			return nil, &ReadError{Op: "list roles", Err: err}
		}
		return sortRoles(roles), nil
	}
	if s.locker != nil {
		defer s.locker.Unlock(ctx, seedLockKey)
	}

	seeded, err := s.SeedDefaultRoles(ctx)
	if err != nil {
		log.Printf("role seed failed: %v", err)
		return []Role{}, nil
	}
	return seeded, nil
}

// SeedDefaultRoles inserts one role per enumeration value and returns the
// resulting set in seed order.
func (s *Service) SeedDefaultRoles(ctx context.Context) ([]Role, error) {
	roles := make([]Role, 0, len(identity.SeedOrder))
	for _, name := range identity.SeedOrder {
		roles = append(roles, Role{ID: uuid.NewString(), Name: string(name)})
	}
	if err := s.store.InsertRoles(ctx, roles); err != nil {
		return nil, &WriteError{Op: "seed roles", Err: err}
	}
	obs.RoleSeeds.Inc()

	// Re-read so a conflict-skipped insert still yields the stored rows.
	stored, err := s.store.SelectRoles(ctx)
	if err != nil {
		return nil, &ReadError{Op: "seed roles", Err: err}
	}
	return sortRoles(stored), nil
}

// ListUsers returns directory entries with their role names, substituting
// "Unknown" where the reference does not resolve.
func (s *Service) ListUsers(ctx context.Context, limit int) ([]User, error) {
	users, err := s.store.SelectUsers(ctx, limit)
	if err != nil {
		return nil, &ReadError{Op: "list users", Err: err}
	}
	for i := range users {
		if users[i].RoleName == "" {
			users[i].RoleName = UnknownRoleName
		}
	}
	return users, nil
}

// CreateUser validates input locally, stamps id/createdAt and writes the
// entry. Validation failures never reach the store.
func (s *Service) CreateUser(ctx context.Context, in NewUser) (User, error) {
	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.RoleID == "" {
		missing = append(missing, "role_id")
	}
	if len(missing) > 0 {
		return User{}, &ValidationError{Missing: missing}
	}

	if in.Status == "" {
		in.Status = StatusActive
	}
	u := User{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		RoleID:    in.RoleID,
		Status:    in.Status,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.InsertUser(ctx, u); err != nil {
		return User{}, &WriteError{Op: "create user", Err: err}
	}
	obs.UsersCreated.Inc()
	return u, nil
}

// CountUsers returns the directory size for the admin overview.
func (s *Service) CountUsers(ctx context.Context) (int, error) {
	n, err := s.store.CountUsers(ctx)
	if err != nil {
		return 0, &ReadError{Op: "count users", Err: err}
	}
	return n, nil
}

// sortRoles orders roles by their seed position, anything unrecognized
// last by name.
func sortRoles(roles []Role) []Role {
	pos := make(map[string]int, len(identity.SeedOrder))
	for i, name := range identity.SeedOrder {
		pos[string(name)] = i
	}
	sort.SliceStable(roles, func(i, j int) bool {
		pi, iok := pos[roles[i].Name]
		pj, jok := pos[roles[j].Name]
		switch {
		case iok && jok:
			return pi < pj
		case iok:
			return true
		case jok:
			return false
		default:
			return roles[i].Name < roles[j].Name
		}
	})
	return roles
}
