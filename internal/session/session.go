// Package session holds the single active portal session. The process
// carries at most one authenticated identity at a time; there is no
// multi-tenancy.
package session

import (
	"errors"
	"sync"

	"gradportal/internal/identity"
)

// ErrNoSession is returned by operations that require an active session.
var ErrNoSession = errors.New("no active session")

// Store is the single-session holder. Construct one per application run
// and inject it; a fresh Store has no session.
type Store struct {
	resolver identity.Resolver

	mu      sync.Mutex
	current *identity.Identity
}

// NewStore creates a session store backed by the given resolver.
func NewStore(resolver identity.Resolver) *Store {
	return &Store{resolver: resolver}
}

// Authenticate resolves the credential pair and, on success, replaces the
// active session. A failed attempt leaves any prior session untouched.
func (s *Store) Authenticate(email, password string) (identity.Identity, error) {
	id, ok := s.resolver.Resolve(email, password)
	if !ok {
		return identity.Identity{}, identity.ErrUnknownCredential
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &id
	return id, nil
}

// Current returns the active identity, if any.
func (s *Store) Current() (identity.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return identity.Identity{}, false
	}
	return *s.current, true
}

// SwitchRole overwrites the active session's role in place. There is no
// permission check: role switching is a demo affordance, not a security
// boundary.
func (s *Store) SwitchRole(role identity.Role) (identity.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return identity.Identity{}, ErrNoSession
	}
	s.current.Role = role
	return *s.current, nil
}

// Clear drops the active session. Safe to call repeatedly.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
