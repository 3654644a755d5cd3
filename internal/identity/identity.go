package identity

import (
	"errors"
	"fmt"
)

// Role is the closed set of portal roles.
type Role string

const (
	RoleStudent        Role = "student"
	RoleFaculty        Role = "faculty"
	RoleFinance        Role = "finance"
	RoleAdministration Role = "administration"
	RoleAdmin          Role = "admin"
)

// SeedOrder is the order default roles are inserted on a fresh store.
var SeedOrder = []Role{RoleAdmin, RoleFaculty, RoleStudent, RoleFinance, RoleAdministration}

// ParseRole validates a role string against the enumeration.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleFaculty, RoleFinance, RoleAdministration, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Identity is the authenticated actor's profile. Only Role is ever
// mutated after lookup (by role switching).
type Identity struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Department string `json:"department,omitempty"`
	StudentID  string `json:"student_id,omitempty"`
}

// ErrUnknownCredential is returned when no identity matches the login email.
var ErrUnknownCredential = errors.New("invalid credentials")
