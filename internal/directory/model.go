package directory

import "time"

// Role is a persisted role record referenced by directory users.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is a managed directory entry, distinct from the active session
// identity. RoleName is joined from roles; "Unknown" when the reference
// does not resolve.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	RoleID    string    `json:"role_id"`
	RoleName  string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser is the create-user input. Status is optional and defaults to
// "active".
type NewUser struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	RoleID string `json:"role_id"`
	Status string `json:"status"`
}

// User statuses.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

// UnknownRoleName is rendered for a user whose role reference no longer
// resolves.
const UnknownRoleName = "Unknown"
