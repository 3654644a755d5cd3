package directory

import (
	"context"
	"database/sql"
)

// Repository persists directory data in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// SelectRoles returns all role records.
func (r *Repository) SelectRoles(ctx context.Context) ([]Role, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM roles`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// InsertRoles bulk-inserts role records. The conflict clause rides on the
// unique name constraint so a racing seeder cannot duplicate rows.
func (r *Repository) InsertRoles(ctx context.Context, roles []Role) error {
	for _, role := range roles {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO roles (id, name)
			VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING
		`, role.ID, role.Name)
		if err != nil {
			return err
		}
	}
	return nil
}

// SelectUsers returns directory users joined with their role name, newest
// first. A dangling role reference scans as an empty role name.
func (r *Repository) SelectUsers(ctx context.Context, limit int) ([]User, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.id, u.name, u.email, COALESCE(u.role_id, ''), r.name, u.status, u.created_at
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		ORDER BY u.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		var roleName sql.NullString
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.RoleID, &roleName, &u.Status, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.RoleName = roleName.String
		users = append(users, u)
	}
	return users, rows.Err()
}

// InsertUser writes a new directory entry. created_at comes from the
// caller, not the store.
func (r *Repository) InsertUser(ctx context.Context, u User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, role_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, u.ID, u.Name, u.Email, u.RoleID, u.Status, u.CreatedAt)
	return err
}

// CountUsers returns the total number of directory entries.
func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
