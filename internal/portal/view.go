// Package portal maps the session state to the dashboard view to render.
package portal

import "gradportal/internal/identity"

// View identifies which portal screen is shown.
type View string

const (
	ViewLogin          View = "login"
	ViewRoleSelect     View = "role_select"
	ViewStudent        View = "student"
	ViewFaculty        View = "faculty"
	ViewFinance        View = "finance"
	ViewAdministration View = "administration"
	ViewAdmin          View = "admin"
)

var viewByRole = map[identity.Role]View{
	identity.RoleStudent:        ViewStudent,
	identity.RoleFaculty:        ViewFaculty,
	identity.RoleFinance:        ViewFinance,
	identity.RoleAdministration: ViewAdministration,
	identity.RoleAdmin:          ViewAdmin,
}

// SelectView is the pure role→view dispatch. No session renders the login
// view. A session whose role falls outside the enumeration renders the
// role selector; with the closed role set that branch is defensive only.
func SelectView(id identity.Identity, active bool) View {
	if !active {
		return ViewLogin
	}
	if view, ok := viewByRole[id.Role]; ok {
		return view
	}
	return ViewRoleSelect
}
