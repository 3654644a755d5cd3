package identity

// Resolver maps a credential pair to a known identity. Implementations
// decide what, if anything, the password means; callers must not.
type Resolver interface {
	Resolve(email, password string) (Identity, bool)
}

// FixedResolver resolves against an in-memory identity table keyed by
// email. It stands in for a real authentication provider: any password
// is accepted and the match is exact and case-sensitive.
type FixedResolver struct {
	byEmail map[string]Identity
}

// NewFixedResolver builds a resolver over the given identities.
func NewFixedResolver(identities []Identity) *FixedResolver {
	byEmail := make(map[string]Identity, len(identities))
	for _, id := range identities {
		byEmail[id.Email] = id
	}
	return &FixedResolver{byEmail: byEmail}
}

// Resolve looks the email up in the fixed table. The password is ignored.
func (r *FixedResolver) Resolve(email, _ string) (Identity, bool) {
	id, ok := r.byEmail[email]
	return id, ok
}

// DemoIdentities are the portal's built-in accounts, one per role.
func DemoIdentities() []Identity {
	return []Identity{
		{
			ID:         "1",
			Name:       "John Student",
			Email:      "student@university.edu",
			Role:       RoleStudent,
			Department: "Computer Science",
			StudentID:  "STU12345",
		},
		{
			ID:         "2",
			Name:       "Dr. Sarah Professor",
			Email:      "faculty@university.edu",
			Role:       RoleFaculty,
			Department: "Computer Science",
		},
		{
			ID:         "3",
			Name:       "Michael Finance",
			Email:      "finance@university.edu",
			Role:       RoleFinance,
			Department: "Finance Department",
		},
		{
			ID:         "4",
			Name:       "Admin User",
			Email:      "admin@university.edu",
			Role:       RoleAdmin,
			Department: "Administration",
		},
		{
			ID:         "5",
			Name:       "Lisa Administrator",
			Email:      "administration@university.edu",
			Role:       RoleAdministration,
			Department: "Academic Affairs",
		},
	}
}
