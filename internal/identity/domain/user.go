package domain

import "time"

// Role constants for storefront users.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// SessionUser is the signed-in user as carried in session state. It is the
// only user representation the storefront works with; the full profile row
// stays in the database.
type SessionUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Profile is a user profile row, joined with the role assignment. A profile
// without an explicit role row defaults to RoleUser.
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SessionUser converts a profile to its session representation.
func (p *Profile) SessionUser() *SessionUser {
	return &SessionUser{
		ID:        p.ID,
		Email:     p.Email,
		Role:      p.Role,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
}

// ValidRoles returns the set of assignable roles.
func ValidRoles() []string {
	return []string{RoleUser, RoleAdmin, RoleSuperAdmin}
}

// IsValidRole checks whether the given role is assignable.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles() {
		if r == role {
			return true
		}
	}
	return false
}
