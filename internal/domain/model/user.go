//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"slices"
	"strings"
)

// User is the authenticated application user.
// IsAdmin and Roles are computed from role assignments at load time and never stored on the user row.
type User struct {
	ID                string   `json:"id"`
	Email             string   `json:"email"`
	Name              string   `json:"nome"`
	PrimaryLocationID string   `json:"localizacao_id"`
	LocationName      string   `json:"nome_localizacao,omitempty"`
	IsAdmin           bool     `json:"is_admin"`
	Roles             []string `json:"cargos"`
}

// HasRole reports whether the user holds a role with exactly this display name.
func (u *User) HasRole(name string) bool {
	if u == nil {
		return false
	}
	return slices.Contains(u.Roles, name)
}

// UserProfile is the stored profile joined with the names of its assigned roles.
type UserProfile struct {
	ID                string
	Email             string
	Name              string
	PrimaryLocationID string
	LocationName      string
	RoleNames         []string
}

// CreateUserProfileRequest carries the profile row created after a gateway sign-up.
// ID must be the identity id issued by the gateway.
type CreateUserProfileRequest struct {
	ID                string
	Email             string
	Name              string
	PrimaryLocationID string
}

// Normalize trims the request's text fields.
func (r *CreateUserProfileRequest) Normalize() {
	r.ID = strings.TrimSpace(r.ID)
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	r.PrimaryLocationID = strings.TrimSpace(r.PrimaryLocationID)
}

// DisplayRoleNames returns trimmed, de-duplicated role names in sorted order.
func DisplayRoleNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		out = append(out, n)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
