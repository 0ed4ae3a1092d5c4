package auth

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeRoleName returns the canonical comparison form of a role name:
// NFC-normalized, trimmed and case-folded.
func NormalizeRoleName(name string) string {
	n := norm.NFC.String(name)
	n = strings.TrimSpace(n)
	// Folding may produce decomposed sequences for some runes; recompose.
	return norm.NFC.String(cases.Fold().String(n))
}

// RoleSet is a set of normalized role names.
type RoleSet map[string]struct{}

// NewRoleSet normalizes names into a RoleSet. Blank names are skipped.
func NewRoleSet(names []string) RoleSet {
	set := make(RoleSet, len(names))
	for _, name := range names {
		n := NormalizeRoleName(name)
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

// Has reports whether name (in any form) is in the set.
func (s RoleSet) Has(name string) bool {
	_, ok := s[NormalizeRoleName(name)]
	return ok
}

// AdminPolicy decides administrator status from a user's role names.
type AdminPolicy struct {
	// SentinelRole is the role name that grants admin; defaults to DefaultAdminRoleName.
	SentinelRole string
}

// IsAdmin reports whether roleNames contains the sentinel role.
func (p AdminPolicy) IsAdmin(roleNames []string) bool {
	sentinel := p.SentinelRole
	if strings.TrimSpace(sentinel) == "" {
		sentinel = DefaultAdminRoleName
	}
	return NewRoleSet(roleNames).Has(sentinel)
}
