//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
)

// LocationKind is the level of a node in the location hierarchy.
type LocationKind string

const (
	LocationKindRegional     LocationKind = "Regional"
	LocationKindSector       LocationKind = "Setor"
	LocationKindCongregation LocationKind = "Congregacao"
)

// Valid reports whether the kind is supported.
func (k LocationKind) Valid() bool {
	switch k {
	case LocationKindRegional, LocationKindSector, LocationKindCongregation:
		return true
	default:
		return false
	}
}

// ParseLocationKind matches a kind case-insensitively.
func ParseLocationKind(value string) (LocationKind, bool) {
	v := strings.TrimSpace(value)
	for _, k := range []LocationKind{LocationKindRegional, LocationKindSector, LocationKindCongregation} {
		if strings.EqualFold(v, string(k)) {
			return k, true
		}
	}
	return "", false
}

// Location is a node in the Regional > Sector > Congregation tree.
// ParentID is nil only at hierarchy roots.
type Location struct {
	ID       string       `json:"id"`
	Name     string       `json:"nome"`
	Kind     LocationKind `json:"tipo"`
	ParentID *string      `json:"parent_id"`
}

// IsRoot reports whether the location has no parent.
func (l *Location) IsRoot() bool { return l.ParentID == nil }

// Validate checks name, kind and the root rule: only Regional nodes may be roots.
func (l *Location) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return errors.New("location name is required")
	}
	if !l.Kind.Valid() {
		return errors.New("location kind must be Regional, Setor or Congregacao")
	}
	if l.IsRoot() && l.Kind != LocationKindRegional {
		return errors.New("only Regional locations may be hierarchy roots")
	}
	if l.ParentID != nil && *l.ParentID == l.ID && l.ID != "" {
		return errors.New("location cannot be its own parent")
	}
	return nil
}
