//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const maxCargoNameLen = 255

var (
	// ErrCargoNameRequired is returned when a role name is blank.
	ErrCargoNameRequired = errors.New("role name is required")
	// ErrCargoNameTooLong is returned when a role name exceeds the column width.
	ErrCargoNameTooLong = errors.New("role name must be 255 characters or fewer")
)

// Cargo is a named permission bundle ("role") assignable to users.
// Name is unique across all roles.
type Cargo struct {
	ID                        string `json:"id"`
	Name                      string `json:"nome"`
	CanSendAdministrativePush bool   `json:"pode_enviar_push"`
	// Selected is UI state for multi-select forms; it is never persisted.
	Selected bool `json:"selecionado,omitempty"`
}

// CreateCargoRequest carries the fields for a new role; the id is generated by storage.
type CreateCargoRequest struct {
	Name                      string `json:"nome"`
	CanSendAdministrativePush bool   `json:"pode_enviar_push"`
}

// Normalize trims the role name in place.
func (r *CreateCargoRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

// Validate checks required fields.
func (r *CreateCargoRequest) Validate() error {
	return validateCargoName(r.Name)
}

// Normalize trims the role id and name in place.
func (c *Cargo) Normalize() {
	c.ID = strings.TrimSpace(c.ID)
	c.Name = strings.TrimSpace(c.Name)
}

// Validate checks the name; id checks are the caller's concern.
func (c *Cargo) Validate() error {
	return validateCargoName(c.Name)
}

func validateCargoName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrCargoNameRequired
	}
	if utf8.RuneCountInString(name) > maxCargoNameLen {
		return ErrCargoNameTooLong
	}
	return nil
}
