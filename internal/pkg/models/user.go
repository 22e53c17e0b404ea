package models

import (
	"strings"

	"github.com/google/uuid"
)

// Role is the marketplace role carried in the access token
type Role string

const (
	RoleBuyer   Role = "BUYER"
	RoleOwner   Role = "OWNER"
	RoleCourier Role = "COURIER"
	RoleAdmin   Role = "ADMIN"

	// RoleSeller is the legacy name for store owners
	RoleSeller Role = "SELLER"
)

// NormalizeRole maps a claim value onto a known role, folding SELLER onto OWNER
func NormalizeRole(v string) Role {
	r := Role(strings.ToUpper(strings.TrimSpace(v)))
	if r == RoleSeller {
		return RoleOwner
	}
	return r
}

// IsSeller reports whether the role may run a store
func (r Role) IsSeller() bool {
	return r == RoleOwner || r == RoleSeller
}

// Actor is the authenticated caller of a lifecycle operation
type Actor struct {
	UserID uuid.UUID `json:"user_id"`
	Role   Role      `json:"role"`
	Name   string    `json:"name,omitempty"`
	Email  string    `json:"email,omitempty"`
}
