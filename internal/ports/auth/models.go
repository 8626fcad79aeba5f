package auth

import "strings"

// Role es el tipo de usuario que viene en el token.
type Role string

const (
	RoleAdopter         Role = "adopter"
	RoleShelter         Role = "shelter"
	RoleVeterinarian    Role = "veterinarian"
	RoleServiceProvider Role = "service-provider"
)

// ParseRole normaliza el rol; un valor desconocido queda como adopter.
func ParseRole(s string) Role {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleShelter, RoleVeterinarian, RoleServiceProvider:
		return r
	default:
		return RoleAdopter
	}
}

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}

// IsShelter indica si el usuario administra un refugio.
func (c Claims) IsShelter() bool { return c.Role == RoleShelter }

// IsProvider indica si el usuario ofrece servicios (veterinario u otro proveedor).
func (c Claims) IsProvider() bool {
	return c.Role == RoleVeterinarian || c.Role == RoleServiceProvider
}
