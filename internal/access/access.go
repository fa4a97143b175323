// ABOUTME: Derives role capabilities from the session user
// ABOUTME: Fail-closed: a user without a loaded role has no elevated permissions

package access

import (
	"errors"

	"github.com/basinventario/inventario-cli/internal/client"
)

// ErrRestricted is returned when the session lacks a required capability
var ErrRestricted = errors.New("acceso restringido: tu rol no tiene permisos para esta sección")

// Permission names a capability a screen or command may require
type Permission int

const (
	// ManageUsers allows listing, creating and deleting users
	ManageUsers Permission = iota
	// Administer allows reading the audit logs
	Administer
)

// String returns the permission name
func (p Permission) String() string {
	switch p {
	case ManageUsers:
		return "manage-users"
	case Administer:
		return "administer"
	default:
		return "unknown"
	}
}

// Capabilities is the computed permission set of a user
type Capabilities struct {
	IsAdmin        bool `json:"isAdmin" yaml:"isAdmin"`
	CanManageUsers bool `json:"canManageUsers" yaml:"canManageUsers"`
}

// Evaluate computes capabilities for user. Pure; nil user or missing role
// yields the zero value.
func Evaluate(user *client.User) Capabilities {
	role, ok := user.Role()
	if !ok {
		return Capabilities{}
	}
	return Capabilities{
		IsAdmin:        role.EsAdministrador,
		CanManageUsers: role.PuedeGestionarUsuarios || role.EsAdministrador,
	}
}

// Allows reports whether the capability set grants p
func (c Capabilities) Allows(p Permission) bool {
	switch p {
	case ManageUsers:
		return c.CanManageUsers
	case Administer:
		return c.IsAdmin
	default:
		return false
	}
}

// Require returns ErrRestricted unless c grants p
func (c Capabilities) Require(p Permission) error {
	if !c.Allows(p) {
		return ErrRestricted
	}
	return nil
}
