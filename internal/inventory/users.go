// ABOUTME: Validation for user accounts created from the client
// ABOUTME: Mirrors the required fields of the user forms

package inventory

import (
	"errors"
	"strings"

	"github.com/basinventario/inventario-cli/internal/client"
)

// ValidateUser checks the fields a new user needs before it is posted
func ValidateUser(input client.UserInput) error {
	switch {
	case strings.TrimSpace(input.Nombre) == "":
		return errors.New("el nombre es obligatorio")
	case strings.TrimSpace(input.UserName) == "":
		return errors.New("el usuario es obligatorio")
	case input.Password == "":
		return errors.New("la contraseña es obligatoria")
	case input.RolID <= 0:
		return errors.New("selecciona un rol")
	}
	return nil
}

// ErrEmptyUserUpdate is returned when an update would change nothing
var ErrEmptyUserUpdate = errors.New("indica al menos un campo a modificar")

// ValidateUserUpdate checks an edit before it is put
func ValidateUserUpdate(update client.UserUpdate) error {
	switch {
	case update.IsZero():
		return ErrEmptyUserUpdate
	case update.RolID < 0:
		return errors.New("selecciona un rol")
	}
	return nil
}
