// ABOUTME: Movement filtering and movement request construction
// ABOUTME: Applies the form defaults before a movement is posted

package inventory

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/basinventario/inventario-cli/internal/client"
)

// DefaultMotivo is sent when the user leaves the reason empty
const DefaultMotivo = "Movimiento manual"

// ErrInvalidQuantity is returned for non-positive movement quantities
var ErrInvalidQuantity = errors.New("la cantidad debe ser mayor que cero")

// FilterMovements keeps movements of the given type. An empty type keeps all.
func FilterMovements(movements []client.Movement, tipo string) []client.Movement {
	if tipo == "" {
		return movements
	}
	var out []client.Movement
	for _, m := range movements {
		if strings.EqualFold(m.TipoMovimiento, tipo) {
			out = append(out, m)
		}
	}
	return out
}

// NextMovementFilter cycles "" -> each movement type -> ""
func NextMovementFilter(current string) string {
	i := slices.Index(client.MovementTypes, current)
	if i+1 >= len(client.MovementTypes) {
		return ""
	}
	return client.MovementTypes[i+1]
}

// ValidMovementType reports whether tipo is a known movement type
func ValidMovementType(tipo string) bool {
	return slices.Contains(client.MovementTypes, tipo)
}

// MovementDraft is the user-entered part of a movement
type MovementDraft struct {
	ProductoID      int64
	Tipo            string
	Cantidad        int
	Motivo          string
	NumeroDocumento string
}

// NewMovementInput validates draft and applies defaults. The movement is
// attributed to userID, the session user.
func NewMovementInput(draft MovementDraft, userID int64) (client.MovementInput, error) {
	if draft.ProductoID <= 0 {
		return client.MovementInput{}, errors.New("selecciona un producto")
	}
	if !ValidMovementType(draft.Tipo) {
		return client.MovementInput{}, fmt.Errorf("tipo de movimiento desconocido %q", draft.Tipo)
	}
	if draft.Cantidad <= 0 {
		return client.MovementInput{}, ErrInvalidQuantity
	}

	motivo := strings.TrimSpace(draft.Motivo)
	if motivo == "" {
		motivo = DefaultMotivo
	}

	return client.MovementInput{
		ProductoID:      draft.ProductoID,
		TipoMovimiento:  draft.Tipo,
		Cantidad:        draft.Cantidad,
		Motivo:          motivo,
		UsuarioID:       userID,
		NumeroDocumento: optional(draft.NumeroDocumento),
	}, nil
}

// optional returns nil for blank strings
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
