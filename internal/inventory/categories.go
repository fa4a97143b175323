// ABOUTME: Category form normalization before save
// ABOUTME: Upper-cases codes, nulls empty optionals, fills visual defaults

package inventory

import (
	"errors"
	"strings"

	"github.com/basinventario/inventario-cli/internal/client"
)

// Category defaults used by the form
const (
	DefaultCategoryColor = "#3B82F6"
	DefaultCategoryIcon  = "📦"
	DefaultCategoryOrder = 1
)

// CategoryDraft is the user-entered part of a category
type CategoryDraft struct {
	Nombre      string
	Descripcion string
	Codigo      string
	Color       string
	Icono       string
	Orden       int
}

// DraftFrom pre-fills a draft from an existing category
func DraftFrom(c client.Category) CategoryDraft {
	d := CategoryDraft{Nombre: c.Nombre, Color: c.Color, Icono: c.Icono, Orden: c.Orden}
	if c.Descripcion != nil {
		d.Descripcion = *c.Descripcion
	}
	if c.Codigo != nil {
		d.Codigo = *c.Codigo
	}
	return d
}

// NewCategory builds the category to save. Saved categories are active.
func NewCategory(id int64, draft CategoryDraft) (client.Category, error) {
	nombre := strings.TrimSpace(draft.Nombre)
	if nombre == "" {
		return client.Category{}, errors.New("el nombre es obligatorio")
	}

	c := client.Category{
		ID:          id,
		Nombre:      nombre,
		Descripcion: optional(draft.Descripcion),
		Color:       draft.Color,
		Icono:       draft.Icono,
		Orden:       draft.Orden,
		Activo:      true,
	}
	if code := optional(draft.Codigo); code != nil {
		upper := strings.ToUpper(*code)
		c.Codigo = &upper
	}
	if c.Color == "" {
		c.Color = DefaultCategoryColor
	}
	if c.Icono == "" {
		c.Icono = DefaultCategoryIcon
	}
	if c.Orden <= 0 {
		c.Orden = DefaultCategoryOrder
	}
	return c, nil
}

// Toggled returns c with its active flag flipped
func Toggled(c client.Category) client.Category {
	c.Activo = !c.Activo
	return c
}
