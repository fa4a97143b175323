// ABOUTME: Categories screen listing product categories
// ABOUTME: n creates, e edits, t toggles active, d deletes

package screens

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/inventory"
	"github.com/basinventario/inventario-cli/internal/tui/forms"
)

type categoriesLoadedMsg struct {
	origin     int64
	categories []client.Category
	err        error
}

// Categories lists and edits categories
type Categories struct {
	base
	categories []client.Category
}

// NewCategories creates the categories screen
func NewCategories(deps Deps) *Categories {
	return &Categories{base: newBase(deps, []table.Column{
		{Title: "ID", Width: 6},
		{Title: "", Width: 3},
		{Title: "Nombre", Width: 24},
		{Title: "Código", Width: 10},
		{Title: "Descripción", Width: 32},
		{Title: "Orden", Width: 6},
		{Title: "Estado", Width: 9},
	})}
}

// Refresh implements Screen
func (s *Categories) Refresh() tea.Cmd {
	api, ctx, origin := s.deps.API, s.deps.ctx(), s.origin
	return tea.Batch(s.startLoading(), func() tea.Msg {
		categories, err := api.Categories(ctx)
		return categoriesLoadedMsg{origin: origin, categories: categories, err: err}
	})
}

// Update implements Screen
func (s *Categories) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(categoriesLoadedMsg); ok {
		if msg.origin != s.origin {
			return nil
		}
		s.finishLoading(msg.err)
		if msg.err == nil {
			s.setCategories(msg.categories)
		}
		return nil
	}
	if cmd, done := s.handleCommon(msg); done {
		return cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	i, hasSelection := s.selected(len(s.categories))
	switch key.String() {
	case "n":
		return s.edit("Nueva categoría", 0, inventory.CategoryDraft{})
	case "e":
		if hasSelection {
			c := s.categories[i]
			return s.edit("Editar categoría", c.ID, inventory.DraftFrom(c))
		}
		return nil
	case "t":
		if hasSelection {
			return s.toggle(s.categories[i])
		}
		return nil
	case "d":
		if hasSelection {
			return s.delete(s.categories[i])
		}
		return nil
	}
	return s.updateTable(msg)
}

func (s *Categories) setCategories(categories []client.Category) {
	s.categories = categories
	rows := make([]table.Row, 0, len(categories))
	for _, c := range categories {
		estado := "Activa"
		if !c.Activo {
			estado = "Inactiva"
		}
		rows = append(rows, table.Row{
			strconv.FormatInt(c.ID, 10),
			c.Icono,
			c.Nombre,
			deref(c.Codigo),
			deref(c.Descripcion),
			strconv.Itoa(c.Orden),
			estado,
		})
	}
	s.table.SetRows(rows)
}

// edit opens the category form; id 0 creates
func (s *Categories) edit(title string, id int64, draft inventory.CategoryDraft) tea.Cmd {
	v := forms.CategoryValuesFrom(draft)
	if id == 0 {
		v.Orden = ""
	}
	return s.openEditor(forms.Category(title, v), func() tea.Cmd {
		category, err := inventory.NewCategory(id, v.Draft())
		if err != nil {
			return mutate("guardar categoría", func() error { return err })
		}
		api, ctx := s.deps.API, s.deps.ctx()
		if id == 0 {
			return mutate(fmt.Sprintf("Categoría %q creada", category.Nombre), func() error {
				_, err := api.CreateCategory(ctx, category)
				return err
			})
		}
		return mutate(fmt.Sprintf("Categoría %q actualizada", category.Nombre), func() error {
			_, err := api.UpdateCategory(ctx, category)
			return err
		})
	})
}

func (s *Categories) toggle(c client.Category) tea.Cmd {
	toggled := inventory.Toggled(c)
	what := fmt.Sprintf("Categoría %q activada", c.Nombre)
	if !toggled.Activo {
		what = fmt.Sprintf("Categoría %q desactivada", c.Nombre)
	}
	api, ctx := s.deps.API, s.deps.ctx()
	return mutate(what, func() error {
		_, err := api.UpdateCategory(ctx, toggled)
		return err
	})
}

func (s *Categories) delete(c client.Category) tea.Cmd {
	var ok bool
	return s.openEditor(forms.Confirm("Eliminar categoría", fmt.Sprintf("¿Eliminar %q?", c.Nombre), &ok), func() tea.Cmd {
		if !ok {
			return nil
		}
		api, ctx := s.deps.API, s.deps.ctx()
		return mutate(fmt.Sprintf("Categoría %q eliminada", c.Nombre), func() error {
			return api.DeleteCategory(ctx, c.ID)
		})
	})
}

// View implements Screen
func (s *Categories) View() string {
	body := s.table.View()
	if !s.loading && s.err == nil && len(s.categories) == 0 {
		body = "No hay categorías"
	}
	return s.render("Categorías", body)
}

// Shortcuts implements Screen
func (s *Categories) Shortcuts() []string {
	if s.Editing() {
		return []string{"Tab Siguiente", "Enter Confirmar", "Esc Cancelar"}
	}
	return []string{"n Nueva", "e Editar", "t Activar/Desactivar", "d Eliminar"}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
