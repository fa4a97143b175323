// ABOUTME: Products screen listing the catalog
// ABOUTME: n creates, e renames, d deletes the selected product

package screens

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/tui/forms"
)

type productsLoadedMsg struct {
	origin   int64
	products []client.Product
	err      error
}

// Products lists and edits products
type Products struct {
	base
	products []client.Product
}

// NewProducts creates the products screen
func NewProducts(deps Deps) *Products {
	return &Products{base: newBase(deps, []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Nombre", Width: 28},
		{Title: "Descripción", Width: 36},
		{Title: "Precio", Width: 14},
		{Title: "Stock", Width: 8},
	})}
}

// Refresh implements Screen
func (s *Products) Refresh() tea.Cmd {
	api, ctx, origin := s.deps.API, s.deps.ctx(), s.origin
	return tea.Batch(s.startLoading(), func() tea.Msg {
		products, err := api.Products(ctx)
		return productsLoadedMsg{origin: origin, products: products, err: err}
	})
}

// Update implements Screen
func (s *Products) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(productsLoadedMsg); ok {
		if msg.origin != s.origin {
			return nil
		}
		s.finishLoading(msg.err)
		if msg.err == nil {
			s.setProducts(msg.products)
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
	switch key.String() {
	case "n":
		return s.create()
	case "e":
		if i, ok := s.selected(len(s.products)); ok {
			return s.rename(s.products[i])
		}
		return nil
	case "d":
		if i, ok := s.selected(len(s.products)); ok {
			return s.delete(s.products[i])
		}
		return nil
	}
	return s.updateTable(msg)
}

func (s *Products) setProducts(products []client.Product) {
	s.products = products
	rows := make([]table.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, table.Row{
			strconv.FormatInt(p.ID, 10),
			p.Nombre,
			p.Descripcion,
			s.deps.Format.Money(p.Precio),
			s.deps.Format.Int(p.Stock),
		})
	}
	s.table.SetRows(rows)
}

func (s *Products) create() tea.Cmd {
	v := &forms.ProductValues{}
	return s.openEditor(forms.NewProduct(v), func() tea.Cmd {
		input, err := v.Input()
		if err != nil {
			return mutate("crear producto", func() error { return err })
		}
		api, ctx := s.deps.API, s.deps.ctx()
		return mutate(fmt.Sprintf("Producto %q creado", input.Nombre), func() error {
			_, err := api.CreateProduct(ctx, input)
			return err
		})
	})
}

func (s *Products) rename(p client.Product) tea.Cmd {
	v := forms.ProductValuesFrom(p)
	return s.openEditor(forms.EditProduct(v), func() tea.Cmd {
		input, err := v.Input()
		if err != nil {
			return mutate("editar producto", func() error { return err })
		}
		api, ctx := s.deps.API, s.deps.ctx()
		return mutate(fmt.Sprintf("Producto %d actualizado", p.ID), func() error {
			_, err := api.UpdateProduct(ctx, p.ID, input)
			return err
		})
	})
}

func (s *Products) delete(p client.Product) tea.Cmd {
	var ok bool
	return s.openEditor(forms.Confirm("Eliminar producto", fmt.Sprintf("¿Eliminar %q?", p.Nombre), &ok), func() tea.Cmd {
		if !ok {
			return nil
		}
		api, ctx := s.deps.API, s.deps.ctx()
		return mutate(fmt.Sprintf("Producto %q eliminado", p.Nombre), func() error {
			return api.DeleteProduct(ctx, p.ID)
		})
	})
}

// View implements Screen
func (s *Products) View() string {
	body := s.table.View()
	if !s.loading && s.err == nil && len(s.products) == 0 {
		body = "No hay productos"
	}
	return s.render("Productos", body)
}

// Shortcuts implements Screen
func (s *Products) Shortcuts() []string {
	if s.Editing() {
		return []string{"Tab Siguiente", "Enter Confirmar", "Esc Cancelar"}
	}
	return []string{"n Nuevo", "e Editar", "d Eliminar"}
}
