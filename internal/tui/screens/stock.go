// ABOUTME: Inventory screen with stock levels and their status
// ABOUTME: m registers a movement for the selected product

package screens

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/inventory"
	"github.com/basinventario/inventario-cli/internal/tui/forms"
	"github.com/basinventario/inventario-cli/internal/tui/styles"
	"github.com/basinventario/inventario-cli/internal/tui/widgets"
)

type stockLoadedMsg struct {
	origin int64
	items  []client.StockItem
	err    error
}

// Stock lists stock levels per product
type Stock struct {
	base
	items []client.StockItem
}

// NewStock creates the inventory screen
func NewStock(deps Deps) *Stock {
	return &Stock{base: newBase(deps, []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Producto", Width: 26},
		{Title: "Categoría", Width: 16},
		{Title: "Actual", Width: 8},
		{Title: "Mín", Width: 6},
		{Title: "Máx", Width: 6},
		{Title: "Unidad", Width: 8},
		{Title: "Estado", Width: 13},
	})}
}

// Refresh implements Screen
func (s *Stock) Refresh() tea.Cmd {
	api, ctx, origin := s.deps.API, s.deps.ctx(), s.origin
	return tea.Batch(s.startLoading(), func() tea.Msg {
		items, err := api.StockLevels(ctx)
		return stockLoadedMsg{origin: origin, items: items, err: err}
	})
}

// Update implements Screen
func (s *Stock) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(stockLoadedMsg); ok {
		if msg.origin != s.origin {
			return nil
		}
		s.finishLoading(msg.err)
		if msg.err == nil {
			s.setItems(msg.items)
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
	if key.String() == "m" {
		if i, ok := s.selected(len(s.items)); ok {
			return s.registerMovement(s.items[i])
		}
		return nil
	}
	return s.updateTable(msg)
}

func (s *Stock) setItems(items []client.StockItem) {
	s.items = items
	rows := make([]table.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, table.Row{
			strconv.FormatInt(item.ID, 10),
			item.Nombre,
			item.CategoriaNombre,
			s.deps.Format.Int(item.StockActual),
			s.deps.Format.Int(item.StockMinimo),
			s.deps.Format.Int(item.StockMaximo),
			item.UnidadMedida,
			inventory.Status(item).String(),
		})
	}
	s.table.SetRows(rows)
}

func (s *Stock) registerMovement(item client.StockItem) tea.Cmd {
	v := &forms.MovementValues{ProductoID: item.ID}
	label := fmt.Sprintf("%s (stock actual: %d %s)", item.Nombre, item.StockActual, item.UnidadMedida)
	return s.openEditor(forms.Movement(label, v), func() tea.Cmd {
		input, err := inventory.NewMovementInput(v.Draft(), s.deps.Viewer.User.ID)
		if err != nil {
			return mutate("registrar movimiento", func() error { return err })
		}
		api, ctx := s.deps.API, s.deps.ctx()
		return mutate(fmt.Sprintf("%s de %d registrada para %q", input.TipoMovimiento, input.Cantidad, item.Nombre), func() error {
			_, err := api.CreateMovement(ctx, input)
			return err
		})
	})
}

// detail renders the selected item's fill level under the table
func (s *Stock) detail() string {
	i, ok := s.selected(len(s.items))
	if !ok {
		return ""
	}
	item := s.items[i]
	status := inventory.Status(item)

	var sb strings.Builder
	sb.WriteString(widgets.StockBadge(status))
	sb.WriteString(" ")
	sb.WriteString(styles.ValueStyle.Render(item.Nombre))
	if item.UbicacionFisica != "" {
		sb.WriteString(styles.Subtitle.UnsetMarginBottom().Render("  " + item.UbicacionFisica))
	}
	sb.WriteString("\n")

	level := widgets.StockLevel(status)
	color := widgets.BadgeOKBg
	switch level {
	case widgets.StatusCritical:
		color = widgets.BadgeCritBg
	case widgets.StatusWarning:
		color = widgets.BadgeWarnBg
	}
	sb.WriteString(widgets.CompactProgressBar(inventory.FillRatio(item)*100, 30, color))
	sb.WriteString(fmt.Sprintf(" %d / %d %s", item.StockActual, item.StockMaximo, item.UnidadMedida))
	return sb.String()
}

// View implements Screen
func (s *Stock) View() string {
	if !s.loading && s.err == nil && len(s.items) == 0 && s.editor == nil {
		return s.render("Inventario", "No hay productos con stock registrado")
	}

	low := len(inventory.LowStock(s.items))
	summary := fmt.Sprintf("%d productos, %d con stock bajo", len(s.items), low)
	return s.render("Inventario", summary+"\n"+s.table.View()+"\n\n"+s.detail())
}

// Shortcuts implements Screen
func (s *Stock) Shortcuts() []string {
	if s.Editing() {
		return []string{"Tab Siguiente", "Enter Confirmar", "Esc Cancelar"}
	}
	return []string{"m Movimiento"}
}

// SetSize reserves room for the summary and detail lines
func (s *Stock) SetSize(width, height int) {
	s.base.SetSize(width, height-4)
}
