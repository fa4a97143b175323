// ABOUTME: Movements screen with the stock movement history
// ABOUTME: f cycles the type filter through every movement type

package screens

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/format"
	"github.com/basinventario/inventario-cli/internal/inventory"
)

type movementsLoadedMsg struct {
	origin    int64
	movements []client.Movement
	err       error
}

// Movements lists stock movements
type Movements struct {
	base
	all    []client.Movement
	shown  []client.Movement
	filter string
}

// NewMovements creates the movements screen
func NewMovements(deps Deps) *Movements {
	return &Movements{base: newBase(deps, []table.Column{
		{Title: "Fecha", Width: 19},
		{Title: "Producto", Width: 24},
		{Title: "Tipo", Width: 13},
		{Title: "Cantidad", Width: 9},
		{Title: "Anterior", Width: 9},
		{Title: "Final", Width: 8},
		{Title: "Motivo", Width: 22},
		{Title: "Documento", Width: 12},
		{Title: "Usuario", Width: 14},
	})}
}

// Refresh implements Screen
func (s *Movements) Refresh() tea.Cmd {
	api, ctx, origin := s.deps.API, s.deps.ctx(), s.origin
	return tea.Batch(s.startLoading(), func() tea.Msg {
		movements, err := api.Movements(ctx)
		return movementsLoadedMsg{origin: origin, movements: movements, err: err}
	})
}

// Update implements Screen
func (s *Movements) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(movementsLoadedMsg); ok {
		if msg.origin != s.origin {
			return nil
		}
		s.finishLoading(msg.err)
		if msg.err == nil {
			s.all = msg.movements
			s.applyFilter()
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
	if key.String() == "f" {
		s.filter = inventory.NextMovementFilter(s.filter)
		s.applyFilter()
		return nil
	}
	return s.updateTable(msg)
}

// Filter returns the active type filter; empty means all
func (s *Movements) Filter() string {
	return s.filter
}

func (s *Movements) applyFilter() {
	s.shown = inventory.FilterMovements(s.all, s.filter)
	rows := make([]table.Row, 0, len(s.shown))
	for _, m := range s.shown {
		rows = append(rows, table.Row{
			format.DateTime(m.FechaMovimiento.Time),
			m.ProductoNombre,
			m.TipoMovimiento,
			s.deps.Format.Int(m.CantidadMovimiento),
			s.deps.Format.Int(m.CantidadAnterior),
			s.deps.Format.Int(m.CantidadFinal),
			m.Motivo,
			deref(m.NumeroDocumento),
			m.UsuarioNombre,
		})
	}
	s.table.SetRows(rows)
	s.table.GotoTop()
}

// View implements Screen
func (s *Movements) View() string {
	label := "todos"
	if s.filter != "" {
		label = s.filter
	}
	header := fmt.Sprintf("Filtro: %s  (%d de %d)", label, len(s.shown), len(s.all))

	body := header + "\n" + s.table.View()
	if !s.loading && s.err == nil && len(s.shown) == 0 {
		body = header + "\n" + "No hay movimientos"
	}
	return s.render("Movimientos", body)
}

// SetSize reserves room for the filter line
func (s *Movements) SetSize(width, height int) {
	s.base.SetSize(width, height-1)
}

// Shortcuts implements Screen
func (s *Movements) Shortcuts() []string {
	return []string{"f Filtrar tipo"}
}
