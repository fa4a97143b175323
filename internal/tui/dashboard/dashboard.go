// ABOUTME: Dashboard component displaying inventory summary metrics
// ABOUTME: Shows totals, low stock share, recent movements and top categories

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/format"
	"github.com/basinventario/inventario-cli/internal/tui/icons"
	"github.com/basinventario/inventario-cli/internal/tui/styles"
	"github.com/basinventario/inventario-cli/internal/tui/widgets"
)

// maxRecent caps the recent movements list
const maxRecent = 5

// Dashboard displays the inventory summary
type Dashboard struct {
	stats    *client.DashboardStats
	userName string
	format   *format.Formatter
	width    int
	height   int
}

// New creates a new dashboard; stats may be nil while loading
func New(stats *client.DashboardStats, userName string, f *format.Formatter, width, height int) *Dashboard {
	return &Dashboard{
		stats:    stats,
		userName: userName,
		format:   f,
		width:    width,
		height:   height,
	}
}

// Update refreshes dashboard with new stats
func (d *Dashboard) Update(stats *client.DashboardStats) {
	d.stats = stats
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// View renders the dashboard
func (d *Dashboard) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("Bienvenido, %s", d.userName)))
	sb.WriteString("\n")

	if d.stats == nil {
		sb.WriteString("Cargando resumen...")
		return lipgloss.NewStyle().Width(d.width).Render(sb.String())
	}
	s := d.stats

	sb.WriteString(d.renderCards())
	sb.WriteString("\n\n")

	// Share of the catalog under its minimum
	sb.WriteString("Productos con stock bajo\n")
	share := 0.0
	if s.TotalProductos > 0 {
		share = float64(s.ProductosStockBajo) / float64(s.TotalProductos) * 100
	}
	sb.WriteString(widgets.ProgressBarWithLabel(share, widgets.DefaultProgressBarConfig()))
	sb.WriteString("\n\n")

	sb.WriteString(d.renderRecent())
	sb.WriteString("\n")
	sb.WriteString(d.renderTopCategories())

	return lipgloss.NewStyle().
		Width(d.width).
		MaxHeight(d.height).
		Render(sb.String())
}

// renderCards lays out the summary blocks, two per row on narrow terminals
func (d *Dashboard) renderCards() string {
	s := d.stats
	cfg := widgets.DefaultMetricBlockConfig()

	lowCfg := cfg
	if s.ProductosStockBajo > 0 {
		lowCfg.BorderColor = styles.Danger
	}

	cards := []string{
		widgets.CountBlock(icons.Product, "Productos", s.TotalProductos, fmt.Sprintf("%d categorías", s.TotalCategorias), cfg),
		widgets.MetricBlock(icons.Money, "Valor inventario", d.format.Money(s.ValorTotalInventario), "valor total", cfg),
		widgets.CountBlock(icons.Warning, "Stock bajo", s.ProductosStockBajo, "requieren reposición", lowCfg),
		widgets.CountBlock(icons.Users, "Usuarios", s.TotalUsuarios, "registrados", cfg),
	}

	perRow := 4
	if d.width < 4*cfg.Width+4 {
		perRow = 2
	}

	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := min(i+perRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (d *Dashboard) renderRecent() string {
	var sb strings.Builder
	sb.WriteString(styles.ValueStyle.Render(icons.Movement.String() + " Movimientos recientes"))
	sb.WriteString("\n")

	if len(d.stats.MovimientosRecientes) == 0 {
		sb.WriteString(styles.Subtitle.Render("  Sin movimientos"))
		sb.WriteString("\n")
		return sb.String()
	}

	for i, m := range d.stats.MovimientosRecientes {
		if i == maxRecent {
			break
		}
		line := fmt.Sprintf("  %-12s %-28s %5d  %s", m.TipoMovimiento, m.Producto, m.Cantidad, m.Usuario)
		if m.Fecha != "" {
			line += "  " + m.Fecha
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}

func (d *Dashboard) renderTopCategories() string {
	var sb strings.Builder
	sb.WriteString(styles.ValueStyle.Render(icons.Category.String() + " Categorías principales"))
	sb.WriteString("\n")

	if len(d.stats.TopCategorias) == 0 {
		sb.WriteString(styles.Subtitle.Render("  Sin categorías"))
		return sb.String()
	}

	for _, c := range d.stats.TopCategorias {
		sb.WriteString(fmt.Sprintf("  %s %-24s %4d productos  %s\n", c.Icono, c.Nombre, c.TotalProductos, d.format.Money(c.ValorInventario)))
	}
	return strings.TrimRight(sb.String(), "\n")
}
