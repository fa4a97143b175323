// ABOUTME: Tests for dashboard component
// ABOUTME: Validates inventory summary display with visual widgets

package dashboard

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/format"
)

func sampleStats() *client.DashboardStats {
	return &client.DashboardStats{
		TotalProductos:       20,
		TotalUsuarios:        3,
		TotalCategorias:      4,
		ValorTotalInventario: decimal.RequireFromString("1234.5"),
		ProductosStockBajo:   5,
		MovimientosRecientes: []client.RecentMovement{
			{Producto: "Tornillo M6", TipoMovimiento: "Entrada", Cantidad: 100, Usuario: "ana"},
		},
		TopCategorias: []client.CategorySummary{
			{ID: 1, Nombre: "Ferretería", Icono: "🔩", TotalProductos: 12, ValorInventario: decimal.NewFromInt(900)},
		},
	}
}

func TestDashboardView(t *testing.T) {
	d := New(sampleStats(), "Ana Pérez", format.New("en-US"), 120, 40)
	view := d.View()

	expected := []string{
		"Bienvenido, Ana Pérez",
		"Productos",
		"Valor inventario",
		"$1,234.50",
		"Stock bajo",
		"25%",
		"Tornillo M6",
		"Ferretería",
		"$900.00",
	}
	for _, want := range expected {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q\nView:\n%s", want, view)
		}
	}
}

func TestDashboardNilStats(t *testing.T) {
	d := New(nil, "Ana", format.New(""), 80, 24)
	view := d.View()

	if !strings.Contains(view, "Cargando") {
		t.Error("expected loading message when stats are nil")
	}
}

func TestDashboardUpdate(t *testing.T) {
	d := New(nil, "Ana", format.New("en-US"), 120, 40)

	if !strings.Contains(d.View(), "Cargando") {
		t.Error("expected loading message initially")
	}

	d.Update(&client.DashboardStats{TotalProductos: 2})

	view := d.View()
	if strings.Contains(view, "Cargando") {
		t.Error("should not show loading after update")
	}
	if !strings.Contains(view, "Sin movimientos") {
		t.Errorf("expected empty recent movements\nView:\n%s", view)
	}
}

func TestDashboardNarrowWidthStacksCards(t *testing.T) {
	wide := New(sampleStats(), "Ana", format.New("en-US"), 140, 60).View()
	narrow := New(sampleStats(), "Ana", format.New("en-US"), 60, 60).View()

	if strings.Count(narrow, "\n") <= strings.Count(wide, "\n") {
		t.Error("expected narrow layout to use more lines")
	}
}
