// ABOUTME: Tests for the stock PDF report
// ABOUTME: Renders a small report and checks the PDF envelope

package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/format"
	"github.com/basinventario/inventario-cli/internal/inventory"
)

func TestStockPDF(t *testing.T) {
	r := StockReport{
		Items: []client.StockItem{
			{ID: 1, Nombre: "Teclado", CategoriaNombre: "Periféricos", StockActual: 2, StockMinimo: 5, StockMaximo: 50, AlertaStockBajo: true},
			{ID: 2, Nombre: "Monitor", StockActual: 45, StockMinimo: 5, StockMaximo: 50, UbicacionFisica: "A-3"},
		},
		GeneratedBy: "warce",
		GeneratedAt: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	}

	data, err := StockPDF(r, format.New("es-ES"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "expected PDF header")
}

func TestStockPDF_Empty(t *testing.T) {
	data, err := StockPDF(StockReport{GeneratedAt: time.Now()}, format.New("en-US"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, colorLow, statusColor(inventory.StatusLow))
	assert.Equal(t, colorNormal, statusColor(inventory.StatusNormal))
	assert.Equal(t, colorMedium, statusColor(inventory.StatusMedium))
}
