// ABOUTME: Tests for stock status, movement and category helpers
// ABOUTME: Table-driven checks of the display rules

package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basinventario/inventario-cli/internal/client"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		item client.StockItem
		want StockStatus
	}{
		{"alert wins over high stock", client.StockItem{StockActual: 100, StockMaximo: 100, AlertaStockBajo: true}, StatusLow},
		{"above 80 percent", client.StockItem{StockActual: 81, StockMaximo: 100}, StatusNormal},
		{"exactly 80 percent", client.StockItem{StockActual: 80, StockMaximo: 100}, StatusMedium},
		{"middle", client.StockItem{StockActual: 30, StockMaximo: 100}, StatusMedium},
		{"no maximum", client.StockItem{StockActual: 5}, StatusNormal},
		{"empty", client.StockItem{}, StatusMedium},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Status(tc.item))
		})
	}

	assert.Equal(t, "Stock Bajo", StatusLow.String())
	assert.Equal(t, "Stock Normal", StatusNormal.String())
	assert.Equal(t, "Stock Medio", StatusMedium.String())
}

func TestLowStockAndFillRatio(t *testing.T) {
	items := []client.StockItem{
		{ID: 1, AlertaStockBajo: true},
		{ID: 2},
		{ID: 3, AlertaStockBajo: true},
	}
	low := LowStock(items)
	require.Len(t, low, 2)
	assert.Equal(t, int64(3), low[1].ID)
	assert.Empty(t, LowStock(items[1:2]))

	assert.Equal(t, 0.5, FillRatio(client.StockItem{StockActual: 5, StockMaximo: 10}))
	assert.Equal(t, 1.0, FillRatio(client.StockItem{StockActual: 50, StockMaximo: 10}))
	assert.Equal(t, 0.0, FillRatio(client.StockItem{StockActual: 5}))
}

func TestFilterMovements(t *testing.T) {
	movements := []client.Movement{
		{ID: 1, TipoMovimiento: client.MovementIn},
		{ID: 2, TipoMovimiento: client.MovementOut},
		{ID: 3, TipoMovimiento: client.MovementIn},
	}

	assert.Len(t, FilterMovements(movements, ""), 3)
	in := FilterMovements(movements, client.MovementIn)
	require.Len(t, in, 2)
	assert.Equal(t, int64(3), in[1].ID)
	assert.Empty(t, FilterMovements(movements, client.MovementLoss))
}

func TestNextMovementFilter_Cycles(t *testing.T) {
	seen := []string{}
	f := ""
	for i := 0; i <= len(client.MovementTypes); i++ {
		f = NextMovementFilter(f)
		seen = append(seen, f)
	}
	assert.Equal(t, append(append([]string{}, client.MovementTypes...), ""), seen)
}

func TestNewMovementInput(t *testing.T) {
	in, err := NewMovementInput(MovementDraft{ProductoID: 4, Tipo: client.MovementOut, Cantidad: 2, Motivo: "  "}, 7)
	require.NoError(t, err)
	assert.Equal(t, DefaultMotivo, in.Motivo)
	assert.Equal(t, int64(7), in.UsuarioID)
	assert.Nil(t, in.NumeroDocumento)

	in, err = NewMovementInput(MovementDraft{ProductoID: 4, Tipo: client.MovementIn, Cantidad: 1, Motivo: "Compra", NumeroDocumento: "F-001"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "Compra", in.Motivo)
	require.NotNil(t, in.NumeroDocumento)
	assert.Equal(t, "F-001", *in.NumeroDocumento)

	_, err = NewMovementInput(MovementDraft{ProductoID: 4, Tipo: client.MovementIn}, 1)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = NewMovementInput(MovementDraft{ProductoID: 4, Tipo: "Robo", Cantidad: 1}, 1)
	assert.Error(t, err)
	_, err = NewMovementInput(MovementDraft{Tipo: client.MovementIn, Cantidad: 1}, 1)
	assert.Error(t, err)
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory(0, CategoryDraft{Nombre: " Bebidas ", Codigo: "beb"})
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", c.Nombre)
	require.NotNil(t, c.Codigo)
	assert.Equal(t, "BEB", *c.Codigo)
	assert.Nil(t, c.Descripcion)
	assert.Equal(t, DefaultCategoryColor, c.Color)
	assert.Equal(t, DefaultCategoryIcon, c.Icono)
	assert.Equal(t, DefaultCategoryOrder, c.Orden)
	assert.True(t, c.Activo)

	_, err = NewCategory(0, CategoryDraft{Nombre: "  "})
	assert.Error(t, err)

	desc := "Frías"
	existing := client.Category{ID: 9, Nombre: "Bebidas", Descripcion: &desc, Color: "#000000", Icono: "🥤", Orden: 3}
	edited, err := NewCategory(existing.ID, DraftFrom(existing))
	require.NoError(t, err)
	assert.Equal(t, int64(9), edited.ID)
	assert.Equal(t, "Frías", *edited.Descripcion)
	assert.Equal(t, 3, edited.Orden)

	assert.False(t, Toggled(client.Category{Activo: true}).Activo)
}

func TestSummarizeLogs(t *testing.T) {
	logs := []client.UserLog{
		{Action: ActionLoginSuccess, Success: true},
		{Action: ActionLoginFailed, Success: false},
		{Action: ActionRead, Success: true},
		{Action: ActionLoginFailed, Success: false},
		{Action: ActionCreate, Success: true},
		{Action: ActionUpdate, Success: true},
	}

	s := SummarizeLogs(logs)
	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 67, s.SuccessRate)
	assert.Equal(t, 2, s.FailedLogins)
	assert.Len(t, s.Recent, SummaryRecent)

	empty := SummarizeLogs(nil)
	assert.Equal(t, 0, empty.Total)
	assert.Equal(t, 0, empty.SuccessRate)
	assert.Empty(t, empty.Recent)
}

func TestSummaryFilter(t *testing.T) {
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	f := SummaryFilter(now)
	assert.Equal(t, now.Add(-24*time.Hour), f.FromDate)
	assert.Equal(t, now, f.ToDate)
	assert.Equal(t, SummaryLimit, f.Limit)
}

func TestClassifyLog(t *testing.T) {
	assert.Equal(t, LogOK, ClassifyLog(client.UserLog{Success: true, ResponseStatus: 200}))
	assert.Equal(t, LogFailed, ClassifyLog(client.UserLog{Success: false, ResponseStatus: 200}))
	assert.Equal(t, LogFailed, ClassifyLog(client.UserLog{Success: true, ResponseStatus: 404}))
	assert.Equal(t, LogWarning, ClassifyLog(client.UserLog{Success: true, ResponseStatus: 304}))
	assert.Equal(t, ActionLoginFailed, NextActionFilter(ActionLoginSuccess))
	assert.Equal(t, "", NextActionFilter(ActionRead))
}

func TestValidateUser(t *testing.T) {
	valid := client.UserInput{Nombre: "Ana", UserName: "ana.garcia", Password: "secreto", RolID: 2}
	assert.NoError(t, ValidateUser(valid))

	missingRole := valid
	missingRole.RolID = 0
	assert.EqualError(t, ValidateUser(missingRole), "selecciona un rol")

	blankName := valid
	blankName.Nombre = "  "
	assert.EqualError(t, ValidateUser(blankName), "el nombre es obligatorio")
}

func TestValidateUserUpdate(t *testing.T) {
	assert.ErrorIs(t, ValidateUserUpdate(client.UserUpdate{}), ErrEmptyUserUpdate)
	assert.NoError(t, ValidateUserUpdate(client.UserUpdate{Email: "ana@example.com"}))

	inactive := false
	assert.NoError(t, ValidateUserUpdate(client.UserUpdate{Activo: &inactive}))
	assert.Error(t, ValidateUserUpdate(client.UserUpdate{RolID: -1}))
}
