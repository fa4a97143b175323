// ABOUTME: Tests for form values and the embeddable editor
// ABOUTME: Validates conversions to API inputs and cancel handling

package forms

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/inventory"
)

func TestProductValuesInput(t *testing.T) {
	v := &ProductValues{Nombre: "  Tornillo ", Descripcion: "M6", Precio: "12.5", Stock: "40"}

	input, err := v.Input()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.Nombre != "Tornillo" {
		t.Errorf("expected trimmed name, got %q", input.Nombre)
	}
	if input.Precio == nil || !input.Precio.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("expected precio 12.5, got %v", input.Precio)
	}
	if input.Stock == nil || *input.Stock != 40 {
		t.Errorf("expected stock 40, got %v", input.Stock)
	}
}

func TestProductValuesInput_BlankNumbersOmitted(t *testing.T) {
	input, err := (&ProductValues{Nombre: "Tuerca"}).Input()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.Precio != nil || input.Stock != nil {
		t.Errorf("expected precio and stock omitted, got %v %v", input.Precio, input.Stock)
	}
}

func TestProductValuesInput_Rejects(t *testing.T) {
	tests := []struct {
		name string
		v    ProductValues
	}{
		{"blank name", ProductValues{Nombre: " "}},
		{"negative price", ProductValues{Nombre: "x", Precio: "-1"}},
		{"bad price", ProductValues{Nombre: "x", Precio: "abc"}},
		{"negative stock", ProductValues{Nombre: "x", Stock: "-3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.v.Input(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestEditProductClearsNumbers(t *testing.T) {
	v := ProductValuesFrom(client.Product{Nombre: "Clavo", Precio: decimal.NewFromInt(3), Stock: 9})
	if v.Precio != "3.00" || v.Stock != "9" {
		t.Fatalf("unexpected seed values %+v", v)
	}

	EditProduct(v)

	input, err := v.Input()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.Precio != nil || input.Stock != nil {
		t.Error("rename must not send precio or stock")
	}
}

func TestCategoryValuesDraft(t *testing.T) {
	v := CategoryValuesFrom(inventory.CategoryDraft{Nombre: "Ferretería", Codigo: "fer", Orden: 3})
	if v.Orden != "3" {
		t.Errorf("expected orden 3, got %q", v.Orden)
	}

	v.Orden = "x"
	d := v.Draft()
	if d.Orden != 0 {
		t.Errorf("expected invalid orden to fall back to 0, got %d", d.Orden)
	}

	c, err := inventory.NewCategory(0, d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Orden != inventory.DefaultCategoryOrder {
		t.Errorf("expected default order, got %d", c.Orden)
	}
	if c.Codigo == nil || *c.Codigo != "FER" {
		t.Errorf("expected upper-cased code, got %v", c.Codigo)
	}
}

func TestMovementValuesDraft(t *testing.T) {
	v := &MovementValues{ProductoID: 7, Cantidad: "5"}
	Movement("Tornillo", v)

	if v.Tipo != client.MovementIn {
		t.Errorf("expected default type %q, got %q", client.MovementIn, v.Tipo)
	}

	input, err := inventory.NewMovementInput(v.Draft(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.Motivo != inventory.DefaultMotivo {
		t.Errorf("expected default motivo, got %q", input.Motivo)
	}

	v.Cantidad = "cero"
	if _, err := inventory.NewMovementInput(v.Draft(), 1); err == nil {
		t.Error("expected invalid quantity error")
	}
}

func TestUserValuesInput(t *testing.T) {
	roles := []client.Role{{ID: 2, Nombre: "Operador"}, {ID: 1, Nombre: "Admin"}}
	v := &UserValues{Nombre: "Ana", UserName: "ana", Password: "secret"}

	User(v, roles)
	if v.RolID != 2 {
		t.Errorf("expected first role preselected, got %d", v.RolID)
	}

	input, err := v.Input()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !input.Activo {
		t.Error("expected new user to be active")
	}

	v.Password = ""
	if _, err := v.Input(); err == nil {
		t.Error("expected missing password error")
	}
}

func TestUserEditValuesUpdate(t *testing.T) {
	v := UserEditValuesFrom(client.User{ID: 2, Nombre: " María ", Email: "maria@example.com", Activo: true})

	update, err := v.Update()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if update.Nombre != "María" || update.Email != "maria@example.com" {
		t.Errorf("unexpected update %+v", update)
	}
	if update.Activo != nil || update.RolID != 0 {
		t.Error("expected the edit form to leave status and role alone")
	}

	v.Nombre = " "
	if _, err := v.Update(); err == nil {
		t.Error("expected missing name error")
	}
}

func TestLoginClearsPassword(t *testing.T) {
	v := &LoginValues{UserName: " admin ", Password: "old"}
	Login(v)

	if v.Password != "" {
		t.Error("expected password cleared")
	}
	if got := v.Credentials().UserName; got != "admin" {
		t.Errorf("expected trimmed user name, got %q", got)
	}
}

func TestValidators(t *testing.T) {
	if err := PositiveInt("0"); err == nil {
		t.Error("PositiveInt should reject 0")
	}
	if err := PositiveInt("4"); err != nil {
		t.Errorf("PositiveInt(4): %v", err)
	}
	if err := NonNegativeInt(""); err != nil {
		t.Errorf("NonNegativeInt blank: %v", err)
	}
	if err := NonNegativeDecimal("1.5"); err != nil {
		t.Errorf("NonNegativeDecimal(1.5): %v", err)
	}
	if err := NonNegativeDecimal("-0.01"); err == nil {
		t.Error("NonNegativeDecimal should reject negatives")
	}
	if err := Required("obligatorio")("  "); err == nil || err.Error() != "obligatorio" {
		t.Errorf("Required: %v", err)
	}
}

func TestEditorEscCancels(t *testing.T) {
	var ok bool
	e := Confirm("Eliminar", "¿Seguro?", &ok)
	e.Init()

	result, _ := e.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if result != Cancelled {
		t.Errorf("expected Cancelled, got %v", result)
	}
	if ok {
		t.Error("confirm must default to false")
	}
}

func TestEditorViewShowsError(t *testing.T) {
	e := Login(&LoginValues{})
	e.Init()
	e.SetError("Credenciales inválidas")

	view := e.View()
	if !strings.Contains(view, "Credenciales inválidas") {
		t.Errorf("expected error in view, got:\n%s", view)
	}
	if !strings.Contains(view, "Iniciar sesión") {
		t.Errorf("expected title in view, got:\n%s", view)
	}
}
