// ABOUTME: Form builders for login and every editable record
// ABOUTME: Values hold raw strings for huh and convert to API inputs on submit

package forms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/inventory"
)

// LoginValues backs the login form
type LoginValues struct {
	UserName string
	Password string
}

// Credentials returns the values as API credentials
func (v *LoginValues) Credentials() client.Credentials {
	return client.Credentials{UserName: strings.TrimSpace(v.UserName), Password: v.Password}
}

// Login builds the login form. The password is cleared so a retry starts empty.
func Login(v *LoginValues) *Editor {
	v.Password = ""
	return NewEditor("Iniciar sesión",
		huh.NewGroup(
			huh.NewInput().
				Title("Usuario").
				Value(&v.UserName).
				Validate(Required("el usuario es obligatorio")),
			huh.NewInput().
				Title("Contraseña").
				EchoMode(huh.EchoModePassword).
				Value(&v.Password).
				Validate(Required("la contraseña es obligatoria")),
		).Description("Ingresa tus credenciales para continuar"),
	)
}

// ProductValues backs the product form
type ProductValues struct {
	Nombre      string
	Descripcion string
	Precio      string
	Stock       string
}

// ProductValuesFrom seeds the form with an existing product
func ProductValuesFrom(p client.Product) *ProductValues {
	return &ProductValues{
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio.StringFixed(2),
		Stock:       strconv.Itoa(p.Stock),
	}
}

// Input converts the values; precio and stock are sent when filled in
func (v *ProductValues) Input() (client.ProductInput, error) {
	input := client.ProductInput{
		Nombre:      strings.TrimSpace(v.Nombre),
		Descripcion: strings.TrimSpace(v.Descripcion),
	}
	if input.Nombre == "" {
		return input, errors.New("el nombre es obligatorio")
	}
	if strings.TrimSpace(v.Precio) != "" {
		precio, err := decimal.NewFromString(strings.TrimSpace(v.Precio))
		if err != nil || precio.IsNegative() {
			return input, fmt.Errorf("precio inválido %q", v.Precio)
		}
		input.Precio = &precio
	}
	if strings.TrimSpace(v.Stock) != "" {
		stock, err := strconv.Atoi(strings.TrimSpace(v.Stock))
		if err != nil || stock < 0 {
			return input, fmt.Errorf("stock inválido %q", v.Stock)
		}
		input.Stock = &stock
	}
	return input, nil
}

// NewProduct builds the create form: every field
func NewProduct(v *ProductValues) *Editor {
	return NewEditor("Nuevo producto",
		huh.NewGroup(
			huh.NewInput().Title("Nombre").Value(&v.Nombre).Validate(Required("el nombre es obligatorio")),
			huh.NewInput().Title("Descripción").Value(&v.Descripcion),
			huh.NewInput().Title("Precio").Placeholder("0.00").Value(&v.Precio).Validate(NonNegativeDecimal),
			huh.NewInput().Title("Stock inicial").Placeholder("0").Value(&v.Stock).Validate(NonNegativeInt),
		),
	)
}

// EditProduct builds the rename form. Price and stock stay untouched:
// stock only changes through movements.
func EditProduct(v *ProductValues) *Editor {
	v.Precio, v.Stock = "", ""
	return NewEditor("Editar producto",
		huh.NewGroup(
			huh.NewInput().Title("Nombre").Value(&v.Nombre).Validate(Required("el nombre es obligatorio")),
			huh.NewInput().Title("Descripción").Value(&v.Descripcion),
		),
	)
}

// CategoryValues backs the category form
type CategoryValues struct {
	Nombre      string
	Descripcion string
	Codigo      string
	Color       string
	Icono       string
	Orden       string
}

// CategoryValuesFrom seeds the form from a draft
func CategoryValuesFrom(d inventory.CategoryDraft) *CategoryValues {
	return &CategoryValues{
		Nombre:      d.Nombre,
		Descripcion: d.Descripcion,
		Codigo:      d.Codigo,
		Color:       d.Color,
		Icono:       d.Icono,
		Orden:       strconv.Itoa(d.Orden),
	}
}

// Draft converts the values; a blank or invalid order falls back to the default
func (v *CategoryValues) Draft() inventory.CategoryDraft {
	orden, _ := strconv.Atoi(strings.TrimSpace(v.Orden))
	return inventory.CategoryDraft{
		Nombre:      v.Nombre,
		Descripcion: v.Descripcion,
		Codigo:      v.Codigo,
		Color:       strings.TrimSpace(v.Color),
		Icono:       strings.TrimSpace(v.Icono),
		Orden:       orden,
	}
}

// Category builds the create/edit form
func Category(title string, v *CategoryValues) *Editor {
	return NewEditor(title,
		huh.NewGroup(
			huh.NewInput().Title("Nombre").Value(&v.Nombre).Validate(Required("el nombre es obligatorio")),
			huh.NewInput().Title("Descripción").Value(&v.Descripcion),
			huh.NewInput().Title("Código").Description("Se guarda en mayúsculas").CharLimit(20).Value(&v.Codigo),
		),
		huh.NewGroup(
			huh.NewInput().Title("Color").Placeholder(inventory.DefaultCategoryColor).Value(&v.Color),
			huh.NewInput().Title("Icono").Placeholder(inventory.DefaultCategoryIcon).Value(&v.Icono),
			huh.NewInput().Title("Orden").Placeholder("1").Value(&v.Orden).Validate(NonNegativeInt),
		).Title("Presentación"),
	)
}

// MovementValues backs the stock movement form
type MovementValues struct {
	ProductoID      int64
	Tipo            string
	Cantidad        string
	Motivo          string
	NumeroDocumento string
}

// Draft converts the values; quantity errors surface from inventory.NewMovementInput
func (v *MovementValues) Draft() inventory.MovementDraft {
	cantidad, _ := strconv.Atoi(strings.TrimSpace(v.Cantidad))
	return inventory.MovementDraft{
		ProductoID:      v.ProductoID,
		Tipo:            v.Tipo,
		Cantidad:        cantidad,
		Motivo:          v.Motivo,
		NumeroDocumento: v.NumeroDocumento,
	}
}

// Movement builds the form to register a movement for one product
func Movement(producto string, v *MovementValues) *Editor {
	if v.Tipo == "" {
		v.Tipo = client.MovementIn
	}
	types := make([]huh.Option[string], 0, len(client.MovementTypes))
	for _, t := range client.MovementTypes {
		types = append(types, huh.NewOption(t, t))
	}
	return NewEditor("Registrar movimiento",
		huh.NewGroup(
			huh.NewSelect[string]().Title("Tipo de movimiento").Options(types...).Value(&v.Tipo),
			huh.NewInput().Title("Cantidad").Value(&v.Cantidad).Validate(PositiveInt),
			huh.NewInput().Title("Motivo").Placeholder(inventory.DefaultMotivo).Value(&v.Motivo),
			huh.NewInput().Title("Número de documento").Value(&v.NumeroDocumento),
		).Description(producto),
	)
}

// UserValues backs the new user form
type UserValues struct {
	Nombre   string
	Apellido string
	UserName string
	Email    string
	Telefono string
	Password string
	RolID    int64
}

// Input converts the values; new users are active
func (v *UserValues) Input() (client.UserInput, error) {
	input := client.UserInput{
		Nombre:   strings.TrimSpace(v.Nombre),
		Apellido: strings.TrimSpace(v.Apellido),
		UserName: strings.TrimSpace(v.UserName),
		Email:    strings.TrimSpace(v.Email),
		Telefono: strings.TrimSpace(v.Telefono),
		Password: v.Password,
		RolID:    v.RolID,
		Activo:   true,
	}
	return input, inventory.ValidateUser(input)
}

// User builds the new user form with a role picker
func User(v *UserValues, roles []client.Role) *Editor {
	options := make([]huh.Option[int64], 0, len(roles))
	for _, r := range roles {
		options = append(options, huh.NewOption(r.Nombre, r.ID))
	}
	if v.RolID == 0 && len(roles) > 0 {
		v.RolID = roles[0].ID
	}
	return NewEditor("Nuevo usuario",
		huh.NewGroup(
			huh.NewInput().Title("Nombre").Value(&v.Nombre).Validate(Required("el nombre es obligatorio")),
			huh.NewInput().Title("Apellido").Value(&v.Apellido),
			huh.NewInput().Title("Email").Value(&v.Email),
			huh.NewInput().Title("Teléfono").Value(&v.Telefono),
		).Title("Datos personales"),
		huh.NewGroup(
			huh.NewInput().Title("Usuario").Value(&v.UserName).Validate(Required("el usuario es obligatorio")),
			huh.NewInput().Title("Contraseña").EchoMode(huh.EchoModePassword).Value(&v.Password).Validate(Required("la contraseña es obligatoria")),
			huh.NewSelect[int64]().Title("Rol").Options(options...).Value(&v.RolID),
		).Title("Acceso"),
	)
}

// UserEditValues backs the edit user form
type UserEditValues struct {
	Nombre   string
	Apellido string
	Email    string
	Telefono string
}

// UserEditValuesFrom seeds the form with an existing user
func UserEditValuesFrom(u client.User) *UserEditValues {
	return &UserEditValues{Nombre: u.Nombre, Apellido: u.Apellido, Email: u.Email, Telefono: u.Telefono}
}

// Update converts the values into the fields to put
func (v *UserEditValues) Update() (client.UserUpdate, error) {
	update := client.UserUpdate{
		Nombre:   strings.TrimSpace(v.Nombre),
		Apellido: strings.TrimSpace(v.Apellido),
		Email:    strings.TrimSpace(v.Email),
		Telefono: strings.TrimSpace(v.Telefono),
	}
	if update.Nombre == "" {
		return update, errors.New("el nombre es obligatorio")
	}
	return update, inventory.ValidateUserUpdate(update)
}

// EditUser builds the edit user form; account and role are not editable here
func EditUser(v *UserEditValues) *Editor {
	return NewEditor("Editar usuario",
		huh.NewGroup(
			huh.NewInput().Title("Nombre").Value(&v.Nombre).Validate(Required("el nombre es obligatorio")),
			huh.NewInput().Title("Apellido").Value(&v.Apellido),
			huh.NewInput().Title("Email").Value(&v.Email),
			huh.NewInput().Title("Teléfono").Value(&v.Telefono),
		),
	)
}

// Confirm builds a yes/no form; *ok is true only when the user accepts
func Confirm(title, question string, ok *bool) *Editor {
	*ok = false
	return NewEditor(title,
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Sí").
				Negative("No").
				Value(ok),
		),
	)
}

// Required rejects blank input with msg
func Required(msg string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	}
}

// PositiveInt accepts whole numbers above zero
func PositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return errors.New("debe ser un número mayor que cero")
	}
	return nil
}

// NonNegativeInt accepts blank or whole numbers from zero up
func NonNegativeInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return errors.New("debe ser un número entero no negativo")
	}
	return nil
}

// NonNegativeDecimal accepts blank or amounts from zero up
func NonNegativeDecimal(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return errors.New("debe ser un importe no negativo")
	}
	return nil
}
