// ABOUTME: Wire types for the inventory API
// ABOUTME: Field names follow the backend's camelCase Spanish JSON

package client

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// timestampLayouts are tried in order; the backend omits the zone on some endpoints
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a time that tolerates the backend's zone-less formats
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	for _, layout := range timestampLayouts {
		var parsed time.Time
		if parsed, err = time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return err
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}

// MarshalYAML renders the timestamp as an RFC 3339 scalar
func (t Timestamp) MarshalYAML() (any, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Format(time.RFC3339), nil
}

// Role is a named permission bundle
type Role struct {
	ID                     int64  `json:"id"`
	Nombre                 string `json:"nombre"`
	Descripcion            string `json:"descripcion,omitempty"`
	EsAdministrador        bool   `json:"esAdministrador"`
	PuedeGestionarUsuarios bool   `json:"puedeGestionarUsuarios"`
}

// User is a system user. Rol may be absent when the relation has not been loaded.
type User struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	UserName string `json:"userName"`
	Email    string `json:"email,omitempty"`
	Telefono string `json:"telefono,omitempty"`
	RolID    int64  `json:"rolId"`
	Activo   bool   `json:"activo"`
	Rol      *Role  `json:"rol,omitempty"`
}

// Role returns the loaded role, and false when none is loaded
func (u *User) Role() (Role, bool) {
	if u == nil || u.Rol == nil {
		return Role{}, false
	}
	return *u.Rol, true
}

// FullName returns "nombre apellido" without stray spaces
func (u *User) FullName() string {
	if u.Apellido == "" {
		return u.Nombre
	}
	if u.Nombre == "" {
		return u.Apellido
	}
	return u.Nombre + " " + u.Apellido
}

// Credentials is the login request body
type Credentials struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// LoginResponse is the user record with the issued token alongside
type LoginResponse struct {
	User
	Token string `json:"token"`
}

// UserInput creates a user
type UserInput struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido,omitempty"`
	UserName string `json:"userName,omitempty"`
	Email    string `json:"email,omitempty"`
	Telefono string `json:"telefono,omitempty"`
	Password string `json:"password,omitempty"`
	RolID    int64  `json:"rolId,omitempty"`
	Activo   bool   `json:"activo"`
}

// UserUpdate edits a user; only the set fields are sent
type UserUpdate struct {
	Nombre   string `json:"nombre,omitempty"`
	Apellido string `json:"apellido,omitempty"`
	Email    string `json:"email,omitempty"`
	Telefono string `json:"telefono,omitempty"`
	RolID    int64  `json:"rolId,omitempty"`
	Activo   *bool  `json:"activo,omitempty"`
}

// IsZero reports whether the update changes nothing
func (u UserUpdate) IsZero() bool {
	return u == UserUpdate{}
}

// Product is a catalog entry
type Product struct {
	ID          int64           `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion,omitempty"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
}

// ProductInput creates a product; on update only the set fields are sent
type ProductInput struct {
	Nombre      string           `json:"nombre"`
	Descripcion string           `json:"descripcion,omitempty"`
	Precio      *decimal.Decimal `json:"precio,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
}

// Category groups products
type Category struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Codigo      *string `json:"codigo"`
	Color       string  `json:"color"`
	Icono       string  `json:"icono"`
	Orden       int     `json:"orden"`
	Activo      bool    `json:"activo"`
}

// StockItem is a product with its stock levels
type StockItem struct {
	ID              int64  `json:"id"`
	Nombre          string `json:"nombre"`
	Descripcion     string `json:"descripcion,omitempty"`
	CodigoBarras    string `json:"codigoBarras,omitempty"`
	CategoriaNombre string `json:"categoriaNombre,omitempty"`
	StockActual     int    `json:"stockActual"`
	StockMinimo     int    `json:"stockMinimo"`
	StockMaximo     int    `json:"stockMaximo"`
	UnidadMedida    string `json:"unidadMedida,omitempty"`
	UbicacionFisica string `json:"ubicacionFisica,omitempty"`
	AlertaStockBajo bool   `json:"alertaStockBajo"`
}

// Movement types accepted by the backend
const (
	MovementIn       = "Entrada"
	MovementOut      = "Salida"
	MovementAdjust   = "Ajuste"
	MovementLoss     = "Merma"
	MovementTransfer = "Transferencia"
)

// MovementTypes lists every movement type in display order
var MovementTypes = []string{MovementIn, MovementOut, MovementAdjust, MovementLoss, MovementTransfer}

// Movement is a recorded stock change
type Movement struct {
	ID                 int64     `json:"id"`
	ProductoID         int64     `json:"productoId"`
	ProductoNombre     string    `json:"productoNombre"`
	TipoMovimiento     string    `json:"tipoMovimiento"`
	CantidadMovimiento int       `json:"cantidadMovimiento"`
	CantidadAnterior   int       `json:"cantidadAnterior"`
	CantidadFinal      int       `json:"cantidadFinal"`
	Motivo             string    `json:"motivo,omitempty"`
	NumeroDocumento    *string   `json:"numeroDocumento"`
	UsuarioNombre      string    `json:"usuarioNombre,omitempty"`
	FechaMovimiento    Timestamp `json:"fechaMovimiento"`
}

// MovementInput registers a stock movement
type MovementInput struct {
	ProductoID      int64   `json:"productoId"`
	TipoMovimiento  string  `json:"tipoMovimiento"`
	Cantidad        int     `json:"cantidad"`
	Motivo          string  `json:"motivo"`
	UsuarioID       int64   `json:"usuarioId"`
	NumeroDocumento *string `json:"numeroDocumento"`
}

// RecentMovement is a movement as summarized by the dashboard
type RecentMovement struct {
	Producto       string `json:"producto"`
	TipoMovimiento string `json:"tipoMovimiento"`
	Cantidad       int    `json:"cantidad"`
	Usuario        string `json:"usuario"`
	Fecha          string `json:"fecha,omitempty"`
}

// CategorySummary is a category ranked by inventory value
type CategorySummary struct {
	ID              int64           `json:"id"`
	Nombre          string          `json:"nombre"`
	Icono           string          `json:"icono"`
	TotalProductos  int             `json:"totalProductos"`
	ValorInventario decimal.Decimal `json:"valorInventario"`
}

// DashboardStats is the /api/dashboard/stats response
type DashboardStats struct {
	TotalProductos       int               `json:"totalProductos"`
	TotalUsuarios        int               `json:"totalUsuarios"`
	TotalCategorias      int               `json:"totalCategorias"`
	ValorTotalInventario decimal.Decimal   `json:"valorTotalInventario"`
	ProductosStockBajo   int               `json:"productosStockBajo"`
	MovimientosRecientes []RecentMovement  `json:"movimientosRecientes"`
	TopCategorias        []CategorySummary `json:"topCategorias"`
}

// UserLog is an audited API call
type UserLog struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	UserName       string    `json:"userName"`
	Action         string    `json:"action"`
	Endpoint       string    `json:"endpoint,omitempty"`
	HTTPMethod     string    `json:"httpMethod,omitempty"`
	IPAddress      string    `json:"ipAddress,omitempty"`
	ResponseStatus int       `json:"responseStatus"`
	DurationMs     int64     `json:"durationMs"`
	Success        bool      `json:"success"`
	Timestamp      Timestamp `json:"timestamp"`
}
