// ABOUTME: View identifiers and the router that selects the active screen
// ABOUTME: Transitions are unconditional; permission guards live in the screens

package view

import (
	"fmt"
	"strings"

	"github.com/basinventario/inventario-cli/internal/access"
)

// View identifies a feature screen
type View int

const (
	Dashboard View = iota
	Products
	Categories
	Inventory
	Movements
	Users
	Logs
)

// All lists every view in menu order
var All = []View{Dashboard, Products, Categories, Inventory, Movements, Users, Logs}

// String returns the view identifier
func (v View) String() string {
	switch v {
	case Dashboard:
		return "dashboard"
	case Products:
		return "products"
	case Categories:
		return "categories"
	case Inventory:
		return "inventory"
	case Movements:
		return "movements"
	case Users:
		return "users"
	case Logs:
		return "logs"
	default:
		return "unknown"
	}
}

// Title returns the screen heading
func (v View) Title() string {
	switch v {
	case Dashboard:
		return "Dashboard"
	case Products:
		return "Productos"
	case Categories:
		return "Categorías"
	case Inventory:
		return "Inventario"
	case Movements:
		return "Movimientos"
	case Users:
		return "Usuarios"
	case Logs:
		return "Logs"
	default:
		return v.String()
	}
}

// Parse maps an identifier to a View. "stock" is accepted for inventory.
func Parse(s string) (View, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "stock" {
		return Inventory, nil
	}
	for _, v := range All {
		if v.String() == name {
			return v, nil
		}
	}
	return Dashboard, fmt.Errorf("vista desconocida %q", s)
}

// Router holds the selected view. The zero value is at Dashboard.
type Router struct {
	current View
}

// NewRouter returns a router at the initial view
func NewRouter() *Router {
	return &Router{current: Dashboard}
}

// Current returns the selected view
func (r *Router) Current() View {
	return r.current
}

// Navigate selects v unconditionally
func (r *Router) Navigate(v View) {
	r.current = v
}

// Reset returns to the initial view
func (r *Router) Reset() {
	r.current = Dashboard
}

// MenuItem is one sidebar entry
type MenuItem struct {
	View  View
	Label string
	Key   string
}

// MenuItems lists sidebar entries for caps. Logs is offered to admins only;
// every other entry is always listed and guarded inside its screen.
func MenuItems(caps access.Capabilities) []MenuItem {
	var items []MenuItem
	for _, v := range All {
		if v == Logs && !caps.IsAdmin {
			continue
		}
		items = append(items, MenuItem{
			View:  v,
			Label: v.Title(),
			Key:   fmt.Sprintf("%d", len(items)+1),
		})
	}
	return items
}
