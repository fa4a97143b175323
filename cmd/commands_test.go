// ABOUTME: Tests for session-backed commands against a fake backend
// ABOUTME: Covers login, whoami, role-gated exit codes and listings

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/session"
	"github.com/basinventario/inventario-cli/internal/storage"
)

// backend is a fake inventory API; routes map "METHOD /path" to a JSON body
type backend struct {
	t      *testing.T
	dir    string
	mu     sync.Mutex
	routes map[string]any
	status map[string]int
	hits   map[string]int
	bodies map[string][]byte
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{
		t:      t,
		dir:    isolate(t),
		routes: map[string]any{},
		status: map[string]int{},
		hits:   map[string]int{},
		bodies: map[string][]byte{},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path
		payload, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.hits[route]++
		b.bodies[route] = payload
		body, ok := b.routes[route]
		code := b.status[route]
		b.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if code == 0 {
			code = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	apiURL = server.URL
	return b
}

func (b *backend) hitCount(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[route]
}

// body returns the last request body sent to route
func (b *backend) body(route string) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[route]
}

func (b *backend) storage() storage.Storage {
	return storage.NewFile(b.dir)
}

func seedSession(t *testing.T, b *backend, user client.User, token string) {
	t.Helper()
	data, err := json.Marshal(user)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := b.storage().Set(ctx, session.KeyUser, string(data)); err != nil {
		t.Fatal(err)
	}
	if err := b.storage().Set(ctx, session.KeyToken, token); err != nil {
		t.Fatal(err)
	}
}

func adminUser() client.User {
	return client.User{
		ID: 1, Nombre: "Wendy", Apellido: "Arce", UserName: "warce", RolID: 1, Activo: true,
		Rol: &client.Role{ID: 1, Nombre: "Administrador", EsAdministrador: true},
	}
}

func sellerUser() client.User {
	return client.User{
		ID: 3, Nombre: "Carlos", UserName: "carlos.lopez", RolID: 3, Activo: true,
		Rol: &client.Role{ID: 3, Nombre: "Vendedor"},
	}
}

func TestRunLogin_PersistsSession(t *testing.T) {
	b := newBackend(t)
	b.routes["POST /api/auth/login"] = client.LoginResponse{User: adminUser(), Token: "tok-1"}

	var buf bytes.Buffer
	code := runLogin(context.Background(), &buf, client.Credentials{UserName: "warce", Password: "admin123"})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Bienvenido, Wendy Arce (warce) - Administrador") {
		t.Errorf("unexpected greeting %q", buf.String())
	}

	token, ok, _ := b.storage().Get(context.Background(), session.KeyToken)
	if !ok || token != "tok-1" {
		t.Errorf("expected token to be persisted, got %q", token)
	}
}

func TestRunLogin_BackendMessage(t *testing.T) {
	b := newBackend(t)
	b.routes["POST /api/auth/login"] = map[string]string{"message": "Usuario inactivo"}
	b.status["POST /api/auth/login"] = http.StatusUnauthorized

	var buf bytes.Buffer
	code := runLogin(context.Background(), &buf, client.Credentials{UserName: "warce", Password: "x"})
	if code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
	if !strings.Contains(buf.String(), "Usuario inactivo") {
		t.Errorf("expected backend message, got %q", buf.String())
	}
}

func TestRunLogout_ClearsSession(t *testing.T) {
	b := newBackend(t)
	seedSession(t, b, adminUser(), "tok")

	var buf bytes.Buffer
	if code := runLogout(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	buf.Reset()
	if code := runWhoami(context.Background(), &buf, false); code != 2 {
		t.Errorf("expected exit 2 without session, got %d", code)
	}
	if !strings.Contains(buf.String(), session.ErrNoSession.Error()) {
		t.Errorf("expected no-session message, got %q", buf.String())
	}
}

func TestRunWhoami_ShowsCapabilities(t *testing.T) {
	b := newBackend(t)
	seedSession(t, b, adminUser(), "tok")

	var buf bytes.Buffer
	if code := runWhoami(context.Background(), &buf, false); code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s", code, buf.String())
	}
	out := buf.String()
	for _, want := range []string{"Wendy Arce (warce)", "Rol:            Administrador", "Administrador:  sí", "Gestiona users: sí"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if b.hitCount("POST /api/auth/validate") != 0 {
		t.Error("expected no revalidation for a user with a role")
	}
}

func TestRunWhoami_RevalidatesUserWithoutRole(t *testing.T) {
	b := newBackend(t)
	stale := adminUser()
	stale.Rol = nil
	seedSession(t, b, stale, "tok")
	b.routes["POST /api/auth/validate"] = adminUser()

	var buf bytes.Buffer
	if code := runWhoami(context.Background(), &buf, false); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "Administrador:  sí") {
		t.Errorf("expected refreshed role, got:\n%s", buf.String())
	}
}

func TestRunWhoami_RefreshValidatesRolelessUserOnce(t *testing.T) {
	b := newBackend(t)
	stale := adminUser()
	stale.Rol = nil
	seedSession(t, b, stale, "tok")
	b.routes["POST /api/auth/validate"] = adminUser()

	var buf bytes.Buffer
	if code := runWhoami(context.Background(), &buf, true); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "Administrador:  sí") {
		t.Errorf("expected refreshed role, got:\n%s", buf.String())
	}
	if n := b.hitCount("POST /api/auth/validate"); n != 1 {
		t.Errorf("expected one validate request, got %d", n)
	}
}

func TestRunWhoami_RefreshValidatesUserWithRole(t *testing.T) {
	b := newBackend(t)
	seedSession(t, b, sellerUser(), "tok")
	promoted := sellerUser()
	promoted.Rol = &client.Role{ID: 2, Nombre: "Gerente", PuedeGestionarUsuarios: true}
	b.routes["POST /api/auth/validate"] = promoted

	var buf bytes.Buffer
	if code := runWhoami(context.Background(), &buf, true); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "Gestiona users: sí") {
		t.Errorf("expected promoted capabilities, got:\n%s", buf.String())
	}
	if n := b.hitCount("POST /api/auth/validate"); n != 1 {
		t.Errorf("expected one validate request, got %d", n)
	}
}

func TestRunWhoami_RefreshFailureKeepsRole(t *testing.T) {
	b := newBackend(t)
	seedSession(t, b, adminUser(), "tok")
	b.routes["POST /api/auth/validate"] = map[string]string{"message": "token inválido"}
	b.status["POST /api/auth/validate"] = http.StatusUnauthorized

	var buf bytes.Buffer
	if code := runWhoami(context.Background(), &buf, true); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	out := buf.String()
	if !strings.Contains(out, "Administrador:  sí") {
		t.Errorf("expected stale role to be kept:\n%s", out)
	}
	if !strings.Contains(out, "No se pudieron actualizar los permisos") {
		t.Errorf("expected refresh failure note:\n%s", out)
	}
}

func TestRunUsersList_RestrictedExitCode(t *testing.T) {
	b := newBackend(t)
	seedSession(t, b, sellerUser(), "tok")
	b.routes["GET /api/usuarios"] = []client.User{adminUser()}

	var buf bytes.Buffer
	if code := runUsersList(context.Background(), &buf); code != 3 {
		t.Errorf("expected exit 3, got %d", code)
	}
	if !strings.Contains(buf.String(), "acceso restringido") {
		t.Errorf("expected restricted message, got %q", buf.String())
	}
	if b.hitCount("GET /api/usuarios") != 0 {
		t.Error("expected no request for a restricted command")
	}
}

func TestRunUsersList_Admin(t *testing.T) {
	b := newBackend(t)
	seedSession(t, b, adminUser(), "tok")
	b.routes["GET /api/usuarios"] = []client.User{adminUser(), sellerUser()}

	var buf bytes.Buffer
	if code := runUsersList(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s", code, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "carlos.lopez") || !strings.Contains(out, "Vendedor") {
		t.Errorf("expected user rows:\n%s", out)
	}
}

func TestRunUserCreate_InvalidInput(t *testing.T) {
	b := newBackend(t)
	seedSession(t, b, adminUser(), "tok")

	var buf bytes.Buffer
	if code := runUserCreate(context.Background(), &buf, client.UserInput{}); code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
	if b.hitCount("POST /api/usuarios") != 0 {
		t.Error("expected invalid input to be rejected before the request")
	}
}

func TestRunUserUpdate_PutsChangedFields(t *testing.T) {
	b := newBackend(t)
	seedSession(t, b, adminUser(), "tok")
	b.routes["PUT /api/usuarios/3"] = sellerUser()

	changed := map[string]bool{"email": true}
	update, err := userUpdateFromFlags(client.UserUpdate{Email: " carlos@example.com ", Nombre: "ignored"}, true, func(name string) bool { return changed[name] })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if code := runUserUpdate(context.Background(), &buf, 3, update); code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Usuario 3 actualizado") {
		t.Errorf("unexpected output %q", buf.String())
	}

	var sent map[string]any
	if err := json.Unmarshal(b.body("PUT /api/usuarios/3"), &sent); err != nil {
		t.Fatalf("decode request body: %v", err)
	}
	if len(sent) != 1 || sent["email"] != "carlos@example.com" {
		t.Errorf("expected only the email to be sent, got %v", sent)
	}
}

func TestRunUserUpdate_RefusesSelfDeactivation(t *testing.T) {
	b := newBackend(t)
	seedSession(t, b, adminUser(), "tok")

	update, err := userUpdateFromFlags(client.UserUpdate{}, false, func(name string) bool { return name == "active" })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if code := runUserUpdate(context.Background(), &buf, adminUser().ID, update); code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
	if b.hitCount("PUT /api/usuarios/1") != 0 {
		t.Error("expected no request when disabling your own account")
	}
}

func TestRunUserUpdate_RestrictedAndEmpty(t *testing.T) {
	b := newBackend(t)
	seedSession(t, b, sellerUser(), "tok")

	var buf bytes.Buffer
	if code := runUserUpdate(context.Background(), &buf, 1, client.UserUpdate{Email: "x@example.com"}); code != 3 {
		t.Errorf("expected exit 3 for a seller, got %d", code)
	}
	buf.Reset()
	if code := runUserUpdate(context.Background(), &buf, 1, client.UserUpdate{}); code != 2 {
		t.Errorf("expected exit 2 for an empty update, got %d", code)
	}
	if b.hitCount("PUT /api/usuarios/1") != 0 {
		t.Error("expected no request")
	}
}

func TestUserUpdateFromFlags_BlankName(t *testing.T) {
	_, err := userUpdateFromFlags(client.UserUpdate{Nombre: "   "}, true, func(name string) bool { return name == "name" })
	if err == nil {
		t.Error("expected a blank --name to be rejected")
	}
}

func TestRunLogs_AdminOnly(t *testing.T) {
	b := newBackend(t)
	seedSession(t, b, sellerUser(), "tok")

	var buf bytes.Buffer
	if code := runLogs(context.Background(), &buf, logsQuery{summary: true}); code != 3 {
		t.Errorf("expected exit 3, got %d", code)
	}
}

func TestRunLogs_Summary(t *testing.T) {
	b := newBackend(t)
	seedSession(t, b, adminUser(), "tok")
	b.routes["GET /api/userlogs"] = []client.UserLog{
		{ID: 1, UserName: "warce", Action: "Login", ResponseStatus: 200, Success: true},
		{ID: 2, UserName: "warce", Action: "Login", ResponseStatus: 200, Success: true},
		{ID: 3, UserName: "mgomez", Action: "Login Failed", ResponseStatus: 401},
		{ID: 4, UserName: "mgomez", Action: "Read", ResponseStatus: 200, Success: true},
	}

	var buf bytes.Buffer
	if code := runLogs(context.Background(), &buf, logsQuery{summary: true}); code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s", code, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "Actividades:     4") || !strings.Contains(out, "Tasa de éxito:   75%") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestRunProductsList_JSON(t *testing.T) {
	b := newBackend(t)
	seedSession(t, b, sellerUser(), "tok")
	b.routes["GET /api/productos"] = []map[string]any{
		{"id": 1, "nombre": "Arroz", "precio": 1234.5, "stock": 10},
	}

	jsonOutput = true
	defer func() { jsonOutput = false }()

	var buf bytes.Buffer
	if code := runProductsList(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s", code, buf.String())
	}
	var products []client.Product
	if err := json.Unmarshal(buf.Bytes(), &products); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(products) != 1 || products[0].Precio.String() != "1234.5" {
		t.Errorf("unexpected products %+v", products)
	}
}

func TestRunProductsList_Human(t *testing.T) {
	b := newBackend(t)
	seedSession(t, b, sellerUser(), "tok")
	b.routes["GET /api/productos"] = []map[string]any{
		{"id": 1, "nombre": "Arroz", "precio": 1234.5, "stock": 1500},
	}
	t.Setenv("INVENTARIO_LOCALE", "en-US")

	var buf bytes.Buffer
	if code := runProductsList(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	out := buf.String()
	if !strings.Contains(out, "$1,234.50") || !strings.Contains(out, "1,500") {
		t.Errorf("expected localized money and stock:\n%s", out)
	}
}

func TestRunMovementsList_Filter(t *testing.T) {
	b := newBackend(t)
	seedSession(t, b, sellerUser(), "tok")
	b.routes["GET /api/inventario/movimientos"] = []client.Movement{
		{ID: 1, ProductoNombre: "Arroz", TipoMovimiento: client.MovementIn, CantidadMovimiento: 5},
		{ID: 2, ProductoNombre: "Azúcar", TipoMovimiento: client.MovementOut, CantidadMovimiento: 2},
	}

	var buf bytes.Buffer
	if code := runMovementsList(context.Background(), &buf, client.MovementOut); code != 0 {
		t.Fatalf("expected exit 0, got %d\n%s", code, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "Azúcar") || strings.Contains(out, "Arroz") {
		t.Errorf("expected only salidas:\n%s", out)
	}

	buf.Reset()
	if code := runMovementsList(context.Background(), &buf, "Robo"); code != 2 {
		t.Errorf("expected exit 2 for unknown type, got %d", code)
	}
}

func TestCommands_RequireSession(t *testing.T) {
	newBackend(t)

	var buf bytes.Buffer
	if code := runProductsList(context.Background(), &buf); code != 2 {
		t.Errorf("expected exit 2 without a session, got %d", code)
	}
	if !strings.Contains(buf.String(), session.ErrNoSession.Error()) {
		t.Errorf("expected no-session message, got %q", buf.String())
	}
}
