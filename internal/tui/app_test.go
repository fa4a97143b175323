// ABOUTME: Tests for the root TUI model
// ABOUTME: Covers session start and end, navigation, role gating and revalidation

package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/session"
	"github.com/basinventario/inventario-cli/internal/storage"
	"github.com/basinventario/inventario-cli/internal/view"
)

func newTestApp(t *testing.T) (*App, storage.Storage) {
	t.Helper()
	st := storage.NewMemory()
	// Nothing in these tests executes a fetch command
	c := client.New("http://127.0.0.1:1", client.WithTokenSource(session.TokenSource(st)))
	app := New(context.Background(), session.New(st, c), c, nil)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app, st
}

func adminSession() *session.Session {
	return &session.Session{
		Token: "tok-admin",
		User: client.User{
			ID:       1,
			Nombre:   "Wendy",
			Apellido: "Arce",
			UserName: "warce",
			RolID:    1,
			Rol:      &client.Role{ID: 1, Nombre: "Administrador", EsAdministrador: true},
		},
	}
}

func sellerSession() *session.Session {
	return &session.Session{
		Token: "tok-seller",
		User: client.User{
			ID:       3,
			Nombre:   "Carlos",
			UserName: "carlos.lopez",
			RolID:    3,
			Rol:      &client.Role{ID: 3, Nombre: "Vendedor"},
		},
	}
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppInitialState(t *testing.T) {
	app, _ := newTestApp(t)

	if app.screen != ScreenRestoring {
		t.Errorf("expected initial screen to be ScreenRestoring, got %d", app.screen)
	}
	if !strings.Contains(app.View(), "Cargando sesión") {
		t.Error("expected restoring placeholder in view")
	}
}

func TestAppInitRestoresPersistedSession(t *testing.T) {
	app, st := newTestApp(t)
	ctx := context.Background()

	data, err := json.Marshal(adminSession().User)
	if err != nil {
		t.Fatal(err)
	}
	st.Set(ctx, session.KeyUser, string(data))
	st.Set(ctx, session.KeyToken, "tok-admin")

	msg := app.Init()()
	if _, ok := msg.(restoredMsg); !ok {
		t.Fatalf("expected restoredMsg, got %T", msg)
	}
	app.Update(msg)

	if app.screen != ScreenMain {
		t.Fatalf("expected ScreenMain after restore, got %d", app.screen)
	}
	if !app.viewer.Caps.IsAdmin {
		t.Error("expected admin capabilities from stored role")
	}
	if app.token != "tok-admin" {
		t.Errorf("expected restored token, got %q", app.token)
	}
}

func TestAppNoSessionShowsLogin(t *testing.T) {
	app, _ := newTestApp(t)

	msg := app.Init()()
	app.Update(msg)

	if app.screen != ScreenLogin {
		t.Fatalf("expected ScreenLogin, got %d", app.screen)
	}
	if app.login == nil {
		t.Fatal("expected login form")
	}
	if !strings.Contains(app.View(), "Iniciar sesión") {
		t.Error("expected login title in view")
	}
}

func TestAppLoginFailureShowsMessage(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(restoredMsg{err: session.ErrNoSession})

	app.Update(loginMsg{err: errors.New("Credenciales inválidas")})

	if app.screen != ScreenLogin {
		t.Fatalf("expected to stay on login, got %d", app.screen)
	}
	if app.viewer != nil {
		t.Error("expected no viewer after failed login")
	}
	if !strings.Contains(app.View(), "Credenciales inválidas") {
		t.Error("expected backend message in login view")
	}
}

func TestAppLoginOpensDashboard(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(restoredMsg{err: session.ErrNoSession})

	_, cmd := app.Update(loginMsg{sess: adminSession()})

	if app.screen != ScreenMain {
		t.Fatalf("expected ScreenMain, got %d", app.screen)
	}
	if app.router.Current() != view.Dashboard {
		t.Errorf("expected dashboard, got %s", app.router.Current())
	}
	if len(app.screens) != len(view.All) {
		t.Errorf("expected %d screens, got %d", len(view.All), len(app.screens))
	}
	if cmd == nil {
		t.Error("expected the dashboard to start loading")
	}
	if app.login != nil {
		t.Error("expected login form to be dropped")
	}
}

func TestAppDigitKeysNavigate(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(loginMsg{sess: adminSession()})

	tests := []struct {
		key  string
		want view.View
	}{
		{"2", view.Products},
		{"3", view.Categories},
		{"4", view.Inventory},
		{"5", view.Movements},
		{"6", view.Users},
		{"7", view.Logs},
		{"1", view.Dashboard},
	}
	for _, tt := range tests {
		app.Update(keyPress(tt.key))
		if app.router.Current() != tt.want {
			t.Errorf("key %s: expected %s, got %s", tt.key, tt.want, app.router.Current())
		}
	}
}

func TestAppLogsKeyIgnoredForNonAdmin(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(loginMsg{sess: sellerSession()})

	app.Update(keyPress("7"))

	if app.router.Current() != view.Dashboard {
		t.Errorf("expected to stay on dashboard, got %s", app.router.Current())
	}
	if strings.Contains(app.View(), "Logs") {
		t.Error("expected no logs entry in the sidebar")
	}
}

func TestAppUsersRestrictedForNonAdmin(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(loginMsg{sess: sellerSession()})

	_, cmd := app.Update(keyPress("6"))

	if app.router.Current() != view.Users {
		t.Fatalf("expected users view, got %s", app.router.Current())
	}
	if cmd != nil {
		t.Error("expected no fetch without permission")
	}
	if !strings.Contains(app.View(), "Acceso restringido") {
		t.Error("expected restricted placeholder")
	}
}

func TestAppLogoutResetsToLogin(t *testing.T) {
	app, st := newTestApp(t)
	ctx := context.Background()
	st.Set(ctx, session.KeyToken, "tok-admin")
	app.Update(loginMsg{sess: adminSession()})
	app.Update(keyPress("3"))

	_, cmd := app.Update(keyPress("L"))
	if cmd == nil {
		t.Fatal("expected logout command")
	}
	app.Update(cmd())

	if app.screen != ScreenLogin {
		t.Fatalf("expected ScreenLogin after logout, got %d", app.screen)
	}
	if app.viewer != nil || app.screens != nil || app.token != "" {
		t.Error("expected session state to be cleared")
	}
	if app.router.Current() != view.Dashboard {
		t.Errorf("expected router reset to dashboard, got %s", app.router.Current())
	}
	if _, ok, _ := st.Get(ctx, session.KeyToken); ok {
		t.Error("expected token removed from storage")
	}

	// The next user starts fresh at the dashboard
	app.Update(loginMsg{sess: sellerSession()})
	if app.router.Current() != view.Dashboard {
		t.Errorf("expected dashboard for next session, got %s", app.router.Current())
	}
	if app.viewer.Caps.IsAdmin {
		t.Error("expected seller capabilities, not the previous admin's")
	}
}

func TestAppRevalidationUpdatesCapabilities(t *testing.T) {
	app, _ := newTestApp(t)
	stale := adminSession()
	stale.User.Rol = nil
	app.Update(restoredMsg{restored: &session.Restored{Session: stale}})

	if app.viewer.Caps.IsAdmin {
		t.Fatal("expected no capabilities before revalidation")
	}

	refreshed := adminSession().User
	app.Update(revalidatedMsg{session.Revalidation{Token: "tok-admin", User: &refreshed}})

	if !app.viewer.Caps.IsAdmin || !app.viewer.Caps.CanManageUsers {
		t.Error("expected admin capabilities after revalidation")
	}
	if app.status != "Permisos actualizados" {
		t.Errorf("unexpected status %q", app.status)
	}
}

func TestAppRevalidationFailureKeepsUser(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(loginMsg{sess: adminSession()})

	app.Update(revalidatedMsg{session.Revalidation{Token: "tok-admin", Err: errors.New("boom")}})

	if !app.viewer.Caps.IsAdmin {
		t.Error("expected capabilities to survive a failed revalidation")
	}
	if app.viewer.User.UserName != "warce" {
		t.Errorf("expected user untouched, got %q", app.viewer.User.UserName)
	}
	if !strings.Contains(app.View(), "No se pudieron actualizar los permisos") {
		t.Error("expected failure note in footer")
	}
}

func TestAppLateRevalidationAfterReloginIsDropped(t *testing.T) {
	app, _ := newTestApp(t)
	stale := adminSession()
	stale.User.Rol = nil
	app.Update(restoredMsg{restored: &session.Restored{Session: stale}})

	app.Update(loggedOutMsg{})
	app.Update(loginMsg{sess: sellerSession()})

	// The restore-time validation for the admin token lands after the switch
	refreshed := adminSession().User
	app.Update(revalidatedMsg{session.Revalidation{Token: "tok-admin", User: &refreshed}})

	if app.viewer.User.UserName != "carlos.lopez" {
		t.Errorf("expected seller to stay signed in, got %q", app.viewer.User.UserName)
	}
	if app.viewer.Caps.IsAdmin || app.viewer.Caps.CanManageUsers {
		t.Error("expected seller capabilities, got the previous admin's")
	}
	if app.status == "Permisos actualizados" {
		t.Error("expected no status change for a dropped revalidation")
	}
}

func TestAppRevalidationForChangedSessionIsDropped(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(loginMsg{sess: sellerSession()})

	app.Update(revalidatedMsg{session.Revalidation{Token: "tok-seller", Err: session.ErrSessionChanged}})

	if app.status == "No se pudieron actualizar los permisos" {
		t.Error("expected a changed session to be ignored, not reported as failure")
	}
	if app.viewer.User.UserName != "carlos.lopez" {
		t.Errorf("expected user untouched, got %q", app.viewer.User.UserName)
	}
}

func TestAppWaitRevalidationDeliversResult(t *testing.T) {
	ch := make(chan session.Revalidation, 1)
	user := adminSession().User
	ch <- session.Revalidation{User: &user}
	close(ch)

	msg := waitRevalidation(ch)()
	rev, ok := msg.(revalidatedMsg)
	if !ok {
		t.Fatalf("expected revalidatedMsg, got %T", msg)
	}
	if rev.User == nil || rev.User.ID != 1 {
		t.Error("expected the revalidated user")
	}

	if msg := waitRevalidation(ch)(); msg != nil {
		t.Errorf("expected nil from a closed channel, got %T", msg)
	}
}

func TestAppHeaderShowsUser(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(loginMsg{sess: adminSession()})

	header := app.renderHeader()

	for _, want := range []string{"Inventario BAS", "Wendy Arce", "@warce", "Administrador"} {
		if !strings.Contains(header, want) {
			t.Errorf("expected header to contain %q", want)
		}
	}
}

func TestAppFormKeepsKeys(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(loginMsg{sess: adminSession()})
	app.Update(keyPress("2"))

	app.Update(keyPress("n"))
	if !app.active().Editing() {
		t.Fatal("expected the product form to open")
	}

	// Digits go to the form, not the router
	app.Update(keyPress("3"))
	if app.router.Current() != view.Products {
		t.Errorf("expected to stay on products while editing, got %s", app.router.Current())
	}
}

func TestScreenConstants(t *testing.T) {
	if ScreenRestoring != 0 {
		t.Errorf("expected ScreenRestoring to be 0, got %d", ScreenRestoring)
	}
	if ScreenLogin != 1 {
		t.Errorf("expected ScreenLogin to be 1, got %d", ScreenLogin)
	}
	if ScreenMain != 2 {
		t.Errorf("expected ScreenMain to be 2, got %d", ScreenMain)
	}
}
