// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Owns the session lifecycle, routes keys to the active screen, draws the frame

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/basinventario/inventario-cli/internal/access"
	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/debuglog"
	"github.com/basinventario/inventario-cli/internal/format"
	"github.com/basinventario/inventario-cli/internal/session"
	"github.com/basinventario/inventario-cli/internal/tui/forms"
	"github.com/basinventario/inventario-cli/internal/tui/icons"
	"github.com/basinventario/inventario-cli/internal/tui/screens"
	"github.com/basinventario/inventario-cli/internal/tui/styles"
	"github.com/basinventario/inventario-cli/internal/view"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenRestoring Screen = iota
	ScreenLogin
	ScreenMain
)

// Layout constants
const (
	minTerminalWidth = 80 // Narrower terminals are drawn at this width
	sidebarWidth     = 24 // Sidebar panel width including its border
	panelChrome      = 6  // Content panel border (2) plus horizontal padding (4)
)

// restoredMsg carries the session found in storage at startup
type restoredMsg struct {
	restored *session.Restored
	err      error
}

// loginMsg is sent when a login attempt completes
type loginMsg struct {
	sess *session.Session
	err  error
}

// revalidatedMsg carries a refreshed user, or the reason it could not be fetched
type revalidatedMsg struct {
	session.Revalidation
}

// loggedOutMsg is sent once storage has been cleared
type loggedOutMsg struct {
	err error
}

// App is the root model for the TUI
type App struct {
	ctx    context.Context
	store  *session.Store
	client *client.Client
	format *format.Formatter
	now    func() time.Time

	screen Screen
	width  int
	height int

	// Login screen
	loginValues forms.LoginValues
	login       *forms.Editor
	loggingIn   bool

	// Main screen
	token   string
	viewer  *screens.Viewer
	router  *view.Router
	screens map[view.View]screens.Screen

	// status is a transient note shown in the footer
	status string
}

// New creates a new TUI application
func New(ctx context.Context, store *session.Store, apiClient *client.Client, f *format.Formatter) *App {
	if ctx == nil {
		ctx = context.Background()
	}
	if f == nil {
		f = format.New(format.DefaultLocale)
	}
	return &App{
		ctx:    ctx,
		store:  store,
		client: apiClient,
		format: f,
		now:    time.Now,
		screen: ScreenRestoring,
		router: view.NewRouter(),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	store, ctx := a.store, a.ctx
	return func() tea.Msg {
		restored, err := store.Restore(ctx)
		return restoredMsg{restored: restored, err: err}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case tea.KeyMsg:
		// Handle global quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.screen {
		case ScreenLogin:
			return a.updateLogin(msg)
		case ScreenMain:
			return a.updateMain(msg)
		}
		return a, nil

	case restoredMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, session.ErrNoSession) {
				debuglog.Error("restore session", msg.err)
			}
			return a, a.showLogin("")
		}
		cmd := a.startSession(msg.restored.Session)
		if msg.restored.Revalidated != nil {
			cmd = tea.Batch(cmd, waitRevalidation(msg.restored.Revalidated))
		}
		return a, cmd

	case loginMsg:
		a.loggingIn = false
		if msg.err != nil {
			return a, a.showLogin(msg.err.Error())
		}
		return a, a.startSession(msg.sess)

	case revalidatedMsg:
		return a, a.applyRevalidation(msg.Revalidation)

	case loggedOutMsg:
		if msg.err != nil {
			debuglog.Error("logout", msg.err)
		}
		a.endSession()
		return a, a.showLogin("")

	case screens.MutationMsg:
		active := a.active()
		if active == nil {
			return a, nil
		}
		cmd := active.Update(msg)
		if msg.Err != nil {
			return a, cmd
		}
		return a, tea.Batch(cmd, active.Refresh())

	default:
		// Forward unknown messages: huh form internals, spinner ticks and
		// fetch results all land here
		if a.screen == ScreenLogin && a.login != nil {
			return a.updateLogin(msg)
		}
		var cmds []tea.Cmd
		for _, s := range a.screens {
			cmds = append(cmds, s.Update(msg))
		}
		return a, tea.Batch(cmds...)
	}
}

func (a *App) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.login == nil || a.loggingIn {
		return a, nil
	}
	result, cmd := a.login.Update(msg)
	switch result {
	case forms.Submitted:
		a.loggingIn = true
		return a, a.submitLogin()
	case forms.Cancelled:
		return a, tea.Quit
	}
	return a, cmd
}

func (a *App) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	active := a.active()
	if active != nil && active.Editing() {
		return a, active.Update(msg)
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "L":
		return a, a.logout()
	case "p":
		a.status = "Actualizando permisos..."
		return a, a.revalidate()
	case "r":
		if active != nil {
			return a, active.Refresh()
		}
		return a, nil
	}

	for _, item := range view.MenuItems(a.capabilities()) {
		if msg.String() == item.Key {
			return a, a.navigate(item.View)
		}
	}

	if active != nil {
		return a, active.Update(msg)
	}
	return a, nil
}

// showLogin switches to the login screen, keeping the last user name
func (a *App) showLogin(errMsg string) tea.Cmd {
	a.screen = ScreenLogin
	a.login = forms.Login(&a.loginValues)
	a.login.SetWidth(a.loginWidth())
	if errMsg != "" {
		a.login.SetError(errMsg)
	}
	return a.login.Init()
}

func (a *App) submitLogin() tea.Cmd {
	store, ctx, creds := a.store, a.ctx, a.loginValues.Credentials()
	return func() tea.Msg {
		sess, err := store.Login(ctx, creds)
		return loginMsg{sess: sess, err: err}
	}
}

// startSession builds the screens for sess and opens the dashboard
func (a *App) startSession(sess *session.Session) tea.Cmd {
	a.token = sess.Token
	a.viewer = &screens.Viewer{User: sess.User, Caps: sess.Capabilities()}
	a.login = nil
	a.status = ""
	a.router.Reset()

	deps := screens.Deps{Ctx: a.ctx, API: a.client, Format: a.format, Viewer: a.viewer}
	a.screens = make(map[view.View]screens.Screen, len(view.All))
	for _, v := range view.All {
		a.screens[v] = screens.New(v, deps)
	}
	a.screen = ScreenMain
	a.resize()

	return a.active().Refresh()
}

// endSession drops every trace of the signed-in user
func (a *App) endSession() {
	a.token = ""
	a.viewer = nil
	a.screens = nil
	a.status = ""
	a.router.Reset()
}

func (a *App) logout() tea.Cmd {
	store, ctx := a.store, a.ctx
	return func() tea.Msg {
		return loggedOutMsg{err: store.Logout(ctx)}
	}
}

func (a *App) revalidate() tea.Cmd {
	store, ctx, token := a.store, a.ctx, a.token
	return func() tea.Msg {
		user, err := store.Revalidate(ctx, token)
		return revalidatedMsg{session.Revalidation{Token: token, User: user, Err: err}}
	}
}

// waitRevalidation delivers the background revalidation started by Restore
func waitRevalidation(ch <-chan session.Revalidation) tea.Cmd {
	return func() tea.Msg {
		rev, ok := <-ch
		if !ok {
			return nil
		}
		return revalidatedMsg{rev}
	}
}

// applyRevalidation swaps in the refreshed user. Failures keep the current
// user and capabilities; outcomes for a session that has since ended are dropped.
func (a *App) applyRevalidation(rev session.Revalidation) tea.Cmd {
	if a.viewer == nil || rev.Token != a.token || errors.Is(rev.Err, session.ErrSessionChanged) {
		debuglog.Debug("dropping revalidation for an ended session")
		return nil
	}
	if rev.Err != nil || rev.User == nil {
		debuglog.Error("revalidate session", rev.Err)
		a.status = "No se pudieron actualizar los permisos"
		return nil
	}

	a.viewer.User = *rev.User
	a.viewer.Caps = access.Evaluate(rev.User)
	a.status = "Permisos actualizados"
	if active := a.active(); active != nil {
		return active.Refresh()
	}
	return nil
}

func (a *App) navigate(v view.View) tea.Cmd {
	a.router.Navigate(v)
	a.status = ""
	if active := a.active(); active != nil {
		return active.Refresh()
	}
	return nil
}

// active returns the screen for the current view
func (a *App) active() screens.Screen {
	if a.screens == nil {
		return nil
	}
	return a.screens[a.router.Current()]
}

func (a *App) capabilities() access.Capabilities {
	if a.viewer == nil {
		return access.Capabilities{}
	}
	return a.viewer.Caps
}

// frameWidth guards against zero/small width before WindowSizeMsg is received
func (a *App) frameWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth
	}
	return a.width
}

// contentWidth is the inner width of the content panel
func (a *App) contentWidth() int {
	return a.frameWidth() - sidebarWidth - panelChrome
}

// contentHeight calculates the height available inside the content panel
func (a *App) contentHeight() int {
	// Total overhead:
	// - Header: 1 line
	// - Newline after header: 1 line
	// - Panel border+padding: 4 lines (top border, top padding, bottom padding, bottom border)
	// - Newline before footer: 1 line
	// - Footer: 1 line
	// Total: 8 lines overhead
	return max(5, a.height-8)
}

func (a *App) loginWidth() int {
	return min(60, a.frameWidth()-panelChrome)
}

func (a *App) resize() {
	if a.login != nil {
		a.login.SetWidth(a.loginWidth())
	}
	for _, s := range a.screens {
		s.SetSize(a.contentWidth(), a.contentHeight())
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenLogin:
		content = a.viewLogin()
	case ScreenMain:
		content = a.viewMain()
	default:
		content = styles.Subtitle.Render("Cargando sesión...")
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewLogin() string {
	body := ""
	if a.login != nil {
		body = a.login.View()
	}
	if a.loggingIn {
		body += "\n" + styles.StatusWarning.Render("Iniciando sesión...")
	}
	return styles.ActivePanel.Width(a.loginWidth() + 4).Render(body)
}

// viewMain renders the sidebar and the active screen side by side
func (a *App) viewMain() string {
	content := ""
	if active := a.active(); active != nil {
		content = active.View()
	}

	sidebar := styles.Panel.
		Padding(1, 1).
		Width(sidebarWidth - 2).
		Height(a.contentHeight() + 2).
		Render(a.renderSidebar())
	main := styles.ActivePanel.
		Width(a.contentWidth() + 4).
		Height(a.contentHeight() + 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
}

// renderSidebar lists the views the current role can open
func (a *App) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Menú"))
	sb.WriteString("\n")

	itemWidth := sidebarWidth - 4
	for _, item := range view.MenuItems(a.capabilities()) {
		label := fmt.Sprintf("%s %s %s", item.Key, icons.ForView(item.View.String()).String(), item.Label)
		style := styles.MenuItem
		if item.View == a.router.Current() {
			style = styles.MenuItemActive
		}
		sb.WriteString(style.Width(itemWidth).Render(label))
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderHeader creates the header bar with app branding and the signed-in user
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("Inventario BAS"))

	rightText := ""
	if a.screen == ScreenMain && a.viewer != nil {
		rightText = contextStyle.Render(a.userLabel()) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := max(0, width-4-leftWidth-rightWidth) // -4 for ╭─ and ─╮

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"

	return borderStyle.Render(header)
}

// userLabel renders "Nombre Apellido (@user) · expira dd/mm/yyyy hh:mm"
func (a *App) userLabel() string {
	u := a.viewer.User
	label := fmt.Sprintf("%s (@%s)", u.FullName(), u.UserName)
	if r, ok := u.Role(); ok {
		label += " · " + r.Nombre
	}
	if info, ok := session.InspectToken(a.token); ok && !info.ExpiresAt.IsZero() {
		if info.Expired(a.now()) {
			label += " · sesión expirada"
		} else {
			label += " · expira " + format.Date(info.ExpiresAt) + " " + format.Clock(info.ExpiresAt)
		}
	}
	return label
}

// shortcuts lists the footer hints for the current state
func (a *App) shortcuts() []string {
	switch a.screen {
	case ScreenLogin:
		return []string{"Tab Siguiente", "Enter Entrar", "Esc Salir"}
	case ScreenMain:
		active := a.active()
		if active != nil && active.Editing() {
			return active.Shortcuts()
		}
		items := view.MenuItems(a.capabilities())
		shortcuts := []string{fmt.Sprintf("1-%d Navegar", len(items))}
		if active != nil {
			shortcuts = append(shortcuts, active.Shortcuts()...)
		}
		return append(shortcuts, "r Recargar", "p Permisos", "L Salir", "q Cerrar")
	}
	return []string{"q Cerrar"}
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	shortcuts := a.shortcuts()
	var styled []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styled = append(styled, s)
		}
	}

	leftText := " " + strings.Join(styled, "  ")

	// Right side: transient status, otherwise the last load time
	rightPlain := ""
	if a.status != "" {
		rightPlain = a.status
	} else if active := a.active(); a.screen == ScreenMain && active != nil && !active.Updated().IsZero() {
		rightPlain = "Actualizado " + format.Since(active.Updated(), a.now())
	}
	rightText := ""
	if rightPlain != "" {
		rightText = statusStyle.Render(rightPlain) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := max(0, width-4-leftWidth-rightWidth) // -4 for ╰─ and ─╯

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"

	return borderStyle.Render(footer)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI and blocks until the user quits
func Run(ctx context.Context, store *session.Store, apiClient *client.Client, f *format.Formatter) error {
	app := New(ctx, store, apiClient, f)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
