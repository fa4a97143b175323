// ABOUTME: Common contract and helpers for the feature screens
// ABOUTME: Each screen owns its loading state, table, and optional form

package screens

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/basinventario/inventario-cli/internal/access"
	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/debuglog"
	"github.com/basinventario/inventario-cli/internal/format"
	"github.com/basinventario/inventario-cli/internal/tui/forms"
	"github.com/basinventario/inventario-cli/internal/tui/icons"
	"github.com/basinventario/inventario-cli/internal/tui/styles"
	"github.com/basinventario/inventario-cli/internal/view"
)

// Screen is one feature view hosted by the app
type Screen interface {
	// Refresh refetches the screen's data
	Refresh() tea.Cmd
	// Update handles msg; screens ignore messages that are not theirs
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	// Editing reports whether a form has the keyboard
	Editing() bool
	// Shortcuts lists the footer hints, e.g. "n Nuevo"
	Shortcuts() []string
	// Updated is when data was last loaded; zero before the first load
	Updated() time.Time
}

// New builds the screen for v
func New(v view.View, deps Deps) Screen {
	switch v {
	case view.Products:
		return NewProducts(deps)
	case view.Categories:
		return NewCategories(deps)
	case view.Inventory:
		return NewStock(deps)
	case view.Movements:
		return NewMovements(deps)
	case view.Users:
		return NewUsers(deps)
	case view.Logs:
		return NewLogs(deps)
	default:
		return NewDashboard(deps)
	}
}

// Viewer is the signed-in user as the screens see it. The app updates it
// in place when the session is revalidated.
type Viewer struct {
	User client.User
	Caps access.Capabilities
}

// Deps are the collaborators every screen needs
type Deps struct {
	Ctx    context.Context
	API    *client.Client
	Format *format.Formatter
	Viewer *Viewer
}

func (d Deps) ctx() context.Context {
	if d.Ctx == nil {
		return context.Background()
	}
	return d.Ctx
}

// MutationMsg reports a finished create/update/delete. The app refreshes the
// active screen after a successful one.
type MutationMsg struct {
	What string
	Err  error
}

// mutate runs fn as a command that reports a MutationMsg
func mutate(what string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		err := fn()
		if err != nil {
			debuglog.Error(what, err)
		}
		return MutationMsg{What: what, Err: err}
	}
}

// origins numbers screen instances so results fetched for a screen of an
// earlier session are not shown in a newer one
var origins atomic.Int64

// base carries the state every list screen shares
type base struct {
	origin  int64
	deps    Deps
	table   table.Model
	spinner spinner.Model
	loading bool
	err     error
	notice  string
	updated time.Time
	width   int
	height  int

	editor *forms.Editor
	// onSubmit runs when the open form is submitted
	onSubmit func() tea.Cmd
}

func newBase(deps Deps, columns []table.Column) base {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(styles.Table())

	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = styles.StatusWarning

	return base{origin: origins.Add(1), deps: deps, table: t, spinner: s}
}

// startLoading flags the screen as loading and returns the spinner tick
func (b *base) startLoading() tea.Cmd {
	b.loading = true
	b.err = nil
	return b.spinner.Tick
}

// finishLoading records the outcome of a fetch
func (b *base) finishLoading(err error) {
	b.loading = false
	b.err = err
	if err != nil {
		debuglog.Error("load", err)
		return
	}
	b.updated = time.Now()
}

// openEditor shows e and runs onSubmit when it is submitted
func (b *base) openEditor(e *forms.Editor, onSubmit func() tea.Cmd) tea.Cmd {
	b.editor = e
	b.onSubmit = onSubmit
	b.notice = ""
	e.SetWidth(b.width)
	return e.Init()
}

func (b *base) closeEditor() {
	b.editor = nil
	b.onSubmit = nil
}

// updateEditor forwards msg to the open form
func (b *base) updateEditor(msg tea.Msg) tea.Cmd {
	result, cmd := b.editor.Update(msg)
	switch result {
	case forms.Submitted:
		submit := b.onSubmit
		b.closeEditor()
		if submit != nil {
			return submit()
		}
	case forms.Cancelled:
		b.closeEditor()
	}
	return cmd
}

// handleCommon processes spinner ticks, the open editor and mutation
// results. Screens call it after matching their own load messages; it
// reports true when msg was consumed.
func (b *base) handleCommon(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !b.loading {
			return nil, true
		}
		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)
		return cmd, true
	case MutationMsg:
		if msg.Err != nil {
			b.err = msg.Err
		} else {
			b.err = nil
			b.notice = msg.What
		}
		return nil, true
	}

	if b.editor != nil {
		return b.updateEditor(msg), true
	}
	return nil, false
}

// updateTable forwards navigation keys to the table
func (b *base) updateTable(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return cmd
}

func (b *base) SetSize(width, height int) {
	b.width = width
	b.height = height
	b.table.SetWidth(width)
	// Title, status line and table header take five lines
	b.table.SetHeight(max(3, height-5))
	if b.editor != nil {
		b.editor.SetWidth(width)
	}
}

func (b *base) Editing() bool {
	return b.editor != nil
}

func (b *base) Updated() time.Time {
	return b.updated
}

// render frames the body with a title and the status line
func (b *base) render(title string, body string) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n")

	if b.editor != nil {
		sb.WriteString(b.editor.View())
		return sb.String()
	}

	switch {
	case b.loading:
		sb.WriteString(b.spinner.View() + " Cargando...")
	case b.err != nil:
		sb.WriteString(styles.StatusCritical.Render(icons.Critical.String() + " " + b.err.Error()))
	case b.notice != "":
		sb.WriteString(styles.StatusOK.Render(icons.CheckOK.String() + " " + b.notice))
	}
	sb.WriteString("\n")
	sb.WriteString(body)
	return sb.String()
}

// selected returns the cursor index when it points inside n rows
func (b *base) selected(n int) (int, bool) {
	i := b.table.Cursor()
	return i, i >= 0 && i < n
}

// Restricted renders the placeholder shown instead of a guarded screen
func Restricted(title string) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(title))
	sb.WriteString("\n")
	sb.WriteString(styles.StatusCritical.Render(icons.Lock.String() + " Acceso restringido"))
	sb.WriteString("\n\n")
	sb.WriteString(styles.Subtitle.Render(access.ErrRestricted.Error()))
	return sb.String()
}
