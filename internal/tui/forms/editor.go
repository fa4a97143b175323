// ABOUTME: Editor wraps a huh form as an embeddable bubbletea component
// ABOUTME: Esc cancels; completion is reported to the owning screen as a Result

package forms

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/basinventario/inventario-cli/internal/tui/styles"
)

// Result tells the owner what the last Update did to the form
type Result int

const (
	Editing Result = iota
	Submitted
	Cancelled
)

// Editor hosts one huh form inside a screen
type Editor struct {
	title string
	form  *huh.Form
	width int
	err   string
}

// NewEditor builds an editor over the given groups
func NewEditor(title string, groups ...*huh.Group) *Editor {
	return &Editor{
		title: title,
		form:  huh.NewForm(groups...).WithTheme(styles.FormTheme()).WithShowHelp(true),
	}
}

// Init implements tea.Model
func (e *Editor) Init() tea.Cmd {
	return e.form.Init()
}

// SetWidth sets the form width
func (e *Editor) SetWidth(width int) {
	e.width = width
	if width > 0 {
		e.form = e.form.WithWidth(width)
	}
}

// SetError shows a message above the form, e.g. a rejected submission
func (e *Editor) SetError(msg string) {
	e.err = msg
}

// Update forwards msg to the form
func (e *Editor) Update(msg tea.Msg) (Result, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return Cancelled, nil
	}

	model, cmd := e.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		e.form = f
	}

	switch e.form.State {
	case huh.StateCompleted:
		return Submitted, nil
	case huh.StateAborted:
		return Cancelled, nil
	}
	return Editing, cmd
}

// View renders the title, any error, and the form
func (e *Editor) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(e.title))
	sb.WriteString("\n")
	if e.err != "" {
		sb.WriteString(styles.StatusCritical.Render(e.err))
		sb.WriteString("\n\n")
	}
	sb.WriteString(e.form.View())
	return sb.String()
}
