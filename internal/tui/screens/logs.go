// ABOUTME: Audit log screen, shown only to administrators
// ABOUTME: Shows the last 24h summary and a list; a cycles the action filter

package screens

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/format"
	"github.com/basinventario/inventario-cli/internal/inventory"
	"github.com/basinventario/inventario-cli/internal/tui/icons"
	"github.com/basinventario/inventario-cli/internal/tui/styles"
	"github.com/basinventario/inventario-cli/internal/tui/widgets"
)

type logsLoadedMsg struct {
	origin  int64
	summary inventory.LogSummary
	logs    []client.UserLog
	err     error
}

// Logs shows audited API calls
type Logs struct {
	base
	summary inventory.LogSummary
	logs    []client.UserLog
	action  string
	now     func() time.Time
}

// NewLogs creates the logs screen
func NewLogs(deps Deps) *Logs {
	return &Logs{
		base: newBase(deps, []table.Column{
			{Title: "Fecha", Width: 19},
			{Title: "Usuario", Width: 14},
			{Title: "Acción", Width: 14},
			{Title: "Método", Width: 7},
			{Title: "Endpoint", Width: 30},
			{Title: "Estado", Width: 7},
			{Title: "Duración", Width: 9},
			{Title: "IP", Width: 15},
		}),
		now: time.Now,
	}
}

func (s *Logs) allowed() bool {
	return s.deps.Viewer.Caps.IsAdmin
}

// Refresh implements Screen; nothing is fetched without permission
func (s *Logs) Refresh() tea.Cmd {
	if !s.allowed() {
		return nil
	}
	api, ctx, action, now, origin := s.deps.API, s.deps.ctx(), s.action, s.now(), s.origin
	return tea.Batch(s.startLoading(), func() tea.Msg {
		recent, err := api.UserLogs(ctx, inventory.SummaryFilter(now))
		if err != nil {
			return logsLoadedMsg{origin: origin, err: err}
		}
		var logs []client.UserLog
		if action != "" {
			logs, err = api.UserLogsByAction(ctx, action, client.DefaultLogLimit)
		} else {
			logs, err = api.UserLogs(ctx, client.LogFilter{Limit: client.DefaultLogLimit})
		}
		return logsLoadedMsg{origin: origin, summary: inventory.SummarizeLogs(recent), logs: logs, err: err}
	})
}

// Update implements Screen
func (s *Logs) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(logsLoadedMsg); ok {
		if msg.origin != s.origin {
			return nil
		}
		s.finishLoading(msg.err)
		if msg.err == nil {
			s.summary = msg.summary
			s.setLogs(msg.logs)
		}
		return nil
	}
	if !s.allowed() {
		return nil
	}
	if cmd, done := s.handleCommon(msg); done {
		return cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.String() == "a" {
		s.action = inventory.NextActionFilter(s.action)
		return s.Refresh()
	}
	return s.updateTable(msg)
}

// Action returns the active action filter; empty means all
func (s *Logs) Action() string {
	return s.action
}

func (s *Logs) setLogs(logs []client.UserLog) {
	s.logs = logs
	rows := make([]table.Row, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, table.Row{
			format.DateTime(l.Timestamp.Time),
			l.UserName,
			l.Action,
			l.HTTPMethod,
			l.Endpoint,
			strconv.Itoa(l.ResponseStatus),
			format.DurationMs(l.DurationMs),
			l.IPAddress,
		})
	}
	s.table.SetRows(rows)
	s.table.GotoTop()
}

func (s *Logs) renderSummary() string {
	cfg := widgets.DefaultMetricBlockConfig()
	failedCfg := cfg
	if s.summary.FailedLogins > 0 {
		failedCfg.BorderColor = styles.Danger
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		widgets.CountBlock(icons.Logs, "Últimas 24h", s.summary.Total, "acciones registradas", cfg),
		widgets.MetricBlock(icons.CheckOK, "Éxito", fmt.Sprintf("%d%%", s.summary.SuccessRate), "de las acciones", cfg),
		widgets.CountBlock(icons.Critical, "Logins fallidos", s.summary.FailedLogins, "últimas 24h", failedCfg),
	)
}

// detail describes the selected entry with its outcome
func (s *Logs) detail() string {
	i, ok := s.selected(len(s.logs))
	if !ok {
		return ""
	}
	l := s.logs[i]
	text := fmt.Sprintf("%s %s %d (%s)", l.HTTPMethod, l.Endpoint, l.ResponseStatus, format.DurationMs(l.DurationMs))
	return widgets.StatusText(text, widgets.LogLevel(inventory.ClassifyLog(l)))
}

// View implements Screen
func (s *Logs) View() string {
	if !s.allowed() {
		return Restricted("Registro de actividad")
	}

	label := "todas"
	if s.action != "" {
		label = s.action
	}

	var sb strings.Builder
	sb.WriteString(s.renderSummary())
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Acción: %s  (%d registros)\n", label, len(s.logs)))
	if !s.loading && s.err == nil && len(s.logs) == 0 {
		sb.WriteString("No hay registros")
	} else {
		sb.WriteString(s.table.View())
		sb.WriteString("\n")
		sb.WriteString(s.detail())
	}
	return s.render("Registro de actividad", sb.String())
}

// SetSize reserves room for the summary blocks and filter line
func (s *Logs) SetSize(width, height int) {
	s.base.SetSize(width, height-8)
}

// Shortcuts implements Screen
func (s *Logs) Shortcuts() []string {
	if !s.allowed() {
		return nil
	}
	return []string{"a Filtrar acción"}
}
