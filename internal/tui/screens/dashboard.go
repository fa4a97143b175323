// ABOUTME: Dashboard screen fetching the inventory summary
// ABOUTME: Rendering lives in the dashboard package

package screens

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/tui/dashboard"
)

type dashboardLoadedMsg struct {
	origin int64
	stats  *client.DashboardStats
	err    error
}

// Dashboard shows summary metrics
type Dashboard struct {
	base
	view *dashboard.Dashboard
}

// NewDashboard creates the dashboard screen
func NewDashboard(deps Deps) *Dashboard {
	return &Dashboard{
		base: newBase(deps, nil),
		view: dashboard.New(nil, deps.Viewer.User.FullName(), deps.Format, 0, 0),
	}
}

// Refresh implements Screen
func (s *Dashboard) Refresh() tea.Cmd {
	api, ctx, origin := s.deps.API, s.deps.ctx(), s.origin
	return tea.Batch(s.startLoading(), func() tea.Msg {
		stats, err := api.DashboardStats(ctx)
		return dashboardLoadedMsg{origin: origin, stats: stats, err: err}
	})
}

// Update implements Screen
func (s *Dashboard) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(dashboardLoadedMsg); ok {
		if msg.origin != s.origin {
			return nil
		}
		s.finishLoading(msg.err)
		if msg.err == nil {
			s.view.Update(msg.stats)
		}
		return nil
	}
	cmd, _ := s.handleCommon(msg)
	return cmd
}

// SetSize implements Screen
func (s *Dashboard) SetSize(width, height int) {
	s.base.SetSize(width, height)
	s.view.SetSize(width, height-2)
}

// View implements Screen
func (s *Dashboard) View() string {
	return s.render("Dashboard", s.view.View())
}

// Shortcuts implements Screen
func (s *Dashboard) Shortcuts() []string {
	return nil
}
