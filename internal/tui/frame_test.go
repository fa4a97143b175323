// ABOUTME: Test to verify header/footer width alignment
// ABOUTME: Ensures frame renders at correct terminal width

package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/basinventario/inventario-cli/internal/session"
)

func TestFrameAlignment(t *testing.T) {
	widths := []int{60, 80, 100, 120}

	for _, targetWidth := range widths {
		t.Run(fmt.Sprintf("width-%d", targetWidth), func(t *testing.T) {
			app, _ := newTestApp(t)
			app.Update(loginMsg{sess: adminSession()})

			model, _ := app.Update(tea.WindowSizeMsg{Width: targetWidth, Height: 30})
			app = model.(*App)

			lines := strings.Split(app.View(), "\n")

			// Narrow terminals are drawn at the minimum width
			expectedWidth := max(targetWidth, minTerminalWidth)

			header := lines[0]
			if !strings.HasPrefix(header, "╭") {
				t.Fatalf("expected header first, got %q", header)
			}
			if w := lipgloss.Width(header); w != expectedWidth {
				t.Errorf("Header width mismatch at width %d: expected %d, got %d", targetWidth, expectedWidth, w)
			}

			footer := lines[len(lines)-1]
			if !strings.HasPrefix(footer, "╰") {
				t.Fatalf("expected footer last, got %q", footer)
			}
			if w := lipgloss.Width(footer); w != expectedWidth {
				t.Errorf("Footer width mismatch at width %d: expected %d, got %d", targetWidth, expectedWidth, w)
			}
		})
	}
}

func TestFrameLoginScreen(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(restoredMsg{err: session.ErrNoSession})

	lines := strings.Split(app.View(), "\n")
	if w := lipgloss.Width(lines[0]); w != 120 {
		t.Errorf("expected header width 120, got %d", w)
	}
	footer := lines[len(lines)-1]
	if !strings.Contains(footer, "Esc") || !strings.Contains(footer, "Salir") {
		t.Errorf("expected login shortcuts in footer, got %q", footer)
	}
	if strings.Contains(lines[0], "@") {
		t.Error("expected no user in header before login")
	}
}
