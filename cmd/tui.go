// ABOUTME: TUI command for the inventario CLI
// ABOUTME: Opens the interactive terminal interface over the same session storage

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/basinventario/inventario-cli/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal interface",
	Long: `Open the interactive terminal interface.

A saved session is reused; otherwise a login form is shown. Inside the
interface, number keys switch sections, p refreshes permissions, L logs
out and q quits.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runTUI(ctx, os.Stderr)
		})
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// runTUI runs the interface until the user quits; errors go to w
func runTUI(ctx context.Context, w io.Writer) int {
	env, err := newEnv(ctx)
	if err != nil {
		return writeError(w, err)
	}
	defer env.Close()

	if err := tui.Run(ctx, env.store, env.api, env.format); err != nil {
		return writeError(w, err)
	}
	return 0
}
