// ABOUTME: Check command for the inventario CLI
// ABOUTME: Fails when too many products are low on stock, for scheduled jobs

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/inventory"
	"github.com/basinventario/inventario-cli/internal/session"
)

var maxLowStock int

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check stock levels",
	Long: `Check stock levels and exit non-zero when more products than allowed
carry a low stock alert.

Exit codes:
  0 - Low stock count within threshold
  1 - Threshold exceeded
  2 - Error (connectivity, no session, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runCheck(ctx, os.Stdout)
		})
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().IntVar(&maxLowStock, "max-low-stock", 0, "Number of low stock products tolerated")
}

// checkResult is the outcome of the low stock check
type checkResult struct {
	Total     int                `json:"total" yaml:"total"`
	Threshold int                `json:"threshold" yaml:"threshold"`
	LowStock  []client.StockItem `json:"lowStock" yaml:"lowStock"`
	Passed    bool               `json:"passed" yaml:"passed"`
}

// runCheck executes the stock check and returns exit code
func runCheck(ctx context.Context, w io.Writer) int {
	if err := validateThreshold(maxLowStock); err != nil {
		return writeError(w, err)
	}

	return withSession(ctx, w, func(env *cliEnv, _ *session.Session) int {
		items, err := env.api.StockLevels(ctx)
		if err != nil {
			return writeError(w, err)
		}

		result := performCheck(items, maxLowStock)
		writeResult(w, result, func() string {
			return formatCheckHuman(result)
		})

		if !result.Passed {
			return 1
		}
		return 0
	})
}

// validateThreshold ensures the threshold is usable
func validateThreshold(n int) error {
	if n < 0 {
		return fmt.Errorf("--max-low-stock must not be negative")
	}
	return nil
}

// performCheck compares the low stock count against threshold
func performCheck(items []client.StockItem, threshold int) checkResult {
	low := inventory.LowStock(items)
	return checkResult{
		Total:     len(items),
		Threshold: threshold,
		LowStock:  low,
		Passed:    len(low) <= threshold,
	}
}

// formatCheckHuman formats the check result for human readability
func formatCheckHuman(r checkResult) string {
	var sb strings.Builder

	for _, item := range r.LowStock {
		fmt.Fprintf(&sb, "✗ %s: %d %s (mínimo %d)\n", item.Nombre, item.StockActual, item.UnidadMedida, item.StockMinimo)
	}

	if r.Passed {
		fmt.Fprintf(&sb, "✓ PASSED: %d de %d productos con stock bajo (umbral: %d)", len(r.LowStock), r.Total, r.Threshold)
	} else {
		fmt.Fprintf(&sb, "\nFAILED: %d de %d productos con stock bajo (umbral: %d)", len(r.LowStock), r.Total, r.Threshold)
	}
	return sb.String()
}
