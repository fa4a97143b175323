// ABOUTME: Stock command for the inventario CLI
// ABOUTME: Lists stock levels with status and optionally writes a PDF report

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/format"
	"github.com/basinventario/inventario-cli/internal/inventory"
	"github.com/basinventario/inventario-cli/internal/report"
	"github.com/basinventario/inventario-cli/internal/session"
)

var stockPDFPath string

var stockCmd = &cobra.Command{
	Use:     "stock",
	Aliases: []string{"inventory", "inventario"},
	Short:   "Show stock levels",
	Long: `Show stock levels per product with their status:
Stock Bajo (low stock alert), Stock Normal (above 80% of maximum) or Stock Medio.

--pdf writes the same listing as a PDF report.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runStock(ctx, os.Stdout, stockPDFPath)
		})
	},
}

func init() {
	rootCmd.AddCommand(stockCmd)
	stockCmd.Flags().StringVar(&stockPDFPath, "pdf", "", "Write a PDF report to this file")
}

// stockRow is the structured form of one stock line
type stockRow struct {
	client.StockItem `yaml:",inline"`
	Estado           string `json:"estado" yaml:"estado"`
}

// runStock lists stock levels and returns exit code
func runStock(ctx context.Context, w io.Writer, pdfPath string) int {
	return withSession(ctx, w, func(env *cliEnv, sess *session.Session) int {
		items, err := env.api.StockLevels(ctx)
		if err != nil {
			return writeError(w, err)
		}

		if pdfPath != "" {
			data, err := report.StockPDF(report.StockReport{
				Items:       items,
				GeneratedBy: sess.User.UserName,
				GeneratedAt: time.Now(),
			}, env.format)
			if err != nil {
				return writeError(w, err)
			}
			if err := os.WriteFile(pdfPath, data, 0644); err != nil {
				return writeError(w, fmt.Errorf("write report: %w", err))
			}
			fmt.Fprintf(w, "Reporte guardado en %s\n", pdfPath)
			return 0
		}

		rows := make([]stockRow, 0, len(items))
		for _, item := range items {
			rows = append(rows, stockRow{StockItem: item, Estado: inventory.Status(item).String()})
		}
		writeResult(w, rows, func() string {
			return formatStockHuman(items, env.format)
		})
		return 0
	})
}

// formatStockHuman renders stock levels as a table
func formatStockHuman(items []client.StockItem, f *format.Formatter) string {
	if len(items) == 0 {
		return "No hay productos con stock"
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			fmt.Sprint(item.ID),
			item.Nombre,
			orDash(item.CategoriaNombre),
			f.Int(item.StockActual) + " " + item.UnidadMedida,
			f.Int(item.StockMinimo),
			f.Int(item.StockMaximo),
			orDash(item.UbicacionFisica),
			inventory.Status(item).String(),
		})
	}
	return formatTable([]string{"ID", "PRODUCTO", "CATEGORÍA", "ACTUAL", "MÍN", "MÁX", "UBICACIÓN", "ESTADO"}, rows)
}
