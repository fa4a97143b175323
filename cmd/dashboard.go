// ABOUTME: Dashboard command for the inventario CLI
// ABOUTME: Shows inventory totals, recent movements and top categories

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/format"
	"github.com/basinventario/inventario-cli/internal/session"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show inventory summary",
	Long:  `Display inventory totals, low stock count, recent movements and the top categories by value.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runDashboard(ctx, os.Stdout)
		})
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

// runDashboard fetches the dashboard stats and returns exit code
func runDashboard(ctx context.Context, w io.Writer) int {
	return withSession(ctx, w, func(env *cliEnv, sess *session.Session) int {
		stats, err := env.api.DashboardStats(ctx)
		if err != nil {
			return writeError(w, err)
		}
		writeResult(w, stats, func() string {
			return formatDashboardHuman(sess.User.FullName(), stats, env.format)
		})
		return 0
	})
}

// formatDashboardHuman formats dashboard stats for human readability
func formatDashboardHuman(name string, stats *client.DashboardStats, f *format.Formatter) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Bienvenido, %s\n\n", name)
	fmt.Fprintf(&sb, `Productos:       %s
Valor total:     %s
Stock bajo:      %s [%s]
Usuarios:        %s
Categorías:      %s
`,
		f.Int(stats.TotalProductos),
		f.Money(stats.ValorTotalInventario),
		f.Int(stats.ProductosStockBajo), lowStockStatus(stats.ProductosStockBajo),
		f.Int(stats.TotalUsuarios),
		f.Int(stats.TotalCategorias))

	if len(stats.MovimientosRecientes) > 0 {
		sb.WriteString("\nMovimientos recientes:\n")
		rows := make([][]string, 0, len(stats.MovimientosRecientes))
		for _, m := range stats.MovimientosRecientes {
			rows = append(rows, []string{m.Producto, m.TipoMovimiento, f.Int(m.Cantidad), orDash(m.Usuario), orDash(m.Fecha)})
		}
		sb.WriteString(formatTable([]string{"PRODUCTO", "TIPO", "CANTIDAD", "USUARIO", "FECHA"}, rows))
		sb.WriteString("\n")
	}

	if len(stats.TopCategorias) > 0 {
		sb.WriteString("\nCategorías principales:\n")
		rows := make([][]string, 0, len(stats.TopCategorias))
		for _, c := range stats.TopCategorias {
			rows = append(rows, []string{c.Icono + " " + c.Nombre, f.Int(c.TotalProductos), f.Money(c.ValorInventario)})
		}
		sb.WriteString(formatTable([]string{"CATEGORÍA", "PRODUCTOS", "VALOR"}, rows))
	}

	return strings.TrimRight(sb.String(), "\n")
}

// lowStockStatus returns ok/warning for the low stock count
func lowStockStatus(count int) string {
	if count > 0 {
		return "warning"
	}
	return "ok"
}
