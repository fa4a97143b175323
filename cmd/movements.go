// ABOUTME: Movement commands for the inventario CLI
// ABOUTME: Lists movements by type and registers new stock movements

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/format"
	"github.com/basinventario/inventario-cli/internal/inventory"
	"github.com/basinventario/inventario-cli/internal/session"
)

var (
	movementTypeFilter string
	movementOpts       inventory.MovementDraft
)

var movementsCmd = &cobra.Command{
	Use:     "movements",
	Aliases: []string{"movimientos"},
	Short:   "Stock movements",
}

var movementsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stock movements",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runMovementsList(ctx, os.Stdout, movementTypeFilter)
		})
	},
}

var movementsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a stock movement",
	Long: `Register a stock movement attributed to the session user.

Types: Entrada, Salida, Ajuste, Merma, Transferencia.

Example:
  inventario movements create --product 4 --type Entrada --quantity 10 --reason "Compra"`,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runMovementCreate(ctx, os.Stdout, movementOpts)
		})
	},
}

func init() {
	rootCmd.AddCommand(movementsCmd)
	movementsCmd.AddCommand(movementsListCmd, movementsCreateCmd)

	movementsListCmd.Flags().StringVar(&movementTypeFilter, "type", "", "Only movements of this type")

	movementsCreateCmd.Flags().Int64Var(&movementOpts.ProductoID, "product", 0, "Product id")
	movementsCreateCmd.Flags().StringVar(&movementOpts.Tipo, "type", client.MovementIn, "Movement type")
	movementsCreateCmd.Flags().IntVar(&movementOpts.Cantidad, "quantity", 0, "Quantity moved")
	movementsCreateCmd.Flags().StringVar(&movementOpts.Motivo, "reason", "", "Reason (default: "+inventory.DefaultMotivo+")")
	movementsCreateCmd.Flags().StringVar(&movementOpts.NumeroDocumento, "document", "", "Document number")
	movementsCreateCmd.MarkFlagRequired("product")
	movementsCreateCmd.MarkFlagRequired("quantity")
}

// runMovementsList prints movements, filtered by type when given
func runMovementsList(ctx context.Context, w io.Writer, tipo string) int {
	if tipo != "" && !inventory.ValidMovementType(tipo) {
		return writeError(w, fmt.Errorf("tipo de movimiento desconocido %q", tipo))
	}

	return withSession(ctx, w, func(env *cliEnv, _ *session.Session) int {
		movements, err := env.api.Movements(ctx)
		if err != nil {
			return writeError(w, err)
		}
		movements = inventory.FilterMovements(movements, tipo)

		writeResult(w, movements, func() string {
			return formatMovementsHuman(movements, env.format)
		})
		return 0
	})
}

// formatMovementsHuman renders movements as a table
func formatMovementsHuman(movements []client.Movement, f *format.Formatter) string {
	if len(movements) == 0 {
		return "No hay movimientos"
	}
	rows := make([][]string, 0, len(movements))
	for _, m := range movements {
		doc := ""
		if m.NumeroDocumento != nil {
			doc = *m.NumeroDocumento
		}
		rows = append(rows, []string{
			format.DateTime(m.FechaMovimiento.Time),
			m.ProductoNombre,
			m.TipoMovimiento,
			f.Int(m.CantidadMovimiento),
			fmt.Sprintf("%s → %s", f.Int(m.CantidadAnterior), f.Int(m.CantidadFinal)),
			orDash(m.Motivo),
			orDash(doc),
			orDash(m.UsuarioNombre),
		})
	}
	return formatTable([]string{"FECHA", "PRODUCTO", "TIPO", "CANTIDAD", "STOCK", "MOTIVO", "DOCUMENTO", "USUARIO"}, rows)
}

// runMovementCreate validates and posts a movement for the session user
func runMovementCreate(ctx context.Context, w io.Writer, draft inventory.MovementDraft) int {
	return withSession(ctx, w, func(env *cliEnv, sess *session.Session) int {
		input, err := inventory.NewMovementInput(draft, sess.User.ID)
		if err != nil {
			return writeError(w, err)
		}

		m, err := env.api.CreateMovement(ctx, input)
		if err != nil {
			return writeError(w, err)
		}
		writeResult(w, m, func() string {
			return fmt.Sprintf("Movimiento registrado: %s de %d (stock %d → %d)",
				m.TipoMovimiento, m.CantidadMovimiento, m.CantidadAnterior, m.CantidadFinal)
		})
		return 0
	})
}
