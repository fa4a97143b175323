// ABOUTME: Product commands for the inventario CLI
// ABOUTME: list, create, update and delete over /api/productos

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/format"
	"github.com/basinventario/inventario-cli/internal/session"
)

// productFlags holds create/update flag values
type productFlags struct {
	name        string
	description string
	price       string
	stock       int
}

var productOpts productFlags

var productsCmd = &cobra.Command{
	Use:     "products",
	Aliases: []string{"productos"},
	Short:   "Manage products",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runProductsList(ctx, os.Stdout)
		})
	},
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			input, err := productInputFromFlags(productOpts, true, true)
			if err != nil {
				return writeError(os.Stdout, err)
			}
			return runProductCreate(ctx, os.Stdout, input)
		})
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update a product; only the given flags change",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			id, err := parseID(args[0])
			if err != nil {
				return writeError(os.Stdout, err)
			}
			input, err := productInputFromFlags(productOpts, cmd.Flags().Changed("price"), cmd.Flags().Changed("stock"))
			if err != nil {
				return writeError(os.Stdout, err)
			}
			return runProductUpdate(ctx, os.Stdout, id, input)
		})
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			id, err := parseID(args[0])
			if err != nil {
				return writeError(os.Stdout, err)
			}
			return runProductDelete(ctx, os.Stdout, id)
		})
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)
	productsCmd.AddCommand(productsListCmd, productsCreateCmd, productsUpdateCmd, productsDeleteCmd)

	for _, c := range []*cobra.Command{productsCreateCmd, productsUpdateCmd} {
		c.Flags().StringVar(&productOpts.name, "name", "", "Product name")
		c.Flags().StringVar(&productOpts.description, "description", "", "Product description")
		c.Flags().StringVar(&productOpts.price, "price", "", "Unit price")
		c.Flags().IntVar(&productOpts.stock, "stock", 0, "Units in stock")
	}
	productsCreateCmd.MarkFlagRequired("name")
	productsCreateCmd.MarkFlagRequired("price")
}

// parseID parses a positive numeric identifier
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// productInputFromFlags validates flag values into a request body
func productInputFromFlags(f productFlags, withPrice, withStock bool) (client.ProductInput, error) {
	input := client.ProductInput{Nombre: f.name, Descripcion: f.description}
	if withPrice {
		price, err := decimal.NewFromString(f.price)
		if err != nil {
			return input, fmt.Errorf("invalid --price %q", f.price)
		}
		if price.IsNegative() {
			return input, errors.New("--price must not be negative")
		}
		input.Precio = &price
	}
	if withStock {
		if f.stock < 0 {
			return input, errors.New("--stock must not be negative")
		}
		stock := f.stock
		input.Stock = &stock
	}
	return input, nil
}

// runProductsList prints the catalog
func runProductsList(ctx context.Context, w io.Writer) int {
	return withSession(ctx, w, func(env *cliEnv, _ *session.Session) int {
		products, err := env.api.Products(ctx)
		if err != nil {
			return writeError(w, err)
		}
		writeResult(w, products, func() string {
			return formatProductsHuman(products, env.format)
		})
		return 0
	})
}

// formatProductsHuman renders products as a table
func formatProductsHuman(products []client.Product, f *format.Formatter) string {
	if len(products) == 0 {
		return "No hay productos"
	}
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{fmt.Sprint(p.ID), p.Nombre, orDash(p.Descripcion), f.Money(p.Precio), f.Int(p.Stock)})
	}
	return formatTable([]string{"ID", "NOMBRE", "DESCRIPCIÓN", "PRECIO", "STOCK"}, rows)
}

// runProductCreate posts a new product
func runProductCreate(ctx context.Context, w io.Writer, input client.ProductInput) int {
	return withSession(ctx, w, func(env *cliEnv, _ *session.Session) int {
		p, err := env.api.CreateProduct(ctx, input)
		if err != nil {
			return writeError(w, err)
		}
		writeResult(w, p, func() string {
			return fmt.Sprintf("Producto %d creado: %s", p.ID, p.Nombre)
		})
		return 0
	})
}

// runProductUpdate puts the changed fields
func runProductUpdate(ctx context.Context, w io.Writer, id int64, input client.ProductInput) int {
	return withSession(ctx, w, func(env *cliEnv, _ *session.Session) int {
		p, err := env.api.UpdateProduct(ctx, id, input)
		if err != nil {
			return writeError(w, err)
		}
		writeResult(w, p, func() string {
			return fmt.Sprintf("Producto %d actualizado", id)
		})
		return 0
	})
}

// runProductDelete deletes a product
func runProductDelete(ctx context.Context, w io.Writer, id int64) int {
	return withSession(ctx, w, func(env *cliEnv, _ *session.Session) int {
		if err := env.api.DeleteProduct(ctx, id); err != nil {
			return writeError(w, err)
		}
		fmt.Fprintf(w, "Producto %d eliminado\n", id)
		return 0
	})
}
