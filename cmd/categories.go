// ABOUTME: Category commands for the inventario CLI
// ABOUTME: list, create, update, toggle and delete over /api/categorias

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/inventory"
	"github.com/basinventario/inventario-cli/internal/session"
)

var categoryOpts inventory.CategoryDraft

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"categorias"},
	Short:   "Manage categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runCategoriesList(ctx, os.Stdout)
		})
	},
}

var categoriesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runCategoryCreate(ctx, os.Stdout, categoryOpts)
		})
	},
}

var categoriesUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update a category; unset flags keep their current value",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			id, err := parseID(args[0])
			if err != nil {
				return writeError(os.Stdout, err)
			}
			changed := map[string]bool{}
			for _, name := range []string{"name", "description", "code", "color", "icon", "order"} {
				changed[name] = cmd.Flags().Changed(name)
			}
			return runCategoryUpdate(ctx, os.Stdout, id, categoryOpts, changed)
		})
	},
}

var categoriesToggleCmd = &cobra.Command{
	Use:   "toggle ID",
	Short: "Activate or deactivate a category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			id, err := parseID(args[0])
			if err != nil {
				return writeError(os.Stdout, err)
			}
			return runCategoryToggle(ctx, os.Stdout, id)
		})
	},
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			id, err := parseID(args[0])
			if err != nil {
				return writeError(os.Stdout, err)
			}
			return runCategoryDelete(ctx, os.Stdout, id)
		})
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.AddCommand(categoriesListCmd, categoriesCreateCmd, categoriesUpdateCmd, categoriesToggleCmd, categoriesDeleteCmd)

	for _, c := range []*cobra.Command{categoriesCreateCmd, categoriesUpdateCmd} {
		c.Flags().StringVar(&categoryOpts.Nombre, "name", "", "Category name")
		c.Flags().StringVar(&categoryOpts.Descripcion, "description", "", "Description")
		c.Flags().StringVar(&categoryOpts.Codigo, "code", "", "Short code (stored upper-case)")
		c.Flags().StringVar(&categoryOpts.Color, "color", inventory.DefaultCategoryColor, "Hex color")
		c.Flags().StringVar(&categoryOpts.Icono, "icon", inventory.DefaultCategoryIcon, "Icon")
		c.Flags().IntVar(&categoryOpts.Orden, "order", inventory.DefaultCategoryOrder, "Sort order")
	}
	categoriesCreateCmd.MarkFlagRequired("name")
}

// findCategory looks a category up by id in the full list
func findCategory(ctx context.Context, env *cliEnv, id int64) (client.Category, error) {
	categories, err := env.api.Categories(ctx)
	if err != nil {
		return client.Category{}, err
	}
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	return client.Category{}, fmt.Errorf("categoría %d no encontrada", id)
}

// mergeDraft overlays the changed flag values onto current
func mergeDraft(current, flags inventory.CategoryDraft, changed map[string]bool) inventory.CategoryDraft {
	if changed["name"] {
		current.Nombre = flags.Nombre
	}
	if changed["description"] {
		current.Descripcion = flags.Descripcion
	}
	if changed["code"] {
		current.Codigo = flags.Codigo
	}
	if changed["color"] {
		current.Color = flags.Color
	}
	if changed["icon"] {
		current.Icono = flags.Icono
	}
	if changed["order"] {
		current.Orden = flags.Orden
	}
	return current
}

// runCategoriesList prints categories
func runCategoriesList(ctx context.Context, w io.Writer) int {
	return withSession(ctx, w, func(env *cliEnv, _ *session.Session) int {
		categories, err := env.api.Categories(ctx)
		if err != nil {
			return writeError(w, err)
		}
		writeResult(w, categories, func() string {
			return formatCategoriesHuman(categories)
		})
		return 0
	})
}

// formatCategoriesHuman renders categories as a table
func formatCategoriesHuman(categories []client.Category) string {
	if len(categories) == 0 {
		return "No hay categorías"
	}
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		code, desc := "", ""
		if c.Codigo != nil {
			code = *c.Codigo
		}
		if c.Descripcion != nil {
			desc = *c.Descripcion
		}
		estado := "activa"
		if !c.Activo {
			estado = "inactiva"
		}
		rows = append(rows, []string{fmt.Sprint(c.ID), c.Icono + " " + c.Nombre, orDash(code), orDash(desc), fmt.Sprint(c.Orden), estado})
	}
	return formatTable([]string{"ID", "NOMBRE", "CÓDIGO", "DESCRIPCIÓN", "ORDEN", "ESTADO"}, rows)
}

// runCategoryCreate posts a new category
func runCategoryCreate(ctx context.Context, w io.Writer, draft inventory.CategoryDraft) int {
	category, err := inventory.NewCategory(0, draft)
	if err != nil {
		return writeError(w, err)
	}
	return withSession(ctx, w, func(env *cliEnv, _ *session.Session) int {
		created, err := env.api.CreateCategory(ctx, category)
		if err != nil {
			return writeError(w, err)
		}
		writeResult(w, created, func() string {
			return fmt.Sprintf("Categoría %d creada: %s", created.ID, created.Nombre)
		})
		return 0
	})
}

// runCategoryUpdate merges flags over the stored category and puts it
func runCategoryUpdate(ctx context.Context, w io.Writer, id int64, flags inventory.CategoryDraft, changed map[string]bool) int {
	return withSession(ctx, w, func(env *cliEnv, _ *session.Session) int {
		current, err := findCategory(ctx, env, id)
		if err != nil {
			return writeError(w, err)
		}
		category, err := inventory.NewCategory(id, mergeDraft(inventory.DraftFrom(current), flags, changed))
		if err != nil {
			return writeError(w, err)
		}
		category.Activo = current.Activo

		updated, err := env.api.UpdateCategory(ctx, category)
		if err != nil {
			return writeError(w, err)
		}
		writeResult(w, updated, func() string {
			return fmt.Sprintf("Categoría %d actualizada", id)
		})
		return 0
	})
}

// runCategoryToggle flips the active flag
func runCategoryToggle(ctx context.Context, w io.Writer, id int64) int {
	return withSession(ctx, w, func(env *cliEnv, _ *session.Session) int {
		current, err := findCategory(ctx, env, id)
		if err != nil {
			return writeError(w, err)
		}
		toggled := inventory.Toggled(current)
		if _, err := env.api.UpdateCategory(ctx, toggled); err != nil {
			return writeError(w, err)
		}
		estado := "activada"
		if !toggled.Activo {
			estado = "desactivada"
		}
		fmt.Fprintf(w, "Categoría %d %s\n", id, estado)
		return 0
	})
}

// runCategoryDelete deletes a category
func runCategoryDelete(ctx context.Context, w io.Writer, id int64) int {
	return withSession(ctx, w, func(env *cliEnv, _ *session.Session) int {
		if err := env.api.DeleteCategory(ctx, id); err != nil {
			return writeError(w, err)
		}
		fmt.Fprintf(w, "Categoría %d eliminada\n", id)
		return 0
	})
}
