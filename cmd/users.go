// ABOUTME: User management commands for the inventario CLI
// ABOUTME: Restricted to roles that can manage users

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/basinventario/inventario-cli/internal/access"
	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/inventory"
	"github.com/basinventario/inventario-cli/internal/session"
)

var (
	userOpts   client.UserInput
	userEdit   client.UserUpdate
	userActive bool
)

var usersCmd = &cobra.Command{
	Use:     "users",
	Aliases: []string{"usuarios"},
	Short:   "Manage users (requires user management permission)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runUsersList(ctx, os.Stdout)
		})
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			input := userOpts
			input.Activo = true
			return runUserCreate(ctx, os.Stdout, input)
		})
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update a user; only the given flags change",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			id, err := parseID(args[0])
			if err != nil {
				return writeError(os.Stdout, err)
			}
			update, err := userUpdateFromFlags(userEdit, userActive, cmd.Flags().Changed)
			if err != nil {
				return writeError(os.Stdout, err)
			}
			return runUserUpdate(ctx, os.Stdout, id, update)
		})
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			id, err := parseID(args[0])
			if err != nil {
				return writeError(os.Stdout, err)
			}
			return runUserDelete(ctx, os.Stdout, id)
		})
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd, usersCreateCmd, usersUpdateCmd, usersDeleteCmd)

	f := usersCreateCmd.Flags()
	f.StringVar(&userOpts.Nombre, "name", "", "First name")
	f.StringVar(&userOpts.Apellido, "last-name", "", "Last name")
	f.StringVar(&userOpts.UserName, "username", "", "Login name")
	f.StringVar(&userOpts.Email, "email", "", "Email")
	f.StringVar(&userOpts.Telefono, "phone", "", "Phone")
	f.StringVar(&userOpts.Password, "password", "", "Initial password")
	f.Int64Var(&userOpts.RolID, "role", 0, "Role id (see 'inventario roles')")
	usersCreateCmd.MarkFlagRequired("name")
	usersCreateCmd.MarkFlagRequired("username")
	usersCreateCmd.MarkFlagRequired("password")
	usersCreateCmd.MarkFlagRequired("role")

	f = usersUpdateCmd.Flags()
	f.StringVar(&userEdit.Nombre, "name", "", "First name")
	f.StringVar(&userEdit.Apellido, "last-name", "", "Last name")
	f.StringVar(&userEdit.Email, "email", "", "Email")
	f.StringVar(&userEdit.Telefono, "phone", "", "Phone")
	f.Int64Var(&userEdit.RolID, "role", 0, "Role id (see 'inventario roles')")
	f.BoolVar(&userActive, "active", true, "Whether the account can log in (--active=false disables it)")
}

// userUpdateFromFlags keeps the values of the flags that were given
func userUpdateFromFlags(edit client.UserUpdate, active bool, changed func(string) bool) (client.UserUpdate, error) {
	update := client.UserUpdate{
		Apellido: strings.TrimSpace(edit.Apellido),
		Email:    strings.TrimSpace(edit.Email),
		Telefono: strings.TrimSpace(edit.Telefono),
		RolID:    edit.RolID,
	}
	if changed("name") {
		update.Nombre = strings.TrimSpace(edit.Nombre)
		if update.Nombre == "" {
			return update, errors.New("el nombre no puede quedar vacío")
		}
	}
	if changed("role") && edit.RolID <= 0 {
		return update, errors.New("selecciona un rol")
	}
	if changed("active") {
		update.Activo = &active
	}
	return update, nil
}

// runUsersList prints users
func runUsersList(ctx context.Context, w io.Writer) int {
	return withPermission(ctx, w, access.ManageUsers, func(env *cliEnv, _ *session.Session) int {
		users, err := env.api.Users(ctx)
		if err != nil {
			return writeError(w, err)
		}
		writeResult(w, users, func() string {
			return formatUsersHuman(users)
		})
		return 0
	})
}

// formatUsersHuman renders users as a table
func formatUsersHuman(users []client.User) string {
	if len(users) == 0 {
		return "No hay usuarios"
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		role := "-"
		if r, ok := u.Role(); ok {
			role = r.Nombre
		}
		estado := "activo"
		if !u.Activo {
			estado = "inactivo"
		}
		rows = append(rows, []string{fmt.Sprint(u.ID), u.UserName, u.FullName(), orDash(u.Email), role, estado})
	}
	return formatTable([]string{"ID", "USUARIO", "NOMBRE", "EMAIL", "ROL", "ESTADO"}, rows)
}

// runUserCreate posts a new user
func runUserCreate(ctx context.Context, w io.Writer, input client.UserInput) int {
	if err := inventory.ValidateUser(input); err != nil {
		return writeError(w, err)
	}
	return withPermission(ctx, w, access.ManageUsers, func(env *cliEnv, _ *session.Session) int {
		u, err := env.api.CreateUser(ctx, input)
		if err != nil {
			return writeError(w, err)
		}
		writeResult(w, u, func() string {
			return fmt.Sprintf("Usuario %d creado: %s", u.ID, u.UserName)
		})
		return 0
	})
}

// runUserUpdate puts the changed fields; disabling your own account is refused
func runUserUpdate(ctx context.Context, w io.Writer, id int64, update client.UserUpdate) int {
	if err := inventory.ValidateUserUpdate(update); err != nil {
		return writeError(w, err)
	}
	return withPermission(ctx, w, access.ManageUsers, func(env *cliEnv, sess *session.Session) int {
		if sess.User.ID == id && update.Activo != nil && !*update.Activo {
			return writeError(w, errors.New("no puedes desactivar tu propio usuario"))
		}
		u, err := env.api.UpdateUser(ctx, id, update)
		if err != nil {
			return writeError(w, err)
		}
		writeResult(w, u, func() string {
			return fmt.Sprintf("Usuario %d actualizado", id)
		})
		return 0
	})
}

// runUserDelete deletes a user; deleting yourself is refused
func runUserDelete(ctx context.Context, w io.Writer, id int64) int {
	return withPermission(ctx, w, access.ManageUsers, func(env *cliEnv, sess *session.Session) int {
		if sess.User.ID == id {
			return writeError(w, errors.New("no puedes eliminar tu propio usuario"))
		}
		if err := env.api.DeleteUser(ctx, id); err != nil {
			return writeError(w, err)
		}
		fmt.Fprintf(w, "Usuario %d eliminado\n", id)
		return 0
	})
}
