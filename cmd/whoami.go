// ABOUTME: Whoami and roles commands for the inventario CLI
// ABOUTME: Shows the session user, role capabilities and token expiry

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/basinventario/inventario-cli/internal/access"
	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/format"
	"github.com/basinventario/inventario-cli/internal/session"
)

var whoamiRefresh bool

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the session user and permissions",
	Long: `Show the logged-in user, role and derived permissions.

--refresh re-validates the token to pick up role changes.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runWhoami(ctx, os.Stdout, whoamiRefresh)
		})
	},
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List roles",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runRoles(ctx, os.Stdout)
		})
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(rolesCmd)
	whoamiCmd.Flags().BoolVar(&whoamiRefresh, "refresh", false, "Re-validate the token before showing permissions")
}

// whoamiOutput is the structured form of whoami
type whoamiOutput struct {
	Backend      string              `json:"backend" yaml:"backend"`
	User         client.User         `json:"user" yaml:"user"`
	Capabilities access.Capabilities `json:"capabilities" yaml:"capabilities"`
	ExpiresAt    *time.Time          `json:"expiresAt,omitempty" yaml:"expiresAt,omitempty"`
	RefreshError string              `json:"refreshError,omitempty" yaml:"refreshError,omitempty"`
}

// runWhoami prints the session and returns exit code
func runWhoami(ctx context.Context, w io.Writer, refresh bool) int {
	env, err := newEnv(ctx)
	if err != nil {
		return writeError(w, err)
	}
	defer env.Close()

	sess, rev, err := env.resolveSession(ctx)
	if err != nil {
		return writeError(w, err)
	}

	out := whoamiOutput{Backend: env.cfg.APIURL}
	switch {
	case rev != nil:
		// Restore already re-validated a roleless user
		if refresh && rev.Err != nil {
			out.RefreshError = rev.Err.Error()
		}
	case refresh:
		user, err := env.store.Revalidate(ctx, sess.Token)
		if err != nil {
			// Stale role is kept; report but do not fail
			out.RefreshError = err.Error()
		} else {
			sess.User = *user
		}
	}

	out.User = sess.User
	out.Capabilities = sess.Capabilities()
	if info, ok := session.InspectToken(sess.Token); ok && !info.ExpiresAt.IsZero() {
		out.ExpiresAt = &info.ExpiresAt
	}

	writeResult(w, out, func() string {
		return formatWhoamiHuman(out, time.Now())
	})
	return 0
}

// formatWhoamiHuman formats the session for human readability
func formatWhoamiHuman(out whoamiOutput, now time.Time) string {
	role := "(sin rol cargado)"
	if r, ok := out.User.Role(); ok {
		role = r.Nombre
	}

	expires := "-"
	if out.ExpiresAt != nil {
		if now.After(*out.ExpiresAt) {
			expires = format.DateTime(*out.ExpiresAt) + " (expirado)"
		} else {
			expires = format.DateTime(*out.ExpiresAt)
		}
	}

	s := fmt.Sprintf(`Backend:        %s
Usuario:        %s (%s)
Email:          %s
Rol:            %s
Administrador:  %s
Gestiona users: %s
Token expira:   %s`,
		out.Backend,
		out.User.FullName(), out.User.UserName,
		orDash(out.User.Email),
		role,
		yesNo(out.Capabilities.IsAdmin),
		yesNo(out.Capabilities.CanManageUsers),
		expires)

	if out.RefreshError != "" {
		s += "\n\nNo se pudieron actualizar los permisos: " + out.RefreshError
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "sí"
	}
	return "no"
}

// runRoles lists the roles known to the backend
func runRoles(ctx context.Context, w io.Writer) int {
	return withSession(ctx, w, func(env *cliEnv, _ *session.Session) int {
		roles, err := env.api.Roles(ctx)
		if err != nil {
			return writeError(w, err)
		}
		writeResult(w, roles, func() string {
			return formatRolesHuman(roles)
		})
		return 0
	})
}

// formatRolesHuman renders roles as a table
func formatRolesHuman(roles []client.Role) string {
	if len(roles) == 0 {
		return "No hay roles"
	}
	rows := make([][]string, 0, len(roles))
	for _, r := range roles {
		var flags []string
		if r.EsAdministrador {
			flags = append(flags, "admin")
		}
		if r.PuedeGestionarUsuarios {
			flags = append(flags, "usuarios")
		}
		rows = append(rows, []string{fmt.Sprint(r.ID), r.Nombre, orDash(strings.Join(flags, ",")), orDash(r.Descripcion)})
	}
	return formatTable([]string{"ID", "NOMBRE", "PERMISOS", "DESCRIPCIÓN"}, rows)
}
