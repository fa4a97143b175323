// ABOUTME: Login and logout commands for the inventario CLI
// ABOUTME: Creates or clears the persisted session

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/basinventario/inventario-cli/internal/client"
	"github.com/basinventario/inventario-cli/internal/session"
)

var (
	loginUser     string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Start a session",
	Long: `Authenticate against the API and persist the session.

Missing credentials are prompted for interactively.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			creds := client.Credentials{UserName: loginUser, Password: loginPassword}
			if creds.UserName == "" || creds.Password == "" {
				if err := promptCredentials(&creds); err != nil {
					return writeError(os.Stdout, err)
				}
			}
			return runLogin(ctx, os.Stdout, creds)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session",
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runLogout(ctx, os.Stdout)
		})
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "User name")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password (prompted when omitted)")
}

// promptCredentials asks for whatever is missing
func promptCredentials(creds *client.Credentials) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Usuario").
				Value(&creds.UserName).
				Validate(required("el usuario")),
			huh.NewInput().
				Title("Contraseña").
				EchoMode(huh.EchoModePassword).
				Value(&creds.Password).
				Validate(required("la contraseña")),
		),
	).WithTheme(huh.ThemeBase())

	return form.Run()
}

// required returns a validator rejecting empty input
func required(what string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s es obligatorio", what)
		}
		return nil
	}
}

// runLogin authenticates and persists the session
func runLogin(ctx context.Context, w io.Writer, creds client.Credentials) int {
	env, err := newEnv(ctx)
	if err != nil {
		return writeError(w, err)
	}
	defer env.Close()

	sess, err := env.store.Login(ctx, creds)
	if err != nil {
		if errors.Is(err, client.ErrConnectivity) {
			return writeError(w, client.ErrConnectivity)
		}
		return writeError(w, err)
	}

	writeResult(w, sess.User, func() string {
		return formatLoginHuman(sess)
	})
	return 0
}

// formatLoginHuman greets the logged-in user
func formatLoginHuman(sess *session.Session) string {
	role := "sin rol"
	if r, ok := sess.User.Role(); ok {
		role = r.Nombre
	}
	return fmt.Sprintf("Bienvenido, %s (%s) - %s", sess.User.FullName(), sess.User.UserName, role)
}

// runLogout clears the persisted session
func runLogout(ctx context.Context, w io.Writer) int {
	env, err := newEnv(ctx)
	if err != nil {
		return writeError(w, err)
	}
	defer env.Close()

	if err := env.store.Logout(ctx); err != nil {
		return writeError(w, err)
	}
	fmt.Fprintln(w, "Sesión cerrada")
	return 0
}
