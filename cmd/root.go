// ABOUTME: Root command for the inventario CLI
// ABOUTME: Handles global flags and configuration

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/basinventario/inventario-cli/internal/config"
)

var (
	apiURL     string
	jsonOutput bool
	yamlOutput bool
	configFile string
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "inventario",
	Short: "CLI for the BAS inventory system",
	Long: `inventario is a terminal client for the BAS inventory API.

It keeps a persisted session, shows what your role allows, and manages
products, categories, stock, movements, users and audit logs.

Environment Variables:
  INVENTARIO_API_URL          Backend API URL (default: http://localhost:8080)
  VITE_API_BASE_URL           Legacy name for the API URL
  INVENTARIO_SESSION_BACKEND  file, redis or memory (default: file)
  INVENTARIO_CONFIG_DIR       Session, config and debug log directory`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides INVENTARIO_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().BoolVar(&yamlOutput, "yaml", false, "Output YAML instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: $XDG_CONFIG_HOME/inventario/config.yaml)")
}

// loadConfig resolves configuration with flag values on top; --api-url beats
// INVENTARIO_API_URL, which beats the config file and the default
func loadConfig() (*config.Config, error) {
	overrides := map[string]any{}
	if apiURL != "" {
		overrides["api_url"] = apiURL
	}
	return config.Load(config.Options{File: configFile, Overrides: overrides})
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// IsYAMLOutput returns whether YAML output is requested
func IsYAMLOutput() bool {
	return yamlOutput && !jsonOutput
}

// commandContext is canceled on SIGINT or SIGTERM
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// exitWith runs fn under a signal-aware context and exits with its code
func exitWith(fn func(ctx context.Context) int) {
	ctx, cancel := commandContext()
	code := fn(ctx)
	cancel()
	if code != 0 {
		os.Exit(code)
	}
}
