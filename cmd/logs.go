// ABOUTME: Audit log command for the inventario CLI
// ABOUTME: Admin only; lists logs by filter, action or user, or a 24h summary

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
	"github.com/basinventario/inventario-cli/internal/inventory"
	"github.com/basinventario/inventario-cli/internal/session"
)

// logsQuery holds the logs flags
type logsQuery struct {
	userID  int64
	action  string
	from    string
	to      string
	limit   int
	summary bool
}

var logsOpts logsQuery

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show audit logs (administrators only)",
	Long: `Show the API audit log.

--action and --user query the dedicated endpoints; otherwise --user, --from,
--to and --limit filter the full log. --summary shows the last 24 hours.

Dates accept YYYY-MM-DD or RFC3339.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			return runLogs(ctx, os.Stdout, logsOpts)
		})
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.Flags().Int64Var(&logsOpts.userID, "user", 0, "User id")
	logsCmd.Flags().StringVar(&logsOpts.action, "action", "", "Action, e.g. \"Login Failed\"")
	logsCmd.Flags().StringVar(&logsOpts.from, "from", "", "From date")
	logsCmd.Flags().StringVar(&logsOpts.to, "to", "", "To date")
	logsCmd.Flags().IntVar(&logsOpts.limit, "limit", 50, "Maximum entries")
	logsCmd.Flags().BoolVar(&logsOpts.summary, "summary", false, "Show the last 24 hours summary")
}

// parseDate accepts a calendar date or an RFC3339 timestamp
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return t, nil
}

// fetchLogs picks the endpoint matching the query
func fetchLogs(ctx context.Context, api *client.Client, q logsQuery) ([]client.UserLog, error) {
	switch {
	case q.action != "":
		return api.UserLogsByAction(ctx, q.action, q.limit)
	case q.userID > 0 && q.from == "" && q.to == "":
		return api.UserLogsByUser(ctx, q.userID, q.limit)
	}

	from, err := parseDate(q.from)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(q.to)
	if err != nil {
		return nil, err
	}
	return api.UserLogs(ctx, client.LogFilter{UserID: q.userID, FromDate: from, ToDate: to, Limit: q.limit})
}

// runLogs prints logs or their summary
func runLogs(ctx context.Context, w io.Writer, q logsQuery) int {
	return withPermission(ctx, w, access.Administer, func(env *cliEnv, _ *session.Session) int {
		if q.summary {
			logs, err := env.api.UserLogs(ctx, inventory.SummaryFilter(time.Now()))
			if err != nil {
				return writeError(w, err)
			}
			summary := inventory.SummarizeLogs(logs)
			writeResult(w, summary, func() string {
				return formatLogSummaryHuman(summary)
			})
			return 0
		}

		logs, err := fetchLogs(ctx, env.api, q)
		if err != nil {
			return writeError(w, err)
		}
		writeResult(w, logs, func() string {
			return formatLogsHuman(logs)
		})
		return 0
	})
}

// formatLogSummaryHuman renders the 24h summary
func formatLogSummaryHuman(s inventory.LogSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `Últimas 24 horas
Actividades:     %d
Tasa de éxito:   %d%%
Logins fallidos: %d`, s.Total, s.SuccessRate, s.FailedLogins)

	if len(s.Recent) > 0 {
		sb.WriteString("\n\nActividad reciente:\n")
		for _, l := range s.Recent {
			fmt.Fprintf(&sb, "  %s %s  %s  %s\n", actionIcon(l.Action), format.Clock(l.Timestamp.Time), l.UserName, l.Action)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatLogsHuman renders logs as a table
func formatLogsHuman(logs []client.UserLog) string {
	if len(logs) == 0 {
		return "No hay logs"
	}
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		status := "ok"
		switch inventory.ClassifyLog(l) {
		case inventory.LogFailed:
			status = "error"
		case inventory.LogWarning:
			status = "warn"
		}
		rows = append(rows, []string{
			format.DateTime(l.Timestamp.Time),
			orDash(l.UserName),
			l.Action,
			strings.TrimSpace(l.HTTPMethod + " " + l.Endpoint),
			fmt.Sprintf("%d %s", l.ResponseStatus, status),
			format.DurationMs(l.DurationMs),
			orDash(l.IPAddress),
		})
	}
	return formatTable([]string{"FECHA", "USUARIO", "ACCIÓN", "ENDPOINT", "ESTADO", "DURACIÓN", "IP"}, rows)
}

// actionIcon marks common actions in the summary
func actionIcon(action string) string {
	switch action {
	case inventory.ActionLoginSuccess:
		return "🟢"
	case inventory.ActionLoginFailed:
		return "🔴"
	case inventory.ActionCreate:
		return "➕"
	case inventory.ActionUpdate:
		return "✏️"
	case inventory.ActionDelete:
		return "🗑️"
	case inventory.ActionRead:
		return "👁️"
	default:
		return "⚪"
	}
}
