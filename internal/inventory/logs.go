// ABOUTME: Audit log summary and status classification
// ABOUTME: Summarizes the last day of activity for the logs screen

package inventory

import (
	"math"
	"slices"
	"time"

	"github.com/basinventario/inventario-cli/internal/client"
)

// Summary window and sampling used by the logs summary
const (
	SummaryWindow = 24 * time.Hour
	SummaryLimit  = 10
	SummaryRecent = 5
)

// Common audit actions
const (
	ActionLoginSuccess = "Login Success"
	ActionLoginFailed  = "Login Failed"
	ActionCreate       = "Create"
	ActionUpdate       = "Update"
	ActionDelete       = "Delete"
	ActionRead         = "Read"
)

// CommonActions lists the actions offered by the action filter
var CommonActions = []string{ActionLoginSuccess, ActionLoginFailed, ActionCreate, ActionUpdate, ActionDelete, ActionRead}

// LogSummary is the activity overview for a window of logs
type LogSummary struct {
	Total        int              `json:"total" yaml:"total"`
	SuccessRate  int              `json:"successRate" yaml:"successRate"`
	FailedLogins int              `json:"failedLogins" yaml:"failedLogins"`
	Recent       []client.UserLog `json:"recent" yaml:"recent"`
}

// SummaryFilter returns the log query for the window ending at now
func SummaryFilter(now time.Time) client.LogFilter {
	return client.LogFilter{
		FromDate: now.Add(-SummaryWindow),
		ToDate:   now,
		Limit:    SummaryLimit,
	}
}

// SummarizeLogs computes totals; SuccessRate is a rounded percentage, 0 for no logs
func SummarizeLogs(logs []client.UserLog) LogSummary {
	s := LogSummary{Total: len(logs)}
	successful := 0
	for _, l := range logs {
		if l.Success {
			successful++
		}
		if l.Action == ActionLoginFailed {
			s.FailedLogins++
		}
	}
	if s.Total > 0 {
		s.SuccessRate = int(math.Round(float64(successful) / float64(s.Total) * 100))
	}
	s.Recent = logs[:min(len(logs), SummaryRecent)]
	return s
}

// NextActionFilter cycles "" -> each common action -> ""
func NextActionFilter(current string) string {
	i := slices.Index(CommonActions, current)
	if i+1 >= len(CommonActions) {
		return ""
	}
	return CommonActions[i+1]
}

// LogStatus classifies a log entry for coloring
type LogStatus int

const (
	LogOK LogStatus = iota
	LogWarning
	LogFailed
)

// ClassifyLog marks failures and 4xx/5xx as failed, 2xx as ok, anything else as warning
func ClassifyLog(l client.UserLog) LogStatus {
	if !l.Success || l.ResponseStatus >= 400 {
		return LogFailed
	}
	if l.ResponseStatus >= 200 && l.ResponseStatus < 300 {
		return LogOK
	}
	return LogWarning
}
