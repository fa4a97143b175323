// ABOUTME: Shared output helpers for human, JSON and YAML formats
// ABOUTME: Commands format human text themselves and delegate structured output here

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// isStructuredOutput reports whether --json or --yaml was given
func isStructuredOutput() bool {
	return IsJSONOutput() || IsYAMLOutput()
}

// formatStructured renders v as YAML when --yaml is set, otherwise JSON
func formatStructured(v interface{}) string {
	if IsYAMLOutput() {
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Sprintf("error: %v", err)
		}
		return strings.TrimRight(string(data), "\n")
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// writeResult prints v structured, or the human rendering
func writeResult(w io.Writer, v interface{}, human func() string) {
	if isStructuredOutput() {
		fmt.Fprintln(w, formatStructured(v))
		return
	}
	fmt.Fprintln(w, human())
}

// writeError prints err the way every command does and returns its exit code
func writeError(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)
	return exitCodeFor(err)
}

// formatTable aligns rows under a header using tab stops
func formatTable(header []string, rows [][]string) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	tw.Flush()
	return strings.TrimRight(sb.String(), "\n")
}

// orDash substitutes "-" for empty values
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
