// ABOUTME: Tests for the file-backed debug logger
// ABOUTME: Verifies JSON lines, level filtering, and disabled mode

package debuglog

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLines(t *testing.T, dir string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not JSON: %q", line)
		}
		out = append(out, entry)
	}
	return out
}

func TestInit_WritesJSONLines(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, "info"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer Close()

	Error("login", errors.New("boom"))
	Warn("stale role for %s", "warce")
	Close()

	lines := readLines(t, dir)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0]["level"] != "error" || lines[0]["error"] != "boom" || lines[0]["context"] != "login" {
		t.Errorf("unexpected error entry: %v", lines[0])
	}
	if lines[1]["message"] != "stale role for warce" {
		t.Errorf("unexpected warn entry: %v", lines[1])
	}
}

func TestInit_LevelFiltersDebug(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, "warn"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Debug("hidden")
	Warn("shown")
	Close()

	lines := readLines(t, dir)
	if len(lines) != 1 || lines[0]["message"] != "shown" {
		t.Errorf("expected only the warning, got %v", lines)
	}
}

func TestInit_EmptyDirDisables(t *testing.T) {
	if err := Init("", "debug"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	// Must not panic
	Error("ctx", errors.New("ignored"))
	Warn("ignored")
	Close()
}

func TestInfo_WritesAtInfoLevel(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, "info"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Info("login user_id=%d user=%s", 1, "warce")
	Close()

	lines := readLines(t, dir)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0]["level"] != "info" || lines[0]["message"] != "login user_id=1 user=warce" {
		t.Errorf("unexpected info entry: %v", lines[0])
	}
}
