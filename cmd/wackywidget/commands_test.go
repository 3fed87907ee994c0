package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Keatongull/wackywidget/internal/config"
)

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootRunsLineSession(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "Bob Smith\nP\nHIRE P VP1\nhire VP1 S1\nDISPLAY\nEXIT\nHIRE P VP2\n", "--dir", dir, "--mode", "line")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := "Error: Invalid name.\n" +
		"Success: Initialized President P.\n" +
		"Successfully hired VP1 under P.\n" +
		"Successfully hired S1 under VP1.\n" +
		"President: P\n\tVice President: VP1\n\t\tSupervisor: S1\n"
	if out != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", out, want)
	}
}

func TestAutoModeUsesLineInterpreterForPipes(t *testing.T) {
	out, err := execute(t, "P\nDISPLAY\n", "--dir", t.TempDir())
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasSuffix(out, "President: P\n") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestInitThenJournalToFile(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "", "init", "--dir", dir)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	path := filepath.Join(dir, config.Dir, "config.yaml")
	if !strings.Contains(out, path) {
		t.Fatalf("init output %q does not mention %s", out, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data = bytes.Replace(data, []byte(`  path: ""`), []byte(`  path: journal.log`), 1)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "P\nHIRE P VP1\nEXIT\n", "--dir", dir, "--mode", "line"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	journal, err := os.ReadFile(filepath.Join(dir, config.Dir, "journal.log"))
	if err != nil {
		t.Fatalf("journal not written: %v", err)
	}
	if !strings.Contains(string(journal), "HIRE P VP1: Successfully hired VP1 under P.") {
		t.Fatalf("journal missing hire entry:\n%s", journal)
	}
	logData, err := os.ReadFile(filepath.Join(dir, config.Dir, "logs", "wackywidget.log"))
	if err != nil {
		t.Fatalf("diagnostic log not written: %v", err)
	}
	if !strings.Contains(string(logData), "session ") {
		t.Fatalf("log missing session line:\n%s", logData)
	}
}

func TestRejectsUnknownMode(t *testing.T) {
	if _, err := execute(t, "", "--dir", t.TempDir(), "--mode", "web"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestMetricsBindErrorStopsBeforeSession(t *testing.T) {
	_, err := execute(t, "P\n", "--dir", t.TempDir(), "--mode", "line", "--metrics-addr", "256.0.0.1:bad")
	if err == nil || !strings.Contains(err.Error(), "metrics: listen") {
		t.Fatalf("expected metrics listen error, got %v", err)
	}
}

func TestUseTUI(t *testing.T) {
	r := strings.NewReader("")
	if useTUI(config.ModeAuto, r) {
		t.Fatalf("auto mode must not pick the TUI for a non-file reader")
	}
	if !useTUI(config.ModeTUI, r) {
		t.Fatalf("tui mode must force the TUI")
	}
	if useTUI(config.ModeLine, r) {
		t.Fatalf("line mode must never pick the TUI")
	}
}
