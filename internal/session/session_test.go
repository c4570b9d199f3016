package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"

	"github.com/chatch/forge-fsql/internal/client"
	"github.com/chatch/forge-fsql/internal/history"
	"github.com/chatch/forge-fsql/internal/schema"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

// scriptExec records statements and answers every query with one row.
type scriptExec struct {
	stmts []string
}

func (s *scriptExec) Execute(ctx context.Context, sqlText string) *client.QueryResult {
	s.stmts = append(s.stmts, sqlText)
	return &client.QueryResult{Rows: []client.Row{
		client.NewRow([]string{"n"}, map[string]any{"n": 1}),
	}}
}

func newTestSession(t *testing.T, exec schema.Executor) (*Session, *bytes.Buffer, *history.History) {
	t.Helper()
	histPath := filepath.Join(t.TempDir(), "history")
	hist, err := history.Open(histPath, 100)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	s := New(exec, schema.NewStore(), hist, Options{SkipSchemaPreload: true})
	var out bytes.Buffer
	s.SetOutput(&out)
	return s, &out, hist
}

func TestRunScriptDispatchesSQL(t *testing.T) {
	exec := &scriptExec{}
	s, out, hist := newTestSession(t, exec)

	script := "SELECT id\nFROM users;\n"
	if err := s.RunScript(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("RunScript() error = %v", err)
	}

	if len(exec.stmts) != 1 {
		t.Fatalf("stmts = %v, want one", exec.stmts)
	}
	if exec.stmts[0] != "SELECT id\nFROM users;" {
		t.Errorf("dispatched %q, want newline-joined statement", exec.stmts[0])
	}
	if !strings.Contains(out.String(), "(1 row)") {
		t.Errorf("output missing formatted result: %q", out.String())
	}
	if entries := hist.Entries(); len(entries) != 1 || entries[0] != "SELECT id FROM users;" {
		t.Errorf("history = %v, want flattened statement", entries)
	}
}

func TestRunScriptUnknownCommand(t *testing.T) {
	exec := &scriptExec{}
	s, out, _ := newTestSession(t, exec)

	if err := s.RunScript(context.Background(), strings.NewReader(".bogus\n")); err != nil {
		t.Fatalf("RunScript() error = %v", err)
	}

	if len(exec.stmts) != 0 {
		t.Errorf("unknown command must not hit the endpoint: %v", exec.stmts)
	}
	if !strings.Contains(out.String(), "Unknown command: .bogus") {
		t.Errorf("output = %q, want unknown command notice", out.String())
	}
}

func TestRunScriptStopsAtExit(t *testing.T) {
	exec := &scriptExec{}
	s, _, _ := newTestSession(t, exec)

	script := "exit\nSELECT 1;\n"
	if err := s.RunScript(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("RunScript() error = %v", err)
	}
	if len(exec.stmts) != 0 {
		t.Errorf("nothing after exit should run, got %v", exec.stmts)
	}
}

func TestRunScriptTimingToggle(t *testing.T) {
	exec := &scriptExec{}
	s, out, _ := newTestSession(t, exec)

	script := ".timing\nSELECT 1;\n"
	if err := s.RunScript(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("RunScript() error = %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "Timing is on.") {
		t.Errorf("output = %q, want timing confirmation", text)
	}
	if !strings.Contains(text, "sec)") {
		t.Errorf("output = %q, want elapsed footer", text)
	}
}

func TestRunScriptPersistsHistory(t *testing.T) {
	exec := &scriptExec{}
	histPath := filepath.Join(t.TempDir(), "history")
	hist, err := history.Open(histPath, 100)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	s := New(exec, schema.NewStore(), hist, Options{SkipSchemaPreload: true})
	var out bytes.Buffer
	s.SetOutput(&out)

	if err := s.RunScript(context.Background(), strings.NewReader("SELECT 1;\n")); err != nil {
		t.Fatalf("RunScript() error = %v", err)
	}

	reloaded, err := history.Open(histPath, 100)
	if err != nil {
		t.Fatalf("reload history: %v", err)
	}
	if entries := reloaded.Entries(); len(entries) != 1 || entries[0] != "SELECT 1;" {
		t.Errorf("persisted history = %v, want [SELECT 1;]", entries)
	}
}
