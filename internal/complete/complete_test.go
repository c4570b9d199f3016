package complete

import (
	"context"
	"reflect"
	"testing"

	"github.com/chatch/forge-fsql/internal/client"
	"github.com/chatch/forge-fsql/internal/command"
	"github.com/chatch/forge-fsql/internal/schema"
)

// metaExec serves canned metadata so a store can be warmed for tests.
type metaExec struct {
	pairs [][2]string
}

func (m *metaExec) Execute(ctx context.Context, sqlText string) *client.QueryResult {
	rows := make([]client.Row, len(m.pairs))
	for i, p := range m.pairs {
		rows[i] = client.NewRow([]string{"table_name", "column_name"}, map[string]any{
			"table_name":  p[0],
			"column_name": p[1],
		})
	}
	return &client.QueryResult{Rows: rows}
}

func newTestCompleter(t *testing.T, pairs ...[2]string) *Completer {
	t.Helper()
	store := schema.NewStore()
	if _, err := store.Load(context.Background(), &metaExec{pairs: pairs}); err != nil {
		t.Fatalf("warm cache: %v", err)
	}
	return New(store, command.NewRegistry())
}

func usersCompleter(t *testing.T) *Completer {
	return newTestCompleter(t,
		[2]string{"users", "id"},
		[2]string{"users", "name"},
		[2]string{"users", "email"},
	)
}

func TestCompleteEmptyInput(t *testing.T) {
	c := usersCompleter(t)
	for _, line := range []string{"", "   ", "\t"} {
		candidates, word := c.Complete(line)
		if len(candidates) != 0 || word != "" {
			t.Errorf("Complete(%q) = %v, %q; want none", line, candidates, word)
		}
	}
}

func TestCompleteDotCommands(t *testing.T) {
	c := usersCompleter(t)

	candidates, word := c.Complete(".ta")
	if word != ".ta" {
		t.Errorf("word = %q, want %q", word, ".ta")
	}
	if !reflect.DeepEqual(candidates, []string{".tables"}) {
		t.Errorf("candidates = %v, want [.tables]", candidates)
	}

	// Bare dot proposes every command.
	candidates, _ = c.Complete(".")
	if len(candidates) == 0 {
		t.Error("bare dot should propose all commands")
	}
}

func TestCompleteQualifiedColumns(t *testing.T) {
	c := usersCompleter(t)

	candidates, word := c.Complete("SELECT users.")
	want := []string{"users.id", "users.name", "users.email"}
	if !reflect.DeepEqual(candidates, want) {
		t.Errorf("candidates = %v, want %v", candidates, want)
	}
	if word != "users." {
		t.Errorf("word = %q, want %q", word, "users.")
	}

	candidates, word = c.Complete("SELECT users.n")
	if !reflect.DeepEqual(candidates, []string{"users.name"}) {
		t.Errorf("candidates = %v, want [users.name]", candidates)
	}
	if word != "users.n" {
		t.Errorf("word = %q, want %q", word, "users.n")
	}
}

func TestCompleteQualifiedCaseInsensitiveTable(t *testing.T) {
	c := usersCompleter(t)

	// Table matched case-insensitively; typed casing preserved in candidates.
	candidates, _ := c.Complete("SELECT USERS.i")
	if !reflect.DeepEqual(candidates, []string{"USERS.id"}) {
		t.Errorf("candidates = %v, want [USERS.id]", candidates)
	}
}

func TestCompleteQualifiedUnknownTable(t *testing.T) {
	c := usersCompleter(t)

	candidates, _ := c.Complete("SELECT nosuch.")
	if len(candidates) != 0 {
		t.Errorf("unknown table must yield no candidates, got %v", candidates)
	}
}

func TestCompleteTableContext(t *testing.T) {
	c := newTestCompleter(t,
		[2]string{"users", "id"},
		[2]string{"user_events", "id"},
		[2]string{"orders", "total"},
	)

	tests := []struct {
		name string
		line string
		want []string
	}{
		{name: "from", line: "SELECT * FROM u", want: []string{"users", "user_events"}},
		{name: "join", line: "SELECT * FROM users JOIN o", want: []string{"orders"}},
		{name: "into", line: "INSERT INTO or", want: []string{"orders"}},
		{name: "update", line: "UPDATE us", want: []string{"users", "user_events"}},
		{name: "keyword case insensitive", line: "select * from u", want: []string{"users", "user_events"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates, _ := c.Complete(tt.line)
			if !reflect.DeepEqual(candidates, tt.want) {
				t.Errorf("Complete(%q) = %v, want %v", tt.line, candidates, tt.want)
			}
		})
	}
}

func TestCompleteTableContextExcludesColumns(t *testing.T) {
	c := newTestCompleter(t,
		[2]string{"users", "id"},
		[2]string{"users", "username"},
	)

	candidates, _ := c.Complete("SELECT * FROM u")
	for _, cand := range candidates {
		if cand == "username" {
			t.Errorf("table context leaked column name: %v", candidates)
		}
	}
	found := false
	for _, cand := range candidates {
		if cand == "users" {
			found = true
		}
	}
	if !found {
		t.Errorf("candidates = %v, want users included", candidates)
	}
}

func TestCompleteDefaultUnion(t *testing.T) {
	c := newTestCompleter(t,
		[2]string{"users", "id"},
		[2]string{"users", "updated_at"},
	)

	// "u" matches the table and the column; both appear, deduplicated.
	candidates, word := c.Complete("SELECT u")
	want := []string{"users", "updated_at"}
	if !reflect.DeepEqual(candidates, want) {
		t.Errorf("candidates = %v, want %v", candidates, want)
	}
	if word != "u" {
		t.Errorf("word = %q, want %q", word, "u")
	}
}

func TestCompleteDefaultDeduplicates(t *testing.T) {
	// A table and a column sharing one name must appear once.
	c := newTestCompleter(t,
		[2]string{"status", "id"},
		[2]string{"jobs", "status"},
	)

	candidates, _ := c.Complete("SELECT stat")
	if !reflect.DeepEqual(candidates, []string{"status"}) {
		t.Errorf("candidates = %v, want single status", candidates)
	}
}

func TestDoAdaptsToReadline(t *testing.T) {
	c := usersCompleter(t)

	line := []rune("SELECT users.n")
	suffixes, length := c.Do(line, len(line))

	if length != len("users.n") {
		t.Errorf("length = %d, want %d", length, len("users.n"))
	}
	if len(suffixes) != 1 || string(suffixes[0]) != "ame" {
		t.Errorf("suffixes = %v, want [ame]", suffixes)
	}
}
