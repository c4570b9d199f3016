// Package command holds the fixed registry of administrative dot commands
// and the classifier that separates them from SQL input.
//
// A command's Run returns pre-formatted display text; failures are part of
// that text, never Go errors. A command that needs an argument and gets
// none returns its usage line without contacting the remote endpoint.
package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/chatch/forge-fsql/internal/format"
	"github.com/chatch/forge-fsql/internal/schema"
)

// Env carries the collaborators a command may use. Session-only hooks
// (timing toggle, screen clear) are nil outside an interactive session.
type Env struct {
	// Client executes SQL against the remote endpoint
	Client schema.Executor
	// Schema owns the cached table/column metadata
	Schema *schema.Store
	// ToggleTiming flips the session's elapsed-time display; nil when
	// no session is attached. Returns the new state.
	ToggleTiming func() bool
	// ClearScreen clears the terminal; nil when no session is attached.
	ClearScreen func()
}

// Command is one administrative operation.
type Command struct {
	// Name is the dot-prefixed command token, matched case-sensitively.
	Name string
	// Usage is the full invocation form shown in help and usage errors.
	Usage string
	// Description is a one-line summary for .help.
	Description string
	// Run executes the command and returns display text.
	Run func(ctx context.Context, env *Env, args string) string
}

// Parsed is the classifier outcome for one complete input unit.
type Parsed struct {
	// Command is the matched registry entry; nil for unknown dot commands.
	Command *Command
	// Args is everything after the command token, joined by single spaces.
	Args string
	// IsSpecial is true for any dot-prefixed input, matched or not.
	IsSpecial bool
}

// Registry is the fixed, read-only set of dot commands.
type Registry struct {
	order []string
	cmds  map[string]*Command
}

// NewRegistry builds the registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{cmds: make(map[string]*Command)}
	r.register(&Command{
		Name:        ".help",
		Usage:       ".help",
		Description: "List available commands",
		Run:         runHelp(r),
	})
	r.register(&Command{
		Name:        ".tables",
		Usage:       ".tables",
		Description: "List tables",
		Run:         runTables,
	})
	r.register(&Command{
		Name:        ".schema",
		Usage:       ".schema",
		Description: "Dump tables and their columns",
		Run:         runSchema,
	})
	r.register(&Command{
		Name:        ".describe",
		Usage:       ".describe <table>",
		Description: "Show the structure of a table",
		Run:         runDescribe,
	})
	r.register(&Command{
		Name:        ".refresh",
		Usage:       ".refresh",
		Description: "Reload the schema cache",
		Run:         runRefresh,
	})
	r.register(&Command{
		Name:        ".timing",
		Usage:       ".timing",
		Description: "Toggle query time display",
		Run:         runTiming,
	})
	r.register(&Command{
		Name:        ".clear",
		Usage:       ".clear",
		Description: "Clear the screen",
		Run:         runClear,
	})
	r.register(&Command{
		Name:        ".exit",
		Usage:       ".exit",
		Description: "Exit the session",
		// The session loop intercepts exit tokens before dispatch; this
		// entry exists so .exit shows up in help and completion.
		Run: func(context.Context, *Env, string) string { return "" },
	})
	return r
}

func (r *Registry) register(c *Command) {
	r.order = append(r.order, c.Name)
	r.cmds[c.Name] = c
}

// Names returns all command names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Parse classifies one complete input unit. Dot-prefixed input is special;
// the first whitespace-delimited token is matched exactly (case-sensitive)
// against the registry. Everything else is SQL.
func (r *Registry) Parse(input string) Parsed {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, ".") {
		return Parsed{IsSpecial: false}
	}
	fields := strings.Fields(trimmed)
	cmd := r.cmds[fields[0]]
	return Parsed{
		Command:   cmd,
		Args:      strings.Join(fields[1:], " "),
		IsSpecial: true,
	}
}

// runHelp lists every registered command with its description.
func runHelp(r *Registry) func(context.Context, *Env, string) string {
	return func(_ context.Context, _ *Env, _ string) string {
		var b strings.Builder
		b.WriteString("Available commands:\n")
		for _, name := range r.order {
			c := r.cmds[name]
			b.WriteString(fmt.Sprintf("  %-20s %s\n", c.Usage, c.Description))
		}
		b.WriteString("\nEnd SQL statements with ; to execute them.")
		return b.String()
	}
}

// loadedCache returns the current cache, loading it first when empty.
// The error string is displayable text.
func loadedCache(ctx context.Context, env *Env) (*schema.Cache, string) {
	cache := env.Schema.Get()
	if len(cache.Tables) > 0 {
		return cache, ""
	}
	if _, err := env.Schema.Load(ctx, env.Client); err != nil {
		return nil, err.Error()
	}
	return env.Schema.Get(), ""
}

func runTables(ctx context.Context, env *Env, _ string) string {
	cache, errText := loadedCache(ctx, env)
	if errText != "" {
		return errText
	}
	if len(cache.Tables) == 0 {
		return "No tables found."
	}
	var b strings.Builder
	for _, table := range cache.Tables {
		b.WriteString(table)
		b.WriteString("\n")
	}
	n := int64(len(cache.Tables))
	word := "tables"
	if n == 1 {
		word = "table"
	}
	b.WriteString(fmt.Sprintf("(%d %s)", n, word))
	return b.String()
}

func runSchema(ctx context.Context, env *Env, _ string) string {
	cache, errText := loadedCache(ctx, env)
	if errText != "" {
		return errText
	}
	if len(cache.Tables) == 0 {
		return "No tables found."
	}
	var b strings.Builder
	for i, table := range cache.Tables {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(table)
		b.WriteString("\n")
		for _, col := range cache.ColumnsFor(table) {
			b.WriteString("  ")
			b.WriteString(col)
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func runDescribe(ctx context.Context, env *Env, args string) string {
	if args == "" {
		return "Usage: .describe <table>"
	}
	res := env.Client.Execute(ctx, "DESCRIBE "+args)
	return format.FormatResult(res)
}

func runRefresh(ctx context.Context, env *Env, _ string) string {
	elapsed, err := env.Schema.Load(ctx, env.Client)
	if err != nil {
		return err.Error()
	}
	cache := env.Schema.Get()
	return fmt.Sprintf("Schema cache refreshed: %d tables, %d columns (%s sec)",
		len(cache.Tables), len(cache.AllColumns), format.FormatQueryTime(elapsed.Milliseconds()))
}

func runTiming(_ context.Context, env *Env, _ string) string {
	if env.ToggleTiming == nil {
		return "Timing is only available in an interactive session."
	}
	if env.ToggleTiming() {
		return "Timing is on."
	}
	return "Timing is off."
}

func runClear(_ context.Context, env *Env, _ string) string {
	if env.ClearScreen != nil {
		env.ClearScreen()
	}
	return ""
}
