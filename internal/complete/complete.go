// Package complete implements context-aware autocompletion for the
// interactive session. Candidates come from the command registry and the
// schema cache; the engine never touches the session's input buffer.
package complete

import (
	"strings"

	"github.com/chatch/forge-fsql/internal/command"
	"github.com/chatch/forge-fsql/internal/schema"
)

// tableContextKeywords are the SQL keywords after which the next token is
// a table name.
var tableContextKeywords = map[string]bool{
	"FROM":   true,
	"JOIN":   true,
	"INTO":   true,
	"UPDATE": true,
	"TABLE":  true,
}

// Completer proposes completions for a partial input line.
type Completer struct {
	schema   *schema.Store
	registry *command.Registry
}

// New creates a completer over the given schema store and command registry.
func New(store *schema.Store, registry *command.Registry) *Completer {
	return &Completer{schema: store, registry: registry}
}

// Complete returns the candidate strings for the line typed so far, along
// with the substring of the line the candidates would replace.
//
// Rules, first match wins: empty input completes to nothing; dot-prefixed
// input completes command names; a token containing "." completes
// table-qualified columns; a token after FROM/JOIN/INTO/UPDATE/TABLE
// completes table names; anything else completes the union of table and
// column names. All matching is case-insensitive; candidates keep their
// cached casing.
func (c *Completer) Complete(line string) ([]string, string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, ""
	}

	if strings.HasPrefix(trimmed, ".") {
		return c.completeCommands(trimmed), trimmed
	}

	tokens := strings.Fields(trimmed)
	last := tokens[len(tokens)-1]

	if strings.Contains(last, ".") {
		return c.completeQualified(last), last
	}

	if len(tokens) >= 2 {
		prev := strings.ToUpper(tokens[len(tokens)-2])
		if tableContextKeywords[prev] {
			return c.completeTables(last), last
		}
	}

	return c.completeDefault(last), last
}

// completeCommands matches registry names against a dot-prefixed prefix.
func (c *Completer) completeCommands(prefix string) []string {
	var out []string
	for _, name := range c.registry.Names() {
		if hasPrefixFold(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

// completeQualified handles table.column fragments. The text before the
// last dot must name a cached table (case-insensitive, exact); candidates
// are its columns, prefixed with the table text exactly as typed. An
// unknown table yields no candidates.
func (c *Completer) completeQualified(token string) []string {
	idx := strings.LastIndex(token, ".")
	tablePart := token[:idx]
	colPrefix := token[idx+1:]

	cache := c.schema.Get()
	var columns []string
	for _, table := range cache.Tables {
		if strings.EqualFold(table, tablePart) {
			columns = cache.ColumnsFor(table)
			break
		}
	}
	if columns == nil {
		return nil
	}

	var out []string
	for _, col := range columns {
		if hasPrefixFold(col, colPrefix) {
			out = append(out, tablePart+"."+col)
		}
	}
	return out
}

// completeTables matches cached table names against a prefix.
func (c *Completer) completeTables(prefix string) []string {
	var out []string
	for _, table := range c.schema.Get().Tables {
		if hasPrefixFold(table, prefix) {
			out = append(out, table)
		}
	}
	return out
}

// completeDefault matches the union of table names and distinct column
// names, deduplicated as a set, merged and unranked.
func (c *Completer) completeDefault(prefix string) []string {
	cache := c.schema.Get()
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}
	for _, table := range cache.Tables {
		if hasPrefixFold(table, prefix) {
			add(table)
		}
	}
	for _, col := range cache.AllColumns {
		if hasPrefixFold(col, prefix) {
			add(col)
		}
	}
	return out
}

// hasPrefixFold reports whether s starts with prefix, ignoring case.
func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
