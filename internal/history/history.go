// Package history persists submitted statements across sessions.
// The log is a flat newline-delimited file, loaded in full at startup and
// overwritten wholesale at shutdown, truncated to the most recent entries.
package history

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/chatch/forge-fsql/internal/xdg"
)

// DefaultMax is the number of entries kept across sessions.
const DefaultMax = 1000

// History is an ordered, bounded log of submitted statements,
// most-recent-last.
type History struct {
	path    string
	max     int
	entries []string
}

// DefaultPath returns the per-user history file location.
func DefaultPath() (string, error) {
	dir, err := xdg.StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history"), nil
}

// Open loads the history file at path, keeping at most max entries.
// A missing file yields an empty history, not an error.
func Open(path string, max int) (*History, error) {
	if max <= 0 {
		max = DefaultMax
	}
	h := &History{path: path, max: max}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return h, nil
		}
		return nil, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.entries = append(h.entries, line)
	}
	h.truncate()
	return h, nil
}

// Add appends a statement. Multiline statements are flattened to one line.
// Empty input and exact repeats of the immediately preceding entry are
// dropped; earlier duplicates are kept.
func (h *History) Add(stmt string) {
	flat := strings.TrimSpace(strings.ReplaceAll(stmt, "\n", " "))
	if flat == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == flat {
		return
	}
	h.entries = append(h.entries, flat)
	h.truncate()
}

// Entries returns the log in order, most-recent-last.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Save overwrites the history file with the current entries.
func (h *History) Save() error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0o700); err != nil {
		return err
	}
	var b strings.Builder
	for _, e := range h.entries {
		b.WriteString(e)
		b.WriteString("\n")
	}
	return os.WriteFile(h.path, []byte(b.String()), 0o600)
}

// truncate keeps only the most recent max entries.
func (h *History) truncate() {
	if len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}
}
