// Package schema maintains a cached snapshot of table and column metadata
// used by the completion engine and the administrative commands.
//
// The cache is generational: each load builds a complete new snapshot from
// one metadata query and installs it with a single pointer swap. Readers
// never see a partially built generation, and a failed load leaves the
// previous generation untouched.
package schema

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/chatch/forge-fsql/internal/client"
)

// metadataQuery returns (table_name, column_name) pairs ordered by table
// then column position. Key casing varies between backends; both forms are
// accepted at decode time.
const metadataQuery = `SELECT TABLE_NAME, COLUMN_NAME
FROM information_schema.columns
WHERE table_schema = DATABASE()
ORDER BY TABLE_NAME, ORDINAL_POSITION`

// Executor is the slice of the remote query client the cache needs.
type Executor interface {
	Execute(ctx context.Context, sqlText string) *client.QueryResult
}

// Cache is one immutable generation of schema metadata.
type Cache struct {
	// Tables holds table names in first-seen order, deduplicated.
	Tables []string
	// Columns maps table name to its column names in first-seen order.
	Columns map[string][]string
	// AllColumns holds distinct column names across all tables, first-seen order.
	AllColumns []string
}

// emptyCache is the zero generation installed at startup.
func emptyCache() *Cache {
	return &Cache{Columns: make(map[string][]string)}
}

// ColumnsFor returns the cached columns for a table, or nil when unknown.
func (c *Cache) ColumnsFor(table string) []string {
	return c.Columns[table]
}

// Store owns the current cache generation. Single writer (refresh),
// many readers (completion); a load in progress never blocks readers.
type Store struct {
	cache atomic.Pointer[Cache]
}

// NewStore creates a store holding an empty cache.
func NewStore() *Store {
	s := &Store{}
	s.cache.Store(emptyCache())
	return s
}

// Get returns the current cache generation. Never nil, never blocks,
// never triggers a load.
func (s *Store) Get() *Cache {
	return s.cache.Load()
}

// Load rebuilds the cache from one metadata query and installs it
// wholesale, returning the elapsed load time. On failure the previous
// generation stays readable and an error describing the failure is
// returned for display.
func (s *Store) Load(ctx context.Context, exec Executor) (time.Duration, error) {
	start := time.Now()

	res := exec.Execute(ctx, metadataQuery)
	if res.Error != "" {
		return time.Since(start), fmt.Errorf("schema load failed: %s", res.Error)
	}

	next := emptyCache()
	seenTables := make(map[string]bool)
	seenColumns := make(map[string]bool)
	seenPerTable := make(map[string]map[string]bool)

	for _, row := range res.Rows {
		table, column, ok := normalizePair(row)
		if !ok {
			continue
		}
		if !seenTables[table] {
			seenTables[table] = true
			next.Tables = append(next.Tables, table)
			seenPerTable[table] = make(map[string]bool)
		}
		if !seenPerTable[table][column] {
			seenPerTable[table][column] = true
			next.Columns[table] = append(next.Columns[table], column)
		}
		if !seenColumns[column] {
			seenColumns[column] = true
			next.AllColumns = append(next.AllColumns, column)
		}
	}

	s.cache.Store(next)
	return time.Since(start), nil
}

// normalizePair extracts the table and column name from one metadata row,
// accepting either lower- or upper-case key names. This is the only place
// the casing ambiguity is resolved. Pairs missing either field are skipped.
func normalizePair(row client.Row) (table, column string, ok bool) {
	table, ok = stringField(row, "table_name", "TABLE_NAME")
	if !ok {
		return "", "", false
	}
	column, ok = stringField(row, "column_name", "COLUMN_NAME")
	if !ok {
		return "", "", false
	}
	return table, column, true
}

// stringField returns the first present, non-empty string value among keys.
func stringField(row client.Row, keys ...string) (string, bool) {
	for _, key := range keys {
		v, present := row.Get(key)
		if !present {
			continue
		}
		s, isString := v.(string)
		if isString && s != "" {
			return s, true
		}
	}
	return "", false
}
