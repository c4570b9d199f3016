// Package format renders query results for the terminal.
// The precedence rule is absolute: an error result renders only the error,
// no matter what else the result object carries.
package format

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/chatch/forge-fsql/internal/client"
)

// FormatResult renders a QueryResult as terminal text.
//
// Precedence: error, then rows, then affected-row count, then a generic
// success message. Rows render as a table with a header taken from the
// first row's columns and a row-count footer.
func FormatResult(res *client.QueryResult) string {
	if res == nil {
		return successMessage()
	}
	if res.Error != "" {
		return pterm.FgRed.Sprint("Error: " + res.Error)
	}
	if res.HasRows() {
		return formatRows(res.Rows)
	}
	if res.AffectedRows != nil {
		n := *res.AffectedRows
		return fmt.Sprintf("%d %s affected", n, plural(n, "row", "rows"))
	}
	return successMessage()
}

// formatRows renders a row set as a table with a count footer.
func formatRows(rows []client.Row) string {
	if len(rows) == 0 {
		return "(0 rows)"
	}

	columns := rows[0].Columns()
	data := pterm.TableData{columns}
	for _, row := range rows {
		line := make([]string, len(columns))
		for i, col := range columns {
			v, ok := row.Get(col)
			if !ok {
				line[i] = "NULL"
				continue
			}
			line[i] = FormatValue(v)
		}
		data = append(data, line)
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// Degraded rendering; keeps the result readable.
		var b strings.Builder
		for _, line := range data {
			b.WriteString(strings.Join(line, "\t"))
			b.WriteString("\n")
		}
		table = strings.TrimRight(b.String(), "\n")
	}

	n := int64(len(rows))
	return fmt.Sprintf("%s\n(%d %s)", table, n, plural(n, "row", "rows"))
}

// FormatValue converts a single cell value to display text.
// NULL and absent values render as "NULL"; booleans as "true"/"false";
// numbers as their numeric string; everything else through string conversion.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case json.Number:
		return val.String()
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// FormatQueryTime converts elapsed milliseconds to seconds with exactly
// three decimal places, e.g. 1500 -> "1.500" and 42 -> "0.042".
func FormatQueryTime(ms int64) string {
	return fmt.Sprintf("%.3f", float64(ms)/1000.0)
}

func successMessage() string {
	return pterm.FgGreen.Sprint("OK")
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
