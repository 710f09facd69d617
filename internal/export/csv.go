// Package export turns a set of registrations for one event into the CSV
// download offered on the admin dashboard. The transform is pure and
// synchronous; handlers stream its output as text/csv.
package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fiifikrampah/grmatl-netlify-sub000/internal/domain/registrations"
)

// CSV renders the registrations with a header of "Submitted At" followed by
// the union of all field keys in first-seen order. Forms evolve per event,
// so rows may have differing field sets; missing fields render as empty
// cells. Keys within a single registration are visited in sorted order to
// keep the column layout deterministic.
func CSV(items []registrations.Registration) string {
	columns := fieldColumns(items)

	var b strings.Builder
	header := make([]string, 0, len(columns)+1)
	header = append(header, quote("Submitted At"))
	for _, column := range columns {
		header = append(header, quote(column))
	}
	b.WriteString(strings.Join(header, ","))
	b.WriteString("\n")

	for _, item := range items {
		row := make([]string, 0, len(columns)+1)
		row = append(row, quote(item.CreatedAt.Format(time.RFC3339)))
		for _, column := range columns {
			value, ok := item.ResponseData[column]
			if !ok {
				row = append(row, quote(""))
				continue
			}
			row = append(row, quote(cell(value)))
		}
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}
	return b.String()
}

func fieldColumns(items []registrations.Registration) []string {
	seen := make(map[string]bool)
	columns := make([]string, 0)
	for _, item := range items {
		keys := make([]string, 0, len(item.ResponseData))
		for key := range item.ResponseData {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}
	return columns
}

// cell serializes one field value: arrays join with "; ", objects serialize
// structurally, scalars coerce to their string form.
func cell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, cell(item))
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// quote wraps a cell in double quotes with internal quotes doubled.
func quote(value string) string {
	return "\"" + strings.ReplaceAll(value, "\"", "\"\"") + "\""
}
