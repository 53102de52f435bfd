package output

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table renders objects as a markdown table. Columns are the union of the
// objects' keys, in the order they are first seen; each object contributes its
// keys in sorted order. Missing keys leave the cell empty.
func Table(objects []map[string]any) string {
	if len(objects) == 0 {
		return ""
	}

	var headers []string
	seen := make(map[string]bool)
	for _, obj := range objects {
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}

	rows := make([][]string, len(objects))
	for i, obj := range objects {
		row := make([]string, len(headers))
		for j, k := range headers {
			if v, ok := obj[k]; ok {
				row[j] = Cell(v)
			}
		}
		rows[i] = row
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		StyleFunc(func(row, col int) lipgloss.Style { return cell }).
		Headers(headers...).
		Rows(rows...)
	return t.String()
}

// WriteTable renders values, which must all be JSON objects, as a markdown
// table on w.
func WriteTable(w io.Writer, values []any) error {
	objects := make([]map[string]any, 0, len(values))
	for i, v := range values {
		obj, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("value %d: table rows must be JSON objects, got %s", i+1, describe(v))
		}
		objects = append(objects, obj)
	}

	out := Table(objects)
	if out == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

// Cell renders one JSON value for a table cell. Null is empty, arrays are
// joined with dots, objects collapse to <object>, and pipes in strings are
// escaped.
func Cell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return strings.ReplaceAll(v, "|", `\|`)
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = Cell(e)
		}
		return strings.Join(parts, ".")
	case map[string]any:
		return "<object>"
	default:
		return fmt.Sprint(v)
	}
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
