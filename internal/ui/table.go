package ui

import "strings"

// TableColumn defines a column in a table
type TableColumn struct {
	Key    string
	Header string
}

// RenderTable renders rows in a unicode box, sizing columns to their content
func RenderTable(columns []TableColumn, rows []map[string]string) string {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = VisibleWidth(col.Header)
		for _, row := range rows {
			if w := VisibleWidth(row[col.Key]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	hLine := func(left, mid, right string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return Muted(left + strings.Join(parts, mid) + right)
	}

	renderRow := func(values []string) string {
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = " " + PadRight(v, widths[i]) + " "
		}
		sep := Muted("│")
		return sep + strings.Join(parts, sep) + sep
	}

	var b strings.Builder
	b.WriteString(hLine("┌", "┬", "┐") + "\n")

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = Heading("%s", col.Header)
	}
	b.WriteString(renderRow(headers) + "\n")
	b.WriteString(hLine("├", "┼", "┤") + "\n")

	for _, row := range rows {
		values := make([]string, len(columns))
		for i, col := range columns {
			values[i] = row[col.Key]
		}
		b.WriteString(renderRow(values) + "\n")
	}
	b.WriteString(hLine("└", "┴", "┘") + "\n")
	return b.String()
}
