package ui

import (
	"strings"
	"unicode/utf8"
)

// TableBuilder collects rows and renders an aligned table.
type TableBuilder struct {
	headers    []string
	rows       [][]string
	rightAlign map[int]bool
}

// NewTableBuilder returns a builder with preallocated rows.
func NewTableBuilder(headers []string, capacity int) *TableBuilder {
	return &TableBuilder{
		headers:    headers,
		rows:       make([][]string, 0, capacity),
		rightAlign: map[int]bool{},
	}
}

// AlignRight pads the given column on the left, for numbers.
func (builder *TableBuilder) AlignRight(column int) *TableBuilder {
	builder.rightAlign[column] = true
	return builder
}

// AddRow appends a row to the table.
func (builder *TableBuilder) AddRow(row ...string) {
	builder.rows = append(builder.rows, row)
}

// String renders the table output.
func (builder *TableBuilder) String() string {
	return formatTable(builder.headers, builder.rows, builder.rightAlign)
}

// FormatTable renders headers and rows as a left-aligned table.
func FormatTable(headers []string, rows [][]string) string {
	return formatTable(headers, rows, nil)
}

func formatTable(headers []string, rows [][]string, rightAlign map[int]bool) string {
	all := make([][]string, 0, len(rows)+1)
	all = append(all, normalizeRow(headers))
	for _, row := range rows {
		all = append(all, normalizeRow(row))
	}

	widths := make([]int, len(headers))
	for _, row := range all {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var builder strings.Builder
	for _, row := range all {
		for i, cell := range row {
			padding := 0
			if i < len(widths) {
				padding = widths[i] - displayWidth(cell)
			}
			last := i == len(row)-1
			switch {
			case rightAlign[i]:
				builder.WriteString(strings.Repeat(" ", padding))
				builder.WriteString(cell)
			case last:
				builder.WriteString(cell)
			default:
				builder.WriteString(cell)
				builder.WriteString(strings.Repeat(" ", padding))
			}
			if !last {
				builder.WriteString("  ")
			}
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

func normalizeRow(row []string) []string {
	normalized := make([]string, len(row))
	for i, cell := range row {
		normalized[i] = normalizeTableCell(cell)
	}
	return normalized
}

func displayWidth(value string) int {
	return utf8.RuneCountInString(stripANSICodes(value))
}

func normalizeTableCell(value string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(value)
}

func stripANSICodes(input string) string {
	var builder strings.Builder
	inEscape := false
	for i := 0; i < len(input); i++ {
		char := input[i]
		if inEscape {
			if char == 'm' {
				inEscape = false
			}
			continue
		}
		if char == '\x1b' {
			inEscape = true
			continue
		}
		builder.WriteByte(char)
	}
	return builder.String()
}
