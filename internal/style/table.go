package style

import (
	"regexp"
	"strings"
)

// Align controls horizontal cell alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Column describes one table column.
type Column struct {
	Name  string
	Width int
	Align Align
}

// Table renders fixed-width column output with a dimmed header row.
// Values longer than the column width are truncated with an ellipsis.
type Table struct {
	cols      []Column
	rows      [][]string
	indent    string
	separator bool
}

// NewTable creates a table with the given columns.
func NewTable(cols ...Column) *Table {
	return &Table{
		cols:      cols,
		indent:    "  ",
		separator: true,
	}
}

// SetIndent replaces the per-line indent (default two spaces).
func (t *Table) SetIndent(indent string) {
	t.indent = indent
}

// SetHeaderSeparator toggles the rule under the header (default on).
func (t *Table) SetHeaderSeparator(enabled bool) {
	t.separator = enabled
}

// AddRow appends one row. Missing trailing values render as empty cells.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.cols))
	copy(row, values)
	t.rows = append(t.rows, row)
}

// Render returns the formatted table, one trailing newline per line.
// A table with no columns renders as the empty string.
func (t *Table) Render() string {
	if len(t.cols) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(t.indent)
	for i, col := range t.cols {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(Dim.Render(t.pad(col.Name, col.Name, col.Width, col.Align)))
	}
	b.WriteString("\n")

	if t.separator {
		b.WriteString(t.indent)
		total := 0
		for i, col := range t.cols {
			if i > 0 {
				total += 2
			}
			total += col.Width
		}
		b.WriteString(Dim.Render(strings.Repeat("─", total)))
		b.WriteString("\n")
	}

	for _, row := range t.rows {
		b.WriteString(t.indent)
		for i, col := range t.cols {
			if i > 0 {
				b.WriteString("  ")
			}
			cell := row[i]
			plain := stripAnsi(cell)
			if len(plain) > col.Width {
				// Styled cells are truncated on their plain text; any
				// escape sequences are dropped with the tail.
				if col.Width > 3 {
					plain = plain[:col.Width-3] + "..."
				} else {
					plain = plain[:col.Width]
				}
				cell = plain
			}
			b.WriteString(t.pad(plain, cell, col.Width, col.Align))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// pad aligns rendered within width, measuring by the plain (unstyled)
// text so ANSI escapes do not skew the padding.
func (t *Table) pad(plain, rendered string, width int, align Align) string {
	gap := width - len(plain)
	if gap <= 0 {
		return rendered
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", gap) + rendered
	case AlignCenter:
		left := gap / 2
		right := gap - left
		return strings.Repeat(" ", left) + rendered + strings.Repeat(" ", right)
	default:
		return rendered + strings.Repeat(" ", gap)
	}
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripAnsi removes ANSI escape sequences.
func stripAnsi(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}
