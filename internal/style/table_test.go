package style

import (
	"strings"
	"testing"
)

func TestNewTable_Empty(t *testing.T) {
	t.Parallel()
	tbl := NewTable()
	if got := tbl.Render(); got != "" {
		t.Errorf("NewTable().Render() = %q, want empty string", got)
	}
}

func TestNewTable_HeaderOnly(t *testing.T) {
	t.Parallel()
	tbl := NewTable(
		Column{Name: "Class", Width: 12},
		Column{Name: "Count", Width: 5},
	)
	got := tbl.Render()
	if got == "" {
		t.Fatal("expected non-empty output for header-only table")
	}
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	// Header + separator, no data rows.
	if len(lines) != 2 {
		t.Errorf("got %d lines, want 2 (header + separator)", len(lines))
	}
}

func TestNewTable_BasicRender(t *testing.T) {
	t.Parallel()
	tbl := NewTable(
		Column{Name: "Class", Width: 12},
		Column{Name: "Count", Width: 5},
	)
	tbl.AddRow("Glioma", "2")
	tbl.AddRow("Meningioma", "0")

	got := tbl.Render()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	// header + separator + 2 rows = 4 lines
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	row1 := stripAnsi(lines[2])
	if !strings.Contains(row1, "Glioma") || !strings.Contains(row1, "2") {
		t.Errorf("row 1 = %q, want to contain Glioma and 2", row1)
	}
	row2 := stripAnsi(lines[3])
	if !strings.Contains(row2, "Meningioma") {
		t.Errorf("row 2 = %q, want to contain Meningioma", row2)
	}
}

func TestAddRow_PadsShortRows(t *testing.T) {
	t.Parallel()
	tbl := NewTable(
		Column{Name: "A", Width: 5},
		Column{Name: "B", Width: 5},
		Column{Name: "C", Width: 5},
	)
	tbl.AddRow("x") // only 1 value for 3 columns

	got := tbl.Render()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	row := stripAnsi(lines[2])
	if !strings.Contains(row, "x") {
		t.Errorf("row = %q, want to contain 'x'", row)
	}
}

func TestRender_Truncation(t *testing.T) {
	t.Parallel()
	tbl := NewTable(
		Column{Name: "Image", Width: 8},
	)
	tbl.AddRow("scans/patient-0042/axial-t1.jpg")

	got := tbl.Render()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	row := stripAnsi(lines[len(lines)-1])
	if !strings.Contains(row, "...") {
		t.Errorf("truncated row = %q, want to contain '...'", row)
	}
	// Truncation keeps the value at exactly the column width.
	trimmed := strings.TrimSpace(row)
	if len(trimmed) != 8 {
		t.Errorf("truncated value length = %d, want 8", len(trimmed))
	}
}

func TestSetIndent(t *testing.T) {
	t.Parallel()
	tbl := NewTable(
		Column{Name: "Col", Width: 5},
	)
	tbl.SetIndent(">>>>")
	tbl.AddRow("hi")

	got := tbl.Render()
	for _, line := range strings.Split(strings.TrimRight(got, "\n"), "\n") {
		if !strings.HasPrefix(line, ">>>>") {
			t.Errorf("line %q does not start with custom indent '>>>>'", line)
		}
	}
}

func TestSetHeaderSeparator_Disabled(t *testing.T) {
	t.Parallel()
	tbl := NewTable(
		Column{Name: "Col", Width: 10},
	)
	tbl.SetHeaderSeparator(false)
	tbl.AddRow("val")

	got := tbl.Render()
	if strings.Contains(got, "─") {
		t.Errorf("got separator line when disabled: %q", got)
	}
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("got %d lines, want 2 (no separator)", len(lines))
	}
}

func TestPad_Alignments(t *testing.T) {
	t.Parallel()
	tbl := NewTable()
	cases := []struct {
		name  string
		align Align
		want  string
	}{
		{"left", AlignLeft, "hi    "},
		{"right", AlignRight, "    hi"},
		{"center", AlignCenter, "  hi  "},
	}
	for _, tc := range cases {
		if got := tbl.pad("hi", "hi", 6, tc.align); got != tc.want {
			t.Errorf("pad(%s) = %q, want %q", tc.name, got, tc.want)
		}
	}
	if got := tbl.pad("hello", "hello", 5, AlignLeft); got != "hello" {
		t.Errorf("pad(exact width) = %q, want %q", got, "hello")
	}
}

func TestRightAlignedColumn(t *testing.T) {
	t.Parallel()
	tbl := NewTable(
		Column{Name: "Count", Width: 5, Align: AlignRight},
	)
	tbl.AddRow("7")

	got := tbl.Render()
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	row := stripAnsi(lines[len(lines)-1])
	if !strings.HasSuffix(row, "    7") {
		t.Errorf("right-aligned row = %q, want value flush right", row)
	}
}

func TestStripAnsi(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"bold", "\x1b[1mhello\x1b[0m", "hello"},
		{"color", "\x1b[31mred\x1b[0m", "red"},
		{"multiple", "\x1b[1m\x1b[31mtext\x1b[0m", "text"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := stripAnsi(tt.input)
			if got != tt.want {
				t.Errorf("stripAnsi(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
