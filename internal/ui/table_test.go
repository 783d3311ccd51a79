package ui

import (
	"strings"
	"testing"
)

func TestFormatTableNormalizesLineBreaks(t *testing.T) {
	headers := []string{"COL"}
	rows := [][]string{{"Hello\nWorld\r\nAgain\tTab"}}

	got := FormatTable(headers, rows)

	expected := "COL\nHello World Again Tab\n"
	if got != expected {
		t.Fatalf("expected normalized table output, got %q", got)
	}
}

func TestFormatTablePadsColumns(t *testing.T) {
	got := FormatTable([]string{"NAME", "KIND"}, [][]string{{"a", "todo"}, {"longer", "event"}})

	expected := "NAME    KIND\na       todo\nlonger  event\n"
	if got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestTableBuilderAlignRight(t *testing.T) {
	table := NewTableBuilder([]string{"NAME", "N"}, 2).AlignRight(1)
	table.AddRow("a", "1")
	table.AddRow("bb", "10")

	expected := "NAME   N\na      1\nbb    10\n"
	if got := table.String(); got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestDisplayWidthIgnoresANSICodes(t *testing.T) {
	value := "\x1b[1m\x1b[36m" + strings.Repeat("a", 5) + "\x1b[0m"

	if got := displayWidth(value); got != 5 {
		t.Fatalf("expected width 5, got %d", got)
	}
}

func TestDisplayWidthCountsRunes(t *testing.T) {
	if got := displayWidth("[✓] café"); got != 8 {
		t.Fatalf("expected width 8, got %d", got)
	}
}
