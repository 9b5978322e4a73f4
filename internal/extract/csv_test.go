package extract

import (
	"strings"
	"testing"
)

func TestCSVExtractor_PipeTable(t *testing.T) {
	input := "Region,Q1,Q2\nNorth,100,150\nSouth,90,120\n"
	res, err := (&CSVExtractor{}).Extract(strings.NewReader(input), "sales.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimRight(res.Markdown, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 table lines, got %d: %q", len(lines), res.Markdown)
	}
	if lines[0] != "| Region | Q1 | Q2 |" {
		t.Fatalf("unexpected header row: %q", lines[0])
	}
	if lines[1] != "|---|---|---|" {
		t.Fatalf("unexpected separator row: %q", lines[1])
	}
	if lines[2] != "| North | 100 | 150 |" {
		t.Fatalf("unexpected data row: %q", lines[2])
	}
}

func TestCSVExtractor_PreExtractedTable(t *testing.T) {
	input := "Region,Q1,Q2\nNorth,100,150\nSouth,90,120\n"
	res, err := (&CSVExtractor{}).Extract(strings.NewReader(input), "sales.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Tables) != 1 {
		t.Fatalf("expected 1 pre-extracted table, got %d", len(res.Tables))
	}
	tab := res.Tables[0]
	if tab.ID != "tab_1" {
		t.Fatalf("expected ID tab_1, got %s", tab.ID)
	}
	if tab.RowCount != 3 {
		t.Fatalf("expected row count 3, got %d", tab.RowCount)
	}
	if tab.ColCount != 3 {
		t.Fatalf("expected col count 3, got %d", tab.ColCount)
	}
	if tab.Source != "csv" {
		t.Fatalf("expected source csv, got %s", tab.Source)
	}
	if !tab.HasHeader {
		t.Fatal("expected HasHeader true")
	}
	if tab.Markdown != res.Markdown {
		t.Fatal("expected table markdown to match result markdown")
	}
}

func TestCSVExtractor_RaggedRows(t *testing.T) {
	input := "a,b,c\n1,2\n3,4,5,6\n"
	res, err := (&CSVExtractor{}).Extract(strings.NewReader(input), "ragged.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimRight(res.Markdown, "\n"), "\n")
	// Every row is padded or truncated to the header width.
	for _, line := range lines {
		if got := strings.Count(line, "|"); got != 4 {
			t.Fatalf("expected 4 pipes in %q, got %d", line, got)
		}
	}
}

func TestCSVExtractor_EscapesPipes(t *testing.T) {
	input := "name,desc\nx,\"a|b\"\n"
	res, err := (&CSVExtractor{}).Extract(strings.NewReader(input), "pipes.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Markdown, `a\|b`) {
		t.Fatalf("expected escaped pipe in output, got %q", res.Markdown)
	}
}

func TestCSVExtractor_Empty(t *testing.T) {
	res, err := (&CSVExtractor{}).Extract(strings.NewReader(""), "empty.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Markdown != "" {
		t.Fatalf("expected empty markdown, got %q", res.Markdown)
	}
	if len(res.Tables) != 0 {
		t.Fatalf("expected no tables, got %d", len(res.Tables))
	}
}
