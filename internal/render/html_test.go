package render

import (
	"strings"
	"testing"
)

func TestHTML_Heading(t *testing.T) {
	out, err := HTML("# Title\n\nbody text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<h1>Title</h1>") {
		t.Fatalf("expected h1 in output, got %q", out)
	}
	if !strings.Contains(out, "<p>body text</p>") {
		t.Fatalf("expected paragraph in output, got %q", out)
	}
}

func TestHTML_PipeTable(t *testing.T) {
	table := "| A | B |\n|---|---|\n| 1 | 2 |\n"
	out, err := HTML(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Fatalf("expected table element, got %q", out)
	}
	if !strings.Contains(out, "<td>1</td>") {
		t.Fatalf("expected table cell, got %q", out)
	}
}

func TestHTML_Empty(t *testing.T) {
	out, err := HTML("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}
