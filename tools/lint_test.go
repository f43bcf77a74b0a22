package tools

import (
	"strings"
	"testing"

	"github.com/riscv5i/rv5i-asm/parser"
)

func TestUnusedLabelsReportsUnreferenced(t *testing.T) {
	symtab := parser.NewSymbolTable()
	pos := parser.Position{Filename: "a.s", Line: 3, Column: 1}
	if err := symtab.Define("dead_code", 2, 3, pos); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	warnings := UnusedLabels(symtab)
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "dead_code") {
		t.Errorf("warning %q does not mention the unused label", warnings[0])
	}
}

func TestUnusedLabelsIgnoresReferenced(t *testing.T) {
	symtab := parser.NewSymbolTable()
	pos := parser.Position{Filename: "a.s", Line: 1, Column: 1}
	if err := symtab.Define("_start", 0, 1, pos); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	symtab.Reference("_start", parser.Position{Filename: "a.s", Line: 5, Column: 1})

	if warnings := UnusedLabels(symtab); len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

func TestUnusedLabelsSortedByLine(t *testing.T) {
	symtab := parser.NewSymbolTable()
	_ = symtab.Define("later", 5, 10, parser.Position{Filename: "a.s", Line: 10, Column: 1})
	_ = symtab.Define("earlier", 1, 2, parser.Position{Filename: "a.s", Line: 2, Column: 1})

	warnings := UnusedLabels(symtab)
	if len(warnings) != 2 {
		t.Fatalf("got %d warnings, want 2", len(warnings))
	}
	if !strings.Contains(warnings[0], "earlier") {
		t.Errorf("expected earlier-declared label first, got %v", warnings)
	}
}
