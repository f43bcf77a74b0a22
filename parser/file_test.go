package parser

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "program.s")
	content := "addi x1, x2, 3\nsrl x1, x2, x3\r\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	lines, err := ReadLines(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"addi x1, x2, 3", "srl x1, x2, x3"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestReadLinesMissingFile(t *testing.T) {
	if _, err := ReadLines("/nonexistent/path/program.s"); err == nil {
		t.Fatal("expected error for missing input source")
	}
}

func TestReadLinesRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadLines(dir); err == nil {
		t.Fatal("expected error for non-regular input source")
	}
}
