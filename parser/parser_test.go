package parser

import "testing"

func TestHarvestLabelsSimpleProgram(t *testing.T) {
	lines := []string{
		"_start:",
		"    addi x1, x0, 1",
		"    jal  x1, _start",
	}
	symtab, err := HarvestLabels(lines, "a.s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lbl, ok := symtab.Lookup("_start")
	if !ok {
		t.Fatal("expected _start to be declared")
	}
	if lbl.InstructionIndex != 0 {
		t.Errorf("InstructionIndex = %d, want 0", lbl.InstructionIndex)
	}
}

func TestHarvestLabelsCountsPseudoExpansion(t *testing.T) {
	lines := []string{
		"li x5, 0x00000FFF", // expands to 2 words
		"target:",
		"    nop",
	}
	symtab, err := HarvestLabels(lines, "a.s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lbl, ok := symtab.Lookup("target")
	if !ok {
		t.Fatal("expected target to be declared")
	}
	if lbl.InstructionIndex != 2 {
		t.Errorf("InstructionIndex = %d, want 2 (li must count as two words)", lbl.InstructionIndex)
	}
}

func TestHarvestLabelsRejectsDuplicate(t *testing.T) {
	lines := []string{
		"loop:",
		"    nop",
		"loop:",
		"    nop",
	}
	_, err := HarvestLabels(lines, "a.s")
	if err == nil {
		t.Fatal("expected duplicate label error")
	}
	errs, ok := err.(*ErrorList)
	if !ok {
		t.Fatalf("error is %T, want *ErrorList", err)
	}
	if len(errs.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(errs.Errors))
	}
	if errs.Errors[0].Kind != ErrorDuplicateLabel {
		t.Errorf("Kind = %v, want ErrorDuplicateLabel", errs.Errors[0].Kind)
	}
}

func TestHarvestLabelsCollectsEveryDuplicateInOnePass(t *testing.T) {
	lines := []string{
		"loop:",
		"    nop",
		"loop:",
		"    nop",
		"loop:",
		"    nop",
	}
	_, err := HarvestLabels(lines, "a.s")
	errs, ok := err.(*ErrorList)
	if !ok {
		t.Fatalf("error is %T, want *ErrorList", err)
	}
	if len(errs.Errors) != 2 {
		t.Fatalf("got %d errors, want 2 (one per redeclaration)", len(errs.Errors))
	}
}

func TestHarvestLabelsIgnoresCommentsAndDirectives(t *testing.T) {
	lines := []string{
		"# a comment",
		".text",
		"start:",
		"    nop",
	}
	symtab, err := HarvestLabels(lines, "a.s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lbl, ok := symtab.Lookup("start")
	if !ok || lbl.InstructionIndex != 0 {
		t.Fatalf("got %+v, ok=%v", lbl, ok)
	}
}
