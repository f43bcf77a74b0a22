package parser

import (
	"reflect"
	"testing"
)

func TestParseImmediateDecimal(t *testing.T) {
	v, err := ParseImmediate("3")
	if err != nil || v != 3 {
		t.Fatalf("got %d, %v", v, err)
	}
}

func TestParseImmediateNegative(t *testing.T) {
	v, err := ParseImmediate("-4")
	if err != nil || v != -4 {
		t.Fatalf("got %d, %v", v, err)
	}
}

func TestParseImmediateHex(t *testing.T) {
	v, err := ParseImmediate("0x00000FFF")
	if err != nil || v != 0xFFF {
		t.Fatalf("got %d, %v", v, err)
	}
}

func TestParseImmediateBinary(t *testing.T) {
	v, err := ParseImmediate("0b1010")
	if err != nil || v != 10 {
		t.Fatalf("got %d, %v", v, err)
	}
}

func TestParseImmediateInvalid(t *testing.T) {
	if _, err := ParseImmediate("not-a-number"); err == nil {
		t.Fatal("expected error")
	}
}

func TestExpandLineRealInstructionPassesThrough(t *testing.T) {
	tokens := []string{"addi", "x1", "x2", "3"}
	got, err := ExpandLine(tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{tokens}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpandLineMv(t *testing.T) {
	got, err := ExpandLine([]string{"mv", "x1", "x2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"addi", "x1", "x2", "0"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpandLineJr(t *testing.T) {
	got, err := ExpandLine([]string{"jr", "x1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{{"jalr", "x0", "0", "x1"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpandLineNop(t *testing.T) {
	for _, mnemonic := range []string{"nop", "noop"} {
		got, err := ExpandLine([]string{mnemonic})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := [][]string{{"addi", "x0", "x0", "0"}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: got %v, want %v", mnemonic, got, want)
		}
	}
}

// TestExpandLineLi exercises the concrete scenario from the golden test
// suite: li x5, 0x00000FFF must emit a lui with the upper-immediate
// wrapped to -1 (0xFFFFF once encoded) and an addi of 0xFFF, since bit 11
// of 0xFFF is set.
func TestExpandLineLi(t *testing.T) {
	got, err := ExpandLine([]string{"li", "x5", "0x00000FFF"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{
		{"lui", "x5", "-1"},
		{"addi", "x5", "x5", "4095"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExpandLineLiNoWrap(t *testing.T) {
	got, err := ExpandLine([]string{"li", "x5", "4096"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]string{
		{"lui", "x5", "1"},
		{"addi", "x5", "x5", "0"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
