package encoder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riscv5i/rv5i-asm/parser"
)

func encodeLine(t *testing.T, line string, symtab *parser.SymbolTable, startOfMemory, currentByteAddr int64) uint32 {
	t.Helper()
	tokens := parser.Tokenize(line)
	word, err := EncodeInstruction(tokens, symtab, startOfMemory, currentByteAddr, parser.Position{Filename: "a.s", Line: 1, Column: 1}, line)
	require.NoError(t, err)
	return word
}

// TestGoldenScenarios exercises every single-instruction golden vector
// from the testable-properties suite.
func TestGoldenScenarios(t *testing.T) {
	symtab := parser.NewSymbolTable()
	cases := []struct {
		line string
		want uint32
	}{
		{"addi x1, x2, 3", 0x00310093},
		{"srl x1, x2, x3", 0x003150b3},
		{"sw x1, 3(x2)", 0x001121a3},
		{"lui x1, 3", 0x000030b7},
		{"lw x1, 3(x2)", 0x00312083},
	}
	for _, c := range cases {
		got := encodeLine(t, c.line, symtab, 0, 0)
		require.Equalf(t, c.want, got, "%s", c.line)
	}
}

// TestBackwardBranchProgram exercises the two-line _start/jal scenario:
// the jal instruction branches back to the prior instruction at index 0,
// an offset of -4 bytes.
func TestBackwardBranchProgram(t *testing.T) {
	symtab := parser.NewSymbolTable()
	require.NoError(t, symtab.Define("_start", 0, 1, parser.Position{Filename: "a.s", Line: 1, Column: 1}))

	first := encodeLine(t, "addi x1, x0, 1", symtab, 0, 0)
	require.Equal(t, uint32(0x00100093), first)

	second := encodeLine(t, "jal x1, _start", symtab, 0, 4)
	require.Equal(t, uint32(0xFFDFF0EF), second)

	lbl, ok := symtab.Lookup("_start")
	require.True(t, ok)
	require.Len(t, lbl.References, 1)
}

func TestUnknownMnemonic(t *testing.T) {
	symtab := parser.NewSymbolTable()
	_, err := EncodeInstruction([]string{"frobnicate", "x1"}, symtab, 0, 0, parser.Position{}, "frobnicate x1")
	require.Error(t, err)
	encErr, ok := err.(*EncodingError)
	require.True(t, ok)
	require.Equal(t, UnknownMnemonic, encErr.Kind)
}

func TestUndefinedLabelAsTarget(t *testing.T) {
	symtab := parser.NewSymbolTable()
	_, err := EncodeInstruction([]string{"jal", "x1", "nowhere"}, symtab, 0, 0, parser.Position{}, "jal x1, nowhere")
	require.Error(t, err)
}
