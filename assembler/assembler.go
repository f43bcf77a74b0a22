// Package assembler is the two-pass driver: it bundles the options that
// used to be process-wide globals in the source this was ported from
// into a single Context value, threads that value explicitly through
// pass one and pass two, and owns the strict temporal separation between
// them (the label harvester must finish before the instruction
// dispatcher starts).
package assembler

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/riscv5i/rv5i-asm/encoder"
	"github.com/riscv5i/rv5i-asm/parser"
	"github.com/riscv5i/rv5i-asm/tools"
	"github.com/riscv5i/rv5i-asm/writer"
)

// Context bundles the options spec.md's external CLI collaborator
// supplies, replacing the global variables a naive single-file port
// would otherwise carry for options, the symbol table, the running
// instruction index, and the output sink.
type Context struct {
	StartOfMemory int64
	Verbose       bool
	Trace         io.Writer // diagnostics stream for -verbose tracing and lint warnings
}

// NewContext validates and builds a Context. A negative or non-4-aligned
// startOfMemory is rejected here, before pass one ever runs, rather than
// silently accepted the way the original tool accepted it.
func NewContext(startOfMemory int64, verbose bool, trace io.Writer) (*Context, error) {
	if startOfMemory < 0 {
		return nil, fmt.Errorf("startOfMemory must be non-negative, got %d", startOfMemory)
	}
	if startOfMemory%4 != 0 {
		return nil, fmt.Errorf("startOfMemory must be a multiple of 4, got %d", startOfMemory)
	}
	return &Context{StartOfMemory: startOfMemory, Verbose: verbose, Trace: trace}, nil
}

// InstructionAddress translates an instruction index into its byte
// address, per the address model startOfMemory + 4*index.
func (c *Context) InstructionAddress(instructionIndex int64) int64 {
	return c.StartOfMemory + 4*instructionIndex
}

// Assemble runs both passes over lines and writes one encoded word per
// emitted instruction to sink, in order. The first encoding error aborts
// immediately: there is no partial-output recovery, matching spec.md's
// "no deferred error aggregation" error model.
func Assemble(ctx *Context, lines []string, filename string, sink writer.Sink) error {
	symtab, err := parser.HarvestLabels(lines, filename)
	if err != nil {
		return errors.Wrap(err, "label harvester")
	}

	var instructionIndex int64
	for i, line := range lines {
		lineNumber := i + 1
		tokens := parser.Tokenize(line)
		classified := parser.Classify(tokens)

		switch classified.Kind {
		case parser.LineEmpty, parser.LineComment, parser.LineDirective, parser.LineLabelOnly:
			continue
		}

		pos := parser.Position{Filename: filename, Line: lineNumber, Column: 1}
		expanded, err := parser.ExpandLine(classified.Rest)
		if err != nil {
			return errors.Wrapf(err, "%s", pos)
		}

		for _, realTokens := range expanded {
			currentByteAddr := ctx.InstructionAddress(instructionIndex)
			word, err := encoder.EncodeInstruction(realTokens, symtab, ctx.StartOfMemory, currentByteAddr, pos, line)
			if err != nil {
				return err
			}
			if ctx.Verbose && ctx.Trace != nil {
				fmt.Fprintf(ctx.Trace, "%s: %s -> 0x%08x\n", pos, line, word)
			}
			if err := sink.WriteWord(word); err != nil {
				return errors.Wrap(err, "output sink unopenable")
			}
			instructionIndex++
		}
	}

	if ctx.Verbose && ctx.Trace != nil {
		for _, warning := range tools.UnusedLabels(symtab) {
			fmt.Fprintln(ctx.Trace, warning)
		}
	}

	return nil
}
