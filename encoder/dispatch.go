// Package encoder implements the instruction dispatcher and format
// encoders: given a tokenized, already-classified instruction line, it
// selects a mnemonic table entry, arranges operands into the format's
// canonical field order, and produces the resulting 32-bit word.
package encoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/riscv5i/rv5i-asm/parser"
)

type format int

const (
	formatI format = iota
	formatR
	formatS
	formatB
	formatU
	formatJ
)

// mnemonicEntry fixes the opcode/funct3/funct7 constants and operand
// arrangement for one real (non-pseudo) mnemonic. The operand order in
// source is always left as the author wrote it; loadStyle and
// fixedImm mark the two arrangements that need rearranging before
// they reach the generic format encoders.
type mnemonicEntry struct {
	format          format
	opcode          uint32
	funct3          uint32
	funct7          uint32
	immHighOverride int64
	loadStyle       bool // operands are [rd, imm, rs1] instead of [rd, rs1, imm]
	fixedImm        *int64
}

var mnemonicTable = map[string]mnemonicEntry{
	// I-type arithmetic: [rd, rs1, imm]
	"addi":  {format: formatI, opcode: 0x13, funct3: 0x0, immHighOverride: noOverride},
	"xori":  {format: formatI, opcode: 0x13, funct3: 0x4, immHighOverride: noOverride},
	"ori":   {format: formatI, opcode: 0x13, funct3: 0x6, immHighOverride: noOverride},
	"andi":  {format: formatI, opcode: 0x13, funct3: 0x7, immHighOverride: noOverride},
	"slti":  {format: formatI, opcode: 0x13, funct3: 0x2, immHighOverride: noOverride},
	"sltiu": {format: formatI, opcode: 0x13, funct3: 0x3, immHighOverride: noOverride},
	"slli":  {format: formatI, opcode: 0x13, funct3: 0x1, immHighOverride: 0x00},
	"srli":  {format: formatI, opcode: 0x13, funct3: 0x5, immHighOverride: 0x00},
	"srai":  {format: formatI, opcode: 0x13, funct3: 0x5, immHighOverride: 0x20},

	// I-type, load-style operand order: [rd, imm, rs1]
	"jalr": {format: formatI, opcode: 0x67, funct3: 0x0, immHighOverride: noOverride, loadStyle: true},
	"lw":   {format: formatI, opcode: 0x03, funct3: 0x2, immHighOverride: noOverride, loadStyle: true},
	"lh":   {format: formatI, opcode: 0x03, funct3: 0x1, immHighOverride: noOverride, loadStyle: true},
	"lb":   {format: formatI, opcode: 0x03, funct3: 0x0, immHighOverride: noOverride, loadStyle: true},
	"lbu":  {format: formatI, opcode: 0x03, funct3: 0x4, immHighOverride: noOverride, loadStyle: true},
	"lhu":  {format: formatI, opcode: 0x03, funct3: 0x5, immHighOverride: noOverride, loadStyle: true},

	// I-type, no operands, fixed immediate
	"ecall":  {format: formatI, opcode: 0x73, funct3: 0x0, immHighOverride: noOverride, fixedImm: ptr(0)},
	"ebreak": {format: formatI, opcode: 0x73, funct3: 0x0, immHighOverride: noOverride, fixedImm: ptr(1)},

	// R-type: [rd, rs1, rs2]
	"add":  {format: formatR, opcode: 0x33, funct3: 0x0, funct7: 0x00},
	"sub":  {format: formatR, opcode: 0x33, funct3: 0x0, funct7: 0x20},
	"xor":  {format: formatR, opcode: 0x33, funct3: 0x4, funct7: 0x00},
	"or":   {format: formatR, opcode: 0x33, funct3: 0x6, funct7: 0x00},
	"and":  {format: formatR, opcode: 0x33, funct3: 0x7, funct7: 0x00},
	"sll":  {format: formatR, opcode: 0x33, funct3: 0x1, funct7: 0x00},
	"srl":  {format: formatR, opcode: 0x33, funct3: 0x5, funct7: 0x00},
	"sra":  {format: formatR, opcode: 0x33, funct3: 0x5, funct7: 0x20},
	"slt":  {format: formatR, opcode: 0x33, funct3: 0x2, funct7: 0x00},
	"sltu": {format: formatR, opcode: 0x33, funct3: 0x3, funct7: 0x00},

	// S-type: [rs2, imm, rs1]
	"sw": {format: formatS, opcode: 0x23, funct3: 0x2},
	"sh": {format: formatS, opcode: 0x23, funct3: 0x1},
	"sb": {format: formatS, opcode: 0x23, funct3: 0x0},

	// B-type: [rs1, rs2, target]
	"beq":  {format: formatB, opcode: 0x63, funct3: 0x0},
	"bne":  {format: formatB, opcode: 0x63, funct3: 0x1},
	"blt":  {format: formatB, opcode: 0x63, funct3: 0x4},
	"bge":  {format: formatB, opcode: 0x63, funct3: 0x5},
	"bltu": {format: formatB, opcode: 0x63, funct3: 0x6},
	"bgeu": {format: formatB, opcode: 0x63, funct3: 0x7},

	// U-type: [rd, imm]
	"lui":   {format: formatU, opcode: 0x37},
	"auipc": {format: formatU, opcode: 0x17},

	// J-type: [rd, target]
	"jal": {format: formatJ, opcode: 0x6F},
}

func ptr(v int64) *int64 { return &v }

func parseRegister(tok string) (int64, error) {
	if !strings.HasPrefix(tok, "x") {
		return 0, fmt.Errorf("invalid register operand %q", tok)
	}
	n, err := strconv.ParseInt(tok[1:], 10, 64)
	if err != nil || n < 0 || n > 31 {
		return 0, fmt.Errorf("invalid register operand %q", tok)
	}
	return n, nil
}

// resolveTarget resolves a B-type or J-type target operand, which is
// either a declared label name or a literal byte address, into a byte
// address.
func resolveTarget(tok string, symtab *parser.SymbolTable, startOfMemory int64, pos parser.Position) (int64, error) {
	if lbl, ok := symtab.Lookup(tok); ok {
		symtab.Reference(tok, pos)
		return int64(lbl.InstructionIndex)*4 + startOfMemory, nil
	}
	addr, err := parser.ParseImmediate(tok)
	if err != nil {
		return 0, fmt.Errorf("undefined label or invalid address %q", tok)
	}
	return addr, nil
}

// EncodeInstruction encodes one already-expanded, real-instruction token
// slice into a 32-bit word. tokens[0] is the mnemonic (any case);
// tokens[1:] are its operands in source order. currentByteAddr is the
// byte address of this instruction, used for branch/jump offset
// computation.
func EncodeInstruction(tokens []string, symtab *parser.SymbolTable, startOfMemory, currentByteAddr int64, pos parser.Position, rawLine string) (uint32, error) {
	if len(tokens) == 0 {
		return 0, NewEncodingError(UnknownMnemonic, pos, rawLine, "empty instruction")
	}
	mnemonic := strings.ToLower(tokens[0])
	operands := tokens[1:]

	entry, ok := mnemonicTable[mnemonic]
	if !ok {
		return 0, NewEncodingError(UnknownMnemonic, pos, rawLine, fmt.Sprintf("unrecognized mnemonic %q", tokens[0]))
	}

	switch entry.format {
	case formatI:
		return encodeIEntry(entry, operands, pos, rawLine)
	case formatR:
		return encodeREntry(entry, operands, pos, rawLine)
	case formatS:
		return encodeSEntry(entry, operands, pos, rawLine)
	case formatB:
		return encodeBEntry(entry, operands, symtab, startOfMemory, currentByteAddr, pos, rawLine)
	case formatU:
		return encodeUEntry(entry, operands, pos, rawLine)
	case formatJ:
		return encodeJEntry(entry, operands, symtab, startOfMemory, currentByteAddr, pos, rawLine)
	default:
		return 0, NewEncodingError(UnknownMnemonic, pos, rawLine, fmt.Sprintf("unhandled format for %q", mnemonic))
	}
}

func encodeIEntry(e mnemonicEntry, operands []string, pos parser.Position, rawLine string) (uint32, error) {
	if e.fixedImm != nil {
		return encodeI(e.opcode, e.funct3, 0, 0, *e.fixedImm, e.immHighOverride), nil
	}
	if len(operands) < 3 {
		return 0, NewEncodingError(UnknownMnemonic, pos, rawLine, "missing operands")
	}
	var rdTok, rs1Tok, immTok string
	if e.loadStyle {
		rdTok, immTok, rs1Tok = operands[0], operands[1], operands[2]
	} else {
		rdTok, rs1Tok, immTok = operands[0], operands[1], operands[2]
	}
	rd, err := parseRegister(rdTok)
	if err != nil {
		return 0, WrapEncodingError(UnknownMnemonic, pos, rawLine, err)
	}
	rs1, err := parseRegister(rs1Tok)
	if err != nil {
		return 0, WrapEncodingError(UnknownMnemonic, pos, rawLine, err)
	}
	imm, err := parser.ParseImmediate(immTok)
	if err != nil {
		return 0, WrapEncodingError(UnknownMnemonic, pos, rawLine, err)
	}
	return encodeI(e.opcode, e.funct3, rd, rs1, imm, e.immHighOverride), nil
}

func encodeREntry(e mnemonicEntry, operands []string, pos parser.Position, rawLine string) (uint32, error) {
	if len(operands) < 3 {
		return 0, NewEncodingError(UnknownMnemonic, pos, rawLine, "missing operands")
	}
	rd, err := parseRegister(operands[0])
	if err != nil {
		return 0, WrapEncodingError(UnknownMnemonic, pos, rawLine, err)
	}
	rs1, err := parseRegister(operands[1])
	if err != nil {
		return 0, WrapEncodingError(UnknownMnemonic, pos, rawLine, err)
	}
	rs2, err := parseRegister(operands[2])
	if err != nil {
		return 0, WrapEncodingError(UnknownMnemonic, pos, rawLine, err)
	}
	return encodeR(e.opcode, e.funct3, e.funct7, rd, rs1, rs2), nil
}

func encodeSEntry(e mnemonicEntry, operands []string, pos parser.Position, rawLine string) (uint32, error) {
	if len(operands) < 3 {
		return 0, NewEncodingError(UnknownMnemonic, pos, rawLine, "missing operands")
	}
	rs2, err := parseRegister(operands[0])
	if err != nil {
		return 0, WrapEncodingError(UnknownMnemonic, pos, rawLine, err)
	}
	imm, err := parser.ParseImmediate(operands[1])
	if err != nil {
		return 0, WrapEncodingError(UnknownMnemonic, pos, rawLine, err)
	}
	rs1, err := parseRegister(operands[2])
	if err != nil {
		return 0, WrapEncodingError(UnknownMnemonic, pos, rawLine, err)
	}
	word, err := encodeS(e.opcode, e.funct3, rs1, rs2, imm)
	if err != nil {
		return 0, WrapEncodingError(ImmediateOutOfRange, pos, rawLine, err)
	}
	return word, nil
}

func encodeUEntry(e mnemonicEntry, operands []string, pos parser.Position, rawLine string) (uint32, error) {
	if len(operands) < 2 {
		return 0, NewEncodingError(UnknownMnemonic, pos, rawLine, "missing operands")
	}
	rd, err := parseRegister(operands[0])
	if err != nil {
		return 0, WrapEncodingError(UnknownMnemonic, pos, rawLine, err)
	}
	imm, err := parser.ParseImmediate(operands[1])
	if err != nil {
		return 0, WrapEncodingError(UnknownMnemonic, pos, rawLine, err)
	}
	return encodeU(e.opcode, rd, imm), nil
}

func encodeBEntry(e mnemonicEntry, operands []string, symtab *parser.SymbolTable, startOfMemory, currentByteAddr int64, pos parser.Position, rawLine string) (uint32, error) {
	if len(operands) < 3 {
		return 0, NewEncodingError(UnknownMnemonic, pos, rawLine, "missing operands")
	}
	rs1, err := parseRegister(operands[0])
	if err != nil {
		return 0, WrapEncodingError(UnknownMnemonic, pos, rawLine, err)
	}
	rs2, err := parseRegister(operands[1])
	if err != nil {
		return 0, WrapEncodingError(UnknownMnemonic, pos, rawLine, err)
	}
	targetAddr, err := resolveTarget(operands[2], symtab, startOfMemory, pos)
	if err != nil {
		return 0, WrapEncodingError(UnknownMnemonic, pos, rawLine, err)
	}
	offset := (targetAddr - currentByteAddr) / 2
	word, err := encodeB(e.opcode, e.funct3, rs1, rs2, int32(offset))
	if err != nil {
		if rangeErr, ok := err.(*offsetRangeError); ok {
			return 0, NewEncodingError(rangeErr.kind, pos, rawLine, fmt.Sprintf("branch offset %d half-words out of range", offset))
		}
		return 0, WrapEncodingError(BranchTooFar, pos, rawLine, err)
	}
	return word, nil
}

func encodeJEntry(e mnemonicEntry, operands []string, symtab *parser.SymbolTable, startOfMemory, currentByteAddr int64, pos parser.Position, rawLine string) (uint32, error) {
	if len(operands) < 2 {
		return 0, NewEncodingError(UnknownMnemonic, pos, rawLine, "missing operands")
	}
	rd, err := parseRegister(operands[0])
	if err != nil {
		return 0, WrapEncodingError(UnknownMnemonic, pos, rawLine, err)
	}
	targetAddr, err := resolveTarget(operands[1], symtab, startOfMemory, pos)
	if err != nil {
		return 0, WrapEncodingError(UnknownMnemonic, pos, rawLine, err)
	}
	offset := (targetAddr - currentByteAddr) / 2
	word, err := encodeJ(e.opcode, rd, int32(offset))
	if err != nil {
		if rangeErr, ok := err.(*offsetRangeError); ok {
			return 0, NewEncodingError(rangeErr.kind, pos, rawLine, fmt.Sprintf("jump offset %d half-words out of range", offset))
		}
		return 0, WrapEncodingError(JumpTooFar, pos, rawLine, err)
	}
	return word, nil
}
