package encoder

// noOverride is the sentinel imm_high_override value meaning "do not
// override imm[11:5]".
const noOverride = -1

// encodeReg masks a register index to 5 bits; callers are trusted to
// supply legal x0-x31 register operands, matching the data model's
// stated trust boundary.
func encodeReg(n int64) uint32 {
	return uint32(n) & 0x1F
}

// encodeI builds an I-type word: imm[11:0] | rs1[4:0] | funct3[2:0] |
// rd[4:0] | opcode[6:0]. When immHighOverride is not noOverride, it
// replaces imm[11:5] and only the low 5 bits of imm are kept, matching
// the shift-amount encoding used by slli/srli/srai.
func encodeI(opcode, funct3 uint32, rd, rs1 int64, imm int64, immHighOverride int64) uint32 {
	var field uint32
	if immHighOverride != noOverride {
		field = (uint32(immHighOverride)&0x7F)<<5 | (uint32(imm) & 0x1F)
	} else {
		field = uint32(imm) & 0xFFF
	}
	return field<<20 | encodeReg(rs1)<<15 | (funct3&0x7)<<12 | encodeReg(rd)<<7 | (opcode & 0x7F)
}

// encodeR builds an R-type word: funct7[6:0] | rs2[4:0] | rs1[4:0] |
// funct3[2:0] | rd[4:0] | opcode[6:0].
func encodeR(opcode, funct3, funct7 uint32, rd, rs1, rs2 int64) uint32 {
	return (funct7&0x7F)<<25 | encodeReg(rs2)<<20 | encodeReg(rs1)<<15 | (funct3&0x7)<<12 | encodeReg(rd)<<7 | (opcode & 0x7F)
}

// encodeS builds an S-type word: imm[11:5] | rs2[4:0] | rs1[4:0] |
// funct3[2:0] | imm[4:0] | opcode[6:0]. Fails with ImmediateOutOfRange
// when |imm| > 4095. Accepted values outside -2048..2047 are not
// rejected; only their low 12 bits are encoded.
func encodeS(opcode, funct3 uint32, rs1, rs2, imm int64) (uint32, error) {
	if imm > 4095 || imm < -4095 {
		return 0, &immRangeError{imm: imm}
	}
	u := uint32(imm) & 0xFFF
	hi := (u >> 5) & 0x7F
	lo := u & 0x1F
	return hi<<25 | encodeReg(rs2)<<20 | encodeReg(rs1)<<15 | (funct3&0x7)<<12 | lo<<7 | (opcode & 0x7F), nil
}

// immRangeError is a package-private sentinel distinguishing an
// out-of-range S-type immediate from other encode failures; callers
// translate it into an EncodingError with the caller's position.
type immRangeError struct{ imm int64 }

func (e *immRangeError) Error() string { return "S-type immediate out of 12-bit signed range" }

// encodeU builds a U-type word: imm[31:12] | rd[4:0] | opcode[6:0]. The
// 20-bit immediate is taken verbatim from the caller; no shifting.
func encodeU(opcode uint32, rd, imm int64) uint32 {
	return (uint32(imm)&0xFFFFF)<<12 | encodeReg(rd)<<7 | (opcode & 0x7F)
}

// encodeB builds a B-type word from a signed half-word offset:
// imm[12] | imm[10:5] | rs2[4:0] | rs1[4:0] | funct3[2:0] | imm[4:1] |
// imm[11] | opcode[6:0].
func encodeB(opcode, funct3 uint32, rs1, rs2 int64, offset int32) (uint32, error) {
	if offset > tooFarMagnitude || offset < -tooFarMagnitude {
		return 0, &offsetRangeError{kind: BranchTooFar, offset: offset}
	}
	if offset > trampolineMagnitude || offset < -trampolineMagnitude {
		return 0, &offsetRangeError{kind: BranchNeedsTrampoline, offset: offset}
	}
	// offset is a half-word count (byte offset / 2); byteOffset[k] ==
	// offset[k-1], so the standard B-type byte-offset field positions
	// shift down by one bit against our half-word value.
	u := uint32(offset)
	bit12 := (u >> 11) & 0x1
	bits10_5 := (u >> 4) & 0x3F
	bits4_1 := u & 0xF
	bit11 := (u >> 10) & 0x1
	word := bit12<<31 | bits10_5<<25 | encodeReg(rs2)<<20 | encodeReg(rs1)<<15 | (funct3&0x7)<<12 | bits4_1<<8 | bit11<<7 | (opcode & 0x7F)
	return word, nil
}

// encodeJ builds a J-type word from a signed half-word offset:
// imm[20] | imm[10:1] | imm[11] | imm[19:12] | rd[4:0] | opcode[6:0].
func encodeJ(opcode uint32, rd int64, offset int32) (uint32, error) {
	if offset >= tooFarMagnitude || offset < -tooFarMagnitude {
		return 0, &offsetRangeError{kind: JumpTooFar, offset: offset}
	}
	// Same half-word/byte-offset bit shift as encodeB, one bit wider.
	u := uint32(offset)
	bit20 := (u >> 19) & 0x1
	bits10_1 := u & 0x3FF
	bit11 := (u >> 10) & 0x1
	bits19_12 := (u >> 11) & 0xFF
	word := bit20<<31 | bits10_1<<21 | bit11<<20 | bits19_12<<12 | encodeReg(rd)<<7 | (opcode & 0x7F)
	return word, nil
}

// Offset thresholds are stated in spec prose as "exceeds N signed bits";
// the boundary test (±2048 bytes, i.e. ±1024 half-words, succeeds; ±2050
// bytes fails) pins these as symmetric magnitude checks rather than
// two's-complement min/max, so both bounds here are inclusive positive
// magnitudes. The one exception is encodeJ's forward bound: the J-type
// field holds half-word offsets -2^19..2^19-1, so +tooFarMagnitude itself
// is rejected there.
const (
	trampolineMagnitude int32 = 1 << 10 // 1024 half-words = 2048 bytes
	tooFarMagnitude     int32 = 1 << 19 // 524288 half-words
)

type offsetRangeError struct {
	kind   ErrorKind
	offset int32
}

func (e *offsetRangeError) Error() string {
	return e.kind.String()
}
