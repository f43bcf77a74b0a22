package parser

import "strings"

// maxTokens bounds a tokenized line: mnemonic plus at most three operands,
// or a label plus a three-operand instruction sharing the line.
const maxTokens = 5

// isDelimiter reports whether r separates tokens. Delimiters are never
// preserved in the output.
func isDelimiter(r rune) bool {
	switch r {
	case ' ', '\t', ',', '(', ')':
		return true
	default:
		return false
	}
}

// Tokenize splits a line into at most maxTokens tokens on runs of the
// delimiter set {space, tab, comma, '(', ')'}. It operates on a working
// copy of line and never mutates the caller's string.
func Tokenize(line string) []string {
	fields := strings.FieldsFunc(line, isDelimiter)
	if len(fields) == 0 {
		return nil
	}
	if len(fields) > maxTokens {
		fields = fields[:maxTokens]
	}
	return fields
}

// LineKind classifies a tokenized line for the label harvester and the
// instruction dispatcher.
type LineKind int

const (
	LineEmpty LineKind = iota
	LineComment
	LineDirective
	LineLabelOnly
	LineLabelAndInstruction
	LineInstruction
)

// Classified is the result of applying label/comment/directive
// classification to a tokenized line: a line is optionally a label
// declaration followed optionally by an instruction.
type Classified struct {
	Kind  LineKind
	Label string   // populated for LineLabelOnly and LineLabelAndInstruction
	Rest  []string // the instruction's own tokens, label (if any) stripped
}

// Classify applies the label/comment/directive rules to a tokenized line.
// Comments and directives are recognized from the first token only; a
// label is recognized by a trailing ':' on the first token and, when
// present, the remaining tokens are left-shifted so Rest always starts at
// the mnemonic.
func Classify(tokens []string) Classified {
	if len(tokens) == 0 {
		return Classified{Kind: LineEmpty}
	}

	first := tokens[0]

	if strings.HasPrefix(first, "#") {
		return Classified{Kind: LineComment}
	}

	if strings.HasPrefix(first, ".") {
		return Classified{Kind: LineDirective}
	}

	if strings.HasSuffix(first, ":") {
		name := strings.TrimSuffix(first, ":")
		if len(tokens) == 1 {
			return Classified{Kind: LineLabelOnly, Label: name}
		}
		return Classified{Kind: LineLabelAndInstruction, Label: name, Rest: tokens[1:]}
	}

	return Classified{Kind: LineInstruction, Rest: tokens}
}
