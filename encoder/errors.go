package encoder

import (
	"fmt"

	"github.com/riscv5i/rv5i-asm/parser"
)

// ErrorKind distinguishes the fatal conditions the instruction dispatcher
// and format encoders can raise.
type ErrorKind int

const (
	UnknownMnemonic ErrorKind = iota
	ImmediateOutOfRange
	BranchTooFar
	BranchNeedsTrampoline
	JumpTooFar
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownMnemonic:
		return "UnknownMnemonic"
	case ImmediateOutOfRange:
		return "ImmediateOutOfRange"
	case BranchTooFar:
		return "BranchTooFar"
	case BranchNeedsTrampoline:
		return "BranchNeedsTrampoline"
	case JumpTooFar:
		return "JumpTooFar"
	default:
		return "EncodingError"
	}
}

// EncodingError provides detailed context for encoding failures: the
// offending instruction's source location, the raw source line, and the
// error kind the CLI layer reports on exit.
type EncodingError struct {
	Pos     parser.Position
	RawLine string
	Kind    ErrorKind
	Message string
	Wrapped error
}

func (e *EncodingError) Error() string {
	location := ""
	if e.Pos.Filename != "" {
		location = fmt.Sprintf("%s: ", e.Pos)
	}

	msg := fmt.Sprintf("%s%s: %s", location, e.Kind, e.Message)
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped)
	}
	if e.RawLine != "" {
		msg = fmt.Sprintf("%s\n  source: %s", msg, e.RawLine)
	}
	return msg
}

func (e *EncodingError) Unwrap() error {
	return e.Wrapped
}

// NewEncodingError creates an EncodingError with no wrapped cause.
func NewEncodingError(kind ErrorKind, pos parser.Position, rawLine, message string) *EncodingError {
	return &EncodingError{Kind: kind, Pos: pos, RawLine: rawLine, Message: message}
}

// WrapEncodingError wraps err with instruction context. A nil err yields
// a nil result; an already-wrapped EncodingError is returned unchanged.
func WrapEncodingError(kind ErrorKind, pos parser.Position, rawLine string, err error) error {
	if err == nil {
		return nil
	}
	if existing, ok := err.(*EncodingError); ok {
		return existing
	}
	return &EncodingError{Kind: kind, Pos: pos, RawLine: rawLine, Message: "failed to encode instruction", Wrapped: err}
}
