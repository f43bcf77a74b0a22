// Package writer implements the output writer: it sinks one 32-bit
// instruction word at a time, either as raw little-endian bytes or as a
// hex-formatted text line, matching the teacher's loader convention of
// writing each encoded word to its destination as soon as it is
// produced rather than buffering a whole program in memory first.
package writer

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Format selects the output encoding. Binary and Hex are the only two;
// "bin" and "hexadecimal" are accepted as synonyms by ParseFormat, which
// normalizes into one of these before a Sink is constructed.
type Format int

const (
	Binary Format = iota
	Hex
)

// ParseFormat normalizes one of the four configuration spellings
// (binary, bin, hex, hexadecimal) into a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "binary", "bin":
		return Binary, nil
	case "hex", "hexadecimal":
		return Hex, nil
	default:
		return 0, fmt.Errorf("unrecognized output format %q", s)
	}
}

// Sink accepts one encoded instruction word at a time. It is called
// exactly once per emitted instruction word, in instruction order.
type Sink interface {
	WriteWord(word uint32) error
}

// NewSink builds a Sink over w for the given format.
func NewSink(w io.Writer, format Format) Sink {
	switch format {
	case Hex:
		return &hexSink{w: w}
	default:
		return &binarySink{w: w}
	}
}

type binarySink struct {
	w   io.Writer
	buf [4]byte
}

func (s *binarySink) WriteWord(word uint32) error {
	binary.LittleEndian.PutUint32(s.buf[:], word)
	_, err := s.w.Write(s.buf[:])
	return err
}

type hexSink struct {
	w io.Writer
}

func (s *hexSink) WriteWord(word uint32) error {
	_, err := fmt.Fprintf(s.w, "0x%08x\n", word)
	return err
}
