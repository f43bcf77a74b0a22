package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// StdinName is the sentinel inputFileName value that selects the standard
// input stream instead of opening a path.
const StdinName = "stdin"

// ReadLines loads the full line sequence of an input source, in order,
// with no further processing. Both assembler passes traverse this same
// slice independently, so it is read once, up front, and the input
// resource is released before either pass begins.
func ReadLines(inputFileName string) ([]string, error) {
	var r io.Reader
	if inputFileName == StdinName {
		r = os.Stdin
	} else {
		info, err := os.Stat(inputFileName)
		if err != nil {
			return nil, fmt.Errorf("input source unreadable: %w", err)
		}
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("input source unreadable: %q is not a regular file", inputFileName)
		}
		f, err := os.Open(inputFileName) // #nosec G304 -- user-provided assembly file path
		if err != nil {
			return nil, fmt.Errorf("input source unreadable: %w", err)
		}
		defer f.Close()
		r = f
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("input source unreadable: %w", err)
	}
	return lines, nil
}
