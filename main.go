package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/riscv5i/rv5i-asm/assembler"
	"github.com/riscv5i/rv5i-asm/config"
	"github.com/riscv5i/rv5i-asm/encoder"
	"github.com/riscv5i/rv5i-asm/parser"
	"github.com/riscv5i/rv5i-asm/writer"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	var (
		showVersion   = flag.Bool("version", false, "Show version information")
		showHelp      = flag.Bool("help", false, "Show help information")
		outputFile    = flag.String("o", "", "Output file (default: derived from input filename and format)")
		formatFlag    = flag.String("format", cfg.Format, "Output format: binary, bin, hex, hexadecimal")
		startOfMemory = flag.Int64("start-of-memory", cfg.StartOfMemory, "Base byte address instructions are assembled at")
		verboseMode   = flag.Bool("verbose", cfg.Verbose, "Print a trace line per encoded instruction and unused-label warnings")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("rv5i-asm %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp || flag.NArg() == 0 {
		printHelp()
		if *showHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	inputFileName := flag.Arg(0)

	format, err := writer.ParseFormat(*formatFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outputFileName := *outputFile
	if outputFileName == "" {
		outputFileName = config.DeriveOutputFileName(inputFileName, *formatFlag)
	}

	if *verboseMode {
		fmt.Printf("Reading: %s\n", inputFileName)
	}

	lines, err := parser.ReadLines(inputFileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, err := assembler.NewContext(*startOfMemory, *verboseMode, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outputFileName) // #nosec G304 -- user-specified output path
	if err != nil {
		fmt.Fprintf(os.Stderr, "output sink unopenable: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", cerr)
		}
	}()

	sink := writer.NewSink(out, format)

	if err := assembler.Assemble(ctx, lines, inputFileName, sink); err != nil {
		reportError(err)
		os.Exit(1)
	}

	if *verboseMode {
		fmt.Printf("Wrote: %s\n", outputFileName)
	}
}

// reportError prints a fatal assembly error to stderr, including the
// source position and raw line when the error carries an
// *encoder.EncodingError.
func reportError(err error) {
	var encErr *encoder.EncodingError
	if errors.As(err, &encErr) {
		fmt.Fprintf(os.Stderr, "%s: %s\n    %s\n", encErr.Pos, encErr.Error(), encErr.RawLine)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

func printHelp() {
	fmt.Printf(`rv5i-asm %s

Usage: rv5i-asm [options] <input-file>
       rv5i-asm [options] stdin

Assembles a reduced RISC-V-like instruction set into binary or hex
machine words.

Options:
  -help                Show this help message
  -version             Show version information
  -o FILE              Output file (default: <input>.bin.riscv5i or <input>.hex.riscv5i)
  -format FMT          Output format: binary, bin, hex, hexadecimal (default: %s)
  -start-of-memory N   Base byte address instructions are assembled at (default: %d)
  -verbose             Print a trace line per encoded instruction and unused-label warnings

Examples:
  rv5i-asm program.s
  rv5i-asm -format hex -o program.hex program.s
  cat program.s | rv5i-asm -format hex stdin
`, Version, config.DefaultConfig().Format, config.DefaultConfig().StartOfMemory)
}
