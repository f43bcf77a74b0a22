// Package tools holds diagnostics that are useful but not load-bearing
// for assembly: today, a single unused-label check run under -verbose.
package tools

import (
	"fmt"
	"sort"

	"github.com/riscv5i/rv5i-asm/parser"
)

// LintLevel is the severity of a diagnostic.
type LintLevel int

const (
	LintWarning LintLevel = iota
	LintInfo
)

func (l LintLevel) String() string {
	switch l {
	case LintWarning:
		return "warning"
	case LintInfo:
		return "info"
	default:
		return "unknown"
	}
}

// LintIssue is a single non-fatal diagnostic tied to a declared label.
type LintIssue struct {
	Level   LintLevel
	Line    int
	Message string
	Code    string
}

func (i *LintIssue) String() string {
	return fmt.Sprintf("line %d: %s: %s [%s]", i.Line, i.Level, i.Message, i.Code)
}

// UnusedLabels reports every declared label that pass two never
// referenced as a branch or jump target. It does not affect the exit
// code; it is informational output printed only when -verbose is set.
func UnusedLabels(symtab *parser.SymbolTable) []string {
	var issues []*LintIssue
	for name, lbl := range symtab.All() {
		if len(lbl.References) == 0 {
			issues = append(issues, &LintIssue{
				Level:   LintWarning,
				Line:    int(lbl.DeclaredOnLine),
				Message: fmt.Sprintf("label %q defined but never referenced", name),
				Code:    "UNUSED_LABEL",
			})
		}
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].Line < issues[j].Line })

	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.String()
	}
	return out
}
