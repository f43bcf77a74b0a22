package parser

import "fmt"

// HarvestLabels performs the pass-one traversal: it walks every source
// line once, classifies it, and builds the symbol table mapping each
// declared label to the instruction index its line occupies. Pseudo
// instructions are expanded before counting, so a line containing `li`
// advances instructionIndex by the number of words it will actually
// emit in pass two, not by one.
//
// Duplicate label declarations are collected into an *ErrorList rather
// than aborting the traversal, so a file with several redeclared labels
// gets reported in one pass instead of one harvest-and-fix cycle per
// label. A malformed pseudo-instruction aborts immediately instead: it
// leaves the word count for that line unknown, which poisons every
// instructionIndex after it, so there is nothing trustworthy left to
// keep harvesting.
func HarvestLabels(lines []string, filename string) (*SymbolTable, error) {
	symtab := NewSymbolTable()
	var instructionIndex int32
	var errs ErrorList

	for i, line := range lines {
		lineNumber := int32(i + 1)
		tokens := Tokenize(line)
		classified := Classify(tokens)
		pos := Position{Filename: filename, Line: int(lineNumber), Column: 1}

		switch classified.Kind {
		case LineEmpty, LineComment, LineDirective:
			// no state change

		case LineLabelOnly:
			if err := symtab.Define(classified.Label, instructionIndex, lineNumber, pos); err != nil {
				errs.AddError(NewErrorWithContext(pos, ErrorDuplicateLabel, err.Error(), line))
			}

		case LineLabelAndInstruction:
			if err := symtab.Define(classified.Label, instructionIndex, lineNumber, pos); err != nil {
				errs.AddError(NewErrorWithContext(pos, ErrorDuplicateLabel, err.Error(), line))
			}
			n, err := expandedWordCount(classified.Rest)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", pos, err)
			}
			instructionIndex += n

		case LineInstruction:
			n, err := expandedWordCount(classified.Rest)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", pos, err)
			}
			instructionIndex += n
		}
	}

	if errs.HasErrors() {
		return nil, &errs
	}

	return symtab, nil
}

// expandedWordCount reports how many instruction words a (possibly
// pseudo) instruction line will emit in pass two.
func expandedWordCount(tokens []string) (int32, error) {
	expanded, err := ExpandLine(tokens)
	if err != nil {
		return 0, err
	}
	return int32(len(expanded)), nil
}
