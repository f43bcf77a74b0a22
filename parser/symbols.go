package parser

import "fmt"

// Label is a symbol-table entry produced by the pass-one label harvester.
// Per the address model, a label's byte address is startOfMemory +
// 4*InstructionIndex; the symbol table itself only ever stores the
// instruction index, never a precomputed address, so it has no dependency
// on startOfMemory and can be built once and reused across output formats.
type Label struct {
	Name             string
	InstructionIndex int32
	DeclaredOnLine   int32
	Pos              Position
	References       []Position
}

// SymbolTable is the single, global, case-sensitive label namespace built
// during pass one and consulted during pass two, which adds nothing to it
// beyond recording references.
type SymbolTable struct {
	labels map[string]*Label
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{labels: make(map[string]*Label)}
}

// Define records a label declaration. Redefining an existing label is
// rejected outright: the assembler has one namespace and one declaration
// per name, so a second "foo:" is always a mistake, never an update.
func (st *SymbolTable) Define(name string, instructionIndex, declaredOnLine int32, pos Position) error {
	if existing, exists := st.labels[name]; exists {
		return fmt.Errorf("label %q already defined at %s", name, existing.Pos)
	}
	st.labels[name] = &Label{
		Name:             name,
		InstructionIndex: instructionIndex,
		DeclaredOnLine:   declaredOnLine,
		Pos:              pos,
	}
	return nil
}

// Reference records that name was used as an operand at pos, so the
// lint pass can later report labels that are declared but never used.
func (st *SymbolTable) Reference(name string, pos Position) {
	if lbl, exists := st.labels[name]; exists {
		lbl.References = append(lbl.References, pos)
	}
}

// Lookup returns the label record for name, if declared.
func (st *SymbolTable) Lookup(name string) (*Label, bool) {
	lbl, exists := st.labels[name]
	return lbl, exists
}

// All returns every declared label, for diagnostics.
func (st *SymbolTable) All() map[string]*Label {
	return st.labels
}

// Len reports how many labels are declared.
func (st *SymbolTable) Len() int {
	return len(st.labels)
}
