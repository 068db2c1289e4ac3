package semantic

import "github.com/sandrolain/ecmatool/pkg/span"

// ReferenceID identifies one identifier use-site within one Program.
type ReferenceID uint32

// ReferenceFlag classifies how an identifier is used at a reference site
// : Read, Write, ReadWrite, or Type (a type-position reference,
// TypeScript only).
type ReferenceFlag uint8

const (
	ReferenceRead ReferenceFlag = iota
	ReferenceWrite
	ReferenceReadWrite
	ReferenceType
)

// Reference is one identifier use-site : "{ id, name, span,
// flag, symbol_id: Option<SymbolId> }". SymbolID is the zero value and
// Resolved is false until scope resolution finds a matching binding.
type Reference struct {
	ID       ReferenceID
	Name     string
	Span     span.Span
	Flag     ReferenceFlag
	SymbolID SymbolID
	Resolved bool
}

// ReferenceTable holds every Reference created during traversal, plus the
// root unresolved-reference table : "references still
// unresolved at the program scope stay in the root unresolved-reference
// table (keyed by name, each entry a list of reference ids)".
type ReferenceTable struct {
	refs       []Reference
	unresolved map[string][]ReferenceID
}

// NewReferenceTable creates an empty table.
func NewReferenceTable() *ReferenceTable {
	return &ReferenceTable{unresolved: make(map[string][]ReferenceID)}
}

// Create records a new, as-yet-unresolved reference and returns its id.
func (t *ReferenceTable) Create(name string, sp span.Span, flag ReferenceFlag) ReferenceID {
	id := ReferenceID(len(t.refs))
	t.refs = append(t.refs, Reference{ID: id, Name: name, Span: sp, Flag: flag})
	return id
}

// Resolve binds a reference to a symbol.
func (t *ReferenceTable) Resolve(ref ReferenceID, sym SymbolID) {
	t.refs[ref].SymbolID = sym
	t.refs[ref].Resolved = true
}

// Get returns the reference for id.
func (t *ReferenceTable) Get(id ReferenceID) *Reference {
	return &t.refs[id]
}

// PromoteUnresolved records a reference that reached the Program scope
// still unresolved, keyed by name.
func (t *ReferenceTable) PromoteUnresolved(ref ReferenceID) {
	name := t.refs[ref].Name
	t.unresolved[name] = append(t.unresolved[name], ref)
}

// Unresolved returns the root unresolved-reference table.
func (t *ReferenceTable) Unresolved() map[string][]ReferenceID {
	return t.unresolved
}

// Len returns the number of references recorded.
func (t *ReferenceTable) Len() int { return len(t.refs) }
