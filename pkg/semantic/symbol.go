package semantic

import "github.com/sandrolain/ecmatool/pkg/span"

// SymbolID identifies a named binding within one Program's SymbolTable.
type SymbolID uint32

// SymbolFlags is a bitset over the kinds of binding a Symbol can be.
type SymbolFlags uint32

const (
	SymbolBlockScopedVariable SymbolFlags = 1 << iota
	SymbolFunctionScopedVariable
	SymbolConstVariable
	SymbolClass
	SymbolFunction
	SymbolImport
	SymbolTypeImport
	SymbolTypeAlias
	SymbolInterface
	SymbolTypeParameter
	SymbolCatchVariable
	SymbolRegularEnum
	SymbolConstEnum
	SymbolNameSpaceModule
	SymbolAmbient
	SymbolEnumMember
)

// excludesMask returns the set of flags that a redeclaration of a symbol
// carrying f is NOT permitted to also carry without raising a
// redeclaration diagnostic. Mirrors oxc's SymbolFlags::excludes table:
// value-like bindings exclude other
// value-like bindings in the same scope, but a value and its type-level
// counterpart (type alias, interface, type parameter) can coexist because
// they live in TypeScript's value-disjoint namespace.
func (f SymbolFlags) excludesMask() SymbolFlags {
	const valueLike = SymbolBlockScopedVariable | SymbolFunctionScopedVariable |
		SymbolConstVariable | SymbolClass | SymbolFunction | SymbolImport |
		SymbolCatchVariable | SymbolRegularEnum | SymbolConstEnum | SymbolNameSpaceModule

	switch {
	case f&(SymbolTypeAlias|SymbolInterface|SymbolTypeParameter|SymbolTypeImport) != 0:
		return SymbolTypeAlias | SymbolInterface | SymbolTypeParameter
	case f&valueLike != 0:
		return valueLike
	default:
		return 0
	}
}

// Excludes reports whether a symbol already carrying f would conflict
// with a new declaration carrying other.
func (f SymbolFlags) Excludes(other SymbolFlags) bool {
	return f.excludesMask()&other != 0
}

// Symbol is a named binding : "{ id, name, span_of_declaration,
// flags, scope_id, reference_ids }".
type Symbol struct {
	ID            SymbolID
	Name          string
	DeclaredSpan  span.Span
	Flags         SymbolFlags
	ScopeID       ScopeID
	ReferenceIDs  []ReferenceID
}

// SymbolTable holds every Symbol created while building the semantic
// model for one Program.
type SymbolTable struct {
	symbols []Symbol
}

// NewSymbolTable creates an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// Declare creates a new symbol and returns its id. Callers that need
// identity-preserving hoisted redeclaration should use Get + mutate in
// place instead of calling Declare again.
func (t *SymbolTable) Declare(name string, declaredSpan span.Span, flags SymbolFlags, scope ScopeID) SymbolID {
	id := SymbolID(len(t.symbols))
	t.symbols = append(t.symbols, Symbol{
		ID:           id,
		Name:         name,
		DeclaredSpan: declaredSpan,
		Flags:        flags,
		ScopeID:      scope,
	})
	return id
}

// Get returns the symbol for id.
func (t *SymbolTable) Get(id SymbolID) *Symbol {
	return &t.symbols[id]
}

// AddReference appends a reference id to a symbol's use-site list.
func (t *SymbolTable) AddReference(sym SymbolID, ref ReferenceID) {
	t.symbols[sym].ReferenceIDs = append(t.symbols[sym].ReferenceIDs, ref)
}

// Rename changes a symbol's recorded name without touching its identity.
// Nothing in this package calls it; hoisting moves a symbol with
// MoveToScope.
func (t *SymbolTable) Rename(id SymbolID, name string) {
	t.symbols[id].Name = name
}

// MoveToScope rewrites a symbol's owning scope, used by the hoisting pass
// when a var declared in a nested block is promoted to its nearest
// function-or-top scope.
func (t *SymbolTable) MoveToScope(id SymbolID, scope ScopeID) {
	t.symbols[id].ScopeID = scope
}

// Len returns the number of symbols in the table.
func (t *SymbolTable) Len() int { return len(t.symbols) }
