// Package semantic computes scopes, symbols, and reference bindings from
// a parsed ast.Program in a single depth-first traversal, grounded on
// the oxc_semantic ScopeTree (_examples/original_source/crates/oxc_semantic/src/scope.rs)
// and written in gosonata's style of small mutex-free value types holding
// plain Go maps and slices.
package semantic

import "github.com/sandrolain/ecmatool/pkg/ast"

// ScopeID identifies a lexical scope within one Program's ScopeTree.
type ScopeID uint32

// NoScopeID marks the absence of a parent scope (the Program/top scope).
const NoScopeID ScopeID = 0

// ScopeFlags is a bitset over the kinds of lexical scope: Top,
// Function, Arrow, Block, StrictMode, Constructor, GetAccessor,
// SetAccessor, CatchClause, ClassStaticBlock, Module, Switch, Class, With,
// FunctionName.
type ScopeFlags uint16

const (
	ScopeTop ScopeFlags = 1 << iota
	ScopeFunction
	ScopeArrow
	ScopeBlock
	ScopeStrictMode
	ScopeConstructor
	ScopeGetAccessor
	ScopeSetAccessor
	ScopeCatchClause
	ScopeClassStaticBlock
	ScopeModule
	ScopeSwitch
	ScopeClass
	ScopeWith
	ScopeFunctionName
)

// IsVarScope reports whether var/function declarations hoist to this
// scope: any function scope, or the top Program scope.
func (f ScopeFlags) IsVarScope() bool {
	return f&(ScopeFunction|ScopeTop) != 0
}

func (f ScopeFlags) IsStrict() bool { return f&ScopeStrictMode != 0 }

// scope is one entry in the ScopeTree.
type scope struct {
	id       ScopeID
	parent   ScopeID
	hasParent bool
	nodeID   ast.NodeID
	flags    ScopeFlags
	bindings map[string]SymbolID
	children []ScopeID
}

// ScopeTree holds every scope created while building the semantic model
// for one Program, mirroring oxc_semantic's ScopeTree (scope.rs):
// ancestors/find_binding/get_binding/add_scope/add_binding.
type ScopeTree struct {
	scopes []scope
}

// NewScopeTree creates an empty tree and seeds scope 0 as the Program
// (top) scope; isModule/strict control its initial flags.
func NewScopeTree(isModule, strict bool) *ScopeTree {
	t := &ScopeTree{}
	flags := ScopeTop
	if isModule {
		flags |= ScopeModule | ScopeStrictMode
	} else if strict {
		flags |= ScopeStrictMode
	}
	t.scopes = append(t.scopes, scope{
		id:       0,
		bindings: make(map[string]SymbolID),
	})
	t.scopes[0].flags = flags
	return t
}

// AddScope creates a new child scope of parent with the given flags,
// inheriting strict-mode stickiness.
func (t *ScopeTree) AddScope(parent ScopeID, nodeID ast.NodeID, flags ScopeFlags) ScopeID {
	if t.scopes[parent].flags.IsStrict() {
		flags |= ScopeStrictMode
	}
	id := ScopeID(len(t.scopes))
	t.scopes = append(t.scopes, scope{
		id:        id,
		parent:    parent,
		hasParent: true,
		nodeID:    nodeID,
		flags:     flags,
		bindings:  make(map[string]SymbolID),
	})
	t.scopes[parent].children = append(t.scopes[parent].children, id)
	return id
}

// Parent returns the parent scope id and whether one exists (false only
// for the root Program scope).
func (t *ScopeTree) Parent(id ScopeID) (ScopeID, bool) {
	return t.scopes[id].parent, t.scopes[id].hasParent
}

// Flags returns the flag bitset for scope id.
func (t *ScopeTree) Flags(id ScopeID) ScopeFlags {
	return t.scopes[id].flags
}

// NodeID returns the AST node that introduced scope id.
func (t *ScopeTree) NodeID(id ScopeID) ast.NodeID {
	return t.scopes[id].nodeID
}

// Children returns the immediate child scopes of id.
func (t *ScopeTree) Children(id ScopeID) []ScopeID {
	return t.scopes[id].children
}

// Ancestors returns the chain of scope ids from id up to (and including)
// the Program scope, innermost first.
func (t *ScopeTree) Ancestors(id ScopeID) []ScopeID {
	var out []ScopeID
	cur := id
	for {
		out = append(out, cur)
		parent, ok := t.Parent(cur)
		if !ok {
			return out
		}
		cur = parent
	}
}

// AddBinding records name -> symbol in scope id's binding map.
func (t *ScopeTree) AddBinding(id ScopeID, name string, sym SymbolID) {
	t.scopes[id].bindings[name] = sym
}

// RemoveBinding deletes name from scope id, used when a hoisted var's
// identity is rewritten to a different target scope.
func (t *ScopeTree) RemoveBinding(id ScopeID, name string) {
	delete(t.scopes[id].bindings, name)
}

// GetBinding returns the symbol bound to name directly in scope id
// (no ancestor search).
func (t *ScopeTree) GetBinding(id ScopeID, name string) (SymbolID, bool) {
	sym, ok := t.scopes[id].bindings[name]
	return sym, ok
}

// HasBinding reports whether scope id directly binds name.
func (t *ScopeTree) HasBinding(id ScopeID, name string) bool {
	_, ok := t.scopes[id].bindings[name]
	return ok
}

// FindBinding searches scope id and its ancestors for name, returning the
// nearest bound symbol.
func (t *ScopeTree) FindBinding(id ScopeID, name string) (SymbolID, bool) {
	cur := id
	for {
		if sym, ok := t.scopes[cur].bindings[name]; ok {
			return sym, true
		}
		parent, ok := t.Parent(cur)
		if !ok {
			return 0, false
		}
		cur = parent
	}
}

// NearestVarScope walks up from id to the nearest scope that var/function
// declarations hoist to.
func (t *ScopeTree) NearestVarScope(id ScopeID) ScopeID {
	cur := id
	for {
		if t.scopes[cur].flags.IsVarScope() {
			return cur
		}
		parent, ok := t.Parent(cur)
		if !ok {
			return cur
		}
		cur = parent
	}
}

// Len returns the number of scopes in the tree.
func (t *ScopeTree) Len() int { return len(t.scopes) }
