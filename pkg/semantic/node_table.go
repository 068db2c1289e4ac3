package semantic

import "github.com/sandrolain/ecmatool/pkg/ast"

// nodeEntry is one row of the NodeTable : "every AST node
// assigned a NodeId with its AstKind and parent".
type nodeEntry struct {
	kind   ast.Kind
	parent ast.NodeID
	scope  ScopeID
}

// NodeTable assigns a dense ast.NodeID to every structural node visited
// by the Builder and records its kind, parent, and owning scope, so
// downstream consumers (lints, transforms) can answer "what scope / what
// parent am I in" from an id alone, without re-walking the tree.
type NodeTable struct {
	entries []nodeEntry
}

func newNodeTable() *NodeTable {
	// Entry 0 is reserved for ast.NoNodeID; real nodes start at 1.
	return &NodeTable{entries: make([]nodeEntry, 1)}
}

// Add registers a node, returning its freshly assigned id.
func (t *NodeTable) Add(kind ast.Kind, parent ast.NodeID, scope ScopeID) ast.NodeID {
	id := ast.NodeID(len(t.entries))
	t.entries = append(t.entries, nodeEntry{kind: kind, parent: parent, scope: scope})
	return id
}

// Kind returns the AstKind tag recorded for id.
func (t *NodeTable) Kind(id ast.NodeID) ast.Kind { return t.entries[id].kind }

// Parent returns the parent node id recorded for id (ast.NoNodeID at the
// Program root).
func (t *NodeTable) Parent(id ast.NodeID) ast.NodeID { return t.entries[id].parent }

// Scope returns the scope id that was active when id was visited.
func (t *NodeTable) Scope(id ast.NodeID) ScopeID { return t.entries[id].scope }

// Len returns the number of nodes registered, including the reserved
// zero entry.
func (t *NodeTable) Len() int { return len(t.entries) }
