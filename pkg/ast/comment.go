package ast

import "github.com/sandrolain/ecmatool/pkg/span"

// CommentKind distinguishes `//` line comments from `/* */` block comments.
type CommentKind uint8

const (
	CommentLine CommentKind = iota
	CommentBlock
)

// CommentPosition records whether a comment attaches to the node that
// follows it (Leading) or the node that precedes it on the same line
// (Trailing). Attachment itself happens lazily, at formatting time, by
// scanning for the nearest node start offset.
type CommentPosition uint8

const (
	PositionUnattached CommentPosition = iota
	PositionLeading
	PositionTrailing
)

// Comment is recorded out-of-band by the lexer, not as an AST child
// : "{ span, kind ∈ {Line, Block}, attached_to: NodeIndex,
// position ∈ {Leading, Trailing} }". Comments form a parallel,
// sorted-by-offset sequence alongside the token stream.
type Comment struct {
	Span       span.Span
	Kind       CommentKind
	AttachedTo NodeID
	Position   CommentPosition
}
