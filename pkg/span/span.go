// Package span defines the half-open byte-range position model shared by
// every stage of the compilation spine: lexer, parser, regex sub-parser,
// and semantic builder all tag their output with a Span into the original
// source text.
package span

import "fmt"

// Span is a half-open byte range [Start, End) into the original UTF-8
// source text. Offsets are 32-bit, so they only fit a source text
// shorter than math.MaxUint32 bytes; no stage of this module checks that
// length.
type Span struct {
	Start uint32
	End   uint32
}

// New creates a Span covering [start, end).
func New(start, end uint32) Span {
	return Span{Start: start, End: end}
}

// Zero is the empty span at the start of the source, used for synthetic
// nodes that have no corresponding source text.
var Zero = Span{}

// Len returns the number of bytes covered by the span.
func (s Span) Len() uint32 {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// IsEmpty reports whether the span covers zero bytes.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains reports whether other is fully contained within s: the span
// containment invariant every child node's span must satisfy against its
// parent's.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// ContainsOffset reports whether offset falls within [Start, End).
func (s Span) ContainsOffset(offset uint32) bool {
	return offset >= s.Start && offset < s.End
}

// Union returns the smallest span covering both s and other. Used when a
// parent node's span is computed from its first and last child.
func Union(a, b Span) Span {
	start := a.Start
	if b.Start < start {
		start = b.Start
	}
	end := a.End
	if b.End > end {
		end = b.End
	}
	return Span{Start: start, End: end}
}

// Text returns the slice of src covered by the span. Panics if the span is
// out of bounds of src, matching the programming-error semantics of a
// broken invariant.
func (s Span) Text(src string) string {
	return src[s.Start:s.End]
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}
