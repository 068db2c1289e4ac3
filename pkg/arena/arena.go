// Package arena implements the bump allocator backing every AST built by
// this module. All entities allocated in an Arena share its
// lifetime: nothing allocated from one Arena may outlive it, and nothing
// allocated from one Arena may reference memory owned by another.
//
// The general-purpose Allocator here generalizes the chunked bump
// allocator gosonata's parser used privately for its own ASTNode arena
// (pkg/types/ast.go's NodeArena): instead of being specialised to one
// node type, it hands out raw, already-zeroed byte slices of a requested
// size, so the AST package can lay out arbitrary node shapes on top of it.
package arena

import (
	"sync/atomic"

	"github.com/sandrolain/ecmatool/pkg/diagnostic"
)

// defaultChunkSize is the size, in bytes, of each chunk the Allocator
// requests from the Go heap. Chosen so that a typical source file's AST
// fits in one or two chunks.
const defaultChunkSize = 64 * 1024

// Align is the alignment, in bytes, of every allocation handed out by an
// Allocator. 8 is sufficient for every scalar and pointer-sized field the
// AST node shapes need.
const Align = 8

// Allocator is a bump allocator for arbitrary-size, pointer-free-shaped
// byte regions. A zero Allocator is not ready for use; construct one with
// New.
//
// Allocator is NOT safe for concurrent use: exactly one parser (or one
// semantic builder pass) owns an Allocator at a time, consistent with the
// single-threaded-per-program scheduling model.
type Allocator struct {
	chunks    [][]byte
	cur       int // index of the chunk currently being bumped
	pos       int // next free byte offset within chunks[cur]
	chunkSize int
}

// New creates an Allocator pre-warmed with one chunk of defaultChunkSize
// bytes.
func New() *Allocator {
	return NewSized(defaultChunkSize)
}

// NewSized creates an Allocator whose chunks are chunkSize bytes each.
// Used by the fixed-size pool (see fixed.go) to size the Allocator's
// single chunk to its BLOCK_SIZE-derived CHUNK_SIZE.
func NewSized(chunkSize int) *Allocator {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Allocator{
		chunks:    [][]byte{make([]byte, chunkSize)},
		chunkSize: chunkSize,
	}
}

// Alloc returns a zeroed byte slice of the requested size, aligned to
// Align. OOM (the Go runtime failing to grow the heap) is not something
// this allocator can recover from meaningfully, so grow allocates through
// ordinary Go make(), which panics on the process's behalf on true OOM.
func (a *Allocator) Alloc(size int) []byte {
	n := size
	size = alignUp(size, Align)
	if a.pos+size > len(a.chunks[a.cur]) {
		a.grow(size)
	}
	chunk := a.chunks[a.cur]
	b := chunk[a.pos : a.pos+n : a.pos+n]
	a.pos += size
	return b
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// grow appends a fresh chunk sized to hold at least `need` bytes.
func (a *Allocator) grow(need int) {
	size := a.chunkSize
	if need > size {
		size = alignUp(need, Align)
	}
	a.chunks = append(a.chunks, make([]byte, size))
	a.cur = len(a.chunks) - 1
	a.pos = 0
}

// Reset rewinds the allocator's cursor to the start of its first chunk,
// discarding (but not necessarily returning to the OS) the memory of
// every chunk grown beyond the first. This is the operation the Pool
// calls before returning an Allocator to its free-list.
func (a *Allocator) Reset() {
	if len(a.chunks) > 1 {
		// Keep only the first, largest-or-original chunk; drop the rest so a
		// pathological one-off large program doesn't keep every arena in the
		// pool oversized forever.
		a.chunks = a.chunks[:1]
	}
	a.cur = 0
	a.pos = 0
}

// Used returns the number of bytes consumed so far, for diagnostics and
// tests: the cursor within the current chunk plus the full length of
// every chunk before it.
func (a *Allocator) Used() int {
	total := a.pos
	for i := 0; i < a.cur; i++ {
		total += len(a.chunks[i])
	}
	return total
}

// ChunkCount returns how many chunks this allocator currently owns.
func (a *Allocator) ChunkCount() int {
	return len(a.chunks)
}

// idCounter hands out monotonically increasing Allocator ids for
// debugging and for the fixed-size raw-transfer metadata.
var idCounter uint32

// nextID returns the next id from an atomic add: the order IDs are
// handed out in doesn't matter, only that they're unique.
func nextID() uint32 {
	return atomic.AddUint32(&idCounter, 1) - 1
}

// tooManyAllocatorsErr builds the fatal error for an exhausted id
// counter. Neither Pool nor FixedSizePool calls it: FixedSizePool assigns
// ids from its own counter without a wrap-around check.
func tooManyAllocatorsErr() error {
	return diagnostic.NewFatal(diagnostic.CodeArenaOutOfMemory, "created too many arenas: id counter exhausted")
}
