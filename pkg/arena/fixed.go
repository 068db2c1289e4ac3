package arena

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/google/uuid"
)

// Fixed-size arena layout constants:
//
//	[ AST chunk (chunkSize) | RawTransferMetadata (16B) | FixedSizeAllocatorMetadata ]
//
// chunkSize + rawMetadataSize + metadataSizeRounded == BlockSize.
const (
	// BlockSize is the size, in bytes, of the region a FixedSizeAllocator
	// guarantees is 4-GiB-aligned. 2 GiB.
	BlockSize = 1 << 31
	// BlockAlign is the alignment guarantee the raw-transfer buffer carries
	// so a foreign runtime can compress node pointers to 32-bit offsets.
	BlockAlign = 1 << 32
	// rawMetadataSize is the fixed size of RawTransferMetadata: program
	// root offset (u32) + node-table offset (u32), padded to 16 bytes for
	// alignment, little-endian.
	rawMetadataSize = 16
	// twoGiB / fourGiB name the over-allocation trick below.
	twoGiB  = 1 << 31
	fourGiB = 1 << 32
)

// metadataSizeRounded is sizeof(FixedSizeAllocatorMetadata) rounded up to
// a multiple of 16, so the chunk region preceding it stays 16-byte
// aligned at its end, as Bumpalo-style allocators require.
const metadataSizeRounded = 32 // id(4, padded)+uuid(16)+ptr placeholder(8)+flag(1, padded) -> rounded to 32

// chunkSizeFor returns the AST-chunk size for a fixed arena of the given
// total block size, per the layout equation above.
func chunkSizeFor(blockSize int) int {
	return blockSize - rawMetadataSize - metadataSizeRounded
}

// RawTransferMetadata is the 16-byte trailer appended after the AST chunk
// when a fixed-size arena's buffer is handed to a foreign runtime.
// Offsets are relative to the start of the buffer.
type RawTransferMetadata struct {
	ProgramOffset   uint32
	NodeTableOffset uint32
	_reserved       [8]byte
}

// Bytes encodes the metadata in the fixed little-endian layout a foreign
// runtime reading the raw-transfer buffer expects.
func (m RawTransferMetadata) Bytes() [16]byte {
	var out [16]byte
	putU32LE(out[0:4], m.ProgramOffset)
	putU32LE(out[4:8], m.NodeTableOffset)
	return out
}

func putU32LE(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// FixedSizeAllocatorMetadata sits after RawTransferMetadata, outside the
// region shared with the foreign side.
type FixedSizeAllocatorMetadata struct {
	// ID is the monotonically-increasing allocator id assigned by the
	// owning FixedSizePool.
	ID uint32
	// DebugID is a random human-legible identifier, distinct from ID.
	// This package only stores it; nothing here prints or reports it.
	DebugID uuid.UUID
	// doubleOwned is true while both this process and a foreign garbage
	// collector hold a reference to the same buffer. Sequentially
	// consistent: the stronger ordering costs nothing since the flag
	// is touched at most twice per arena.
	doubleOwned atomic.Bool
}

// FixedSizeAllocator wraps an Allocator whose single chunk is backed by a
// BlockSize-sized, BlockAlign-aligned allocation, suitable for raw
// transfer to a foreign runtime.
type FixedSizeAllocator struct {
	*Allocator
	meta *FixedSizeAllocatorMetadata
	// backing is the full over-allocated buffer; kept alive here so the
	// slice the Allocator's chunk points into is never collected out from
	// under it.
	backing []byte
	// chunkStart is the byte offset into backing where the 4-GiB-aligned
	// region begins.
	chunkStart int
	blockSize  int
}

// Metadata returns the FixedSizeAllocatorMetadata for this arena.
func (f *FixedSizeAllocator) Metadata() *FixedSizeAllocatorMetadata {
	return f.meta
}

// DoubleOwned reports whether a foreign runtime currently shares
// ownership of this arena's backing buffer.
func (f *FixedSizeAllocator) DoubleOwned() bool {
	return f.meta.doubleOwned.Load()
}

// MarkSharedWithForeignRuntime sets double_owned=true, recording that a
// foreign GC now also holds a reference to the buffer handed out by
// RawTransferBuffer.
func (f *FixedSizeAllocator) MarkSharedWithForeignRuntime() {
	f.meta.doubleOwned.Store(true)
}

// RawTransferBuffer returns the buffer to hand to a foreign runtime:
// exactly chunkSize+16 bytes (the AST chunk plus RawTransferMetadata),
// never including FixedSizeAllocatorMetadata.
func (f *FixedSizeAllocator) RawTransferBuffer(meta RawTransferMetadata) []byte {
	chunkSize := chunkSizeFor(f.blockSize)
	buf := f.backing[f.chunkStart : f.chunkStart+chunkSize+rawMetadataSize]
	trailer := meta.Bytes()
	copy(buf[chunkSize:], trailer[:])
	return buf
}

// Free releases this FixedSizeAllocator's backing memory, unless a
// foreign runtime still shares ownership of it, in which case it clears
// the double_owned flag and leaves the memory alive for the other owner
// to free later.
//
// Free is idempotent: it is safe to call once from each of the two
// owners (host, foreign GC); only the second call actually releases the
// memory (here: drops the last reference so the Go GC can reclaim it).
func (f *FixedSizeAllocator) Free() {
	wasDoubleOwned := f.meta.doubleOwned.Swap(false)
	if wasDoubleOwned {
		return
	}
	f.backing = nil
	f.Allocator = nil
}

// newFixedSizeAllocator allocates a BlockSize-aligned arena.
//
// oxc's equivalent allocates 2*BlockSize and uses whichever half lands
// on the BlockAlign (4-GiB) boundary — a trick that works because the
// Rust System allocator honors the requested alignment for the initial
// 2-GiB over-allocation, guaranteeing the base pointer is already
// 2-GiB-aligned, so only one bit of ambiguity (which half) remains.
// Go's make() gives no alignment guarantee at all for a []byte,
// so we over-allocate by a full BlockAlign instead of just BlockSize,
// and round the base pointer up to the next BlockAlign boundary
// ourselves; this costs more address space but is correct regardless of
// what alignment the runtime happened to hand back.
func newFixedSizeAllocator(id uint32, blockSize int) *FixedSizeAllocator {
	allocSize := blockSize + fourGiB
	backing := make([]byte, allocSize)

	base := uintptr(unsafe.Pointer(&backing[0]))
	misalignment := int(base % fourGiB)
	offset := 0
	if misalignment != 0 {
		offset = fourGiB - misalignment
	}

	chunkSize := chunkSizeFor(blockSize)
	chunk := backing[offset : offset+chunkSize : offset+chunkSize]

	alloc := &Allocator{
		chunks:    [][]byte{chunk},
		chunkSize: chunkSize,
	}

	return &FixedSizeAllocator{
		Allocator:  alloc,
		backing:    backing,
		chunkStart: offset,
		blockSize:  blockSize,
		meta: &FixedSizeAllocatorMetadata{
			ID:      id,
			DebugID: uuid.New(),
		},
	}
}

// reset restores the FixedSizeAllocator to its pristine state before
// being returned to the FixedSizePool: cursor rewound to chunk start and
// any extra chunks dropped. The first chunk is never replaced, so its data
// pointer stays at the BlockAlign-aligned start.
func (f *FixedSizeAllocator) reset() {
	f.Allocator.pos = 0
	f.Allocator.cur = 0
	f.Allocator.chunks = f.Allocator.chunks[:1]
}

// FixedSizePool is a thread-safe pool of FixedSizeAllocators, suitable
// for use with raw transfer to a foreign runtime. Distinct from Pool
// because its arenas carry the BlockAlign alignment guarantee and
// FixedSizeAllocatorMetadata that general-purpose arenas don't need.
type FixedSizePool struct {
	mu        sync.Mutex
	free      []*FixedSizeAllocator
	nextID    uint32
	blockSize int
}

// NewFixedSizePool creates a pool whose arenas use the real BlockSize
// (2 GiB). Each arena created is one real allocation of ~6 GiB (the block
// plus BlockAlign bytes of alignment slack); arenas are created lazily,
// on first Acquire, never up front.
func NewFixedSizePool() *FixedSizePool {
	return NewFixedSizePoolWithBlockSize(BlockSize)
}

// NewFixedSizePoolWithBlockSize creates a pool whose arenas use a
// caller-chosen block size, for tests and embedders that don't need a
// 2-GiB chunk. The alignment slack is not reduced: each arena still
// allocates blockSize plus BlockAlign bytes.
func NewFixedSizePoolWithBlockSize(blockSize int) *FixedSizePool {
	return &FixedSizePool{blockSize: blockSize}
}

// Acquire pops a FixedSizeAllocator from the pool, or constructs one,
// assigning it the next monotonically-increasing id.
func (p *FixedSizePool) Acquire() *FixedSizeAllocator {
	p.mu.Lock()
	if n := len(p.free); n > 0 {
		a := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		p.mu.Unlock()
		return a
	}
	id := p.nextID
	p.nextID++
	p.mu.Unlock()
	return newFixedSizeAllocator(id, p.blockSize)
}

// Release resets arena and returns it to the free-list.
func (p *FixedSizePool) Release(a *FixedSizeAllocator) {
	a.reset()
	p.mu.Lock()
	p.free = append(p.free, a)
	p.mu.Unlock()
}
