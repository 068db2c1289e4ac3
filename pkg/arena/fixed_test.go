package arena

import (
	"testing"
	"unsafe"
)

// testBlockSize is a small stand-in for the real 2-GiB BlockSize, so the
// AST chunk stays small; each arena still over-allocates BlockAlign bytes
// of address space to find an aligned start.
const testBlockSize = 64 * 1024

func TestFixedSizeAllocatorIsBlockAligned(t *testing.T) {
	pool := NewFixedSizePoolWithBlockSize(testBlockSize)
	a := pool.Acquire()
	defer a.Free()

	if base := uintptr(unsafe.Pointer(&a.backing[a.chunkStart])); base%BlockAlign != 0 {
		t.Fatalf("chunk start %#x is not BlockAlign-aligned", base)
	}

	buf := a.Alloc(128)
	if len(buf) != 128 {
		t.Fatalf("Alloc length = %d, want 128", len(buf))
	}
	if a.blockSize != testBlockSize {
		t.Fatalf("block size = %d, want %d", a.blockSize, testBlockSize)
	}
}

func TestFixedSizeAllocatorDoubleOwnership(t *testing.T) {
	// Scenario 5 : acquire, share with a foreign runtime, free
	// once from each side; exactly one Free call actually releases memory,
	// regardless of order.
	pool := NewFixedSizePoolWithBlockSize(testBlockSize)

	a := pool.Acquire()
	a.MarkSharedWithForeignRuntime()
	if !a.DoubleOwned() {
		t.Fatal("expected DoubleOwned() to be true after sharing")
	}

	a.Free() // "Rust side" free: clears the flag, leaves memory alive
	if a.DoubleOwned() {
		t.Fatal("expected DoubleOwned() to be false after first Free")
	}
	if a.backing == nil {
		t.Fatal("memory should still be alive after first Free when double-owned")
	}

	a.Free() // "foreign GC" free: this one actually releases
	if a.backing != nil {
		t.Fatal("expected backing memory released after second Free")
	}
}

func TestFixedSizeAllocatorSingleOwnerFreesImmediately(t *testing.T) {
	pool := NewFixedSizePoolWithBlockSize(testBlockSize)
	a := pool.Acquire()
	a.Free()
	if a.backing != nil {
		t.Fatal("expected immediate release when never double-owned")
	}
}

func TestFixedSizePoolReusesAfterRelease(t *testing.T) {
	pool := NewFixedSizePoolWithBlockSize(testBlockSize)
	a1 := pool.Acquire()
	a1.Alloc(256)
	id1 := a1.Metadata().ID
	pool.Release(a1)

	a2 := pool.Acquire()
	if a2.Metadata().ID != id1 {
		t.Fatalf("expected reused arena to keep its allocator id, got %d want %d", a2.Metadata().ID, id1)
	}
	if a2.Used() != 0 {
		t.Fatalf("reused fixed arena should be reset, Used() = %d", a2.Used())
	}
}

func TestRawTransferMetadataLittleEndian(t *testing.T) {
	m := RawTransferMetadata{ProgramOffset: 0x01020304, NodeTableOffset: 0xAABBCCDD}
	b := m.Bytes()
	if b[0] != 0x04 || b[1] != 0x03 || b[2] != 0x02 || b[3] != 0x01 {
		t.Fatalf("ProgramOffset not little-endian: %v", b[:4])
	}
	if b[4] != 0xDD || b[5] != 0xCC || b[6] != 0xBB || b[7] != 0xAA {
		t.Fatalf("NodeTableOffset not little-endian: %v", b[4:8])
	}
}
