package arena

import "testing"

func TestAllocatorBumpsWithinChunk(t *testing.T) {
	a := NewSized(256)
	b1 := a.Alloc(16)
	b2 := a.Alloc(16)
	if &b1[0] == &b2[0] {
		t.Fatalf("expected distinct allocations")
	}
	if a.Used() != 32 {
		t.Fatalf("Used() = %d, want 32", a.Used())
	}
}

func TestAllocatorGrowsNewChunk(t *testing.T) {
	a := NewSized(32)
	a.Alloc(24)
	if a.ChunkCount() != 1 {
		t.Fatalf("expected 1 chunk before overflow")
	}
	a.Alloc(24) // doesn't fit in remaining 8 bytes of first chunk
	if a.ChunkCount() != 2 {
		t.Fatalf("expected 2 chunks after overflow, got %d", a.ChunkCount())
	}
}

func TestAllocatorAlignsSize(t *testing.T) {
	a := NewSized(256)
	b := a.Alloc(3)
	if len(b) != 3 {
		t.Fatalf("Alloc should return exactly the requested length, got %d", len(b))
	}
	if a.Used() != 8 {
		t.Fatalf("Used() should reflect alignment padding: got %d, want 8", a.Used())
	}
}

func TestAllocatorReset(t *testing.T) {
	a := NewSized(64)
	a.Alloc(40)
	a.Alloc(32) // forces a second chunk
	a.Reset()
	if a.ChunkCount() != 1 {
		t.Fatalf("Reset should drop extra chunks, got %d chunks", a.ChunkCount())
	}
	if a.Used() != 0 {
		t.Fatalf("Reset should rewind cursor to 0, got %d", a.Used())
	}
}

func TestPoolReusesReleasedArena(t *testing.T) {
	p := NewPool()
	a1 := p.Acquire()
	a1.Alloc(64)
	p.Release(a1)
	if p.Len() != 1 {
		t.Fatalf("expected 1 idle arena in pool, got %d", p.Len())
	}
	a2 := p.Acquire()
	if a2 != a1 {
		t.Fatalf("expected pool to hand back the released arena")
	}
	if a2.Used() != 0 {
		t.Fatalf("reused arena should have been reset, Used() = %d", a2.Used())
	}
	if p.Len() != 0 {
		t.Fatalf("pool should be empty after Acquire, got %d", p.Len())
	}
}

func TestPoolConstructsWhenEmpty(t *testing.T) {
	p := NewPool()
	a := p.Acquire()
	if a == nil {
		t.Fatal("Acquire on empty pool should construct a new arena")
	}
}
