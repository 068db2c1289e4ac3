package offsetconv

import "testing"

func TestConvertAsciiIsIdentity(t *testing.T) {
	c := NewConverter("const x = 1;")
	for _, off := range []uint32{0, 1, 5, 11} {
		if got := c.Convert(off); got != off {
			t.Fatalf("Convert(%d) = %d, want %d", off, got, off)
		}
	}
}

func TestConvertOffsetZeroNeverTouchesRange(t *testing.T) {
	c := NewConverter("é")
	if got := c.Convert(0); got != 0 {
		t.Fatalf("Convert(0) = %d, want 0", got)
	}
}

func TestConvertAfterMultiByteCharacter(t *testing.T) {
	// "é" is U+00E9, 2 UTF-8 bytes, 1 UTF-16 unit.
	src := "é=1"
	c := NewConverter(src)
	// Byte offset 2 is right after "é" (2 bytes), which is UTF-16 offset 1.
	if got := c.Convert(2); got != 1 {
		t.Fatalf("Convert(2) = %d, want 1", got)
	}
	if got := c.Convert(3); got != 2 {
		t.Fatalf("Convert(3) = %d, want 2 (after '=')", got)
	}
}

func TestConvertSurrogatePair(t *testing.T) {
	// U+1F600 (grinning face) is 4 UTF-8 bytes, 2 UTF-16 units (surrogate pair).
	src := "\U0001F600x"
	c := NewConverter(src)
	if got := c.Convert(4); got != 2 {
		t.Fatalf("Convert(4) = %d, want 2", got)
	}
	if got := c.Convert(5); got != 3 {
		t.Fatalf("Convert(5) = %d, want 3", got)
	}
}

func TestConvertRepeatedNonASCIIScenario(t *testing.T) {
	// Interleaved Devanagari characters, each multi-byte in UTF-8 but a
	// single UTF-16 unit, repeated forward access exercising both the
	// fast path and findRangeAfter.
	src := "_ऊ_ऊ_"
	c := NewConverter(src)

	// Byte layout: '_'(1) + ऊ(3 bytes) + '_'(1) + ऊ(3 bytes) + '_'(1) = 9 bytes.
	// UTF-16 layout: 5 units total (each segment is 1 unit).
	want := map[uint32]uint32{
		0: 0,
		1: 1,
		4: 2,
		5: 3,
		8: 4,
		9: 5,
	}
	for off, expected := range want {
		if got := c.Convert(off); got != expected {
			t.Fatalf("Convert(%d) = %d, want %d", off, got, expected)
		}
	}
}

func TestConvertRandomAccessBeforeCachedRange(t *testing.T) {
	src := "é=é=é"
	c := NewConverter(src)
	// Prime the cache on the last segment, then access an earlier offset.
	c.Convert(8)
	if got := c.Convert(0); got != 0 {
		t.Fatalf("Convert(0) after priming = %d, want 0", got)
	}
	if got := c.Convert(2); got != 1 {
		t.Fatalf("Convert(2) = %d, want 1", got)
	}
}

func TestConvertBackRoundTrips(t *testing.T) {
	src := "_ऊ_ऊ_"
	c := NewConverter(src)
	for _, off := range []uint32{0, 1, 4, 5, 8, 9} {
		utf16 := c.Convert(off)
		back := c.ConvertBack(utf16)
		if back != off {
			t.Fatalf("ConvertBack(Convert(%d)=%d) = %d, want %d", off, utf16, back, off)
		}
	}
}
