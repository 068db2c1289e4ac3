package cache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sandrolain/ecmatool/pkg/ast"
	"github.com/sandrolain/ecmatool/pkg/cache"
	"github.com/sandrolain/ecmatool/pkg/diagnostic"
)

func TestCacheNew(t *testing.T) {
	c := cache.New(10)
	require.Equal(t, 0, c.Len())
	require.Equal(t, 10, c.Capacity())
}

func TestCacheDefaultCapacity(t *testing.T) {
	c := cache.New(0)
	require.Equal(t, 256, c.Capacity())
}

func TestCacheSetGet(t *testing.T) {
	c := cache.New(4)
	prog := &ast.Program{}
	sink := diagnostic.NewSink()
	c.Set("const x = 1;", prog, sink)
	require.Equal(t, 1, c.Len())

	got, gotSink, ok := c.Get("const x = 1;")
	require.True(t, ok)
	require.Same(t, prog, got)
	require.Same(t, sink, gotSink)
}

func TestCacheMiss(t *testing.T) {
	c := cache.New(4)
	_, _, ok := c.Get("missing")
	require.False(t, ok)
}

func TestCacheLRUEviction(t *testing.T) {
	c := cache.New(3)
	for _, src := range []string{"a;", "b;", "c;", "d;"} {
		c.Set(src, &ast.Program{}, diagnostic.NewSink())
	}
	require.Equal(t, 3, c.Len())
	// "a;" was the least recently used and should have been evicted.
	_, _, ok := c.Get("a;")
	require.False(t, ok)
	_, _, ok = c.Get("d;")
	require.True(t, ok)
}

func TestCacheGetPromotesToFront(t *testing.T) {
	c := cache.New(2)
	c.Set("a;", &ast.Program{}, diagnostic.NewSink())
	c.Set("b;", &ast.Program{}, diagnostic.NewSink())
	// touch "a;" so it becomes MRU, making "b;" the eviction candidate.
	_, _, ok := c.Get("a;")
	require.True(t, ok)
	c.Set("c;", &ast.Program{}, diagnostic.NewSink())

	_, _, ok = c.Get("b;")
	require.False(t, ok, "b; should have been evicted")
	_, _, ok = c.Get("a;")
	require.True(t, ok, "a; should still be cached")
}

func TestCacheGetOrParse(t *testing.T) {
	c := cache.New(4)
	calls := 0
	parse := func() (*ast.Program, *diagnostic.Sink) {
		calls++
		return &ast.Program{}, diagnostic.NewSink()
	}

	prog1, _ := c.GetOrParse("x;", parse)
	prog2, _ := c.GetOrParse("x;", parse)
	require.Same(t, prog1, prog2)
	require.Equal(t, 1, calls, "parse should only run once per source")
}

func TestCacheInvalidateAndClear(t *testing.T) {
	c := cache.New(4)
	c.Set("a;", &ast.Program{}, diagnostic.NewSink())
	c.Set("b;", &ast.Program{}, diagnostic.NewSink())

	c.Invalidate("a;")
	_, _, ok := c.Get("a;")
	require.False(t, ok)
	require.Equal(t, 1, c.Len())

	c.Clear()
	require.Equal(t, 0, c.Len())
}
