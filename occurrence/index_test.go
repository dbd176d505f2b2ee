package occurrence

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/annotator/tree"
)

func instanceOfPaths(t *testing.T, src string) []*tree.Path {
	t.Helper()
	root, err := tree.ParseRoot(context.Background(), []byte(src))
	require.NoError(t, err)
	var paths []*tree.Path
	_ = tree.Walk(root, func(path *tree.Path) error {
		if tree.KindOf(path.Leaf()) == tree.KindInstanceOf {
			paths = append(paths, path)
		}
		return nil
	})
	return paths
}

func TestIndexOf(t *testing.T) {
	src := `class A {
  boolean m(Object o) {
    if (o instanceof String) { return true; }
    boolean b = o instanceof Integer && (o instanceof Long);
    return o instanceof Number;
  }
  boolean n(Object o) {
    return o instanceof CharSequence;
  }
}`
	paths := instanceOfPaths(t, src)
	require.Len(t, paths, 5)

	for j, path := range paths[:4] {
		assert.Equal(t, j, IndexOf(path, path.Leaf()), "rank %d", j)
	}
	assert.Equal(t, 0, IndexOf(paths[4], paths[4].Leaf()))

	// target outside the enclosing method is never visited
	assert.Equal(t, -1, IndexOf(paths[0], paths[4].Leaf()))
	assert.Equal(t, -1, IndexOf(paths[0], nil))
}

func TestIndexOf_NoEnclosingMethod(t *testing.T) {
	src := `class A {
  boolean f = ((Object) "x") instanceof String;
}`
	paths := instanceOfPaths(t, src)
	require.Len(t, paths, 1)
	assert.Equal(t, -1, IndexOf(paths[0], paths[0].Leaf()))
}

func TestIndexOf_NestedInAnonymousClass(t *testing.T) {
	src := `class A {
  void m(Object o) {
    boolean a = o instanceof String;
    Runnable r = new Runnable() {
      public void run() { boolean b = o instanceof Integer; }
    };
    boolean c = o instanceof Long;
  }
}`
	paths := instanceOfPaths(t, src)
	require.Len(t, paths, 3)
	assert.Equal(t, 0, IndexOf(paths[0], paths[0].Leaf()))
	// ranked within run(), its nearest enclosing method
	assert.Equal(t, 0, IndexOf(paths[1], paths[1].Leaf()))
	// the outer method counts everything inside it
	assert.Equal(t, 2, IndexOf(paths[2], paths[2].Leaf()))
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	registry.Record("m()", 3)
	registry.Record("m()", 17)
	registry.Record("m()", 40)
	registry.Record("n()", 5)

	assert.Equal(t, 0, registry.Lookup("m()", 3))
	assert.Equal(t, 1, registry.Lookup("m()", 17))
	assert.Equal(t, 2, registry.Lookup("m()", 40))
	assert.Equal(t, -1, registry.Lookup("m()", 9999))
	assert.Equal(t, -1, registry.Lookup("unknown()", 3))
	assert.Equal(t, 0, registry.Lookup("n()", 5))
	assert.Equal(t, 2, registry.Methods())

	registry.Close()
	assert.Equal(t, -1, registry.Lookup("m()", 3))
	registry.Record("m()", 1)
	assert.Equal(t, 0, registry.Lookup("m()", 1))

	registry.Open()
	assert.Equal(t, 0, registry.Methods())

	var nilRegistry *Registry
	assert.Equal(t, -1, nilRegistry.Lookup("m()", 1))
}

func TestRegistry_Concurrent(t *testing.T) {
	registry := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(method string) {
			defer wg.Done()
			for offset := 0; offset < 100; offset++ {
				registry.Record(method, offset)
			}
		}(string(rune('a' + i)))
	}
	wg.Wait()
	assert.Equal(t, 8, registry.Methods())
	assert.Equal(t, 42, registry.Lookup("c", 42))
}
