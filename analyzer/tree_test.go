package analyzer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expunch/syntax"
)

func pos(line, col int) syntax.Position {
	return syntax.Position{Line: line, Column: col}
}

func TestTreeRegister(t *testing.T) {
	tree := NewTree()

	existing, seen := tree.Register(ModulePath{"a", "b"}, "/src/a/b.rs")
	assert.False(t, seen)
	assert.Empty(t, existing)

	// intermediate node exists without a file
	a := tree.Lookup(ModulePath{"a"})
	require.NotNil(t, a)
	assert.Empty(t, a.File())

	existing, seen = tree.Register(ModulePath{"a", "b"}, "/other.rs")
	assert.True(t, seen)
	assert.Equal(t, "/src/a/b.rs", existing)
	assert.Equal(t, "/src/a/b.rs", tree.Lookup(ModulePath{"a", "b"}).File())

	_, seen = tree.Register(ModulePath{"a"}, "/src/a.rs")
	assert.False(t, seen)
	assert.Equal(t, "/src/a.rs", a.File())
}

func TestTreeChildrenInDiscoveryOrder(t *testing.T) {
	tree := NewTree()
	tree.Register(nil, "/main.rs")
	for _, name := range []string{"zeta", "alpha", "mid", "alpha"} {
		tree.Register(ModulePath{name}, "/"+name+".rs")
	}
	var names []string
	for _, c := range tree.Root().Children() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
}

func TestTreeAppendSpan(t *testing.T) {
	tree := NewTree()
	tree.Register(ModulePath{"util"}, "/util.rs")

	assert.True(t, tree.AppendSpan(ModulePath{"util"}, ReplacementSpan{Start: pos(1, 0), End: pos(1, 9)}))
	assert.False(t, tree.AppendSpan(ModulePath{"missing"}, ReplacementSpan{}))
	assert.Nil(t, tree.Lookup(ModulePath{"missing"}))
	assert.Len(t, tree.Lookup(ModulePath{"util"}).Spans(), 1)
}

func TestTreeFinalizeSortsSpans(t *testing.T) {
	tree := NewTree()
	tree.Register(nil, "/main.rs")
	tree.Register(ModulePath{"a"}, "/a.rs")
	for _, s := range []ReplacementSpan{
		{Start: pos(3, 0), Replacement: "third"},
		{Start: pos(1, 4), Replacement: "second"},
		{Start: pos(1, 0), Replacement: "first"},
	} {
		tree.AppendSpan(nil, s)
	}
	tree.AppendSpan(ModulePath{"a"}, ReplacementSpan{Start: pos(2, 0), Replacement: "y"})
	tree.AppendSpan(ModulePath{"a"}, ReplacementSpan{Start: pos(1, 0), Replacement: "x"})
	tree.Finalize()

	var got []string
	for _, s := range tree.Root().Spans() {
		got = append(got, s.Replacement)
	}
	assert.Equal(t, []string{"first", "second", "third"}, got)
	assert.Equal(t, "x", tree.Lookup(ModulePath{"a"}).Spans()[0].Replacement)
}

func TestTreeWalk(t *testing.T) {
	tree := NewTree()
	tree.Register(nil, "/main.rs")
	tree.Register(ModulePath{"libpkg", "shape"}, "/shape.rs")
	tree.Register(ModulePath{"libpkg"}, "/lib.rs")
	tree.Register(ModulePath{"util"}, "/util.rs")

	var paths []string
	require.NoError(t, tree.Walk(func(path ModulePath, n *Node) error {
		paths = append(paths, path.String()+"="+n.File())
		return nil
	}))
	assert.Equal(t, []string{"=/main.rs", "libpkg=/lib.rs", "libpkg::shape=/shape.rs", "util=/util.rs"}, paths)

	stop := errors.New("stop")
	calls := 0
	err := tree.Walk(func(ModulePath, *Node) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}
