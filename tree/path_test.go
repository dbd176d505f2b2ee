package tree

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *sitter.Node {
	t.Helper()
	root, err := ParseRoot(context.Background(), []byte(src))
	require.NoError(t, err)
	return root
}

func find(t *testing.T, root *sitter.Node, nodeType string) *Path {
	t.Helper()
	var found *Path
	_ = Walk(root, func(path *Path) error {
		if found == nil && path.Leaf().Type() == nodeType {
			found = path
		}
		return nil
	})
	require.NotNil(t, found, nodeType)
	return found
}

func TestPath(t *testing.T) {
	root := parse(t, `class A { void m(int x) {} }`)
	path := find(t, root, "formal_parameter")

	assert.Equal(t, "formal_parameter", path.Leaf().Type())
	assert.Equal(t, "formal_parameters", path.ParentLeaf().Type())

	method := path.Enclosing(KindMethod)
	require.NotNil(t, method)
	assert.Equal(t, "method_declaration", method.Leaf().Type())
	assert.Nil(t, path.Enclosing(KindBlock))

	var rootPath *Path
	for cur := path; cur != nil; cur = cur.Parent() {
		rootPath = cur
	}
	assert.Equal(t, 1, rootPath.Len())
	assert.Equal(t, "program", rootPath.Leaf().Type())
	assert.Nil(t, rootPath.Parent())
	assert.Nil(t, rootPath.Parent().Leaf())
}

func TestPath_Push(t *testing.T) {
	root := parse(t, `class A {}`)
	base := NewPath(root)
	left := base.Push(root.NamedChild(0))
	right := base.Push(root.NamedChild(0))
	assert.Equal(t, 2, left.Len())
	assert.Equal(t, 1, base.Len())
	assert.True(t, Same(left.Leaf(), right.Leaf()))
	assert.True(t, Same(nil, nil))
	assert.False(t, Same(root, nil))
}

func TestWalk_PreOrder(t *testing.T) {
	root := parse(t, `class A { int f; void m() {} }`)
	var visited []string
	err := Walk(root, func(path *Path) error {
		switch KindOf(path.Leaf()) {
		case KindVariable, KindMethod, KindClass, KindBlock, KindPrimitiveType:
			visited = append(visited, path.Leaf().Type())
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"class_declaration",
		"field_declaration",
		"integral_type",
		"method_declaration",
		"void_type",
		"block",
	}, visited)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindOther, KindOf(nil))
	assert.Equal(t, "ArrayType", KindArrayType.String())
	assert.Equal(t, "Unknown", Kind(999).String())
}
