package tree

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Path is an ancestor chain from the tree root down to a leaf node.
// Paths are immutable: Push shares the receiver as the parent of the new path.
type Path struct {
	parent *Path
	node   *sitter.Node
	depth  int
}

// NewPath returns a single-node path rooted at root.
func NewPath(root *sitter.Node) *Path {
	return &Path{node: root, depth: 1}
}

// Push returns a path extending p with n as the new leaf.
func (p *Path) Push(n *sitter.Node) *Path {
	if p == nil {
		return NewPath(n)
	}
	return &Path{parent: p, node: n, depth: p.depth + 1}
}

// Leaf returns the last node of the path.
func (p *Path) Leaf() *sitter.Node {
	if p == nil {
		return nil
	}
	return p.node
}

// Parent returns the path without its leaf, nil once the root is dropped.
func (p *Path) Parent() *Path {
	if p == nil {
		return nil
	}
	return p.parent
}

// Len returns the number of nodes on the path.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return p.depth
}

// ParentLeaf returns the immediate parent of the leaf, or nil.
func (p *Path) ParentLeaf() *sitter.Node {
	return p.Parent().Leaf()
}

// Enclosing walks up from p and returns the first sub-path whose leaf is one
// of kinds; the leaf itself is considered.
func (p *Path) Enclosing(kinds ...Kind) *Path {
	for cur := p; cur != nil; cur = cur.parent {
		if Is(cur.node, kinds...) {
			return cur
		}
	}
	return nil
}

// Same reports whether a and b denote the same syntax node.
func Same(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Type() == b.Type() && a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}

// Visitor is called for every named node in pre-order.
type Visitor func(path *Path) error

// Walk traverses root in pre-order, visiting each named node once with its
// ancestor path. Descent into children is unconditional; the first visitor
// error stops the traversal.
func Walk(root *sitter.Node, visit Visitor) error {
	if root == nil {
		return nil
	}
	return walk(NewPath(root), visit)
}

// WalkPath is Walk starting from an existing path, so visited paths keep the
// ancestors above path.
func WalkPath(path *Path, visit Visitor) error {
	if path == nil {
		return nil
	}
	return walk(path, visit)
}

func walk(path *Path, visit Visitor) error {
	if err := visit(path); err != nil {
		return err
	}
	node := path.node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		if err := walk(path.Push(child), visit); err != nil {
			return err
		}
	}
	return nil
}
