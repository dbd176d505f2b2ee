// Package occurrence ranks instances of an ordinally counted construct, such
// as instanceof checks, within their enclosing method.
package occurrence

import (
	"errors"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/annotator/tree"
)

var errFound = errors.New("found")

// IndexOf returns the 0-based rank of the instanceof expression target among
// all instanceof expressions of the method enclosing path, or -1 when path has
// no enclosing method or target does not occur in it.
func IndexOf(path *tree.Path, target *sitter.Node) int {
	return IndexOfKind(tree.KindInstanceOf, path, target)
}

// IndexOfKind is IndexOf for an arbitrary tracked construct kind.
func IndexOfKind(kind tree.Kind, path *tree.Path, target *sitter.Node) int {
	method := path.Enclosing(tree.KindMethod)
	if method == nil || target == nil {
		return -1
	}
	index := -1
	err := tree.WalkPath(method, func(candidate *tree.Path) error {
		node := candidate.Leaf()
		if tree.KindOf(node) != kind {
			return nil
		}
		index++
		if tree.Same(node, target) {
			return errFound
		}
		return nil
	})
	if !errors.Is(err, errFound) {
		return -1
	}
	return index
}
