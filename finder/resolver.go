package finder

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/annotator/source"
	"github.com/viant/annotator/tree"
)

// NoPosition is returned for a method without a return type; it marks the
// absence of a type prefix position rather than the start of the file.
const NoPosition = 0

// Resolver computes, for a matched node, the offset immediately before the
// syntactic element an annotation must prefix.
type Resolver struct {
	text    source.Text
	content []byte
}

// NewResolver creates a resolver scanning text.
func NewResolver(text source.Text) *Resolver {
	return &Resolver{text: text}
}

// Position resolves the insertion offset for the leaf of path.
func (r *Resolver) Position(ctx context.Context, path *tree.Path) (int, error) {
	node := path.Leaf()
	switch tree.KindOf(node) {
	case tree.KindVariable:
		return r.declaration(ctx, node)
	case tree.KindMethod:
		return method(node), nil
	case tree.KindIdentifier, tree.KindPrimitiveType:
		return r.elementType(ctx, path, start(node))
	case tree.KindParameterizedType:
		return r.elementType(ctx, path, start(tree.BaseType(node)))
	case tree.KindBlock:
		return r.block(ctx, path)
	case tree.KindArrayType:
		return arrayType(node)
	}
	return 0, fmt.Errorf("%w: no insertion rule for %s", ErrUnsupported, describe(node))
}

// AfterParen returns the index following the first ')' at or after from, or
// from itself when there is none.
func (r *Resolver) AfterParen(ctx context.Context, from int) (int, error) {
	text, err := r.source(ctx)
	if err != nil {
		return 0, err
	}
	if index := source.IndexForward(text, from, ')'); index != -1 {
		return index + 1, nil
	}
	return from, nil
}

// declaration positions before the declared type; a parameterized type is
// prefixed at its base name and an array at its first dimension.
func (r *Resolver) declaration(ctx context.Context, decl *sitter.Node) (int, error) {
	declared := tree.DeclaredType(decl)
	if declared == nil {
		return 0, fmt.Errorf("%w: declaration without type: %s", ErrStructure, describe(decl))
	}
	switch tree.KindOf(declared) {
	case tree.KindParameterizedType:
		return start(tree.BaseType(declared)), nil
	case tree.KindArrayType:
		element := tree.ElementType(declared)
		nominal := start(element)
		if tree.KindOf(element) == tree.KindParameterizedType {
			nominal = start(tree.BaseType(element))
		}
		return r.afterBracket(ctx, nominal)
	}
	return start(declared), nil
}

func method(node *sitter.Node) int {
	returnType := node.ChildByFieldName("type")
	if returnType == nil {
		return NoPosition
	}
	return start(returnType)
}

// elementType moves nominal inside the brackets when the node is the element
// type of an array, so the annotation applies to the array dimension.
func (r *Resolver) elementType(ctx context.Context, path *tree.Path, nominal int) (int, error) {
	if tree.KindOf(path.ParentLeaf()) != tree.KindArrayType {
		return nominal, nil
	}
	return r.afterBracket(ctx, nominal)
}

// block positions right after the parameter list of the method owning the body.
func (r *Resolver) block(ctx context.Context, path *tree.Path) (int, error) {
	body := path.Leaf()
	owner := path.ParentLeaf()
	if tree.KindOf(owner) != tree.KindMethod {
		return 0, fmt.Errorf("%w: block has non-method parent %s", ErrStructure, describe(owner))
	}
	from := start(body)
	if throws := tree.ThrowsClause(owner); throws != nil && throws.NamedChildCount() > 0 {
		first := throws.NamedChild(0)
		if first.Type() != "type_identifier" {
			return 0, fmt.Errorf("%w: unrecognized throws (kind=%s): %s", ErrUnsupported, first.Type(), describe(first))
		}
		from = start(first) - len(tree.ThrowsKeyword)
	}
	text, err := r.source(ctx)
	if err != nil {
		return 0, err
	}
	if index := source.IndexBackward(text, from, ')'); index != -1 {
		return index + 1, nil
	}
	return from, nil
}

func arrayType(node *sitter.Node) (int, error) {
	if offset := tree.BracketStart(node); offset != -1 {
		return offset, nil
	}
	return 0, fmt.Errorf("%w: array type without dimensions: %s", ErrStructure, describe(node))
}

func (r *Resolver) afterBracket(ctx context.Context, from int) (int, error) {
	text, err := r.source(ctx)
	if err != nil {
		return 0, err
	}
	if index := source.IndexForward(text, from, '['); index != -1 {
		return index + 1, nil
	}
	return from, nil
}

func (r *Resolver) source(ctx context.Context) ([]byte, error) {
	if r.content != nil {
		return r.content, nil
	}
	if r.text == nil {
		return nil, fmt.Errorf("%w: no source text", ErrSource)
	}
	content, err := r.text.Content(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSource, err)
	}
	r.content = content
	return content, nil
}

func start(node *sitter.Node) int {
	if node == nil {
		return 0
	}
	return int(node.StartByte())
}

func describe(node *sitter.Node) string {
	if node == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s@%d", node.Type(), node.StartByte())
}
