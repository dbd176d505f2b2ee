package tree

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// Parse parses Java source code into a tree-sitter syntax tree.
func Parse(ctx context.Context, src []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())

	parsed, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	if parsed == nil {
		return nil, errors.New("failed to parse source: empty tree")
	}
	return parsed, nil
}

// ParseRoot parses src and returns the compilation unit node.
func ParseRoot(ctx context.Context, src []byte) (*sitter.Node, error) {
	parsed, err := Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	return parsed.RootNode(), nil
}
