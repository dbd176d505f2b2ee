// Package finder locates, in a parsed Java compilation unit, the UTF-8 byte
// offsets at which annotation text must be inserted.
//
// A Finder walks the syntax tree once. At every node that can carry an
// insertion position it tests the pending requests' criteria against the
// node's ancestor path, resolves the offset of each satisfied request and
// records it in a Positions map that a splicer applies highest offset first.
package finder

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/tliron/commonlog"
	"github.com/viant/annotator/criteria"
	"github.com/viant/annotator/occurrence"
	"github.com/viant/annotator/source"
	"github.com/viant/annotator/tree"
)

// Request asks for Text to be inserted before the element Criterion identifies.
type Request struct {
	Criterion criteria.Criterion
	Text      string
}

func (r *Request) String() string {
	return fmt.Sprintf("%q for %v", r.Text, r.Criterion)
}

// Finder matches insertion requests against one syntax tree.
type Finder struct {
	text      source.Text
	registry  *occurrence.Registry
	logger    commonlog.Logger
	requests  []*Request
	satisfied map[int]bool
}

// Option configures a Finder.
type Option func(*Finder)

// WithRegistry sets the occurrence registry used by offset-based criteria.
func WithRegistry(registry *occurrence.Registry) Option {
	return func(f *Finder) {
		f.registry = registry
	}
}

// WithLogger replaces the default "annotator.finder" logger.
func WithLogger(logger commonlog.Logger) Option {
	return func(f *Finder) {
		f.logger = logger
	}
}

// New creates a Finder over the raw text of the file the tree was parsed from.
func New(text source.Text, options ...Option) *Finder {
	f := &Finder{
		text:   text,
		logger: commonlog.GetLogger("annotator.finder"),
	}
	for _, option := range options {
		option(f)
	}
	if f.registry == nil {
		f.registry = occurrence.NewRegistry()
	}
	return f
}

// interesting lists the node kinds that carry insertion positions; anything
// else is only descended through.
var interesting = []tree.Kind{
	tree.KindMethod,
	tree.KindVariable,
	tree.KindIdentifier,
	tree.KindParameterizedType,
	tree.KindBlock,
	tree.KindArrayType,
	tree.KindPrimitiveType,
}

// Find walks root and returns the positions of the satisfied requests.
// Each request is satisfied by at most one node. Requests that match nothing
// are not an error; see Unsatisfied. A resolver failure aborts the pass.
func (f *Finder) Find(ctx context.Context, root *sitter.Node, requests []*Request) (*Positions, error) {
	f.requests = requests
	f.satisfied = make(map[int]bool, len(requests))
	positions := NewPositions()

	content, err := f.text.Content(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSource, err)
	}
	env := &criteria.Env{Source: content, Registry: f.registry}
	resolver := NewResolver(source.Bytes(content))

	f.logger.Debugf("resolving %d requests, %d methods with recorded occurrences", len(requests), f.registry.Methods())
	err = tree.Walk(root, func(path *tree.Path) error {
		if !tree.Is(path.Leaf(), interesting...) {
			return nil
		}
		if insideAnnotation(path) || !matchable(path) {
			return nil
		}
		return f.match(ctx, path, env, resolver, positions)
	})
	if err != nil {
		return nil, err
	}

	unsatisfied := f.Unsatisfied()
	for _, request := range unsatisfied {
		f.logger.Debugf("unable to insert: %v", request)
	}
	f.logger.Debugf("resolved %d positions, %d requests unsatisfied", positions.Len(), len(unsatisfied))
	return positions, nil
}

func (f *Finder) match(ctx context.Context, path *tree.Path, env *criteria.Env, resolver *Resolver, positions *Positions) error {
	leaf := path.Leaf()
	for i, request := range f.requests {
		if f.satisfied[i] {
			continue
		}
		if !criteria.IsSatisfiedBy(request.Criterion, path, env) {
			continue
		}
		offset, err := resolver.Position(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to resolve position for %v: %w", request, err)
		}
		f.satisfied[i] = true

		if tree.KindOf(leaf) == tree.KindMethod && offset == NoPosition {
			f.logger.Debugf("no type position for %v at %s", request, describe(leaf))
			continue
		}
		// body blocks already resolve past the parameter list
		if criteria.OnReceiver(request.Criterion) && tree.KindOf(leaf) != tree.KindBlock {
			if offset, err = resolver.AfterParen(ctx, offset); err != nil {
				return fmt.Errorf("failed to resolve receiver for %v: %w", request, err)
			}
		}
		if !positions.Put(offset, request.Text) {
			f.logger.Debugf("dropping %v: offset %d already taken", request, offset)
			continue
		}
		f.logger.Debugf("satisfied %v at %d (%s, depth %d)", request, offset, describe(leaf), path.Len())
	}
	return nil
}

// insideAnnotation reports whether the leaf belongs to an annotation already
// present in the source. tree-sitter nests annotation arguments below an
// argument list, so every ancestor is checked.
func insideAnnotation(path *tree.Path) bool {
	return path.Parent().Enclosing(tree.KindAnnotation) != nil
}

// matchable reports false for blocks that are not a method or constructor
// body: initializers, lambda bodies and statement blocks are walked through.
func matchable(path *tree.Path) bool {
	if tree.KindOf(path.Leaf()) != tree.KindBlock {
		return true
	}
	return tree.KindOf(path.ParentLeaf()) == tree.KindMethod
}

// Unsatisfied returns the requests of the last Find that matched no node.
func (f *Finder) Unsatisfied() []*Request {
	var result []*Request
	for i, request := range f.requests {
		if !f.satisfied[i] {
			result = append(result, request)
		}
	}
	return result
}
