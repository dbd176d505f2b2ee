package criteria

import (
	"slices"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/annotator/occurrence"
	"github.com/viant/annotator/tree"
)

// Env carries the read-only state criteria consult.
type Env struct {
	Source   []byte
	Registry *occurrence.Registry
}

// IsSatisfiedBy reports whether path identifies the element c targets.
// A nil path is never satisfied.
func IsSatisfiedBy(c Criterion, path *tree.Path, env *Env) bool {
	if path == nil || c == nil {
		return false
	}
	switch actual := c.(type) {
	case Param:
		return matchParam(actual, path)
	case Receiver:
		return matchReceiver(actual, path, env)
	case Return:
		leaf := path.Leaf()
		return tree.KindOf(leaf) == tree.KindMethod && signatureMatches(actual.Method, leaf, env)
	case Field:
		return matchDeclaration(path, isField, actual.Name, env)
	case Local:
		return matchDeclaration(path, isLocal, actual.Name, env)
	case InstanceOf:
		return matchInstanceOf(actual.Method, actual.Index, path, env)
	case InstanceOfOffset:
		var registry *occurrence.Registry
		if env != nil {
			registry = env.Registry
		}
		index := registry.Lookup(actual.Method, actual.Offset)
		if index < 0 {
			return false
		}
		return matchInstanceOf(actual.Method, index, path, env)
	case InMethod:
		method := path.Enclosing(tree.KindMethod)
		return method != nil && signatureMatches(actual.Signature, method.Leaf(), env)
	case InClass:
		class := path.Enclosing(tree.KindClass)
		return class != nil && tree.ClassName(class.Leaf(), source(env)) == actual.Name
	case All:
		if len(actual) == 0 {
			return false
		}
		for _, member := range actual {
			if !IsSatisfiedBy(member, path, env) {
				return false
			}
		}
		return true
	}
	return false
}

func matchParam(c Param, path *tree.Path) bool {
	for ; path != nil; path = path.Parent() {
		leaf := path.Leaf()
		if tree.KindOf(leaf) != tree.KindVariable {
			continue
		}
		method := tree.DeclaringMethod(path)
		if method == nil || c.Index < 0 {
			return false
		}
		params := tree.Parameters(method.Leaf())
		return len(params) > c.Index && tree.Same(params[c.Index], leaf)
	}
	return false
}

func matchReceiver(c Receiver, path *tree.Path, env *Env) bool {
	leaf := path.Leaf()
	switch tree.KindOf(leaf) {
	case tree.KindBlock:
		method := path.ParentLeaf()
		if tree.KindOf(method) != tree.KindMethod || !tree.Same(tree.Body(method), leaf) {
			return false
		}
		return signatureMatches(c.Method, method, env)
	case tree.KindMethod:
		return tree.Body(leaf) == nil && signatureMatches(c.Method, leaf, env)
	}
	return false
}

func matchDeclaration(path *tree.Path, accept func(*tree.Path) bool, name string, env *Env) bool {
	for ; path != nil; path = path.Parent() {
		if tree.KindOf(path.Leaf()) != tree.KindVariable {
			continue
		}
		if !accept(path) {
			return false
		}
		return slices.Contains(tree.DeclaredNames(path.Leaf(), source(env)), name)
	}
	return false
}

func isField(path *tree.Path) bool {
	return path.Leaf().Type() == "field_declaration"
}

// isLocal accepts every method-local declaration: local variables, loop,
// catch and resource variables, and lambda parameters.
func isLocal(path *tree.Path) bool {
	switch path.Leaf().Type() {
	case "local_variable_declaration", "enhanced_for_statement", "catch_formal_parameter", "resource":
		return true
	case "formal_parameter", "spread_parameter":
		owner := path.Parent().Parent()
		return owner != nil && owner.Leaf().Type() == "lambda_expression"
	}
	return false
}

func matchInstanceOf(method string, index int, path *tree.Path, env *Env) bool {
	parent := path.Parent()
	expr := parent.Leaf()
	if tree.KindOf(expr) != tree.KindInstanceOf || !tree.Same(tree.InstanceOfType(expr), path.Leaf()) {
		return false
	}
	if method != "" {
		enclosing := parent.Enclosing(tree.KindMethod)
		if enclosing == nil || !signatureMatches(method, enclosing.Leaf(), env) {
			return false
		}
	}
	return occurrence.IndexOf(parent, expr) == index
}

func signatureMatches(pattern string, method *sitter.Node, env *Env) bool {
	return tree.SignatureMatches(pattern, tree.MethodSignature(method, source(env)))
}

func source(env *Env) []byte {
	if env == nil {
		return nil
	}
	return env.Source
}
