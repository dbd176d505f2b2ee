package tree

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// ConstructorName is the method name used for constructors in signatures.
const ConstructorName = "<init>"

// ThrowsKeyword introduces the exception list of a method.
const ThrowsKeyword = "throws"

// DeclaredType returns the type node of a variable or parameter declaration.
func DeclaredType(decl *sitter.Node) *sitter.Node {
	if decl == nil {
		return nil
	}
	if typeNode := decl.ChildByFieldName("type"); typeNode != nil {
		return typeNode
	}
	if decl.Type() == "catch_formal_parameter" {
		return catchType(decl)
	}
	if decl.Type() == "resource" || decl.Type() == "enhanced_for_statement" {
		return nil
	}
	// spread_parameter carries its type as an unnamed field
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		child := decl.NamedChild(i)
		switch child.Type() {
		case "modifiers", "variable_declarator", "identifier":
			continue
		}
		return child
	}
	return nil
}

// catchType returns the first alternative of a catch parameter type, e.g.
// IOException in IOException | SQLException e.
func catchType(param *sitter.Node) *sitter.Node {
	for i := 0; i < int(param.NamedChildCount()); i++ {
		child := param.NamedChild(i)
		if child.Type() != "catch_type" {
			continue
		}
		if child.NamedChildCount() == 0 {
			return nil
		}
		return child.NamedChild(0)
	}
	return nil
}

// BaseType returns the base name of a parameterized type, e.g. List in List<String>.
func BaseType(generic *sitter.Node) *sitter.Node {
	if generic == nil || generic.NamedChildCount() == 0 {
		return nil
	}
	return generic.NamedChild(0)
}

// ElementType returns the element type of an array type.
func ElementType(array *sitter.Node) *sitter.Node {
	if array == nil {
		return nil
	}
	if element := array.ChildByFieldName("element"); element != nil {
		return element
	}
	if array.NamedChildCount() == 0 {
		return nil
	}
	return array.NamedChild(0)
}

// BracketStart returns the offset of the first '[' token of an array type's
// dimensions, or -1.
func BracketStart(array *sitter.Node) int {
	if array == nil {
		return -1
	}
	dims := array.ChildByFieldName("dimensions")
	if dims == nil {
		dims = array
	}
	for i := 0; i < int(dims.ChildCount()); i++ {
		child := dims.Child(i)
		if child != nil && child.Type() == "[" {
			return int(child.StartByte())
		}
	}
	return -1
}

// Parameters returns the formal parameters of a method or constructor in
// declaration order; a receiver parameter is not part of the list.
func Parameters(method *sitter.Node) []*sitter.Node {
	if method == nil {
		return nil
	}
	params := method.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}
	var result []*sitter.Node
	for i := 0; i < int(params.NamedChildCount()); i++ {
		child := params.NamedChild(i)
		switch child.Type() {
		case "formal_parameter", "spread_parameter":
			result = append(result, child)
		}
	}
	return result
}

// DeclaringMethod returns the method path declaring the parameter at the leaf
// of path, or nil when the leaf is not a method parameter.
func DeclaringMethod(path *Path) *Path {
	params := path.Parent()
	if params == nil || KindOf(params.Leaf()) != KindParameters {
		return nil
	}
	method := params.Parent()
	if KindOf(method.Leaf()) != KindMethod {
		return nil
	}
	return method
}

// Body returns the body block of a method or constructor, or nil.
func Body(method *sitter.Node) *sitter.Node {
	if method == nil {
		return nil
	}
	return method.ChildByFieldName("body")
}

// ThrowsClause returns the throws node of a method or constructor, or nil.
func ThrowsClause(method *sitter.Node) *sitter.Node {
	if method == nil {
		return nil
	}
	for i := 0; i < int(method.NamedChildCount()); i++ {
		child := method.NamedChild(i)
		if child.Type() == "throws" {
			return child
		}
	}
	return nil
}

// InstanceOfType returns the type operand of an instanceof expression.
func InstanceOfType(expr *sitter.Node) *sitter.Node {
	if expr == nil {
		return nil
	}
	if right := expr.ChildByFieldName("right"); right != nil {
		return right
	}
	if pattern := expr.ChildByFieldName("pattern"); pattern != nil {
		if pattern.NamedChildCount() > 0 {
			return pattern.NamedChild(0)
		}
		return pattern
	}
	for i := int(expr.NamedChildCount()) - 1; i > 0; i-- {
		child := expr.NamedChild(i)
		if Is(child, KindIdentifier, KindParameterizedType, KindArrayType, KindPrimitiveType) {
			return child
		}
	}
	return nil
}

// MethodName returns the declared name of a method, ConstructorName for constructors.
func MethodName(method *sitter.Node, src []byte) string {
	if IsConstructor(method) {
		return ConstructorName
	}
	if name := method.ChildByFieldName("name"); name != nil {
		return name.Content(src)
	}
	return ""
}

// MethodSignature renders a method as name(T1,T2) using erased simple type
// names; varargs are rendered as arrays.
func MethodSignature(method *sitter.Node, src []byte) string {
	builder := strings.Builder{}
	builder.WriteString(MethodName(method, src))
	builder.WriteString("(")
	for i, param := range Parameters(method) {
		if i > 0 {
			builder.WriteString(",")
		}
		typeName := ""
		if typeNode := DeclaredType(param); typeNode != nil {
			typeName = typeNode.Content(src)
		}
		if param.Type() == "spread_parameter" {
			typeName += "[]"
		}
		// C-style array declarators: String args[]
		if dims := param.ChildByFieldName("dimensions"); dims != nil {
			typeName += dims.Content(src)
		}
		builder.WriteString(EraseType(typeName))
	}
	builder.WriteString(")")
	return builder.String()
}

// EraseType strips generic arguments, whitespace and package qualifiers from a
// source type name: java.util.List<String> [] becomes List[].
func EraseType(typeName string) string {
	builder := strings.Builder{}
	depth := 0
	for _, r := range typeName {
		switch {
		case r == '<':
			depth++
		case r == '>':
			if depth > 0 {
				depth--
			}
		case depth > 0:
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		default:
			builder.WriteRune(r)
		}
	}
	erased := builder.String()
	suffix := ""
	if index := strings.IndexByte(erased, '['); index != -1 {
		erased, suffix = erased[:index], erased[index:]
	}
	if index := strings.LastIndexByte(erased, '.'); index != -1 {
		erased = erased[index+1:]
	}
	return erased + suffix
}

// SignatureMatches reports whether a method signature matches pattern.
// A pattern without a parameter list matches by name; otherwise the
// parameter types are compared in erased form. Anything after the closing
// parenthesis (a return descriptor) is ignored.
func SignatureMatches(pattern, signature string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return false
	}
	open := strings.IndexByte(pattern, '(')
	if open == -1 {
		name := signature
		if index := strings.IndexByte(signature, '('); index != -1 {
			name = signature[:index]
		}
		return name == pattern
	}
	closing := strings.IndexByte(pattern, ')')
	if closing == -1 || closing < open {
		return false
	}
	return normalizeSignature(pattern[:closing+1]) == signature
}

func normalizeSignature(signature string) string {
	open := strings.IndexByte(signature, '(')
	name := strings.TrimSpace(signature[:open])
	inner := signature[open+1 : len(signature)-1]
	builder := strings.Builder{}
	builder.WriteString(name)
	builder.WriteString("(")
	if strings.TrimSpace(inner) != "" {
		for i, param := range splitParameters(inner) {
			if i > 0 {
				builder.WriteString(",")
			}
			if strings.HasSuffix(param, "...") {
				param = strings.TrimSuffix(param, "...") + "[]"
			}
			builder.WriteString(EraseType(param))
		}
	}
	builder.WriteString(")")
	return builder.String()
}

// splitParameters splits on commas outside generic brackets.
func splitParameters(list string) []string {
	var result []string
	depth, start := 0, 0
	for i, r := range list {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				result = append(result, strings.TrimSpace(list[start:i]))
				start = i + 1
			}
		}
	}
	return append(result, strings.TrimSpace(list[start:]))
}

// ClassName returns the simple name of a type declaration.
func ClassName(decl *sitter.Node, src []byte) string {
	if decl == nil {
		return ""
	}
	if name := decl.ChildByFieldName("name"); name != nil {
		return name.Content(src)
	}
	return ""
}

// DeclaredNames returns the variable names introduced by a declaration.
func DeclaredNames(decl *sitter.Node, src []byte) []string {
	if decl == nil {
		return nil
	}
	if name := decl.ChildByFieldName("name"); name != nil {
		return []string{name.Content(src)}
	}
	var names []string
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		child := decl.NamedChild(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		if name := child.ChildByFieldName("name"); name != nil {
			names = append(names, name.Content(src))
		}
	}
	if len(names) > 0 {
		return names
	}
	// catch and enhanced-for declare a single bare identifier
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		if child := decl.NamedChild(i); child.Type() == "identifier" {
			return []string{child.Content(src)}
		}
	}
	return nil
}
