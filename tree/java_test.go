package tree

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodSignature(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		nodeType string
		expected string
	}{
		{
			name:     "no parameters",
			source:   `class A { void m() {} }`,
			nodeType: "method_declaration",
			expected: "m()",
		},
		{
			name:     "generic and qualified parameters",
			source:   `class A { void m(java.util.List<String> a, int[] b) {} }`,
			nodeType: "method_declaration",
			expected: "m(List,int[])",
		},
		{
			name:     "varargs",
			source:   `class A { void m(String... args) {} }`,
			nodeType: "method_declaration",
			expected: "m(String[])",
		},
		{
			name:     "constructor",
			source:   `class A { A(int x) {} }`,
			nodeType: "constructor_declaration",
			expected: "<init>(int)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			root := parse(t, tc.source)
			method := find(t, root, tc.nodeType)
			assert.Equal(t, tc.expected, MethodSignature(method.Leaf(), []byte(tc.source)))
		})
	}
}

func TestSignatureMatches(t *testing.T) {
	tests := []struct {
		pattern   string
		signature string
		expected  bool
	}{
		{pattern: "m", signature: "m(int)", expected: true},
		{pattern: "m()", signature: "m()", expected: true},
		{pattern: "m(Ljava/lang/String;)V", signature: "m(String)", expected: false},
		{pattern: "m(java.lang.String)V", signature: "m(String)", expected: true},
		{pattern: "m(Map<K, V>, int)", signature: "m(Map,int)", expected: true},
		{pattern: "m(String...)", signature: "m(String[])", expected: true},
		{pattern: "n", signature: "m()", expected: false},
		{pattern: "", signature: "m()", expected: false},
		{pattern: "m(", signature: "m()", expected: false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, SignatureMatches(tc.pattern, tc.signature), tc.pattern)
	}
}

func TestDeclarationHelpers(t *testing.T) {
	src := `class A {
  int a, b;
  void m(@Deprecated java.util.List<String>[] xs, String... rest) throws java.io.IOException {
    if (xs instanceof Object) {}
  }
}`
	root := parse(t, src)
	source := []byte(src)

	field := find(t, root, "field_declaration").Leaf()
	assert.Equal(t, []string{"a", "b"}, DeclaredNames(field, source))
	assert.Equal(t, "int", DeclaredType(field).Content(source))

	method := find(t, root, "method_declaration").Leaf()
	params := Parameters(method)
	require.Len(t, params, 2)
	assert.Equal(t, []string{"xs"}, DeclaredNames(params[0], source))

	array := DeclaredType(params[0])
	require.Equal(t, "array_type", array.Type())
	assert.Equal(t, "generic_type", ElementType(array).Type())
	assert.Equal(t, "java.util.List", BaseType(ElementType(array)).Content(source))
	assert.Equal(t, int(array.EndByte())-2, BracketStart(array))

	assert.Equal(t, "String", DeclaredType(params[1]).Content(source))

	throws := ThrowsClause(method)
	require.NotNil(t, throws)
	assert.Equal(t, "scoped_type_identifier", throws.NamedChild(0).Type())
	assert.Equal(t, "block", Body(method).Type())

	instanceOf := find(t, root, "instanceof_expression").Leaf()
	assert.Equal(t, "Object", InstanceOfType(instanceOf).Content(source))

	paramPath := find(t, root, "formal_parameter")
	assert.True(t, Same(method, DeclaringMethod(paramPath).Leaf()))
	assert.Nil(t, DeclaringMethod(find(t, root, "field_declaration")))

	class := find(t, root, "class_declaration").Leaf()
	assert.Equal(t, "A", ClassName(class, source))
}

func TestEraseType(t *testing.T) {
	assert.Equal(t, "List[]", EraseType("java.util.List<String> []"))
	assert.Equal(t, "Entry", EraseType("Map.Entry<K, V>"))
	assert.Equal(t, "int", EraseType("int"))
}

func TestDeclarationHelpers_Statements(t *testing.T) {
	src := `class A {
  void m(java.util.List<String> xs, java.io.InputStream in) throws Exception {
    for (final String s : xs) {}
    try (java.io.Reader r = open(); in) {
    } catch (IllegalStateException | RuntimeException e) {}
  }
}`
	root := parse(t, src)
	source := []byte(src)

	loop := find(t, root, "enhanced_for_statement").Leaf()
	assert.Equal(t, KindVariable, KindOf(loop))
	assert.Equal(t, []string{"s"}, DeclaredNames(loop, source))
	assert.Equal(t, "String", DeclaredType(loop).Content(source))

	catch := find(t, root, "catch_formal_parameter").Leaf()
	assert.Equal(t, KindVariable, KindOf(catch))
	assert.Equal(t, []string{"e"}, DeclaredNames(catch, source))
	assert.Equal(t, "IllegalStateException", DeclaredType(catch).Content(source))

	var resources []*sitter.Node
	_ = Walk(root, func(path *Path) error {
		if path.Leaf().Type() == "resource" {
			resources = append(resources, path.Leaf())
		}
		return nil
	})
	require.Len(t, resources, 2)
	assert.Equal(t, KindVariable, KindOf(resources[0]))
	assert.Equal(t, []string{"r"}, DeclaredNames(resources[0], source))
	assert.Equal(t, "java.io.Reader", DeclaredType(resources[0]).Content(source))
	assert.Equal(t, KindOther, KindOf(resources[1]))
}
