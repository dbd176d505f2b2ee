package tree

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Kind classifies tree-sitter Java node types into the syntactic categories
// that carry insertion positions.
type Kind int

const (
	KindOther Kind = iota
	KindMethod
	KindVariable
	KindIdentifier
	KindParameterizedType
	KindBlock
	KindArrayType
	KindPrimitiveType
	KindAnnotation
	KindInstanceOf
	KindParameters
	KindClass
	KindThrows
)

var kindNames = map[Kind]string{
	KindOther:             "Other",
	KindMethod:            "Method",
	KindVariable:          "Variable",
	KindIdentifier:        "Identifier",
	KindParameterizedType: "ParameterizedType",
	KindBlock:             "Block",
	KindArrayType:         "ArrayType",
	KindPrimitiveType:     "PrimitiveType",
	KindAnnotation:        "Annotation",
	KindInstanceOf:        "InstanceOf",
	KindParameters:        "Parameters",
	KindClass:             "Class",
	KindThrows:            "Throws",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

var nodeKinds = map[string]Kind{
	"method_declaration":          KindMethod,
	"constructor_declaration":     KindMethod,
	"formal_parameter":            KindVariable,
	"spread_parameter":            KindVariable,
	"local_variable_declaration":  KindVariable,
	"field_declaration":           KindVariable,
	"catch_formal_parameter":      KindVariable,
	"resource":                    KindVariable,
	"enhanced_for_statement":      KindVariable,
	"type_identifier":             KindIdentifier,
	"generic_type":                KindParameterizedType,
	"block":                       KindBlock,
	"constructor_body":            KindBlock,
	"array_type":                  KindArrayType,
	"integral_type":               KindPrimitiveType,
	"floating_point_type":         KindPrimitiveType,
	"boolean_type":                KindPrimitiveType,
	"void_type":                   KindPrimitiveType,
	"annotation":                  KindAnnotation,
	"marker_annotation":           KindAnnotation,
	"instanceof_expression":       KindInstanceOf,
	"formal_parameters":           KindParameters,
	"class_declaration":           KindClass,
	"interface_declaration":       KindClass,
	"enum_declaration":            KindClass,
	"record_declaration":          KindClass,
	"annotation_type_declaration": KindClass,
	"throws":                      KindThrows,
}

// KindOf returns the category of n; nil nodes are KindOther.
func KindOf(n *sitter.Node) Kind {
	if n == nil {
		return KindOther
	}
	kind, ok := nodeKinds[n.Type()]
	if !ok {
		return KindOther
	}
	// try (existing) reuses a variable instead of declaring one
	if n.Type() == "resource" && n.ChildByFieldName("type") == nil {
		return KindOther
	}
	return kind
}

// Is reports whether n belongs to any of kinds.
func Is(n *sitter.Node, kinds ...Kind) bool {
	actual := KindOf(n)
	for _, kind := range kinds {
		if actual == kind {
			return true
		}
	}
	return false
}

// IsConstructor reports whether n declares a constructor.
func IsConstructor(n *sitter.Node) bool {
	return n != nil && n.Type() == "constructor_declaration"
}
