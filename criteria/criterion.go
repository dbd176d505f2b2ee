// Package criteria defines the structural predicates that decide whether an
// ancestor path identifies the program element an insertion targets.
//
// Criterion is a closed set of variants; IsSatisfiedBy dispatches on the
// concrete type. Variants are plain values and never change once built.
package criteria

import (
	"fmt"
	"strings"
)

// Criterion is one of the variant types declared in this package.
type Criterion interface {
	fmt.Stringer
	criterion()
}

// Param matches the Index-th (0-based) formal parameter of a method or
// constructor. Method names the targeted method for diagnostics; combine with
// InMethod to restrict the enclosing method.
type Param struct {
	Method string
	Index  int
}

// Receiver matches the receiver of Method: its body block, or the declaration
// itself for methods without a body.
type Receiver struct {
	Method string
}

// Return matches the declaration of Method, positioned at its return type.
type Return struct {
	Method string
}

// Field matches the field declaration introducing Name.
type Field struct {
	Name string
}

// Local matches the local variable declaration introducing Name.
type Local struct {
	Name string
}

// InstanceOf matches the type operand of the Index-th instanceof check
// inside Method.
type InstanceOf struct {
	Method string
	Index  int
}

// InstanceOfOffset matches the instanceof check recorded at raw Offset for
// Method in the occurrence registry.
type InstanceOfOffset struct {
	Method string
	Offset int
}

// InMethod matches anything whose nearest enclosing method matches Signature.
type InMethod struct {
	Signature string
}

// InClass matches anything whose nearest enclosing type declaration is Name.
type InClass struct {
	Name string
}

// All matches when every member matches; an empty conjunction never matches.
type All []Criterion

func (Param) criterion()            {}
func (Receiver) criterion()         {}
func (Return) criterion()           {}
func (Field) criterion()            {}
func (Local) criterion()            {}
func (InstanceOf) criterion()       {}
func (InstanceOfOffset) criterion() {}
func (InMethod) criterion()         {}
func (InClass) criterion()          {}
func (All) criterion()              {}

func (c Param) String() string {
	return fmt.Sprintf("param %d of %s", c.Index, c.Method)
}

func (c Receiver) String() string {
	return "receiver of " + c.Method
}

func (c Return) String() string {
	return "return type of " + c.Method
}

func (c Field) String() string {
	return "field " + c.Name
}

func (c Local) String() string {
	return "local " + c.Name
}

func (c InstanceOf) String() string {
	return fmt.Sprintf("instanceof #%d in %s", c.Index, c.Method)
}

func (c InstanceOfOffset) String() string {
	return fmt.Sprintf("instanceof @%d in %s", c.Offset, c.Method)
}

func (c InMethod) String() string {
	return "in method " + c.Signature
}

func (c InClass) String() string {
	return "in class " + c.Name
}

func (c All) String() string {
	parts := make([]string, len(c))
	for i, member := range c {
		parts[i] = member.String()
	}
	return strings.Join(parts, " & ")
}

// OnReceiver reports whether c targets a method receiver.
func OnReceiver(c Criterion) bool {
	switch actual := c.(type) {
	case Receiver:
		return true
	case All:
		for _, member := range actual {
			if OnReceiver(member) {
				return true
			}
		}
	}
	return false
}
