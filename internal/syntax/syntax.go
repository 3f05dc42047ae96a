// Package syntax defines the language-neutral tree consumed by the extractor.
//
// A front-end (see package parse) reduces a concrete syntax tree to these
// nodes. Only the shapes the extractor cares about get a dedicated Kind;
// everything else is Other.
package syntax

import "fmt"

// Kind tags a Node. The set is closed: a switch over Kind should list every
// value so a new kind shows up as a visible gap.
type Kind int

const (
	Other Kind = iota
	ClassDef
	ModuleDef
	SingletonClassBlock // class << self
	MethodDef           // def name
	SingletonMethodDef  // def self.name
	Sequence
	Call
	Symbol // literal symbol argument of a Call, Name holds the bare identifier
)

var kindNames = [...]string{
	Other:               "Other",
	ClassDef:            "ClassDef",
	ModuleDef:           "ModuleDef",
	SingletonClassBlock: "SingletonClassBlock",
	MethodDef:           "MethodDef",
	SingletonMethodDef:  "SingletonMethodDef",
	Sequence:            "Sequence",
	Call:                "Call",
	Symbol:              "Symbol",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is a read-only node of the tree.
//
// For ClassDef, ModuleDef and SingletonClassBlock the body is the last child:
// absent for an empty body, a Sequence for several statements, or the single
// statement itself. Use Body to get the statements uniformly.
//
// For Call, Name is the method being invoked and Children are its arguments.
type Node struct {
	Kind     Kind
	Name     string
	Line     int // 1-based line of the first token
	Receiver bool
	Children []*Node
}

// Body returns the statements of a scope node, normalizing the single
// statement and Sequence encodings into one list.
func (n *Node) Body() []*Node {
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	last := n.Children[len(n.Children)-1]
	if last == nil {
		return nil
	}
	if last.Kind == Sequence {
		return last.Children
	}
	return []*Node{last}
}

// IsScope reports whether n opens a class or module scope.
func (n *Node) IsScope() bool {
	return n != nil && (n.Kind == ClassDef || n.Kind == ModuleDef)
}

// IsBareCall reports whether n is a receiver-less call to name with exactly
// argc arguments.
func (n *Node) IsBareCall(name string, argc int) bool {
	return n != nil && n.Kind == Call && !n.Receiver && n.Name == name && len(n.Children) == argc
}

// Wrap encodes stmts as a scope body: nothing, the lone statement, or a
// Sequence. Front-ends use it to build ClassDef/ModuleDef children.
func Wrap(stmts []*Node) []*Node {
	switch len(stmts) {
	case 0:
		return nil
	case 1:
		return stmts
	default:
		return []*Node{{Kind: Sequence, Line: stmts[0].Line, Children: stmts}}
	}
}
