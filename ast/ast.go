/*
Package ast defines the abstract syntax tree consumed by the evaluator.

The tree is homogenous: every node is of type *Node and carries a kind tag,
a source line and a kind-specific payload. Trees are produced once by the
parser and are read-only afterwards.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the tag of a node.
type Kind int8

// Node kinds. The set is closed; the evaluator switches over all of them.
const (
	NoKind Kind = iota
	Program
	Array
	Number
	String
	Variable
	Call
	Block
)

var kindNames = [...]string{"None", "Program", "Array", "Number", "String", "Variable",
	"Function", "Expression"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindNames[k]
}

// Node is a node of the AST.
//
//    Program, Array, Block:  Children holds the ordered child nodes
//    Call:                   Name is the function name, Children are the arguments
//    Number:                 Num holds the value
//    String:                 Text holds the value
//    Variable:               Name holds the variable name
//
type Node struct {
	Kind     Kind
	Line     int
	Name     string
	Text     string
	Num      float64
	Children []*Node
}

// NewProgram creates the root node for a sequence of top-level nodes.
func NewProgram(children ...*Node) *Node {
	return &Node{Kind: Program, Children: children}
}

// NewArray creates an array literal node.
func NewArray(line int, children ...*Node) *Node {
	return &Node{Kind: Array, Line: line, Children: children}
}

// NewBlock creates an expression-block node.
func NewBlock(line int, children ...*Node) *Node {
	return &Node{Kind: Block, Line: line, Children: children}
}

// NewNumber creates a number literal node.
func NewNumber(line int, n float64) *Node {
	return &Node{Kind: Number, Line: line, Num: n}
}

// NewString creates a string literal node.
func NewString(line int, s string) *Node {
	return &Node{Kind: String, Line: line, Text: s}
}

// NewVariable creates a node referencing a variable by name.
func NewVariable(line int, name string) *Node {
	return &Node{Kind: Variable, Line: line, Name: name}
}

// NewCall creates a function-call node.
func NewCall(line int, name string, args ...*Node) *Node {
	return &Node{Kind: Call, Line: line, Name: name, Children: args}
}

// Args returns the arguments of a call node.
func (n *Node) Args() []*Node {
	return n.Children
}

// IsLeaf is true for nodes which never introduce bindings.
func (n *Node) IsLeaf() bool {
	return n.Kind == Number || n.Kind == String || n.Kind == Variable
}

// Label is a short one-line description of a node, used for tracing.
func (n *Node) Label() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case Number:
		return n.Kind.String() + ": " + strconv.FormatFloat(n.Num, 'g', -1, 64)
	case String:
		return n.Kind.String() + ": " + strconv.Quote(n.Text)
	case Variable:
		return n.Kind.String() + ": " + n.Name
	case Call:
		args := make([]string, len(n.Children))
		for i, ch := range n.Children {
			args[i] = ch.Label()
		}
		return fmt.Sprintf("%s: %s(%s)", n.Kind, n.Name, strings.Join(args, ", "))
	}
	return fmt.Sprintf("%s: %d children", n.Kind, len(n.Children))
}

func (n *Node) String() string {
	return n.Label()
}

// --- Tree walking ----------------------------------------------------------

// Item is a node description together with its depth in the tree.
type Item struct {
	Level int
	Text  string
}

// Leveled flattens a tree into a depth-annotated list, suitable for
// rendering indented trees on a terminal.
func Leveled(n *Node) []Item {
	return leveled(n, nil, 0)
}

func leveled(n *Node, items []Item, level int) []Item {
	if n == nil {
		return append(items, Item{Level: level, Text: "nil"})
	}
	text := n.Label()
	switch n.Kind {
	case Call:
		text = n.Kind.String() + ": " + n.Name
	case Program, Array, Block:
		text = n.Kind.String()
	}
	items = append(items, Item{Level: level, Text: text})
	for _, ch := range n.Children {
		items = leveled(ch, items, level+1)
	}
	return items
}
