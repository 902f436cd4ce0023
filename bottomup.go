package bottomup

import (
	"fmt"
	"strings"
)

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. We do not define any constants here, as
// it is up to applications to define them.
type TokType int

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect terminals in a language.
//
// For the parser, only the lexeme of a token is relevant: it will become the
// symbol of a leaf node.
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run.
// A span denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Rules -----------------------------------------------------------------

// Rule is a rewrite rule of a context-free grammar. A rule rewrites a sequence of
// symbols (RHS) into a single symbol (LHS), when read bottom-up.
//
// Terminals and non-terminals are not distinguished. Rules are compared by content
// only and never change after creation.
type Rule struct {
	LHS string
	RHS []string
}

// MakeRule creates a rule
//
//     lhs -> rhs[0] rhs[1] …
//
func MakeRule(lhs string, rhs ...string) Rule {
	return Rule{LHS: lhs, RHS: rhs}
}

// IsEpsilon returns true for rules with an empty right-hand side. Those rules are
// accepted, but will never match anything.
func (r Rule) IsEpsilon() bool {
	return len(r.RHS) == 0
}

func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.LHS, strings.Join(r.RHS, " "))
}

// --- Parse tree nodes ------------------------------------------------------

// Node is a node of a parse tree. A node without children is a leaf, i.e. an input
// token. Nodes are never modified after creation, and it is common for nodes to
// be shared between different (partial) parse trees.
type Node struct {
	Symbol   string
	Children []*Node
}

// Leaf creates a node for a terminal symbol.
func Leaf(symbol string) *Node {
	return &Node{Symbol: symbol}
}

// NewNode creates an inner node of a parse tree. If no children are given, the
// resulting node will be a leaf.
func NewNode(symbol string, children ...*Node) *Node {
	if len(children) == 0 {
		return Leaf(symbol)
	}
	return &Node{Symbol: symbol, Children: children}
}

// IsLeaf is true for nodes without children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Size returns the number of nodes in the tree rooted at n.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	size := 1
	for _, ch := range n.Children {
		size += ch.Size()
	}
	return size
}

// Yield returns the symbols of the leaves of a tree, from left to right. For a
// completed parse this is the sequence of input tokens.
func (n *Node) Yield() []string {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return []string{n.Symbol}
	}
	var y []string
	for _, ch := range n.Children {
		y = append(y, ch.Yield()...)
	}
	return y
}

// --- States ----------------------------------------------------------------

// State is a sentential form: a sequence of partial parse trees at one point of
// a derivation. A state of length 1 is a completed parse.
type State []*Node

// Leaves creates a state with one leaf per token, in input order.
func Leaves(tokens []string) State {
	s := make(State, len(tokens))
	for i, tok := range tokens {
		s[i] = Leaf(tok)
	}
	return s
}

// IsComplete returns true if a state consists of a single root node.
func (s State) IsComplete() bool {
	return len(s) == 1
}

// Symbols returns the symbols of the top-level nodes of a state.
func (s State) Symbols() []string {
	syms := make([]string, len(s))
	for i, n := range s {
		syms[i] = n.Symbol
	}
	return syms
}
