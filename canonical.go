package bottomup

import (
	"bytes"
)

// Canonical form of trees and states
//
// The canonical form of a tree is
//
//     leaf   ⇒ symbol
//     inner  ⇒ symbol(child_1,…,child_k)
//
// and a state renders as the canonical forms of its nodes, separated by ','.
// Two trees (or states) have the same canonical form iff they consist of the same
// symbols in the same shape. The parser relies on this for remembering states it has
// already seen.
//
// Symbols may contain any character. The characters
//
//     \  (  )  ,
//
// are prefixed with a backslash, and the empty symbol is written as `\_`.
// Symbols without special characters therefore appear verbatim.

// Canonical returns the canonical form of a state. The empty state has the empty
// string as its canonical form.
func Canonical(s State) string {
	var b bytes.Buffer
	s.writeCanonical(&b)
	return b.String()
}

// CanonicalTree returns the canonical form of a (partial) parse tree.
func CanonicalTree(n *Node) string {
	var b bytes.Buffer
	n.writeCanonical(&b)
	return b.String()
}

// String returns the canonical form of a tree.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return CanonicalTree(n)
}

// String returns the canonical form of a state.
func (s State) String() string {
	return Canonical(s)
}

func (s State) writeCanonical(b *bytes.Buffer) {
	for i, n := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		n.writeCanonical(b)
	}
}

func (n *Node) writeCanonical(b *bytes.Buffer) {
	writeSymbol(b, n.Symbol)
	if n.IsLeaf() {
		return
	}
	b.WriteByte('(')
	for i, ch := range n.Children {
		if i > 0 {
			b.WriteByte(',')
		}
		ch.writeCanonical(b)
	}
	b.WriteByte(')')
}

func writeSymbol(b *bytes.Buffer, sym string) {
	if sym == "" {
		b.WriteString(`\_`)
		return
	}
	for i := 0; i < len(sym); i++ {
		switch c := sym[i]; c {
		case '\\', '(', ')', ',':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
}
