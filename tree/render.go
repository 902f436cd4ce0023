package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/bottomup"
)

// Render returns a bracketed outline of a parse tree, with children indented
// by 2 spaces.
func Render(node *bottomup.Node) string {
	return RenderIndent(node, 2, "")
}

// RenderIndent returns a bracketed outline of a parse tree. Every line is
// prefixed with prefix, and each level of children is indented by another
// indent spaces.
//
// A leaf renders as
//
//     prefix + "[ " + symbol + " ]"
//
// An inner node renders as prefix + "[ " + symbol, followed by a line for each child,
// and a closing line consisting of prefix + "]".
func RenderIndent(node *bottomup.Node, indent int, prefix string) string {
	if node == nil {
		return ""
	}
	if indent < 0 {
		indent = 0
	}
	var b strings.Builder
	render(&b, node, strings.Repeat(" ", indent), prefix)
	return b.String()
}

func render(b *strings.Builder, node *bottomup.Node, indent, prefix string) {
	b.WriteString(prefix)
	b.WriteString("[ ")
	b.WriteString(node.Symbol)
	if node.IsLeaf() {
		b.WriteString(" ]")
		return
	}
	for _, ch := range node.Children {
		b.WriteByte('\n')
		render(b, ch, indent, prefix+indent)
	}
	b.WriteByte('\n')
	b.WriteString(prefix)
	b.WriteByte(']')
}

// Fingerprint returns a hex digest of the structure of a tree. Two trees have
// the same fingerprint if they have identical symbols in an identical shape.
func Fingerprint(node *bottomup.Node) string {
	if node == nil {
		return ""
	}
	return fmt.Sprintf("%x", structhash.Md5(node, 1))
}

// ToGraphViz exports a parse tree to the Graphviz Dot format.
// Inner nodes are drawn white, leaves are drawn lightgray.
func ToGraphViz(node *bottomup.Node, w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	if node != nil {
		id := 0
		dot(&b, node, &id)
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	if err != nil {
		tracer().Errorf("cannot export tree to Graphviz: %v", err)
	}
	return err
}

// dot writes node and its children in pre-order, numbering nodes as it goes.
// It returns the number of node.
func dot(b *strings.Builder, node *bottomup.Node, id *int) int {
	me := *id
	*id++
	fmt.Fprintf(b, "n%03d [fillcolor=%s label=\"%s\"]\n", me, nodecolor(node), forGraphviz(node.Symbol))
	for _, ch := range node.Children {
		chid := dot(b, ch, id)
		fmt.Fprintf(b, "n%03d -> n%03d\n", me, chid)
	}
	return me
}

func nodecolor(node *bottomup.Node) string {
	if node.IsLeaf() {
		return "lightgray"
	}
	return "white"
}

var dotEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
)

// Mrecord labels treat some characters as field separators.
func forGraphviz(sym string) string {
	return dotEscaper.Replace(sym)
}
