package tree

import (
	"github.com/npillmayer/bottomup"
)

/*
Walking a parse tree in practice is done for one of two reasons: either to
compute a value from it (evaluating an arithmetic expression), or to transform
it into an AST. Both are supported by a Listener, which receives callbacks
for every node during a top-down walk and propagates values upwards.

As the parser produces every parse of an ambiguous input as a separate tree,
there are no ambiguous nodes to resolve during a walk. Selecting one of the
trees is up to the client.
*/

// RuleNode represents a node occuring during a parse tree walk.
type RuleNode struct {
	Node  *bottomup.Node
	Span  bottomup.Span // span of input tokens this node covers
	Value interface{}   // user-defined value of a node
}

// Symbol returns the grammar symbol of a RuleNode.
// It is either a token or the LHS of a reduced rule.
func (rnode *RuleNode) Symbol() string {
	return rnode.Node.Symbol
}

// Listener is a type for walking a parse tree.
//
// Arguments are:
//
//     - string:      the grammar symbol at the current node
//     - []*RuleNode: the children of the node, i.e. the right-hand side of the rule
//     - RuleCtxt:    contextual information for the node
//
// EnterRule returns a boolean value indicating if the traversal should continue to
// the children of this node. ExitRule and Terminal may return user-defined values
// to be propagated upwards of the tree. When ExitRule is called, the children
// RuleNodes carry the values returned for them.
type Listener interface {
	EnterRule(string, []*RuleNode, RuleCtxt) bool
	ExitRule(string, []*RuleNode, RuleCtxt) interface{}
	Terminal(string, RuleCtxt) interface{}
	MakeAttrs(string) interface{}
}

// RuleCtxt is a context structure for Listeners.
type RuleCtxt struct {
	Span  bottomup.Span // span of input tokens covered by this node
	Level int           // nesting level, 0 for the root
	Attrs interface{}   // client-defined attributes local to node
}

func makeCtxt(span bottomup.Span, level int, attrs interface{}) RuleCtxt {
	return RuleCtxt{
		Span:  span,
		Level: level,
		Attrs: attrs,
	}
}

// Direction lets clients decide wether children nodes should be traversed left-to-right
// (default) or right-to-left.
type Direction int

// Children nodes may be traversed left-to-right (default) or right-to-left.
const (
	LtoR Direction = 1
	RtoL Direction = -1
)

// Breakmode is a client hint wether to stop traversing on break-signals or not.
type Breakmode int

// Setting Continue will always traverse a complete (sub-)tree. Break will skip
// traversing sub-tree as soon as an Enter-function signals a break.
const (
	Continue Breakmode = iota
	Break
)

// Walk traverses a tree top-down, left to right, applying Listener-methods for all nodes
// encountered. It returns the value calculated by the listener for the root node.
// Traversal of a sub-tree is skipped whenever EnterRule returns false.
func Walk(node *bottomup.Node, listener Listener) interface{} {
	return WalkDir(node, listener, LtoR, Break)
}

// WalkDir is like Walk, but lets clients choose the direction for children and
// the handling of break-signals.
func WalkDir(node *bottomup.Node, listener Listener, dir Direction, breakmode Breakmode) interface{} {
	if node == nil {
		return nil
	}
	tracer().Debugf("walk starting at node %v", node.Symbol)
	root := &RuleNode{Node: node, Span: bottomup.Span{0, uint64(leafCount(node))}}
	return traverse(root, listener, dir, breakmode, 0)
}

func traverse(rnode *RuleNode, listener Listener, dir Direction, breakmode Breakmode, level int) interface{} {
	if rnode.Node.IsLeaf() {
		ctxt := makeCtxt(rnode.Span, level, nil)
		return listener.Terminal(rnode.Symbol(), ctxt)
	}
	tracer().Debugf(">>> %s", rnode.Symbol())
	rhsNodes := children(rnode)
	localAttributes := listener.MakeAttrs(rnode.Symbol())
	ctxt := makeCtxt(rnode.Span, level, localAttributes)
	doContinue := listener.EnterRule(rnode.Symbol(), rhsNodes, ctxt)
	if doContinue || breakmode == Continue {
		i, end := 0, len(rhsNodes)
		if dir == RtoL {
			i, end = len(rhsNodes)-1, -1
		}
		for ; i != end; i += int(dir) {
			rhsNodes[i].Value = traverse(rhsNodes[i], listener, dir, breakmode, level+1)
			tracer().Debugf("child value[%d] = %v", i, rhsNodes[i].Value)
		}
	}
	value := listener.ExitRule(rnode.Symbol(), rhsNodes, ctxt)
	tracer().Debugf("<<< %s", rnode.Symbol())
	return value
}

// children wraps the children of a node, calculating their spans.
func children(rnode *RuleNode) []*RuleNode {
	rhs := make([]*RuleNode, len(rnode.Node.Children))
	pos := rnode.Span.From()
	for i, ch := range rnode.Node.Children {
		l := uint64(leafCount(ch))
		rhs[i] = &RuleNode{Node: ch, Span: bottomup.Span{pos, pos + l}}
		pos += l
	}
	return rhs
}

func leafCount(node *bottomup.Node) int {
	if node.IsLeaf() {
		return 1
	}
	n := 0
	for _, ch := range node.Children {
		n += leafCount(ch)
	}
	return n
}
