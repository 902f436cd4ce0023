/*
Package reduce implements single reduction steps on sentential forms.

A reduction replaces a contiguous span of nodes of a state with a single new node,
provided there is a rule whose right-hand side matches the symbols of the span.
The new node carries the rule's LHS as its symbol and the span's nodes as its
children. Every other node is carried over unchanged (and shared, not copied).

Reductions are enumerated in a fixed order:

   1. span start ascending
   2. span end ascending
   3. rule order

Clients depend on this order to get deterministic results for ambiguous grammars.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package reduce

import (
	"github.com/npillmayer/bottomup"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bottomup.parse'.
func tracer() tracing.Trace {
	return tracing.Select("bottomup.parse")
}

// Reductions returns every state reachable from s by exactly one reduction with one
// of the given rules. s is not modified.
//
// If clients call Reductions repeatedly for the same rule set, they should create a
// Reducer instead.
func Reductions(s bottomup.State, rules []bottomup.Rule) []bottomup.State {
	return NewReducer(rules).Reductions(s)
}

// Reducer applies rules from a fixed rule set. It groups the rules by the length of
// their right-hand side, so that for each span only rules of matching width have
// to be considered. A Reducer is read-only after creation and may be used
// concurrently.
type Reducer struct {
	rules   []bottomup.Rule
	byWidth [][]int // rule indices by length of RHS, in rule order
}

// NewReducer creates a reducer for a rule set. Rules with an empty right-hand side
// are accepted, but will never match.
func NewReducer(rules []bottomup.Rule) *Reducer {
	r := &Reducer{rules: rules}
	maxw := 0
	for _, rule := range rules {
		if len(rule.RHS) > maxw {
			maxw = len(rule.RHS)
		}
	}
	r.byWidth = make([][]int, maxw+1)
	for i, rule := range rules {
		if rule.IsEpsilon() {
			tracer().Debugf("rule %d has empty RHS and will never match: %v", i, rule)
			continue
		}
		w := len(rule.RHS)
		r.byWidth[w] = append(r.byWidth[w], i)
	}
	return r
}

// Rules returns the rule set of a reducer.
func (r *Reducer) Rules() []bottomup.Rule {
	return r.rules
}

// MaxWidth is the length of the longest right-hand side of all rules.
func (r *Reducer) MaxWidth() int {
	return len(r.byWidth) - 1
}

// Reductions returns every state reachable from s by exactly one reduction.
// The result may be empty, or contain more than one state for ambiguous
// situations: different spans matching, different rules matching the same span,
// or overlapping spans.
func (r *Reducer) Reductions(s bottomup.State) []bottomup.State {
	var next []bottomup.State
	r.Each(s, func(i, j int, rule bottomup.Rule) {
		next = append(next, Apply(s, i, j, rule.LHS))
	})
	return next
}

// Each calls f for every match of a rule with a span [i,j) of s, in reduction order.
// It does not create any new states.
func (r *Reducer) Each(s bottomup.State, f func(i, j int, rule bottomup.Rule)) {
	for i := 0; i < len(s); i++ {
		for j := i + 1; j <= len(s) && j-i <= r.MaxWidth(); j++ {
			for _, ruleno := range r.byWidth[j-i] {
				if rule := r.rules[ruleno]; matches(s[i:j], rule.RHS) {
					f(i, j, rule)
				}
			}
		}
	}
}

// Apply reduces the span [i,j) of s into a new node with symbol lhs. It does not
// check if the reduction is valid with respect to any rule. The resulting state is
// freshly allocated; s is left untouched.
func Apply(s bottomup.State, i, j int, lhs string) bottomup.State {
	children := make([]*bottomup.Node, j-i)
	copy(children, s[i:j])
	node := &bottomup.Node{Symbol: lhs, Children: children}
	next := make(bottomup.State, 0, len(s)-(j-i)+1)
	next = append(next, s[:i]...)
	next = append(next, node)
	next = append(next, s[j:]...)
	tracer().Debugf("reduce %s ⇒ %s", s, next)
	return next
}

func matches(span []*bottomup.Node, rhs []string) bool {
	if len(span) != len(rhs) {
		return false
	}
	for k, n := range span {
		if n.Symbol != rhs[k] {
			return false
		}
	}
	return true
}
