/*
Package search finds all parse trees for an input, given a set of rules.

The search operates on sentential forms ("states"): sequences of partial parse
trees. It starts with one leaf node per input token and explores, generation by
generation, every state reachable by a single reduction (see package reduce).
States already seen during the same search are not explored again; identity of states is
determined by their canonical form (see bottomup.Canonical). Every state consisting of a
single node is a completed parse and will be part of the result.

There is no backtracking and no lookahead. The search space is an AND/OR graph
with states as nodes and alternative reductions as OR-edges, and it is traversed
breadth-first.

	parser := search.NewParser(rules, search.MaxGenerations(100))
	trees, err := parser.Parse([]string{"John", "loves", "Mary"})

Order of results

Parse trees are returned in order of discovery: trees found in an earlier generation
come first; within a generation, trees appear in the order their states have been
discovered, which in turn follows the order of reductions (span start, span end,
rule order). For identical input, results will always be identical.

Termination

A search terminates when no new states are discovered. Grammars with an unbounded
number of distinct tree shapes (e.g., containing a rule A -> A) will never run out of
new states. The base contract does not protect against this. Clients may set
budgets (MaxGenerations, MaxStates) or pass a cancellable context to ParseContext.
Budgets and the context are checked between generations. If a search has been
stopped prematurely, the parse trees found so far are returned, together with an
error.

For debugging purposes, configuration flag `panic-on-budget-exhausted` will make
an exhausted budget panic instead of returning an error.

Concurrency

A Parser may be used from multiple goroutines. Every call works on its own,
exclusive set of frontier and seen-states (borrowed from a pool and cleared
after use).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package search

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bottomup.parse'.
func tracer() tracing.Trace {
	return tracing.Select("bottomup.parse")
}
