/*
Package bottomup is an exhaustive bottom-up parser for ambiguous grammars.

Given a set of context-free rewrite rules and a sequence of tokens, it
enumerates every parse tree which is derivable by repeatedly reducing
contiguous spans of symbols into single nonterminal nodes, until one root
node remains. No parser tables are generated and no lookahead is involved;
the parser simply explores the space of sentential forms, breadth-first,
and remembers every form it has already seen. This makes it a good tool for
experiments with small, heavily ambiguous grammars (natural language
fragments, operator soups), but not for production-sized inputs.

	rules := []bottomup.Rule{
	    bottomup.MakeRule("S", "NP", "VP"),   // S   -> NP VP
	    bottomup.MakeRule("NP", "PN"),        // NP  -> PN
	    bottomup.MakeRule("PN", "John"),      // PN  -> John
	    bottomup.MakeRule("PN", "Mary"),      // PN  -> Mary
	    bottomup.MakeRule("VP", "V_T", "NP"), // VP  -> V_T NP
	    bottomup.MakeRule("V_T", "loves"),    // V_T -> loves
	}
	trees := search.Parse(rules, []string{"John", "loves", "Mary"})
	// trees[0] = S(NP(PN(John)),VP(V_T(loves),NP(PN(Mary))))

Package structure is as follows:

■ reduce: Package reduce implements single-step reductions of a sentential form.

■ search: Package search drives the breadth-first exploration of all reduction
orders and collects completed parses.

■ grammar: Package grammar helps constructing rule sets, either with a builder
or from a textual grammar notation.

■ scanner: Package scanner provides tokenizers to split input into tokens.

■ tree: Package tree formats, walks and exports parse trees.

■ cmd/bupl: An interactive command line tool for experiments with grammars.

The base package contains data types which are used throughout all the other packages,
together with the canonical string form of parse trees.

Termination

The parser will never expand a sentential form twice (where "same" means: same
symbols in the same tree shape). That is all there is regarding termination. Grammars
which allow for an unbounded number of distinct tree shapes, like

	A -> A

for a token A, will make the search run forever: A, A(A), A(A(A)), …
Clients who have to deal with grammars like this should set a budget on
the parser (see package search).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package bottomup
