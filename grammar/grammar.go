/*
Package grammar helps constructing rule sets for the bottom-up parser.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of a left-hand side and a sequence of symbols. The parser does
not distinguish between terminals and non-terminals, but for readability
it's often helpful to mark terminals with T() instead of N().

Example:

    b := grammar.NewGrammarBuilder("G")
    b.LHS("S").N("NP").N("VP").End()    // S   ->  NP VP
    b.LHS("NP").N("PN").End()           // NP  ->  PN
    b.LHS("PN").T("John").End()         // PN  ->  John
    b.LHS("PN").T("Mary").End()         // PN  ->  Mary
    b.LHS("VP").N("V_T").N("NP").End()  // VP  ->  V_T NP
    b.LHS("V_T").T("loves").End()       // V_T ->  loves
    g, err := b.Grammar()

This results in the following trivial grammar:

   g.Dump()

   0: [S] ::= [NP VP]
   1: [NP] ::= [PN]
   2: [PN] ::= [John]
   …

Grammar Notation

Alternatively, grammars may be read from a textual notation:

    # a comment
    S   -> NP VP
    NP  -> PN
    PN  -> John | Mary
    VP  -> V_T NP
    V_T -> loves
        |  "hates"          # continued alternatives start with '|'

Every line introduces rules for one left-hand side. Symbols are separated by white
space; symbols containing white space or one of the characters

    |  "  #

have to be enclosed in double quotes (with '\' escaping the next character).
An empty alternative denotes a rule with an empty right-hand side. Note that
'->' has to be separated from symbols by white space.

    g, err := grammar.Read("G", strings.NewReader(notation))

Use Format for the reverse direction.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/bottomup"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bottomup.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("bottomup.grammar")
}

// Errors of the grammar builder.
var (
	ErrEmptyLHS       = errors.New("rule has empty left-hand side")
	ErrUnfinishedRule = errors.New("rule has not been finished with End() or Epsilon()")
)

// Grammar is a set of rules, in a fixed order.
type Grammar struct {
	Name         string
	rules        []bottomup.Rule
	symbols      *treeset.Set // all symbols, sorted
	nonterminals *treeset.Set // symbols occuring on a left-hand side, sorted
}

func newGrammar(name string, rules []bottomup.Rule) *Grammar {
	g := &Grammar{
		Name:         name,
		rules:        rules,
		symbols:      treeset.NewWithStringComparator(),
		nonterminals: treeset.NewWithStringComparator(),
	}
	for _, r := range rules {
		g.symbols.Add(r.LHS)
		g.nonterminals.Add(r.LHS)
		for _, sym := range r.RHS {
			g.symbols.Add(sym)
		}
	}
	return g
}

// Rules returns the rules of a grammar, ready to be handed to a parser. Clients
// must not modify the rules.
func (g *Grammar) Rules() []bottomup.Rule {
	return g.rules
}

// Rule returns rule #no of a grammar.
func (g *Grammar) Rule(no int) bottomup.Rule {
	return g.rules[no]
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Symbols returns all symbols of a grammar, sorted.
func (g *Grammar) Symbols() []string {
	return asStrings(g.symbols.Values())
}

// Nonterminals returns all symbols occuring on a left-hand side, sorted.
func (g *Grammar) Nonterminals() []string {
	return asStrings(g.nonterminals.Values())
}

// Terminals returns all symbols never occuring on a left-hand side, sorted.
// Only these may appear as tokens of a successfully parsed input.
func (g *Grammar) Terminals() []string {
	var terms []string
	it := g.symbols.Iterator()
	for it.Next() {
		if !g.nonterminals.Contains(it.Value()) {
			terms = append(terms, it.Value().(string))
		}
	}
	return terms
}

// IsTerminal returns true if sym is a symbol of g which never occurs on a
// left-hand side.
func (g *Grammar) IsTerminal(sym string) bool {
	return g.symbols.Contains(sym) && !g.nonterminals.Contains(sym)
}

// Dump is a debugging helper.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ------------------------------------", g.Name)
	for i, r := range g.rules {
		tracer().Debugf("%3d: [%s] ::= [%s]", i, r.LHS, strings.Join(r.RHS, " "))
	}
	tracer().Debugf("-------------------------------------------------------")
}

func (g *Grammar) String() string {
	return fmt.Sprintf("(grammar %s | %d rules)", g.Name, len(g.rules))
}

func asStrings(values []interface{}) []string {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = v.(string)
	}
	return s
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars. Create one with
// NewGrammarBuilder.
type GrammarBuilder struct {
	name    string
	rules   *arraylist.List
	current *RuleBuilder
	err     error
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{
		name:  name,
		rules: arraylist.New(),
	}
}

// RuleBuilder is a builder type for a single rule. It is created by
// GrammarBuilder.LHS().
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs string
	rhs []string
}

// LHS starts a rule given the left hand side symbol.
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	if gb.current != nil {
		gb.setError(fmt.Errorf("%w: %s", ErrUnfinishedRule, gb.current.lhs))
	}
	if s == "" {
		gb.setError(fmt.Errorf("%w (rule #%d)", ErrEmptyLHS, gb.rules.Size()))
	}
	gb.current = &RuleBuilder{gb: gb, lhs: s}
	return gb.current
}

// N appends a (non-terminal) symbol to the right-hand side of a rule.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	rb.rhs = append(rb.rhs, s)
	return rb
}

// T appends a terminal symbol to the right-hand side of a rule. As the parser
// does not make a distinction between terminals and non-terminals, this is for
// readability only.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	return rb.N(s)
}

// End finishes a rule and adds it to the grammar. It returns the rule.
func (rb *RuleBuilder) End() bottomup.Rule {
	r := bottomup.MakeRule(rb.lhs, rb.rhs...)
	rb.gb.rules.Add(r)
	if rb.gb.current == rb {
		rb.gb.current = nil
	}
	tracer().Debugf("rule %3d: %v", rb.gb.rules.Size()-1, r)
	return r
}

// Epsilon finishes a rule with an empty right-hand side. Symbols appended before
// will be discarded. Rules like these will never match anything during a parse.
func (rb *RuleBuilder) Epsilon() bottomup.Rule {
	rb.rhs = nil
	return rb.End()
}

// Grammar returns the grammar built so far, or the first error which occured
// during construction.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.current != nil {
		gb.setError(fmt.Errorf("%w: %s", ErrUnfinishedRule, gb.current.lhs))
	}
	if gb.err != nil {
		return nil, gb.err
	}
	rules := make([]bottomup.Rule, gb.rules.Size())
	it := gb.rules.Iterator()
	for it.Next() {
		rules[it.Index()] = it.Value().(bottomup.Rule)
	}
	return newGrammar(gb.name, rules), nil
}

func (gb *GrammarBuilder) setError(err error) {
	tracer().Errorf("grammar %s: %v", gb.name, err)
	if gb.err == nil {
		gb.err = err
	}
}
