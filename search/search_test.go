package search

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/npillmayer/bottomup"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// S   -> NP VP
// NP  -> PN
// PN  -> John | Mary
// VP  -> V_T NP
// V_T -> loves
func johnLovesMary() []bottomup.Rule {
	return []bottomup.Rule{
		bottomup.MakeRule("S", "NP", "VP"),
		bottomup.MakeRule("NP", "PN"),
		bottomup.MakeRule("PN", "John"),
		bottomup.MakeRule("PN", "Mary"),
		bottomup.MakeRule("VP", "V_T", "NP"),
		bottomup.MakeRule("V_T", "loves"),
	}
}

// E -> E + E | n
func sums() []bottomup.Rule {
	return []bottomup.Rule{
		bottomup.MakeRule("E", "E", "+", "E"),
		bottomup.MakeRule("E", "n"),
	}
}

func canonicals(trees []*bottomup.Node) []string {
	c := make([]string, len(trees))
	for i, t := range trees {
		c[i] = bottomup.CanonicalTree(t)
	}
	return c
}

func TestEmptyInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	for _, rules := range [][]bottomup.Rule{nil, johnLovesMary(), sums()} {
		if trees := Parse(rules, []string{}); len(trees) != 0 {
			t.Errorf("expected no parse for empty input, have %v", canonicals(trees))
		}
	}
}

func TestNoRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	trees := Parse(nil, []string{"John"})
	if len(trees) != 1 || !bottomup.Equal(trees[0], bottomup.Leaf("John")) {
		t.Errorf("expected single leaf John, have %v", canonicals(trees))
	}
	trees = Parse([]bottomup.Rule{bottomup.MakeRule("S", "NP", "VP")}, []string{"John"})
	if len(trees) != 1 || !bottomup.Equal(trees[0], bottomup.Leaf("John")) {
		t.Errorf("expected single leaf John, have %v", canonicals(trees))
	}
	if trees = Parse(nil, []string{"John", "loves", "Mary"}); len(trees) != 0 {
		t.Errorf("expected no parse for multiple tokens without rules, have %v", canonicals(trees))
	}
}

func TestUnambiguous(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	tracer().SetTraceLevel(tracing.LevelDebug)
	trees := Parse(johnLovesMary(), []string{"John", "loves", "Mary"})
	expected := bottomup.NewNode("S",
		bottomup.NewNode("NP", bottomup.NewNode("PN", bottomup.Leaf("John"))),
		bottomup.NewNode("VP",
			bottomup.NewNode("V_T", bottomup.Leaf("loves")),
			bottomup.NewNode("NP", bottomup.NewNode("PN", bottomup.Leaf("Mary"))),
		),
	)
	if len(trees) != 1 {
		t.Fatalf("expected exactly 1 parse, have %d: %v", len(trees), canonicals(trees))
	}
	if !bottomup.Equal(trees[0], expected) {
		t.Errorf("expected %v, have %v", expected, trees[0])
	}
	if c := trees[0].String(); c != "S(NP(PN(John)),VP(V_T(loves),NP(PN(Mary))))" {
		t.Errorf("unexpected canonical form %s", c)
	}
}

func TestAmbiguousConjunction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	rules := []bottomup.Rule{
		bottomup.MakeRule("S", "S", "AND", "S"),
		bottomup.MakeRule("S", "X"),
		bottomup.MakeRule("X", "A"),
	}
	trees := Parse(rules, []string{"A", "AND", "A"})
	expected := bottomup.NewNode("S",
		bottomup.NewNode("S", bottomup.NewNode("X", bottomup.Leaf("A"))),
		bottomup.Leaf("AND"),
		bottomup.NewNode("S", bottomup.NewNode("X", bottomup.Leaf("A"))),
	)
	found := false
	for _, tree := range trees {
		if bottomup.Equal(tree, expected) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %v to be among parses, have %v", expected, canonicals(trees))
	}
}

func TestUnreachable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	rules := []bottomup.Rule{
		bottomup.MakeRule("S", "NP", "VP"),
		bottomup.MakeRule("NP", "PN"),
		bottomup.MakeRule("PN", "John"),
	}
	p := NewParser(rules)
	trees, err := p.Parse([]string{"Hello", "world"})
	if err != nil {
		t.Error(err)
	}
	if len(trees) != 0 {
		t.Errorf("expected no parses, have %v", canonicals(trees))
	}
	if p.Stats().Generations != 1 {
		t.Errorf("expected search to stop after 1 generation, took %d", p.Stats().Generations)
	}
}

var inputStrings = []string{
	"n",
	"n + n",
	"n + n + n",
	"n + n + n + n",
	"n + n + n + n + n",
	"n +",
	"+ n",
}

// A single token is a parse by itself, in addition to E(n).
// Otherwise the number of binary trees with k leaves is Catalan(k-1).
var parseCounts = []int{2, 1, 2, 5, 14, 0, 0}

func TestAmbiguousSums(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	p := NewParser(sums())
	for i, input := range inputStrings {
		trees, err := p.Parse(strings.Fields(input))
		if err != nil {
			t.Error(err)
		}
		if len(trees) != parseCounts[i] {
			t.Errorf("expected %d parses for %q, have %d", parseCounts[i], input, len(trees))
		}
		t.Logf("%q: %s", input, p.Stats())
	}
}

func TestAssociativity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	trees := Parse(sums(), strings.Fields("n + n + n"))
	got := canonicals(trees)
	sort.Strings(got)
	expected := []string{
		"E(E(E(n),+,E(n)),+,E(n))",
		"E(E(n),+,E(E(n),+,E(n)))",
	}
	if len(got) != 2 || got[0] != expected[0] || got[1] != expected[1] {
		t.Errorf("expected %v, have %v", expected, got)
	}
}

func TestDiscoveryOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	conj := []bottomup.Rule{
		bottomup.MakeRule("S", "S", "AND", "S"),
		bottomup.MakeRule("S", "X"),
		bottomup.MakeRule("X", "A"),
	}
	var orders = []struct {
		rules    []bottomup.Rule
		input    string
		expected []string
	}{
		{sums(), "n + n + n", []string{
			"E(E(E(n),+,E(n)),+,E(n))",
			"E(E(n),+,E(E(n),+,E(n)))",
		}},
		{sums(), "n + n + n + n", []string{
			"E(E(E(E(n),+,E(n)),+,E(n)),+,E(n))",
			"E(E(E(n),+,E(n)),+,E(E(n),+,E(n)))",
			"E(E(E(n),+,E(E(n),+,E(n))),+,E(n))",
			"E(E(n),+,E(E(E(n),+,E(n)),+,E(n)))",
			"E(E(n),+,E(E(n),+,E(E(n),+,E(n))))",
		}},
		{conj, "A AND A AND A", []string{
			"S(S(S(X(A)),AND,S(X(A))),AND,S(X(A)))",
			"S(S(X(A)),AND,S(S(X(A)),AND,S(X(A))))",
		}},
	}
	for _, o := range orders {
		got := canonicals(Parse(o.rules, strings.Fields(o.input)))
		if strings.Join(got, " ") != strings.Join(o.expected, " ") {
			t.Errorf("%q: expected parses in order\n%v\nhave\n%v", o.input, o.expected, got)
		}
	}
}

func TestDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	tokens := strings.Fields("n + n + n + n")
	first := canonicals(Parse(sums(), tokens))
	for run := 0; run < 5; run++ {
		again := canonicals(Parse(sums(), tokens))
		if strings.Join(first, " ") != strings.Join(again, " ") {
			t.Fatalf("run %d: results differ from first run: %v vs %v", run, first, again)
		}
	}
}

func TestParsesAreComplete(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	tokens := strings.Fields("n + n + n + n")
	for _, tree := range Parse(sums(), tokens) {
		if y := tree.Yield(); strings.Join(y, " ") != strings.Join(tokens, " ") {
			t.Errorf("parse %v does not span the input, yield is %v", tree, y)
		}
	}
}

func TestUniqueParses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	tokens := strings.Fields("n + n + n + n")
	p := NewParser(sums(), UniqueParses(true))
	trees, err := p.Parse(tokens)
	if err != nil {
		t.Error(err)
	}
	if len(trees) != 5 {
		t.Errorf("expected 5 unique parses, have %d", len(trees))
	}
	keys := make(map[string]bool)
	for _, c := range canonicals(trees) {
		if keys[c] {
			t.Errorf("duplicate parse %s", c)
		}
		keys[c] = true
	}
}

func TestGenerationBudget(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	rules := []bottomup.Rule{bottomup.MakeRule("A", "A")} // A, A(A), A(A(A)), …
	p := NewParser(rules, MaxGenerations(5))
	trees, err := p.Parse([]string{"A"})
	if !errors.Is(err, ErrBudgetExhausted) {
		t.Errorf("expected budget to be exhausted, error is %v", err)
	}
	if len(trees) != 5 {
		t.Fatalf("expected 5 partial parses, have %d: %v", len(trees), canonicals(trees))
	}
	if c := trees[2].String(); c != "A(A(A))" {
		t.Errorf("expected 3rd parse to be A(A(A)), is %s", c)
	}
}

func TestStateBudget(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	rules := []bottomup.Rule{bottomup.MakeRule("A", "A")}
	p := NewParser(rules, MaxStates(3))
	trees, err := p.Parse([]string{"A"})
	if !errors.Is(err, ErrBudgetExhausted) {
		t.Errorf("expected budget to be exhausted, error is %v", err)
	}
	if len(trees) != 4 {
		t.Errorf("expected 4 partial parses, have %d: %v", len(trees), canonicals(trees))
	}
	if p.Stats().States != 4 {
		t.Errorf("expected 4 states to be discovered, have %d", p.Stats().States)
	}
}

func TestBudgetNotHitOnRegularEnd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	// John loves Mary needs 7 reductions, i.e. 8 generations
	p := NewParser(johnLovesMary(), MaxGenerations(8))
	trees, err := p.Parse([]string{"John", "loves", "Mary"})
	if err != nil {
		t.Errorf("expected search to end without error, have %v", err)
	}
	if len(trees) != 1 {
		t.Errorf("expected 1 parse, have %d", len(trees))
	}
}

func TestCancel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewParser([]bottomup.Rule{bottomup.MakeRule("A", "A")})
	trees, err := p.ParseContext(ctx, []string{"A"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected search to be cancelled, error is %v", err)
	}
	if len(trees) != 0 {
		t.Errorf("expected no parses for cancelled search, have %v", canonicals(trees))
	}
}

func TestParseAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	p := NewParser(sums())
	defer p.Close()
	inputs := make([][]string, len(inputStrings))
	for i, input := range inputStrings {
		inputs[i] = strings.Fields(input)
	}
	results, errs := p.ParseAll(context.Background(), inputs)
	for i := range inputs {
		if errs[i] != nil {
			t.Error(errs[i])
		}
		if len(results[i]) != parseCounts[i] {
			t.Errorf("expected %d parses for %q, have %d", parseCounts[i], inputStrings[i], len(results[i]))
		}
	}
}

func TestSearcherReuse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	s := newSearcher()
	s.seen["x"] = struct{}{}
	s.frontier = append(s.frontier, bottomup.Leaves([]string{"a"}))
	s.stats.Generations = 3
	s.reset()
	if len(s.seen) != 0 || len(s.frontier) != 0 || s.stats.Generations != 0 {
		t.Errorf("expected searcher to be cleared")
	}
}

func TestClosedParser(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	tokens := strings.Fields("n + n + n")
	p := NewParser(sums())
	// a searcher which has not been borrowed from the pool is rejected by it
	p.searchers.release(newSearcher())
	p.Close()
	trees, err := p.Parse(tokens)
	if err != nil {
		t.Fatal(err)
	}
	if len(trees) != 2 {
		t.Errorf("expected closed parser to find 2 parses, have %d", len(trees))
	}
	for i := 0; i < 3; i++ {
		if trees := Parse(sums(), tokens); len(trees) != 2 {
			t.Errorf("expected 2 parses, have %d", len(trees))
		}
	}
}
