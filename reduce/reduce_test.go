package reduce

import (
	"testing"

	"github.com/npillmayer/bottomup"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func canonicals(states []bottomup.State) []string {
	c := make([]string, len(states))
	for i, s := range states {
		c[i] = bottomup.Canonical(s)
	}
	return c
}

func TestNoRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	s := bottomup.Leaves([]string{"a", "b"})
	if next := Reductions(s, nil); len(next) != 0 {
		t.Errorf("expected no reductions without rules, have %v", canonicals(next))
	}
	if next := Reductions(bottomup.State{}, []bottomup.Rule{bottomup.MakeRule("S", "a")}); len(next) != 0 {
		t.Errorf("expected no reductions for empty state, have %v", canonicals(next))
	}
}

func TestEpsilonNeverMatches(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	rules := []bottomup.Rule{bottomup.MakeRule("E")}
	s := bottomup.Leaves([]string{"a", "b"})
	if next := Reductions(s, rules); len(next) != 0 {
		t.Errorf("expected epsilon rule to be inert, have %v", canonicals(next))
	}
}

func TestReductionOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	tracer().SetTraceLevel(tracing.LevelDebug)
	rules := []bottomup.Rule{
		bottomup.MakeRule("P", "a", "b"),
		bottomup.MakeRule("B", "b"),
		bottomup.MakeRule("A", "a"),
		bottomup.MakeRule("Q", "a", "b"),
		bottomup.MakeRule("T", "a", "b", "a"),
	}
	s := bottomup.Leaves([]string{"a", "b", "a"})
	next := Reductions(s, rules)
	expected := []string{
		"A(a),b,a", // [0,1) A -> a
		"P(a,b),a", // [0,2) P -> a b
		"Q(a,b),a", // [0,2) Q -> a b
		"T(a,b,a)", // [0,3) T -> a b a
		"a,B(b),a", // [1,2) B -> b
		"a,b,A(a)", // [2,3) A -> a
	}
	got := canonicals(next)
	if len(got) != len(expected) {
		t.Fatalf("expected %d reductions, have %d: %v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("reduction #%d: expected %s, have %s", i, expected[i], got[i])
		}
	}
}

func TestReductionSharesNodes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	rules := []bottomup.Rule{bottomup.MakeRule("X", "b")}
	s := bottomup.Leaves([]string{"a", "b", "c"})
	before := bottomup.Canonical(s)
	next := Reductions(s, rules)
	if len(next) != 1 {
		t.Fatalf("expected 1 reduction, have %d", len(next))
	}
	n := next[0]
	if bottomup.Canonical(s) != before {
		t.Errorf("input state has been modified: %s", s)
	}
	if n[0] != s[0] || n[2] != s[2] {
		t.Errorf("nodes outside of span should be shared, are copied")
	}
	if n[1].Children[0] != s[1] {
		t.Errorf("reduced node should have original node as child")
	}
}

func TestUnitRuleAndSelfLoop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	rules := []bottomup.Rule{bottomup.MakeRule("A", "A")}
	next := Reductions(bottomup.Leaves([]string{"A"}), rules)
	if len(next) != 1 || bottomup.Canonical(next[0]) != "A(A)" {
		t.Errorf("expected unit rule to produce A(A), have %v", canonicals(next))
	}
}

func TestDuplicateRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	rules := []bottomup.Rule{
		bottomup.MakeRule("S", "x"),
		bottomup.MakeRule("S", "x"),
	}
	next := Reductions(bottomup.Leaves([]string{"x"}), rules)
	if len(next) != 2 {
		t.Errorf("expected duplicate rules to produce 2 candidates, have %d", len(next))
	}
}

func TestEach(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "bottomup.parse")
	defer teardown()
	//
	r := NewReducer([]bottomup.Rule{
		bottomup.MakeRule("S", "S", "AND", "S"),
		bottomup.MakeRule("S", "X"),
		bottomup.MakeRule("X", "A"),
	})
	if r.MaxWidth() != 3 {
		t.Errorf("expected max width of 3, is %d", r.MaxWidth())
	}
	s := bottomup.State{bottomup.Leaf("S"), bottomup.Leaf("AND"), bottomup.Leaf("S")}
	count := 0
	r.Each(s, func(i, j int, rule bottomup.Rule) {
		if i != 0 || j != 3 || rule.LHS != "S" {
			t.Errorf("unexpected match [%d,%d) for %v", i, j, rule)
		}
		count++
	})
	if count != 1 {
		t.Errorf("expected 1 match, have %d", count)
	}
}
