package search

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/npillmayer/bottomup"
	"github.com/npillmayer/bottomup/reduce"
	"github.com/npillmayer/schuko/gconf"
)

// ErrBudgetExhausted is returned (wrapped) if a search has been stopped because
// of a budget set by MaxGenerations or MaxStates.
var ErrBudgetExhausted = errors.New("search budget exhausted")

// Parse returns every parse tree for tokens with respect to rules. If tokens
// cannot be parsed, the result is empty.
//
// Parse does not limit the search in any way and will not terminate for grammars
// producing an unbounded number of different tree shapes. Use a Parser with a budget
// for those. Clients parsing repeatedly with the same rules should create a Parser
// with NewParser, which re-uses its search buffers.
func Parse(rules []bottomup.Rule, tokens []string) []*bottomup.Node {
	p := NewParser(rules)
	defer p.Close()
	trees, _ := p.Parse(tokens)
	return trees
}

// Parser searches for parse trees, given a fixed set of rules.
// Create one with NewParser.
type Parser struct {
	reducer        *reduce.Reducer
	maxGenerations int
	maxStates      int
	unique         bool
	searchers      *searcherPool
	mx             sync.Mutex // guards stats
	stats          Stats
}

// Stats holds some numbers about a search run.
type Stats struct {
	Generations int // number of generations explored
	States      int // number of distinct states enqueued
	Candidates  int // number of states produced by reductions, including already seen ones
	Completed   int // number of completed parses
}

func (st Stats) String() string {
	return fmt.Sprintf("%d generations, %d states (%d candidates), %d parses",
		st.Generations, st.States, st.Candidates, st.Completed)
}

// Option configures a parser.
type Option func(p *Parser)

// MaxGenerations limits a search to n generations. n <= 0 means: no limit.
func MaxGenerations(n int) Option {
	return func(p *Parser) {
		p.maxGenerations = n
	}
}

// MaxStates stops a search as soon as more than n distinct states have been
// discovered. The check is done between generations, so a single generation may
// overshoot. n <= 0 means: no limit.
func MaxStates(n int) Option {
	return func(p *Parser) {
		p.maxStates = n
	}
}

// UniqueParses removes parse trees from the result which have the same canonical
// form as a tree found earlier. Default is false, i.e. the parser will report
// every completed state it encounters.
func UniqueParses(b bool) Option {
	return func(p *Parser) {
		p.unique = b
	}
}

// NewParser creates a parser for a set of rules. Rules are not copied and must
// not be modified by the client as long as the parser is in use.
func NewParser(rules []bottomup.Rule, opts ...Option) *Parser {
	p := &Parser{
		reducer:   reduce.NewReducer(rules),
		searchers: newSearcherPool(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Rules returns the rules of a parser.
func (p *Parser) Rules() []bottomup.Rule {
	return p.reducer.Rules()
}

// Parse searches for all parse trees for tokens. The error return value is non-nil
// only if a budget has been exhausted, in which case the trees found so far are
// returned.
func (p *Parser) Parse(tokens []string) ([]*bottomup.Node, error) {
	return p.ParseContext(context.Background(), tokens)
}

// ParseContext is like Parse, but will stop the search if ctx is done. ctx is
// checked between generations. If the search has been stopped, the trees found so
// far are returned together with ctx.Err().
func (p *Parser) ParseContext(ctx context.Context, tokens []string) ([]*bottomup.Node, error) {
	s := p.searchers.borrow()
	defer p.searchers.release(s)
	trees, err := s.run(ctx, p, bottomup.Leaves(tokens))
	p.mx.Lock()
	p.stats = s.stats
	p.mx.Unlock()
	tracer().Infof("search for %d tokens: %s", len(tokens), s.stats)
	return trees, err
}

// ParseAll parses a couple of inputs concurrently. Results and errors are
// returned in the order of inputs.
func (p *Parser) ParseAll(ctx context.Context, inputs [][]string) ([][]*bottomup.Node, []error) {
	results := make([][]*bottomup.Node, len(inputs))
	errs := make([]error, len(inputs))
	var wg sync.WaitGroup
	wg.Add(len(inputs))
	for i, tokens := range inputs {
		go func(i int, tokens []string) {
			defer wg.Done()
			results[i], errs[i] = p.ParseContext(ctx, tokens)
		}(i, tokens)
	}
	wg.Wait()
	return results, errs
}

// Stats returns statistics for the search which finished last.
func (p *Parser) Stats() Stats {
	p.mx.Lock()
	defer p.mx.Unlock()
	return p.stats
}

// Close releases resources held by a parser. A closed parser still works, but
// allocates fresh search buffers for every call.
func (p *Parser) Close() {
	p.searchers.close()
}

func (p *Parser) exhausted(msg string) error {
	tracer().Errorf(msg)
	if gconf.GetBool("panic-on-budget-exhausted") {
		panic(`Search budget exhausted.

Configuration flag panic-on-budget-exhausted is set to true. It is aimed at helping
to debug a grammar and do a post-mortem of why the search did not terminate in time.
If you did not expect this to panic, please unset panic-on-budget-exhausted to its
default (false).

` + msg)
	}
	return fmt.Errorf("%w: %s", ErrBudgetExhausted, msg)
}

// --- Search ----------------------------------------------------------------

// run performs a breadth-first search, starting at state initial.
func (s *searcher) run(ctx context.Context, p *Parser, initial bottomup.State) ([]*bottomup.Node, error) {
	completed := []*bottomup.Node{}
	var parses map[string]struct{} // for unique parses only
	if p.unique {
		parses = make(map[string]struct{})
	}
	s.frontier = append(s.frontier, initial)
	for len(s.frontier) > 0 {
		if err := ctx.Err(); err != nil {
			tracer().Infof("search cancelled after %d generations", s.stats.Generations)
			return completed, err
		}
		if p.maxGenerations > 0 && s.stats.Generations >= p.maxGenerations {
			return completed, p.exhausted(fmt.Sprintf("stopped after %d generations, %d states pending",
				s.stats.Generations, len(s.frontier)))
		}
		if p.maxStates > 0 && s.stats.States > p.maxStates {
			return completed, p.exhausted(fmt.Sprintf("stopped after %d states, %d states pending",
				s.stats.States, len(s.frontier)))
		}
		tracer().Debugf("--- generation %04d: %d states ---", s.stats.Generations, len(s.frontier))
		for _, state := range s.frontier {
			if state.IsComplete() && isNewParse(parses, state[0]) {
				tracer().Debugf("completed parse %s", state[0])
				completed = append(completed, state[0])
				s.stats.Completed = len(completed)
			}
			for _, cand := range p.reducer.Reductions(state) {
				s.stats.Candidates++
				key := bottomup.Canonical(cand)
				if _, found := s.seen[key]; found {
					continue
				}
				s.seen[key] = struct{}{}
				s.next = append(s.next, cand)
			}
		}
		s.stats.Generations++
		s.stats.States = len(s.seen)
		s.frontier, s.next = s.next, clearStates(s.frontier)
	}
	return completed, nil
}

// isNewParse checks a completed parse against the parses found so far. If parses
// is nil, every parse is considered new.
func isNewParse(parses map[string]struct{}, root *bottomup.Node) bool {
	if parses == nil {
		return true
	}
	key := bottomup.CanonicalTree(root)
	if _, dup := parses[key]; dup {
		tracer().Debugf("dropping duplicate parse %s", key)
		return false
	}
	parses[key] = struct{}{}
	return true
}

// clearStates empties a slice of states, keeping its capacity.
func clearStates(states []bottomup.State) []bottomup.State {
	for i := range states {
		states[i] = nil
	}
	return states[:0]
}
