package search

import (
	"context"

	pool "github.com/jolestar/go-commons-pool"
	"github.com/npillmayer/bottomup"
)

// A searcher holds the working collections of a single search run. Searchers are
// pooled, as parsers are often called repeatedly with small inputs.
type searcher struct {
	seen     map[string]struct{} // canonical forms of all states ever enqueued
	frontier []bottomup.State    // states of the current generation
	next     []bottomup.State    // states of the next generation
	stats    Stats
}

// Large seen-sets are not worth keeping around; we'd rather let the GC have them.
const maxRetainedSeen = 1 << 14

func newSearcher() *searcher {
	return &searcher{
		seen:     make(map[string]struct{}),
		frontier: make([]bottomup.State, 0, 16),
		next:     make([]bottomup.State, 0, 16),
	}
}

// reset clears a searcher for re-use.
func (s *searcher) reset() {
	if len(s.seen) > maxRetainedSeen {
		s.seen = make(map[string]struct{})
	} else {
		for k := range s.seen {
			delete(s.seen, k)
		}
	}
	s.frontier = clearStates(s.frontier)
	s.next = clearStates(s.next)
	s.stats = Stats{}
}

type searcherPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

func newSearcherPool() *searcherPool {
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return newSearcher(), nil
		})
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	ctx := context.Background()
	return &searcherPool{
		opool: pool.NewObjectPool(ctx, factory, config),
		ctx:   ctx,
	}
}

// borrow returns an exclusive searcher. It never fails: if the pool is unable to
// deliver, a fresh searcher is created.
func (sp *searcherPool) borrow() *searcher {
	o, err := sp.opool.BorrowObject(sp.ctx)
	if err != nil {
		tracer().Debugf("unable to borrow searcher from pool: %v", err)
		return newSearcher()
	}
	return o.(*searcher)
}

// release clears a searcher and puts it back into the pool.
func (sp *searcherPool) release(s *searcher) {
	s.reset()
	if err := sp.opool.ReturnObject(sp.ctx, s); err != nil {
		tracer().Debugf("unable to return searcher to pool: %v", err)
	}
}

func (sp *searcherPool) close() {
	sp.opool.Close(sp.ctx)
}
