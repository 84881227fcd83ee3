package grocery

import (
	"context"
	"sync"
)

// flightGroup coalesces concurrent ingredient fetches per recipe id: at most
// one fetch is in flight for any id. Callers claim the ids they will fetch;
// ids already claimed by another request yield channels to wait on instead.
type flightGroup struct {
	mu       sync.Mutex
	inflight map[int]chan struct{}
}

func newFlightGroup() *flightGroup {
	return &flightGroup{inflight: make(map[int]chan struct{})}
}

// claim partitions ids into those the caller now owns and must fetch, and
// wait channels for ids another caller is already fetching.
func (g *flightGroup) claim(ids []int) (owned []int, waits []<-chan struct{}) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range ids {
		if ch, ok := g.inflight[id]; ok {
			waits = append(waits, ch)
			continue
		}
		g.inflight[id] = make(chan struct{})
		owned = append(owned, id)
	}
	return owned, waits
}

// release marks the claimed ids as done, waking all waiters. Must be called
// exactly once for every id returned as owned by claim, whether or not the
// fetch succeeded; a failed fetch just leaves the id missing for the next
// request to retry.
func (g *flightGroup) release(ids []int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, id := range ids {
		if ch, ok := g.inflight[id]; ok {
			close(ch)
			delete(g.inflight, id)
		}
	}
}

// wait blocks until all channels are closed or the context is done.
func (g *flightGroup) wait(ctx context.Context, waits []<-chan struct{}) error {
	for _, ch := range waits {
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
