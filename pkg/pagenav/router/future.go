package router

import (
	"context"
	"sync"
)

// Future is the pending outcome of a navigation call. It completes once the
// renderer has committed the activation (see Router.Commit), or as soon as
// the navigation fails.
type Future struct {
	done chan struct{}
	once sync.Once
	err  error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

func (f *Future) complete(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Done is closed when the navigation has completed or failed.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Err returns the navigation error. It is nil while the future is pending.
func (f *Future) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}

// Wait blocks until the future completes or ctx is done.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// commit is a notification owed to a caller once the renderer has drawn version.
type commit struct {
	version uint64
	future  *Future
}

// commitQueue holds activations whose callers have not been notified yet.
type commitQueue struct {
	mu      sync.Mutex
	pending []commit
}

func (q *commitQueue) add(c commit) {
	q.mu.Lock()
	q.pending = append(q.pending, c)
	q.mu.Unlock()
}

// take removes and returns every commit at or below version.
func (q *commitQueue) take(version uint64) []commit {
	q.mu.Lock()
	defer q.mu.Unlock()

	var ready []commit
	rest := q.pending[:0]
	for _, c := range q.pending {
		if c.version <= version {
			ready = append(ready, c)
		} else {
			rest = append(rest, c)
		}
	}
	q.pending = rest
	return ready
}

func (q *commitQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
