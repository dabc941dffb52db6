package router

import (
	"context"

	"github.com/google/uuid"
)

// Record is the serializable part of a navigation point.
type Record struct {
	Route  string `json:"route"`
	Params Params `json:"params,omitempty"`
}

// Snapshot captures a router's history and active page without builders,
// so it can be stored and later restored against the same registry.
type Snapshot struct {
	Entries []Record `json:"entries"`
	Active  Record   `json:"active"`
}

// Snapshot returns the current history and active page.
func (r *Router) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		Entries: make([]Record, 0, r.stack.Len()),
		Active:  Record{Route: r.state.route, Params: r.state.params},
	}
	for _, e := range r.stack.entries {
		snap.Entries = append(snap.Entries, Record{Route: e.Route, Params: e.Params})
	}
	return snap
}

// Restore rebuilds history and the active page from snap. Builders come from
// the registry, falling back to the resolver. The router must not have
// navigated yet; otherwise the future fails with ErrNotIdle.
func (r *Router) Restore(ctx context.Context, snap Snapshot) *Future {
	req := &request{
		id:     uuid.NewString(),
		kind:   RouteNone,
		route:  snap.Active.Route,
		params: snap.Active.Params,
		future: newFuture(),
	}

	records := append(append([]Record(nil), snap.Entries...), snap.Active)
	builders := make([]PageBuilder, len(records))
	for i, rec := range records {
		b, err := r.lookup(ctx, rec.Route)
		if err != nil {
			r.mu.Lock()
			r.fail(req, err)
			r.mu.Unlock()
			return req.future
		}
		builders[i] = b
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.idle() {
		r.fail(req, ErrNotIdle)
		return req.future
	}

	for i, rec := range snap.Entries {
		r.stack.Push(StackEntry{Route: rec.Route, Builder: builders[i], Params: rec.Params})
	}
	req.builder = builders[len(builders)-1]
	r.activate(req, RouteNone, req.route, req.builder, req.params, nil)
	r.logger.Info("history restored", "depth", r.stack.Len(), "route", req.route)
	return req.future
}

// lookup returns the builder for route from the registry or, failing that,
// synchronously from the resolver.
func (r *Router) lookup(ctx context.Context, route string) (PageBuilder, error) {
	r.mu.Lock()
	b, ok := r.registry[route]
	res := r.resolver
	r.mu.Unlock()

	if ok {
		return b, nil
	}
	if res == nil {
		return nil, &RouteError{Route: route, Err: ErrNotRegistered}
	}
	b, err := res.Resolve(ctx, route)
	if err != nil {
		return nil, routeError(route, err)
	}
	if b == nil {
		return nil, &RouteError{Route: route, Err: ErrNotRegistered}
	}
	return b, nil
}

func (r *Router) idle() bool {
	return r.stack.IsEmpty() && r.state.activePageVersion == 0 && len(r.queue) == 0
}
