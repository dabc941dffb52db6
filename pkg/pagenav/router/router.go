package router

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/pagenav/pkg/pagenav/internal"
)

const tracerName = "github.com/BrandonKowalski/pagenav/router"

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger used for navigation diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		r.logger = l
	}
}

// WithMetrics makes the router report to m.
func WithMetrics(m *Metrics) Option {
	return func(r *Router) {
		r.metrics = m
	}
}

// WithTracer sets the tracer used for resolver spans.
// Default: the global OpenTelemetry tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(r *Router) {
		r.tracer = t
	}
}

// WithResolver sets the fallback resolver, same as ProvideResolver.
func WithResolver(res Resolver) Option {
	return func(r *Router) {
		r.resolver = res
	}
}

// request is a navigation call waiting for its turn to activate.
type request struct {
	id      string
	kind    RouteKind
	route   string
	params  Params
	future  *Future
	ready   bool
	builder PageBuilder
	err     error
}

// activeState is the mutable side of NavigationState.
type activeState struct {
	route             string
	builder           PageBuilder
	params            Params
	activePageVersion uint64
	showing           uint64
	hiding            uint64
}

// Router owns the history stack, the visible-page set and the navigation
// state of one navigation root. All methods are safe for concurrent use.
type Router struct {
	mu       sync.Mutex
	registry map[string]PageBuilder
	resolver Resolver
	stack    *Stack
	pages    pageSet
	state    activeState
	queue    []*request

	version *atomic.Uint64
	commits commitQueue

	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// New creates a Router with an empty registry and history.
func New(opts ...Option) *Router {
	r := &Router{
		registry: make(map[string]PageBuilder),
		stack:    NewStack(),
		version:  atomic.NewUint64(0),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = internal.GetInternalLogger()
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(tracerName)
	}
	return r
}

// Register maps route to builder, replacing any earlier registration.
func (r *Router) Register(route string, builder PageBuilder) *Router {
	r.mu.Lock()
	r.registry[route] = builder
	r.mu.Unlock()
	return r
}

// ProvideResolver sets the resolver consulted for routes missing from the registry.
func (r *Router) ProvideResolver(res Resolver) *Router {
	r.mu.Lock()
	r.resolver = res
	r.mu.Unlock()
	return r
}

// Push navigates to route and records the current page in history.
func (r *Router) Push(ctx context.Context, route string, params Params) *Future {
	return r.navigate(ctx, RoutePush, route, params)
}

// Replace navigates to route in place of the current page without touching history.
func (r *Router) Replace(ctx context.Context, route string, params Params) *Future {
	return r.navigate(ctx, RouteNone, route, params)
}

// Back returns to the most recent history entry, or with a non-empty route,
// to the most recent entry for that route, discarding everything above it.
// Nil params reuse the params the entry was recorded with.
func (r *Router) Back(ctx context.Context, route string, params Params) *Future {
	return r.navigate(ctx, RoutePop, route, params)
}

func (r *Router) navigate(ctx context.Context, kind RouteKind, route string, params Params) *Future {
	req := &request{
		id:     uuid.NewString(),
		kind:   kind,
		route:  route,
		params: params,
		future: newFuture(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.queue = append(r.queue, req)

	if kind == RoutePop {
		req.ready = true
	} else if b, ok := r.registry[route]; ok {
		req.builder = b
		req.ready = true
	} else if r.resolver == nil {
		req.err = &RouteError{Route: route, Err: ErrNotRegistered}
		req.ready = true
	} else {
		go r.resolve(ctx, r.resolver, req)
	}

	r.flush()
	return req.future
}

func (r *Router) resolve(ctx context.Context, res Resolver, req *request) {
	ctx, span := r.tracer.Start(ctx, "pagenav.resolve", trace.WithAttributes(
		attribute.String("pagenav.route", req.route),
		attribute.String("pagenav.request_id", req.id),
	))

	start := time.Now()
	builder, err := res.Resolve(ctx, req.route)
	if err == nil && builder == nil {
		err = ErrNotRegistered
	}
	r.metrics.resolved(time.Since(start).Seconds(), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		err = routeError(req.route, err)
	}
	span.End()

	r.mu.Lock()
	defer r.mu.Unlock()
	req.builder = builder
	req.err = err
	req.ready = true
	r.flush()
}

// flush runs queued requests in call order, stopping at the first one still
// waiting on its resolver.
func (r *Router) flush() {
	for len(r.queue) > 0 && r.queue[0].ready {
		req := r.queue[0]
		r.queue[0] = nil
		r.queue = r.queue[1:]
		r.run(req)
	}
}

func (r *Router) run(req *request) {
	if req.err != nil {
		r.fail(req, req.err)
		return
	}

	switch req.kind {
	case RoutePush:
		if r.state.activePageVersion != 0 {
			r.stack.Push(StackEntry{
				Route:       r.state.route,
				Builder:     r.state.builder,
				Params:      r.state.params,
				PageVersion: r.state.activePageVersion,
			})
		}
		r.activate(req, RoutePush, req.route, req.builder, req.params, nil)

	case RouteNone:
		r.activate(req, RouteNone, req.route, req.builder, req.params, nil)

	case RoutePop:
		var entry *StackEntry
		if req.route == "" {
			entry = r.stack.Pop()
		} else {
			entry = r.stack.PopTo(req.route)
		}
		if entry == nil {
			r.fail(req, ErrHistoryEmpty)
			return
		}
		params := req.params
		if params == nil {
			params = entry.Params
		}
		r.activate(req, RoutePop, entry.Route, entry.Builder, params, entry)

	default:
		panic("router: unknown route kind " + req.kind.String())
	}
}

func (r *Router) fail(req *request, err error) {
	r.logger.Debug("navigation failed",
		"request_id", req.id,
		"kind", req.kind.String(),
		"route", req.route,
		"error", err)
	r.metrics.navigation(req.kind, err)
	req.future.complete(err)
}

// Commit completes the futures of every activation up to and including
// version. Renderers call it once per render pass with the version they drew.
// It returns the number of navigations completed.
func (r *Router) Commit(version uint64) int {
	ready := r.commits.take(version)
	for _, c := range ready {
		c.future.complete(nil)
	}
	return len(ready)
}

// PendingCommits returns the number of activations not yet committed.
func (r *Router) PendingCommits() int {
	return r.commits.len()
}

// OnPageTransitionEnd finalizes the transition of the page with the given
// version once its enter or exit animation is over. Unknown versions are ignored.
func (r *Router) OnPageTransitionEnd(version uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.pages.index(version)
	if idx < 0 {
		r.metrics.stale()
		r.logger.Debug("transition end for unknown page", "page_version", version)
		return
	}

	p := &r.pages.pages[idx]
	switch p.Transition.Visibility {
	case Showing:
		if version == r.state.activePageVersion {
			p.Transition.Visibility = Visible
		} else {
			p.Transition.Visibility = Hidden
		}
	case Hiding:
		if r.stack.References(version) {
			p.Transition.Visibility = Hidden
		} else {
			r.pages.remove(idx)
		}
	default:
		r.logger.Warn("transition end for settled page",
			"page_version", version,
			"route", p.Route,
			"visibility", p.Transition.Visibility.String())
		return
	}
	r.metrics.sizes(len(r.pages.pages), r.stack.Len())
}

// Clear drops all history except the most recent entry.
func (r *Router) Clear() {
	r.truncate((*Stack).KeepTop)
}

// ClearAll empties the history.
func (r *Router) ClearAll() {
	r.truncate((*Stack).Clear)
}

func (r *Router) truncate(fn func(*Stack)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fn(r.stack)
	removed := r.pages.removeHiddenUnless(r.stack.References)
	r.logger.Debug("history cleared", "depth", r.stack.Len(), "pages_removed", removed)
	r.metrics.sizes(len(r.pages.pages), r.stack.Len())
}

// Param returns the active page's parameter for key.
func (r *Router) Param(key string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.state.params[key]
	return v, ok
}

// Depth returns the history stack length.
func (r *Router) Depth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stack.Len()
}

// PageInfo returns the history depth and the active route.
func (r *Router) PageInfo() PageInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return PageInfo{Depth: r.stack.Len(), Route: r.state.route}
}

// Version returns the activation counter without taking the router lock.
func (r *Router) Version() uint64 {
	return r.version.Load()
}

// State returns a snapshot of the navigation state.
func (r *Router) State() NavigationState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return NavigationState{
		ActiveRoute:       r.state.route,
		ActiveBuilder:     r.state.builder,
		ActiveParams:      r.state.params,
		Version:           r.version.Load(),
		ActivePageVersion: r.state.activePageVersion,
		Showing:           r.state.showing,
		Hiding:            r.state.hiding,
	}
}

// VisiblePages returns a copy of the visible-page set, bottom to top.
func (r *Router) VisiblePages() []VisiblePage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pages.snapshot()
}

// History returns a copy of the history stack, oldest first.
func (r *Router) History() []StackEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stack.Entries()
}
