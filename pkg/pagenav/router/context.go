package router

import "context"

type ctxKey int

const routerKey ctxKey = 0

// WithRouter returns a context carrying r, so a render tree can hand its
// navigation root down to nested pages without a package-level router.
func WithRouter(ctx context.Context, r *Router) context.Context {
	return context.WithValue(ctx, routerKey, r)
}

// FromContext returns the router attached with WithRouter, or nil.
func FromContext(ctx context.Context) *Router {
	r, _ := ctx.Value(routerKey).(*Router)
	return r
}
