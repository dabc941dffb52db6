// Package resolver provides router.Resolver implementations for routes that
// are not registered up front: plain functions, fallback chains, caching, and
// page manifests fetched over HTTP.
package resolver

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/BrandonKowalski/pagenav/pkg/pagenav/router"
)

// Func adapts a function to router.Resolver.
type Func func(ctx context.Context, route string) (router.PageBuilder, error)

func (f Func) Resolve(ctx context.Context, route string) (router.PageBuilder, error) {
	return f(ctx, route)
}

// Static resolves routes from a fixed map.
type Static map[string]router.PageBuilder

func (s Static) Resolve(_ context.Context, route string) (router.PageBuilder, error) {
	if b, ok := s[route]; ok {
		return b, nil
	}
	return nil, router.ErrNotRegistered
}

// Chain tries each resolver in order and returns the first builder found.
// If all fail the errors are joined.
func Chain(resolvers ...router.Resolver) router.Resolver {
	return Func(func(ctx context.Context, route string) (router.PageBuilder, error) {
		var errs []error
		for _, r := range resolvers {
			b, err := r.Resolve(ctx, route)
			if err == nil && b != nil {
				return b, nil
			}
			if err != nil {
				errs = append(errs, err)
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
		}
		if len(errs) == 0 {
			return nil, router.ErrNotRegistered
		}
		return nil, errors.Join(errs...)
	})
}

// CachedResolver remembers successful resolutions and collapses concurrent
// lookups of the same route into one call. Failures are not cached.
type CachedResolver struct {
	next  router.Resolver
	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]router.PageBuilder
}

// Cached wraps next with a CachedResolver.
func Cached(next router.Resolver) *CachedResolver {
	return &CachedResolver{
		next:  next,
		cache: make(map[string]router.PageBuilder),
	}
}

func (c *CachedResolver) Resolve(ctx context.Context, route string) (router.PageBuilder, error) {
	c.mu.RLock()
	b, ok := c.cache[route]
	c.mu.RUnlock()
	if ok {
		return b, nil
	}

	v, err, _ := c.group.Do(route, func() (any, error) {
		b, err := c.next.Resolve(ctx, route)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.cache[route] = b
		c.mu.Unlock()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(router.PageBuilder), nil
}

// Forget drops a cached route so the next lookup resolves it again.
func (c *CachedResolver) Forget(route string) {
	c.mu.Lock()
	delete(c.cache, route)
	c.mu.Unlock()
	c.group.Forget(route)
}
