package router

import (
	"errors"
	"fmt"
)

var (
	// ErrHistoryEmpty is returned by Back when no history entry can be popped.
	ErrHistoryEmpty = errors.New("history is empty")

	// ErrNotRegistered is the cause of a RouteError when neither the registry
	// nor a resolver knows the route.
	ErrNotRegistered = errors.New("not registered")

	// ErrNotIdle is returned by Restore when the router already has history.
	ErrNotIdle = errors.New("router already has history")
)

// RouteError reports a route that could not be turned into a page builder.
// Err is ErrNotRegistered or the resolver's error, unchanged.
type RouteError struct {
	Route string
	Err   error
}

func (e *RouteError) Error() string {
	if e.Err == nil || errors.Is(e.Err, ErrNotRegistered) {
		return fmt.Sprintf("%s is not registered", e.Route)
	}
	return fmt.Sprintf("%s is not registered: %v", e.Route, e.Err)
}

func (e *RouteError) Unwrap() error {
	return e.Err
}

// IsHistoryEmpty reports whether err came from a back navigation with nothing to return to.
func IsHistoryEmpty(err error) bool {
	return errors.Is(err, ErrHistoryEmpty)
}

// IsRouteError reports whether err is a RouteError.
func IsRouteError(err error) bool {
	var re *RouteError
	return errors.As(err, &re)
}

// routeError wraps err for route unless it already carries a RouteError.
func routeError(route string, err error) error {
	var re *RouteError
	if errors.As(err, &re) {
		return err
	}
	return &RouteError{Route: route, Err: err}
}
