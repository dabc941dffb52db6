package router

import (
	"context"
	"fmt"
)

// Params carries the parameters a page was navigated to with.
type Params map[string]any

// PageBuilder is the render closure for a page. It is owned by the rendering
// layer; the router stores and returns builders but never calls them.
type PageBuilder func(params Params) any

// Resolver produces page builders for routes missing from the registry,
// for example by loading them lazily.
type Resolver interface {
	Resolve(ctx context.Context, route string) (PageBuilder, error)
}

// Visibility is the presentation phase of a VisiblePage.
type Visibility int

const (
	Hidden Visibility = iota
	Visible
	Showing
	Hiding
)

func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Visible:
		return "visible"
	case Showing:
		return "showing"
	case Hiding:
		return "hiding"
	}
	return fmt.Sprintf("visibility(%d)", int(v))
}

// RouteKind is the navigation action that produced a transition.
type RouteKind int

const (
	RouteNone RouteKind = iota // replace
	RoutePush
	RoutePop
)

func (k RouteKind) String() string {
	switch k {
	case RouteNone:
		return "none"
	case RoutePush:
		return "push"
	case RoutePop:
		return "pop"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// TransitionState describes where a page is in its enter/exit lifecycle and
// which navigation caused it.
type TransitionState struct {
	Visibility Visibility
	Kind       RouteKind
}

// VisiblePage is a page taking part in the on-screen transition.
// Version identifies it and is never reused by the same Router.
type VisiblePage struct {
	Version    uint64
	Route      string
	Builder    PageBuilder
	Params     Params
	Transition TransitionState
}

// NavigationState is a snapshot of the active navigation target.
type NavigationState struct {
	ActiveRoute   string
	ActiveBuilder PageBuilder
	ActiveParams  Params

	// Version increments by one on every activation. Renderers compare it
	// against the last version they drew to decide whether to re-render.
	Version uint64

	// ActivePageVersion is the VisiblePage currently on top.
	ActivePageVersion uint64

	// Showing and Hiding mark the pages animated by the latest activation.
	// Hiding is zero when nothing was active before.
	Showing uint64
	Hiding  uint64
}

// PageInfo is a read-only summary of the router position.
type PageInfo struct {
	Depth int
	Route string
}
