package router

import "fmt"

// activate moves the router to a new active page. It runs with r.mu held and
// mutates state immediately; the caller's future is completed later by Commit.
// popped is the history entry being returned to when kind is RoutePop.
func (r *Router) activate(req *request, kind RouteKind, route string, builder PageBuilder, params Params, popped *StackEntry) {
	version := r.version.Inc()

	prevVersion := r.state.activePageVersion
	prevIdx := r.pages.index(prevVersion)
	if prevIdx >= 0 {
		r.pages.pages[prevIdx].Transition = TransitionState{Visibility: Hiding, Kind: kind}
	}

	r.state.route = route
	r.state.builder = builder
	r.state.params = params
	r.commits.add(commit{version: version, future: req.future})

	page := VisiblePage{
		Version:    version,
		Route:      route,
		Builder:    builder,
		Params:     params,
		Transition: TransitionState{Visibility: Showing, Kind: kind},
	}

	switch kind {
	case RoutePush:
		r.pages.insert(prevIdx+1, page)

	case RoutePop:
		idx := r.pages.index(popped.PageVersion)
		if idx < 0 {
			// The entry's page is gone (restored history); show a fresh one
			// beneath the page being left.
			idx = max(prevIdx, 0)
			r.pages.insert(idx, page)
		} else {
			target := &r.pages.pages[idx]
			target.Params = params
			target.Transition = TransitionState{Visibility: Showing, Kind: RoutePop}
			page = *target
		}
		if removed := r.pages.removeHiddenAbove(idx); removed > 0 {
			r.logger.Debug("dropped hidden pages above pop target", "count", removed)
		}

	case RouteNone:
		if prevIdx >= 0 {
			r.pages.pages[prevIdx] = page
		} else {
			r.pages.insert(len(r.pages.pages), page)
		}

	default:
		panic(fmt.Sprintf("router: activate called with unknown route kind %d", int(kind)))
	}

	r.state.showing = page.Version
	r.state.hiding = prevVersion
	r.state.activePageVersion = page.Version

	r.logger.Debug("activated",
		"request_id", req.id,
		"kind", kind.String(),
		"route", route,
		"version", version,
		"page_version", page.Version,
		"depth", r.stack.Len())
	r.metrics.navigation(kind, nil)
	r.metrics.sizes(len(r.pages.pages), r.stack.Len())
}
