// Package router provides page navigation for declarative UI toolkits.
//
// A Router owns three pieces of state for one navigation root: the history
// stack used by back navigation, the visible-page set (the pages currently on
// screen, more than one only while an enter/exit transition is running), and
// the navigation state the rendering layer watches.
//
// # Basic Usage
//
//	r := router.New()
//	r.Register("home", homePage)
//	r.Register("detail", detailPage)
//
//	r.Replace(ctx, "home", nil)
//	f := r.Push(ctx, "detail", router.Params{"id": 42})
//
// The renderer polls Version, draws every page returned by VisiblePages with
// its TransitionState, and then calls Commit with the version it drew. Only
// then does the future returned by Push complete:
//
//	if v := r.Version(); v != lastDrawn {
//	    draw(r.VisiblePages())
//	    r.Commit(v)
//	    lastDrawn = v
//	}
//
// State changes are visible immediately after Push returns; caller
// notification waits for the next render pass.
//
// # Transitions
//
// Every activation marks the previous page Hiding and the new page Showing.
// When the platform finishes animating a page it calls OnPageTransitionEnd:
// a Showing page settles to Visible (or Hidden if something newer took its
// place), a Hiding page settles to Hidden while history can still return to
// it and is dropped otherwise.
//
// # Ordering
//
// Navigation calls activate in the order they were made. A call waiting on a
// Resolver holds back the calls behind it until it resolves or fails.
//
// # Lazy Routes
//
// Routes missing from the registry go to the Resolver given with
// ProvideResolver. A failed resolution leaves the router untouched and fails
// the future with a *RouteError.
package router
