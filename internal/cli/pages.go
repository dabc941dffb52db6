package cli

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/BrandonKowalski/pagenav/pkg/pagenav/resolver"
	"github.com/BrandonKowalski/pagenav/pkg/pagenav/router"
)

// demoRoutes are registered up front; number keys 1-9 push them in order.
var demoRoutes = []string{"home", "library", "game", "settings", "about"}

var titleCase = cases.Title(language.English)

// page returns a builder rendering title followed by its params.
func page(title string) router.PageBuilder {
	return func(params router.Params) any {
		if len(params) == 0 {
			return title
		}
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%v", k, params[k])
		}
		return title + " (" + strings.Join(parts, ", ") + ")"
	}
}

func registerDemoPages(r *router.Router) {
	for _, route := range demoRoutes {
		r.Register(route, page(titleCase.String(route)))
	}
}

// manifestPage builds pages for routes served by a remote manifest.
func manifestPage(m resolver.Manifest) (router.PageBuilder, error) {
	title := m.Title
	if title == "" {
		title = titleCase.String(m.Route)
	}
	defaults := m.Params
	build := page(title)
	return func(params router.Params) any {
		if params == nil {
			params = defaults
		}
		return build(params)
	}, nil
}
