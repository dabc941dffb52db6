package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/pagenav/pkg/pagenav/router"
)

// step is one navigation command of a script, written as
// op[:route[:key=value,...]].
type step struct {
	op     string
	route  string
	params router.Params
}

func parseStep(arg string) (step, error) {
	op, rest, _ := strings.Cut(arg, ":")
	route, query, _ := strings.Cut(rest, ":")
	s := step{op: op, route: route}

	switch op {
	case "push", "replace":
		if route == "" {
			return step{}, fmt.Errorf("%q: %s needs a route", arg, op)
		}
	case "back":
	case "clear", "clear-all":
		if rest != "" {
			return step{}, fmt.Errorf("%q: %s takes no arguments", arg, op)
		}
	default:
		return step{}, fmt.Errorf("%q: unknown command %q", arg, op)
	}

	if query != "" {
		s.params = router.Params{}
		for _, kv := range strings.Split(query, ",") {
			k, v, ok := strings.Cut(kv, "=")
			if !ok || k == "" {
				return step{}, fmt.Errorf("%q: bad param %q, want key=value", arg, kv)
			}
			s.params[k] = v
		}
	}
	return s, nil
}

func (s step) String() string {
	if s.route == "" {
		return s.op
	}
	return s.op + " " + s.route
}

// apply starts the step. Steps that complete synchronously return nil.
func (s step) apply(ctx context.Context, r *router.Router) *router.Future {
	switch s.op {
	case "push":
		return r.Push(ctx, s.route, s.params)
	case "replace":
		return r.Replace(ctx, s.route, s.params)
	case "back":
		return r.Back(ctx, s.route, s.params)
	case "clear":
		r.Clear()
	case "clear-all":
		r.ClearAll()
	}
	return nil
}

func newScriptCmd(opts *rootOptions) *cobra.Command {
	var (
		timeout  time.Duration
		animate  bool
		snapshot bool
		persist  bool
	)

	cmd := &cobra.Command{
		Use:   "script STEP...",
		Short: "Apply navigation steps and print the state after each",
		Long: `Apply navigation steps in order, acting as the renderer: every activation
is committed and, unless --animate is set, its transitions are ended at once.

Steps:
  push:ROUTE[:k=v,...]     push ROUTE with params
  replace:ROUTE[:k=v,...]  replace the active page
  back[:ROUTE[:k=v,...]]   go back one entry, or back to ROUTE
  clear                    drop history except the top entry
  clear-all                drop all history`,
		Example: "  pagenav script push:library push:game:id=7 back back:home",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := make([]step, len(args))
			for i, arg := range args {
				s, err := parseStep(arg)
				if err != nil {
					return err
				}
				steps[i] = s
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			setup, err := opts.setup(ctx, nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			r := setup.Router
			sc := &scriptRenderer{router: r, animate: animate}

			sc.report(out, "start", sc.settle(ctx, setup.Resume(ctx)))
			for _, s := range steps {
				sc.report(out, s.String(), sc.settle(ctx, s.apply(ctx, r)))
			}

			if persist {
				if err := setup.Persist(ctx); err != nil {
					return err
				}
				loggerFromContext(cmd.Context()).Info("history saved", "key", setup.Config.History.Key)
			}
			if snapshot {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(r.Snapshot())
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "overall time limit")
	cmd.Flags().BoolVar(&animate, "animate", false, "leave transitions running instead of ending them")
	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "print the final snapshot as JSON")
	cmd.Flags().BoolVar(&persist, "persist", false, "save the final history to the configured store")
	return cmd
}

// scriptRenderer stands in for a UI: it commits whatever version is current
// and optionally finishes every running transition.
type scriptRenderer struct {
	router  *router.Router
	animate bool
}

// settle commits until f completes. A nil future is already complete.
func (s *scriptRenderer) settle(ctx context.Context, f *router.Future) error {
	if f == nil {
		return nil
	}
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for {
		s.router.Commit(s.router.Version())
		select {
		case <-f.Done():
			s.finishTransitions()
			return f.Err()
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *scriptRenderer) finishTransitions() {
	if s.animate {
		return
	}
	for _, p := range s.router.VisiblePages() {
		if v := p.Transition.Visibility; v == router.Showing || v == router.Hiding {
			s.router.OnPageTransitionEnd(p.Version)
		}
	}
}

func (s *scriptRenderer) report(w io.Writer, label string, err error) {
	if err != nil {
		fmt.Fprintf(w, "%s: %v\n", label, err)
	} else {
		fmt.Fprintf(w, "%s: ok\n", label)
	}
	info := s.router.PageInfo()
	fmt.Fprintf(w, "  active %s, depth %d\n", info.Route, info.Depth)
	for _, p := range s.router.VisiblePages() {
		fmt.Fprintf(w, "  %s#%d %s/%s\n", p.Route, p.Version, p.Transition.Visibility, p.Transition.Kind)
	}
}
