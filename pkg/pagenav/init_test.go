package pagenav

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/BrandonKowalski/pagenav/pkg/pagenav/config"
	"github.com/BrandonKowalski/pagenav/pkg/pagenav/constants"
	"github.com/BrandonKowalski/pagenav/pkg/pagenav/history"
	"github.com/BrandonKowalski/pagenav/pkg/pagenav/router"
)

func page(params router.Params) any { return nil }

func newSetup(t *testing.T, cfg config.Config) *Setup {
	t.Helper()
	s, err := NewRouter(context.Background(), cfg, prometheus.NewRegistry(), nil)
	if err != nil {
		t.Fatal(err)
	}
	s.Router.Register("home", page).Register("library", page).Register("game", page)
	return s
}

func commit(t *testing.T, r *router.Router, f *router.Future) {
	t.Helper()
	r.Commit(r.Version())
	if err := f.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestNewRouterDefaults(t *testing.T) {
	s := newSetup(t, config.Default())
	if s.Metrics == nil {
		t.Error("metrics not built for a registry")
	}
	if _, ok := s.Store.(*history.MemoryStore); !ok {
		t.Errorf("store = %T, want memory store without redis", s.Store)
	}
}

func TestResumeAndPersist(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()

	first := newSetup(t, cfg)
	commit(t, first.Router, first.Resume(ctx))
	if got := first.Router.PageInfo().Route; got != cfg.InitialRoute {
		t.Fatalf("fresh resume route = %q, want %q", got, cfg.InitialRoute)
	}
	commit(t, first.Router, first.Router.Push(ctx, "library", router.Params{"sort": "name"}))
	commit(t, first.Router, first.Router.Push(ctx, "game", nil))
	if err := first.Persist(ctx); err != nil {
		t.Fatal(err)
	}

	second := newSetup(t, cfg)
	second.Store = first.Store
	commit(t, second.Router, second.Resume(ctx))

	info := second.Router.PageInfo()
	if info.Route != "game" || info.Depth != 2 {
		t.Fatalf("resumed at %+v", info)
	}
	commit(t, second.Router, second.Router.Back(ctx, "", nil))
	if v, _ := second.Router.Param("sort"); v != "name" {
		t.Errorf("restored params lost: sort = %v", v)
	}
}

func TestSetupClearModes(t *testing.T) {
	ctx := context.Background()
	for _, mode := range []constants.ClearMode{constants.ClearKeepTop, constants.ClearAll} {
		t.Run(string(mode), func(t *testing.T) {
			cfg := config.Default()
			cfg.ClearMode = mode
			s := newSetup(t, cfg)
			commit(t, s.Router, s.Router.Replace(ctx, "home", nil))
			commit(t, s.Router, s.Router.Push(ctx, "library", nil))
			commit(t, s.Router, s.Router.Push(ctx, "game", nil))

			s.Clear()
			want := 1
			if mode == constants.ClearAll {
				want = 0
			}
			if got := s.Router.Depth(); got != want {
				t.Errorf("depth = %d, want %d", got, want)
			}
		})
	}
}

func TestNewRouterRedisUnavailable(t *testing.T) {
	cfg := config.Default()
	cfg.History.RedisAddr = "127.0.0.1:1"
	_, err := NewRouter(context.Background(), cfg, nil, nil)
	if !IsInfrastructureError(err) {
		t.Fatalf("err = %v, want infrastructure error", err)
	}
}

func TestInfrastructureError(t *testing.T) {
	cause := errors.New("boom")
	err := NewInfrastructureError("open_input", cause)
	if err.Error() != "pagenav: open_input: boom" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("cause not unwrapped")
	}
	if NewInfrastructureError("save_history", nil).Error() != "pagenav: save_history" {
		t.Error("nil cause formatting")
	}
	if IsInfrastructureError(ErrHistoryEmpty) {
		t.Error("navigation error reported as infrastructure error")
	}
}
