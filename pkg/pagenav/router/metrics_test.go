package router

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithMetricsNamespace("test"))

	r := newTestRouter(WithMetrics(m), WithResolver(resolverFunc(func(context.Context, string) (PageBuilder, error) {
		return nil, errors.New("offline")
	})))
	r.Replace(ctx, "A", nil)
	r.Push(ctx, "B", nil)
	mustWait(t, r.Push(ctx, "missing", nil))
	r.Back(ctx, "", nil)
	mustWait(t, r.Back(ctx, "", nil))
	r.OnPageTransitionEnd(42)

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"replace ok", m.navigations.WithLabelValues("none", "ok"), 1},
		{"push ok", m.navigations.WithLabelValues("push", "ok"), 1},
		{"push unresolved", m.navigations.WithLabelValues("push", "unresolved"), 1},
		{"pop ok", m.navigations.WithLabelValues("pop", "ok"), 1},
		{"pop empty", m.navigations.WithLabelValues("pop", "history_empty"), 1},
		{"stale", m.staleSignals, 1},
		{"depth", m.historyDepth, 0},
		{"visible", m.visiblePages, 2},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(tt.c); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}

	if n := testutil.CollectAndCount(m.resolveDuration); n != 1 {
		t.Errorf("resolve duration series = %d, want 1", n)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.navigation(RoutePush, nil)
	m.resolved(0.1, nil)
	m.sizes(1, 1)
	m.stale()
}
