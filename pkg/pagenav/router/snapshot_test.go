package router

import (
	"context"
	"errors"
	"testing"
)

func TestSnapshotRestore(t *testing.T) {
	ctx := context.Background()
	src := newTestRouter()
	src.Replace(ctx, "A", Params{"n": 1})
	src.Push(ctx, "B", Params{"n": 2})
	src.Push(ctx, "C", nil)

	snap := src.Snapshot()
	if len(snap.Entries) != 2 || snap.Entries[0].Route != "A" || snap.Entries[1].Route != "B" || snap.Active.Route != "C" {
		t.Fatalf("snapshot = %+v", snap)
	}

	dst := newTestRouter()
	f := dst.Restore(ctx, snap)
	dst.Commit(dst.Version())
	if err := mustWait(t, f); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if info := dst.PageInfo(); info.Depth != 2 || info.Route != "C" {
		t.Fatalf("PageInfo = %+v", info)
	}
	if got, want := describe(dst.VisiblePages()), "C#1:showing/none"; got != want {
		t.Fatalf("pages = %q, want %q", got, want)
	}
	settle(dst)

	// Restored entries have no page yet; back creates one beneath the current page.
	dst.Back(ctx, "", nil)
	if got, want := describe(dst.VisiblePages()), "B#2:showing/pop C#1:hiding/pop"; got != want {
		t.Fatalf("pages after back = %q, want %q", got, want)
	}
	if v, _ := dst.Param("n"); v != 2 {
		t.Fatalf("Param(n) = %v, want 2", v)
	}
	settle(dst)
	if got, want := describe(dst.VisiblePages()), "B#2:visible/pop"; got != want {
		t.Fatalf("pages after settle = %q, want %q", got, want)
	}
}

func TestRestoreErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("busy router", func(t *testing.T) {
		r := newTestRouter()
		r.Replace(ctx, "A", nil)
		err := mustWait(t, r.Restore(ctx, Snapshot{Active: Record{Route: "B"}}))
		if !errors.Is(err, ErrNotIdle) {
			t.Fatalf("err = %v, want ErrNotIdle", err)
		}
	})

	t.Run("unknown route", func(t *testing.T) {
		r := newTestRouter()
		err := mustWait(t, r.Restore(ctx, Snapshot{
			Entries: []Record{{Route: "gone"}},
			Active:  Record{Route: "A"},
		}))
		if err == nil || err.Error() != "gone is not registered" {
			t.Fatalf("err = %v", err)
		}
		if r.Version() != 0 || r.Depth() != 0 {
			t.Fatal("failed restore must not mutate the router")
		}
	})
}
