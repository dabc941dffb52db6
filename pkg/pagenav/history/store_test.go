package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/BrandonKowalski/pagenav/pkg/pagenav/router"
)

// fakeRedis is an in-memory redisClient.
type fakeRedis struct {
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func sampleSnapshot() router.Snapshot {
	return router.Snapshot{
		Entries: []router.Record{{Route: "home"}, {Route: "list", Params: router.Params{"page": "2"}}},
		Active:  router.Record{Route: "detail", Params: router.Params{"id": "42"}},
	}
}

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	snap, err := s.Load(ctx, "root")
	if err != nil || snap != nil {
		t.Fatalf("Load on empty store = %v, %v", snap, err)
	}

	if err := s.Save(ctx, "root", sampleSnapshot()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	snap, err = s.Load(ctx, "root")
	if err != nil || snap == nil {
		t.Fatalf("Load = %v, %v", snap, err)
	}
	if len(snap.Entries) != 2 || snap.Entries[1].Params["page"] != "2" || snap.Active.Route != "detail" || snap.Active.Params["id"] != "42" {
		t.Fatalf("loaded snapshot = %+v", snap)
	}

	if err := s.Delete(ctx, "root"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if snap, _ := s.Load(ctx, "root"); snap != nil {
		t.Fatalf("Load after Delete = %+v", snap)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore(0))
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1000, 0)
	s := NewMemoryStore(time.Minute)
	s.now = func() time.Time { return now }

	s.Save(ctx, "root", sampleSnapshot())
	now = now.Add(2 * time.Minute)
	if snap, err := s.Load(ctx, "root"); err != nil || snap != nil {
		t.Fatalf("expired Load = %v, %v", snap, err)
	}
}

func TestRedisStore(t *testing.T) {
	fake := newFakeRedis()
	testStore(t, newRedisStore(fake, "test", time.Hour))

	s := newRedisStore(fake, "test", time.Hour)
	s.Save(context.Background(), "root", sampleSnapshot())
	if fake.ttls["test:root"] != time.Hour {
		t.Fatalf("ttl = %v, want 1h", fake.ttls["test:root"])
	}
}

func TestRedisStoreErrors(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	s := newRedisStore(fake, "test", 0)

	fake.data["test:bad"] = "{oops"
	if _, err := s.Load(ctx, "bad"); err == nil {
		t.Fatal("expected decode error")
	}

	down := errors.New("connection refused")
	fake.err = down
	if err := s.Save(ctx, "root", sampleSnapshot()); !errors.Is(err, down) {
		t.Fatalf("Save err = %v", err)
	}
	if _, err := s.Load(ctx, "root"); !errors.Is(err, down) {
		t.Fatalf("Load err = %v", err)
	}
}

func TestRestoreFromStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	store.Save(ctx, "root", sampleSnapshot())

	r := router.New()
	for _, route := range []string{"home", "list", "detail"} {
		r.Register(route, func(router.Params) any { return nil })
	}
	snap, err := store.Load(ctx, "root")
	if err != nil {
		t.Fatal(err)
	}
	f := r.Restore(ctx, *snap)
	r.Commit(r.Version())
	if err := f.Wait(ctx); err != nil {
		t.Fatal(err)
	}
	if info := r.PageInfo(); info.Depth != 2 || info.Route != "detail" {
		t.Fatalf("PageInfo = %+v", info)
	}
}
