package repositories

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestGuestStore(t *testing.T, ttl time.Duration) (*GuestWatchlistStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewGuestWatchlistStore(rdb, ttl), mr
}

func TestGuestWatchlistStore_RoundTrip(t *testing.T) {
	store, mr := newTestGuestStore(t, time.Hour)
	ctx := context.Background()

	ids, err := store.Load(ctx, "guest-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ids == nil || len(ids) != 0 {
		t.Fatalf("missing key: got %#v, want empty list", ids)
	}

	want := []string{"newton-laws", "optics"}
	if err := store.Save(ctx, "guest-1", want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load(ctx, "guest-1")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load = %v, want %v", got, want)
	}

	key := guestKey("guest-1")
	if raw, _ := mr.Get(key); raw != `["newton-laws","optics"]` {
		t.Errorf("stored value = %s", raw)
	}
	if ttl := mr.TTL(key); ttl != time.Hour {
		t.Errorf("ttl = %v", ttl)
	}

	mr.FastForward(2 * time.Hour)
	if got, _ := store.Load(ctx, "guest-1"); len(got) != 0 {
		t.Errorf("expired list still loaded: %v", got)
	}
}

func TestGuestWatchlistStore_CorruptAndClear(t *testing.T) {
	store, mr := newTestGuestStore(t, 0)
	ctx := context.Background()

	if err := mr.Set(guestKey("guest-2"), "{not json"); err != nil {
		t.Fatal(err)
	}
	ids, err := store.Load(ctx, "guest-2")
	if err != nil || len(ids) != 0 {
		t.Errorf("corrupt value: got %v, %v", ids, err)
	}

	if err := store.Save(ctx, "guest-2", []string{"a"}); err != nil {
		t.Fatal(err)
	}
	if mr.TTL(guestKey("guest-2")) != 0 {
		t.Error("zero ttl should not expire")
	}
	if err := store.Clear(ctx, "guest-2"); err != nil {
		t.Fatal(err)
	}
	if mr.Exists(guestKey("guest-2")) {
		t.Error("key still present after Clear")
	}
}

func TestGuestWatchlistStore_Unavailable(t *testing.T) {
	store, mr := newTestGuestStore(t, time.Hour)
	mr.Close()
	if _, err := store.Load(context.Background(), "guest-3"); err == nil {
		t.Error("expected error when redis is down")
	}
}
