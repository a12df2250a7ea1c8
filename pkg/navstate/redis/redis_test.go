package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/goliatone/go-hardship/pkg/model"
	"github.com/goliatone/go-hardship/pkg/navstate"
)

func newBackend(t *testing.T) (*Backend, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	b := New(client)
	t.Cleanup(func() { _ = b.Close() })
	return b, mr
}

func TestBackendGetMissing(t *testing.T) {
	b, _ := newBackend(t)
	if _, err := b.Get(context.Background(), "nope"); !errors.Is(err, navstate.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreOverRedis(t *testing.T) {
	b, mr := newBackend(t)
	store := navstate.New(b, navstate.WithTTL(time.Minute))
	ctx := context.Background()

	record := model.Record{DebtID: 42, HardshipTypeID: 2, Name: "Jane Doe", DOB: "1985-07-04", Income: 1, Expenses: 2}
	token, err := store.Put(ctx, record)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !mr.Exists(navstate.DefaultPrefix + token) {
		t.Fatalf("expected key %q in redis", navstate.DefaultPrefix+token)
	}
	if ttl := mr.TTL(navstate.DefaultPrefix + token); ttl != time.Minute {
		t.Fatalf("unexpected ttl %s", ttl)
	}

	got, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != record {
		t.Fatalf("snapshot mismatch: %+v", got)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := store.Get(ctx, token); !errors.Is(err, navstate.ErrNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestDial(t *testing.T) {
	mr := miniredis.RunT(t)
	b, err := Dial(context.Background(), mr.Addr(), "", 0)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	_ = b.Close()

	mr.Close()
	if _, err := Dial(context.Background(), mr.Addr(), "", 0); err == nil {
		t.Fatalf("expected dial error after server shutdown")
	}
}
