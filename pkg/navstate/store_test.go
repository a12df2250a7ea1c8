package navstate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hardship/pkg/model"
)

func sampleRecord() model.Record {
	return model.Record{
		DebtID:           42,
		HardshipTypeName: "Financial",
		Name:             "Jane Doe",
		DOB:              "1985-07-04T00:00:00",
		Income:           50000,
		Expenses:         20000,
		Comments:         "lost job",
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := New(nil)

	token, err := store.Put(ctx, sampleRecord())
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(sampleRecord(), got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}

	if _, err := store.Get(ctx, token); err != nil {
		t.Fatalf("Get must not consume the snapshot: %v", err)
	}

	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStoreRejectsMalformedToken(t *testing.T) {
	store := New(nil)
	if _, err := store.Get(context.Background(), "../../etc"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if err := store.Delete(context.Background(), ""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestStoreUsesPrefixAndTTL(t *testing.T) {
	backend := NewMemoryBackend(0)
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	backend.now = func() time.Time { return now }

	store := New(backend, WithTTL(time.Minute), WithPrefix("test:"))
	store.tokens = func() string { return "0b7e7c4e-3f4a-4d8b-9c55-6f1f0c1a2b3c" }

	token, err := store.Put(context.Background(), sampleRecord())
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := backend.Get(context.Background(), "test:"+token); err != nil {
		t.Fatalf("expected prefixed key: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := store.Get(context.Background(), token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired snapshot, got %v", err)
	}
	if backend.Len() != 0 {
		t.Fatalf("expired entry should be evicted on read")
	}
}

func TestMemoryBackendPrune(t *testing.T) {
	backend := NewMemoryBackend(0)
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	backend.now = func() time.Time { return now }
	ctx := context.Background()

	_ = backend.Set(ctx, "short", []byte("a"), time.Second)
	_ = backend.Set(ctx, "forever", []byte("b"), 0)

	now = now.Add(time.Hour)
	backend.prune()

	if backend.Len() != 1 {
		t.Fatalf("expected only the non-expiring entry, have %d", backend.Len())
	}
	if _, err := backend.Get(ctx, "forever"); err != nil {
		t.Fatalf("Get forever: %v", err)
	}
	if err := backend.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := backend.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestMemoryBackendCopiesValues(t *testing.T) {
	backend := NewMemoryBackend(0)
	ctx := context.Background()
	val := []byte("abc")
	_ = backend.Set(ctx, "k", val, 0)
	val[0] = 'x'

	got, _ := backend.Get(ctx, "k")
	if string(got) != "abc" {
		t.Fatalf("stored value mutated: %q", got)
	}
	got[1] = 'y'
	again, _ := backend.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("returned value aliases storage: %q", again)
	}
}

func TestStoreReplace(t *testing.T) {
	ctx := context.Background()
	store := New(nil)

	token, err := store.Put(ctx, sampleRecord())
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	updated := sampleRecord()
	updated.Income = 60000
	if err := store.Replace(ctx, token, updated); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	got, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Income != 60000 {
		t.Fatalf("snapshot not replaced: %+v", got)
	}

	unknown := "6f1f0c1a-2b3c-4d8b-9c55-0b7e7c4e3f4a"
	if err := store.Replace(ctx, unknown, updated); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown token, got %v", err)
	}
}
