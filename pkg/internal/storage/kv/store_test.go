package kv_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yeisme/photovault/pkg/internal/storage/kv"
)

func newTestStore(t *testing.T) *kv.Store {
	t.Helper()

	mem, err := kv.NewMemoryKV(context.Background(), nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	t.Cleanup(func() { _ = mem.Close() })

	return kv.NewStore(mem)
}

func TestStoreGetMissingKey(t *testing.T) {
	store := newTestStore(t)

	if v, ok := store.Get(context.Background(), "nope"); ok || v != "" {
		t.Fatalf("missing key: got %q ok=%v, want empty and false", v, ok)
	}
}

func TestMemoryGetMissingWrapsSentinel(t *testing.T) {
	mem, err := kv.NewMemoryKV(context.Background(), nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}
	t.Cleanup(func() { _ = mem.Close() })

	_, err = mem.Get(context.Background(), "nope")
	if !errors.Is(err, kv.ErrKeyNotFound) {
		t.Fatalf("missing key error = %v, want ErrKeyNotFound", err)
	}
}

func TestStoreSetGetRemove(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	store.Set(ctx, "greeting", "hello")

	if v, ok := store.Get(ctx, "greeting"); !ok || v != "hello" {
		t.Fatalf("after set: got %q ok=%v", v, ok)
	}

	store.Remove(ctx, "greeting")

	if _, ok := store.Get(ctx, "greeting"); ok {
		t.Fatal("key still present after remove")
	}
}

func TestStoreRemoveMissingIsNoop(t *testing.T) {
	store := newTestStore(t)

	// 不存在的键删除不应 panic，也不影响后续操作
	store.Remove(context.Background(), "ghost")

	store.Set(context.Background(), "k", "v")
	if _, ok := store.Get(context.Background(), "k"); !ok {
		t.Fatal("set after noop remove failed")
	}
}

func TestStoreKeysWithPrefix(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	store.Set(ctx, "photo_counter_Chemistry", "3")
	store.Set(ctx, "photo_counter_Biology", "7")
	store.Set(ctx, "folders", `["Chemistry"]`)

	keys := store.KeysWithPrefix(ctx, "photo_counter_")
	if len(keys) != 2 {
		t.Fatalf("got %d keys, want 2: %v", len(keys), keys)
	}

	for _, k := range keys {
		if k != "photo_counter_Chemistry" && k != "photo_counter_Biology" {
			t.Fatalf("unexpected key %q", k)
		}
	}
}

func TestStoreSelfTest(t *testing.T) {
	store := newTestStore(t)

	if !store.SelfTest(context.Background()) {
		t.Fatal("self test failed on healthy backend")
	}
}

// brokenKV 所有操作都报错，用于验证软失败行为.
type brokenKV struct{}

var errBroken = errors.New("backend down")

func (brokenKV) Get(ctx context.Context, key string) ([]byte, error) { return nil, errBroken }
func (brokenKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errBroken
}
func (brokenKV) Delete(ctx context.Context, key string) error         { return errBroken }
func (brokenKV) Exists(ctx context.Context, key string) (bool, error) { return false, errBroken }
func (brokenKV) Keys(ctx context.Context, p string) ([]string, error) { return nil, errBroken }
func (brokenKV) Close() error                                         { return nil }

func TestStoreSoftFailOnBrokenBackend(t *testing.T) {
	ctx := context.Background()
	store := kv.NewStore(brokenKV{})

	// 写入和删除失败只记日志，不 panic
	store.Set(ctx, "k", "v")
	store.Remove(ctx, "k")

	if v, ok := store.Get(ctx, "k"); ok || v != "" {
		t.Fatalf("broken backend get: got %q ok=%v", v, ok)
	}

	if keys := store.KeysWithPrefix(ctx, "k"); len(keys) != 0 {
		t.Fatalf("broken backend keys: got %v", keys)
	}

	if store.SelfTest(ctx) {
		t.Fatal("self test passed on broken backend")
	}
}
