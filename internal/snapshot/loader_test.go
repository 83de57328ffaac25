package snapshot_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"pubdiff/internal/snapshot"
)

func writeSnapshotFile(t *testing.T, dir, name string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := snapshot.Encode(&buf, sampleItems()); err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func openTestCache(t *testing.T) *snapshot.DiskCache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := snapshot.OpenDiskCache("pubdiff-test")
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	return cache
}

func TestLoaderWithoutCache(t *testing.T) {
	path := writeSnapshotFile(t, t.TempDir(), "api.json")

	items, err := snapshot.NewLoader(nil).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(items, sampleItems()) {
		t.Fatalf("loaded items mismatch")
	}
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := snapshot.NewLoader(nil).Load(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatalf("missing file must error")
	}
}

func TestLoaderPopulatesAndHitsCache(t *testing.T) {
	cache := openTestCache(t)
	path := writeSnapshotFile(t, t.TempDir(), "api.json")
	loader := snapshot.NewLoader(cache)

	first, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	cached, ok := cache.Get(snapshot.DigestOf(content))
	if !ok {
		t.Fatalf("first load must populate the cache")
	}
	if !reflect.DeepEqual(cached, first) {
		t.Fatalf("cached items differ from decoded items")
	}

	second, err := loader.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !reflect.DeepEqual(second, first) {
		t.Fatalf("cache hit returned different items")
	}
}

func TestCacheMissOnCorruptEntry(t *testing.T) {
	cache := openTestCache(t)
	key := snapshot.DigestOf([]byte("content"))
	if err := cache.Put(key, sampleItems()); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, ok := cache.Get(key); !ok {
		t.Fatalf("fresh entry must hit")
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, ok := cache.Get(key); ok {
		t.Fatalf("dropped entry must miss")
	}
}

func TestNilCacheIsMissAndNoop(t *testing.T) {
	var cache *snapshot.DiskCache
	if _, ok := cache.Get(snapshot.DigestOf(nil)); ok {
		t.Fatalf("nil cache must miss")
	}
	if err := cache.Put(snapshot.DigestOf(nil), nil); err != nil {
		t.Fatalf("nil cache Put must be a no-op, got %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("nil cache DropAll must be a no-op, got %v", err)
	}
}

func TestLoadPair(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeSnapshotFile(t, dir, "old.json")
	newPath := writeSnapshotFile(t, dir, "new.json")

	oldItems, newItems, err := snapshot.NewLoader(nil).LoadPair(context.Background(), oldPath, newPath)
	if err != nil {
		t.Fatalf("load pair: %v", err)
	}
	if !reflect.DeepEqual(oldItems, newItems) {
		t.Fatalf("identical files must load identical items")
	}
}

func TestLoadHonorsCancelledContext(t *testing.T) {
	path := writeSnapshotFile(t, t.TempDir(), "api.json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := snapshot.NewLoader(nil).Load(ctx, path); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled load must fail with context.Canceled, got %v", err)
	}
	if _, _, err := snapshot.NewLoader(nil).LoadPair(ctx, path, path); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled pair load must fail with context.Canceled, got %v", err)
	}
}

func TestLoadPairPropagatesError(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeSnapshotFile(t, dir, "old.json")

	_, _, err := snapshot.NewLoader(nil).LoadPair(context.Background(), oldPath, filepath.Join(dir, "absent.json"))
	if err == nil {
		t.Fatalf("missing new snapshot must error")
	}
}
