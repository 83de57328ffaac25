package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"pubdiff/internal/api"
)

// maxSnapshotBytes bounds how large a snapshot file this build will read.
const maxSnapshotBytes uint32 = 1 << 28

// Loader loads snapshot files, optionally through a disk cache.
type Loader struct {
	cache *DiskCache
}

// NewLoader returns a loader backed by cache. A nil cache disables caching.
func NewLoader(cache *DiskCache) *Loader {
	return &Loader{cache: cache}
}

// Load reads one snapshot file. The disk cache is consulted first, keyed by
// the file's content digest; on a miss the JSON is decoded and the cache
// populated. Cache write failures are not fatal, the decoded items are
// still returned. A cancelled context aborts the load.
func (l *Loader) Load(ctx context.Context, path string) ([]api.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("snapshot load cancelled: %w", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	size, err := safecast.Conv[uint32](len(content))
	if err != nil || size > maxSnapshotBytes {
		return nil, fmt.Errorf("snapshot %s too large (%d bytes)", path, len(content))
	}

	key := DigestOf(content)
	if items, ok := l.cache.Get(key); ok {
		return items, nil
	}

	items, err := Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := l.cache.Put(key, items); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to cache snapshot %s: %v\n", path, err)
	}
	return items, nil
}

// LoadPair loads the old and new snapshots concurrently. The first failure
// cancels the sibling load.
func (l *Loader) LoadPair(ctx context.Context, oldPath, newPath string) (oldItems, newItems []api.Item, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		oldItems, err = l.Load(gctx, oldPath)
		return err
	})
	g.Go(func() error {
		var err error
		newItems, err = l.Load(gctx, newPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return oldItems, newItems, nil
}
