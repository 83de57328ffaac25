package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"pubdiff/internal/api"
	"pubdiff/internal/token"
)

// Current schema version - increment when cachePayload format changes
const cacheSchemaVersion uint16 = 1

// Digest identifies a snapshot file by the SHA-256 of its content.
type Digest [32]byte

// DigestOf hashes raw snapshot file content.
func DigestOf(content []byte) Digest {
	return sha256.Sum256(content)
}

// DiskCache stores decoded snapshots keyed by content digest.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema uint16
	Items  []cachedItem
}

type cachedItem struct {
	Path  []string
	Kinds []uint8
	Texts []string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Snapshots get their own subdirectory for easy cleanup.
	return filepath.Join(c.dir, "snaps", hexKey+".mp")
}

// Put serializes and writes decoded items to the disk cache.
func (c *DiskCache) Put(key Digest, items []api.Item) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := cachePayload{
		Schema: cacheSchemaVersion,
		Items:  make([]cachedItem, 0, len(items)),
	}
	for _, it := range items {
		ci := cachedItem{
			Path:  it.Path,
			Kinds: make([]uint8, 0, len(it.Tokens)),
			Texts: make([]string, 0, len(it.Tokens)),
		}
		for _, t := range it.Tokens {
			ci.Kinds = append(ci.Kinds, uint8(t.Kind))
			ci.Texts = append(ci.Texts, t.Text)
		}
		payload.Items = append(payload.Items, ci)
	}

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replacement
	return os.Rename(f.Name(), p)
}

// Get reads decoded items from the disk cache. A missing, corrupt, or
// schema-skewed entry is a miss, never an error: the caller falls back to
// decoding the snapshot file itself.
func (c *DiskCache) Get(key Digest) ([]api.Item, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var payload cachePayload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return nil, false
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false
	}

	items := make([]api.Item, 0, len(payload.Items))
	for _, ci := range payload.Items {
		if len(ci.Kinds) != len(ci.Texts) {
			return nil, false
		}
		tokens := make([]token.Token, 0, len(ci.Kinds))
		for i := range ci.Kinds {
			tokens = append(tokens, token.Token{Kind: token.Kind(ci.Kinds[i]), Text: ci.Texts[i]})
		}
		items = append(items, api.NewItem(ci.Path, tokens))
	}
	return items, true
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	err := os.RemoveAll(filepath.Join(c.dir, "snaps"))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
