package library

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when cachePayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a SHA-256 cache key.
type Digest [32]byte

// String returns the hex form of d.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// DiskCache хранит построенные индексы на диске, по ключу из содержимого
// includes-файла и всех библиотек.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema   uint16
	Decls    map[string][]string
	Includes map[string]string
}

// OpenDiskCache initializes a disk cache in dir, or at the standard
// location ($XDG_CACHE_HOME/app) when dir is empty.
func OpenDiskCache(dir, app string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string {
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	// Подкаталог "index", чтобы было проще чистить руками.
	return filepath.Join(c.dir, "index", key.String()+".mp")
}

// Put serializes and writes an index to the disk cache.
func (c *DiskCache) Put(key Digest, ix *Index) (err error) {
	if c == nil || ix == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	payload := cachePayload{
		Schema:   diskCacheSchemaVersion,
		Decls:    ix.Decls,
		Includes: ix.Includes,
	}
	if err = msgpack.NewEncoder(f).Encode(&payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads an index from the disk cache. A missing entry is a miss; an
// unreadable or outdated entry is reported as an error so the caller can log
// it and rebuild.
func (c *DiskCache) Get(key Digest) (*Index, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", key, err)
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, fmt.Errorf("entry %s has schema %d, want %d", key, payload.Schema, diskCacheSchemaVersion)
	}
	ix := &Index{Decls: payload.Decls, Includes: payload.Includes}
	if ix.Decls == nil {
		ix.Decls = make(map[string][]string)
	}
	if ix.Includes == nil {
		ix.Includes = make(map[string]string)
	}
	return ix, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// keyHasher accumulates the inputs that determine an index.
type keyHasher struct {
	h hash.Hash
}

func newKeyHasher() *keyHasher {
	h := sha256.New()
	// схема входит в ключ, чтобы старые записи просто не находились
	_, _ = fmt.Fprintf(h, "splice-index/%d\x00", diskCacheSchemaVersion)
	return &keyHasher{h: h}
}

func (k *keyHasher) add(name string, sum [32]byte) {
	_, _ = io.WriteString(k.h, name)
	_, _ = k.h.Write([]byte{0})
	_, _ = k.h.Write(sum[:])
}

func (k *keyHasher) sum() Digest {
	var d Digest
	copy(d[:], k.h.Sum(nil))
	return d
}
