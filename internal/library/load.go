package library

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"splice/internal/decl"
	"splice/internal/diag"
	"splice/internal/source"
)

// Options configures Load.
type Options struct {
	// IncludesPath is the includes-association file.
	IncludesPath string
	// ListPath is a file naming one library file per line. May be empty
	// when Files is set.
	ListPath string
	// Files are library files read after the ones named in ListPath.
	Files []string
	// Jobs bounds concurrent reads and extraction; <= 0 means GOMAXPROCS.
	Jobs int
	// Cache, if non-nil, stores built indexes across runs.
	Cache *DiskCache
	// FileSet, if non-nil, receives every library file in list order so
	// diagnostics can quote them.
	FileSet *source.FileSet
	Logger  *zap.Logger
}

// libraryResult содержит результат обработки одного файла библиотеки
type libraryResult struct {
	file  source.File
	units []decl.Unit
	err   error
}

// Load builds the index from the includes file and all library files.
//
// Library files are read and extracted in parallel; registration then runs in
// list order, so when two files define the same keyword the later one wins
// regardless of scheduling. The first failing file in list order decides the
// error.
func Load(ctx context.Context, opts Options) (*Index, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	includesData, err := readFile(opts.IncludesPath)
	if err != nil {
		return nil, err
	}
	includes, err := ParseIncludes(bytes.NewReader(includesData))
	if err != nil {
		if de, ok := diag.As(err); ok {
			return nil, de.InFile(opts.IncludesPath)
		}
		return nil, fmt.Errorf("%s: %w", opts.IncludesPath, err)
	}

	paths, err := libraryPaths(opts.ListPath, opts.Files)
	if err != nil {
		return nil, err
	}
	log.Debug("Library list read",
		zap.String("includes", opts.IncludesPath),
		zap.Int("include_keywords", len(includes)),
		zap.Int("files", len(paths)))

	results := make([]libraryResult, len(paths))
	if err := forEach(ctx, opts.Jobs, len(paths), func(i int) {
		data, err := readFile(paths[i])
		if err != nil {
			results[i].err = err
			return
		}
		results[i].file = source.NewFile(paths[i], data, 0)
	}); err != nil {
		return nil, err
	}
	if err := firstError(results); err != nil {
		return nil, err
	}
	if opts.FileSet != nil {
		for i := range results {
			opts.FileSet.Adopt(results[i].file)
		}
		log.Debug("Library files adopted", zap.Int("file_set_size", opts.FileSet.Len()))
	}

	key := indexKey(includesData, results)
	if ix, ok := cacheLookup(opts.Cache, key, log); ok {
		return ix, nil
	}

	if err := forEach(ctx, opts.Jobs, len(paths), func(i int) {
		f := &results[i].file
		results[i].units, results[i].err = ParseLibrary(f.Path, f.Lines)
	}); err != nil {
		return nil, err
	}
	if err := firstError(results); err != nil {
		return nil, err
	}

	ix := NewIndex()
	ix.Includes = includes
	for i := range results {
		ix.register(results[i].units)
		log.Debug("Library file indexed",
			zap.String("path", results[i].file.Path),
			zap.Int("decls", len(results[i].units)))
	}
	log.Debug("Index built",
		zap.Int("decls", len(ix.Decls)),
		zap.Int("includes", len(ix.Includes)))

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, ix); err != nil {
			log.Warn("Index cache write failed", zap.Error(err))
		}
	}
	return ix, nil
}

// forEach runs fn for 0..n-1 with at most jobs goroutines. Per-item failures
// are recorded by fn itself; forEach only reports cancellation.
func forEach(ctx context.Context, jobs, n int, fn func(i int)) error {
	if n == 0 {
		return ctx.Err()
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, n))
	for i := range n {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			fn(i)
			return nil
		})
	}
	return g.Wait()
}

func firstError(results []libraryResult) error {
	for i := range results {
		if results[i].err != nil {
			return results[i].err
		}
	}
	return nil
}

func cacheLookup(c *DiskCache, key Digest, log *zap.Logger) (*Index, bool) {
	if c == nil {
		return nil, false
	}
	ix, ok, err := c.Get(key)
	switch {
	case err != nil:
		log.Warn("Ignoring unreadable index cache entry",
			zap.String("key", key.String()), zap.Error(err))
		return nil, false
	case ok:
		log.Debug("Index cache hit", zap.String("key", key.String()))
		return ix, true
	default:
		log.Debug("Index cache miss", zap.String("key", key.String()))
		return nil, false
	}
}

func indexKey(includes []byte, results []libraryResult) Digest {
	k := newKeyHasher()
	k.add("includes", sha256.Sum256(includes))
	for i := range results {
		k.add(results[i].file.Path, results[i].file.Hash)
	}
	return k.sum()
}

// libraryPaths reads the list file (one path per line, blank lines ignored)
// and appends extra.
func libraryPaths(listPath string, extra []string) ([]string, error) {
	var paths []string
	if listPath != "" {
		data, err := readFile(listPath)
		if err != nil {
			return nil, err
		}
		for _, line := range source.SplitLines(data) {
			if line = strings.TrimSpace(line); line != "" {
				paths = append(paths, line)
			}
		}
	}
	return append(paths, extra...), nil
}

func readFile(path string) ([]byte, error) {
	// #nosec G304 -- paths come from the command line and list files
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diag.Unreadable(path)
	}
	return data, nil
}
