package driver

import (
	"go.uber.org/zap"

	"splice/internal/diagfmt"
	"splice/internal/library"
	"splice/internal/observ"
	"splice/internal/source"
)

// Options configures a driver run.
type Options struct {
	// IncludesPath is the includes-association file.
	IncludesPath string
	// ListPath names the library files, one per line.
	ListPath string
	// Files are extra library files read after the list.
	Files []string
	// Jobs bounds parallel library loading; <= 0 means GOMAXPROCS.
	Jobs int
	// Cache, if non-nil, keeps built indexes between runs.
	Cache *library.DiskCache

	Color    bool
	PathMode diagfmt.PathMode
	// Timings prints per-phase durations to stderr after the run.
	Timings bool
	Logger  *zap.Logger
}

func (o *Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// timer returns nil when timings are off; a nil *observ.Timer ignores calls.
func (o *Options) timer() *observ.Timer {
	if !o.Timings {
		return nil
	}
	return observ.NewTimer()
}

func (o *Options) libraryOptions(fs *source.FileSet) library.Options {
	return library.Options{
		IncludesPath: o.IncludesPath,
		ListPath:     o.ListPath,
		Files:        o.Files,
		Jobs:         o.Jobs,
		Cache:        o.Cache,
		FileSet:      fs,
		Logger:       o.logger(),
	}
}

func (o *Options) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:      o.Color,
		PathMode:   o.PathMode,
		ShowSource: true,
	}
}
