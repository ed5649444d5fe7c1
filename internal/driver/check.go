package driver

import (
	"context"
	"io"

	"go.uber.org/zap"

	"splice/internal/diag"
	"splice/internal/source"
)

// Check resolves the file at path and reports whether it is already closed
// over the library, i.e. resolving it would not change a line. Returns 0 when
// it is, 4 when it is not, and the usual failure status otherwise.
func Check(ctx context.Context, opts Options, path string, stderr io.Writer) int {
	log := opts.logger()
	timer := opts.timer()
	defer writeTimings(timer, stderr, log)

	fs := source.NewFileSet()
	phase := timer.Begin("read")
	id, err := fs.Load(path)
	timer.End(phase, "")
	if err != nil {
		return Report(stderr, diag.Unreadable(path), fs, opts)
	}
	f := fs.Get(id)

	out, err := resolveLines(ctx, opts, fs, f.Lines, timer)
	if err != nil {
		return Report(stderr, attribute(err, f.Path), fs, opts)
	}

	if f.Lines.Equal(out) {
		log.Debug("Check passed", zap.String("path", f.Path))
		return 0
	}
	line := firstDifference(f.Lines, out)
	var cerr *diag.Error
	if line < len(out) {
		cerr = diag.Errorf(diag.CheckNotFixpoint, source.Pos{Line: line}, "not resolved: expected %q here", out[line])
	} else {
		cerr = diag.Errorf(diag.CheckNotFixpoint, source.Pos{Line: line}, "not resolved: expected end of file here")
	}
	return Report(stderr, cerr.InFile(f.Path), fs, opts)
}

// firstDifference returns the first line index where a and b differ, or -1.
func firstDifference(a, b []string) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}

// attribute names path as the file of a diagnostic that has none.
func attribute(err error, path string) error {
	if de, ok := diag.As(err); ok && de.File == "" {
		return de.InFile(path)
	}
	return err
}

// Report prints err to stderr and returns its exit status.
func Report(stderr io.Writer, err error, fs *source.FileSet, opts Options) int {
	return report(stderr, err, nil, fs, opts)
}
