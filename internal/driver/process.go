// Package driver runs splice end to end: it reads the input, builds the
// library index, resolves, and reports failures the way scripts expect.
package driver

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"splice/internal/diag"
	"splice/internal/diagfmt"
	"splice/internal/library"
	"splice/internal/observ"
	"splice/internal/resolve"
	"splice/internal/source"
)

const stdinName = "<stdin>"

// Process resolves the file read from stdin and writes the result to stdout.
// It returns the process exit status.
//
// On failure nothing resolved is written: the diagnostic goes to stderr and
// the input, as read, goes to stdout, so a pipeline that overwrites its input
// with the output loses nothing.
func Process(ctx context.Context, opts Options, stdin io.Reader, stdout, stderr io.Writer) int {
	log := opts.logger()
	timer := opts.timer()
	defer writeTimings(timer, stderr, log)

	phase := timer.Begin("read")
	data, err := io.ReadAll(stdin)
	if err != nil {
		timer.End(phase, "failed")
		return report(stderr, diag.Newf(diag.IOUnreadable, "could not read standard input: %v", err), nil, nil, opts)
	}
	fs := source.NewFileSet()
	input := fs.Get(fs.AddVirtual(stdinName, data)).Lines
	timer.End(phase, fmt.Sprintf("%d lines", len(input)))
	log.Debug("Input read", zap.Int("lines", len(input)))

	out, err := resolveLines(ctx, opts, fs, input, timer)
	if err != nil {
		code := report(stderr, err, input, fs, opts)
		if _, werr := stdout.Write(input.Bytes()); werr != nil {
			log.Error("Echoing input failed", zap.Error(werr))
		}
		return code
	}

	phase = timer.Begin("write")
	_, err = stdout.Write(source.Lines(out).Bytes())
	timer.End(phase, fmt.Sprintf("%d lines", len(out)))
	if err != nil {
		return report(stderr, diag.Newf(diag.IOWriteFailed, "could not write output: %v", err), nil, nil, opts)
	}
	return 0
}

// resolveLines builds the index and resolves lines against it.
func resolveLines(ctx context.Context, opts Options, fs *source.FileSet, lines source.Lines, timer *observ.Timer) ([]string, error) {
	ix, err := LoadIndex(ctx, opts, fs, timer)
	if err != nil {
		return nil, err
	}

	phase := timer.Begin("resolve")
	r := resolve.Resolver{Index: ix, Logger: opts.logger()}
	out, err := r.Resolve(lines)
	timer.End(phase, "")
	return out, err
}

// LoadIndex builds the library index, adding the library files to fs.
func LoadIndex(ctx context.Context, opts Options, fs *source.FileSet, timer *observ.Timer) (*library.Index, error) {
	phase := timer.Begin("index")
	ix, err := library.Load(ctx, opts.libraryOptions(fs))
	if err != nil {
		timer.End(phase, "failed")
		return nil, err
	}
	timer.End(phase, fmt.Sprintf("%d decls", len(ix.Decls)))
	return ix, nil
}

// report prints err and returns its exit status.
func report(stderr io.Writer, err error, input source.Lines, fs *source.FileSet, opts Options) int {
	if perr := diagfmt.Pretty(stderr, err, input, fs, opts.prettyOpts()); perr != nil {
		opts.logger().Error("Writing diagnostic failed", zap.Error(perr))
	}
	return diag.ExitCode(err)
}

func writeTimings(timer *observ.Timer, w io.Writer, log *zap.Logger) {
	if timer == nil {
		return
	}
	if err := timer.WriteSummary(w); err != nil {
		log.Error("Writing timings failed", zap.Error(err))
	}
}
