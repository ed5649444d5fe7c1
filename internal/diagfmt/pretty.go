package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"splice/internal/diag"
	"splice/internal/source"
)

// ProcessErrorPrefix starts the first line of every failure report.
const ProcessErrorPrefix = "// PROCESS ERROR:"

const stdinName = "<stdin>"

// Pretty форматирует ошибку в человекочитаемый вид:
//
//	// PROCESS ERROR: <Title>.
//	<path>:<line>:<col>: ERROR <CODE>: <Message>
//	   3 | <строка>
//	     |      ^
//
// Строка с кареткой печатается только если файл известен (input для stdin,
// fs для библиотек). Цвет включается опцией.
func Pretty(w io.Writer, err error, input source.Lines, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)

	de, ok := diag.As(err)
	if !ok {
		_, werr := fmt.Fprintf(w, "%s %s\n", ProcessErrorPrefix, err)
		return werr
	}

	if _, werr := fmt.Fprintf(w, "%s %s\n", ProcessErrorPrefix, de.Headline()); werr != nil {
		return werr
	}

	path := displayPath(de.File, opts.PathMode)
	loc := path
	if de.HasPos {
		if loc == "" {
			loc = stdinName
		}
		lc := de.Pos.LineCol()
		loc = fmt.Sprintf("%s:%d:%d", loc, lc.Line, lc.Col)
	}
	var b strings.Builder
	if loc != "" {
		b.WriteString(p.loc.Sprint(loc))
		b.WriteString(": ")
	}
	b.WriteString(p.sev.Sprint("ERROR"))
	b.WriteString(" ")
	b.WriteString(p.code.Sprint(de.Code.ID()))
	b.WriteString(": ")
	b.WriteString(de.Msg)
	b.WriteString("\n")

	if opts.ShowSource && de.HasPos {
		if line, ok := sourceLine(de, input, fs); ok {
			writeSnippet(&b, p, de.Pos, line)
		}
	}
	_, werr := io.WriteString(w, b.String())
	return werr
}

type palette struct {
	loc, sev, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		loc:    color.New(color.Bold),
		sev:    color.New(color.FgRed, color.Bold),
		code:   color.New(color.FgYellow),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.loc, p.sev, p.code, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func displayPath(path string, mode PathMode) string {
	if path == "" {
		return ""
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeBasename:
		return filepath.Base(path)
	}
	return path
}

func sourceLine(de *diag.Error, input source.Lines, fs *source.FileSet) (string, bool) {
	if de.File == "" {
		if de.Pos.Line < len(input) {
			return input[de.Pos.Line], true
		}
		return "", false
	}
	if fs == nil {
		return "", false
	}
	f, ok := fs.GetByPath(de.File)
	if !ok || de.Pos.Line >= len(f.Lines) {
		return "", false
	}
	return f.GetLine(de.Pos.LineCol().Line), true
}

// writeSnippet prints line and a caret under byte column pos.Col. The caret
// indent follows display width, and tabs are copied so the caret lines up
// in any tab setting.
func writeSnippet(b *strings.Builder, p palette, pos source.Pos, line string) {
	num := fmt.Sprintf("%d", pos.Line+1)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(b, " %s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), line)

	col := min(pos.Col, len(line))
	var indent strings.Builder
	for _, r := range line[:col] {
		if r == '\t' {
			indent.WriteByte('\t')
			continue
		}
		indent.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	fmt.Fprintf(b, " %s %s %s%s\n", pad, p.gutter.Sprint("|"), indent.String(), p.caret.Sprint("^"))
}
