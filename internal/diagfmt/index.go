package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"splice/internal/library"
)

// IndexEntry describes one keyword known to the index.
type IndexEntry struct {
	Keyword string `json:"keyword"`
	// Lines is the length of the declaration body, 0 if the keyword only
	// has an include mapping.
	Lines   int    `json:"lines,omitempty"`
	Include string `json:"include,omitempty"`
}

// IndexOutput is the root of `splice index --format json`.
type IndexOutput struct {
	Decls    []IndexEntry `json:"decls"`
	Includes []IndexEntry `json:"includes"`
}

// BuildIndexOutput lists declarations and include mappings in keyword order.
func BuildIndexOutput(ix *library.Index) IndexOutput {
	out := IndexOutput{
		Decls:    make([]IndexEntry, 0, len(ix.Decls)),
		Includes: make([]IndexEntry, 0, len(ix.Includes)),
	}
	for _, kw := range ix.DeclKeywords() {
		e := IndexEntry{Keyword: kw, Lines: len(ix.Decls[kw])}
		e.Include, _ = ix.Include(kw)
		out.Decls = append(out.Decls, e)
	}
	for _, kw := range ix.IncludeKeywords() {
		out.Includes = append(out.Includes, IndexEntry{Keyword: kw, Include: ix.Includes[kw]})
	}
	return out
}

// FormatIndexPretty prints one keyword per line.
func FormatIndexPretty(w io.Writer, ix *library.Index) error {
	out := BuildIndexOutput(ix)
	if _, err := fmt.Fprintf(w, "declarations (%d):\n", len(out.Decls)); err != nil {
		return err
	}
	for _, e := range out.Decls {
		line := fmt.Sprintf("  %-24s %3d lines", e.Keyword, e.Lines)
		if e.Include != "" {
			line += "  " + e.Include
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "includes (%d):\n", len(out.Includes)); err != nil {
		return err
	}
	for _, e := range out.Includes {
		inc := e.Include
		if inc == "" {
			inc = "-"
		}
		if _, err := fmt.Fprintf(w, "  %-24s %s\n", e.Keyword, inc); err != nil {
			return err
		}
	}
	return nil
}

// FormatIndexJSON prints the index as JSON.
func FormatIndexJSON(w io.Writer, ix *library.Index) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildIndexOutput(ix))
}
