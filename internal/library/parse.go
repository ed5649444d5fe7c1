package library

import (
	"bufio"
	"fmt"
	"io"

	"splice/internal/decl"
	"splice/internal/diag"
	"splice/internal/source"
)

const includeToken = "#include"

// ParseIncludes reads an includes-association file: whitespace-separated
// tokens where "#include" takes the next token as the current target and any
// other token maps to the current target. Tokens seen before the first
// "#include" map to "".
func ParseIncludes(r io.Reader) (map[string]string, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	out := make(map[string]string)
	current := ""
	for sc.Scan() {
		tok := sc.Text()
		if tok != includeToken {
			out[tok] = current
			continue
		}
		if !sc.Scan() {
			return nil, diag.Newf(diag.IOListMalformed, "%s without a target at end of file", includeToken)
		}
		current = decl.IncludePrefix + sc.Text()
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan includes: %w", err)
	}
	return out, nil
}

// ParseLibrary extracts the referenceable declarations of one library file.
// Documentation lines (starting with "////") are dropped first; error
// positions still refer to the lines of the file as given.
func ParseLibrary(path string, lines source.Lines) ([]decl.Unit, error) {
	kept, orig := lines.StripPrefixed(decl.DocPrefix)
	units, err := decl.ExtractAll(kept)
	if err != nil {
		if de, ok := diag.As(err); ok {
			de = de.InFile(path)
			if de.HasPos {
				de.Pos.Line = physicalLine(orig, de.Pos.Line, len(lines))
			}
			return nil, de
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := units[:0]
	for _, u := range units {
		if u.Keyword != "" {
			out = append(out, u)
		}
	}
	return out, nil
}

// physicalLine maps a line index of the filtered sequence back to the file.
func physicalLine(orig []int, line, total int) int {
	if line < len(orig) {
		return orig[line]
	}
	return total
}
