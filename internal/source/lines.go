package source

import (
	"bytes"
	"slices"
	"strings"
)

// trailingSpace is the set of characters removed from line ends.
const trailingSpace = " \t\n\v\f\r"

// Lines is an immutable sequence of logical lines with trailing whitespace
// removed.
type Lines []string

// SplitLines breaks content on '\n' and trims every line. A final newline
// does not produce an extra empty line.
func SplitLines(content []byte) Lines {
	if len(content) == 0 {
		return Lines{}
	}
	content = bytes.TrimSuffix(content, []byte{'\n'})
	raw := strings.Split(string(content), "\n")
	out := make(Lines, len(raw))
	for i, l := range raw {
		out[i] = TrimTrailingSpace(l)
	}
	return out
}

// TrimTrailingSpace strips trailing ASCII whitespace.
func TrimTrailingSpace(s string) string {
	return strings.TrimRight(s, trailingSpace)
}

// StripPrefixed returns the lines that do not start with prefix, together
// with the index each kept line had in l.
func (l Lines) StripPrefixed(prefix string) (Lines, []int) {
	kept := make(Lines, 0, len(l))
	orig := make([]int, 0, len(l))
	for i, s := range l {
		if strings.HasPrefix(s, prefix) {
			continue
		}
		kept = append(kept, s)
		orig = append(orig, i)
	}
	return kept, orig
}

// Line returns line i or "" when i is out of range.
func (l Lines) Line(i int) string {
	if i < 0 || i >= len(l) {
		return ""
	}
	return l[i]
}

// Bytes joins the lines, terminating each one with '\n'.
func (l Lines) Bytes() []byte {
	var b bytes.Buffer
	for _, s := range l {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	return b.Bytes()
}

// Equal reports whether both sequences hold the same lines.
func (l Lines) Equal(other Lines) bool {
	return slices.Equal(l, other)
}
