package decl

import (
	"slices"
	"strings"
)

// Textual markers recognised at the start of a line.
const (
	IncludePrefix   = "#include "
	DefinePrefix    = "#define "
	TypedefPrefix   = "typedef "
	NamespaceMarker = "using namespace std;"
	// DocPrefix marks documentation-only lines in library files.
	DocPrefix = "////"
)

// Unit is one contiguous span of lines that can be moved as a whole: an
// include, a macro, a typedef, a struct/class, a function or an unclassified
// block. Keyword is the name other code uses to reference the unit; it is
// empty for blocks that cannot be referenced.
type Unit struct {
	Keyword string
	Body    []string
}

// Blank returns the single empty-line separator unit.
func Blank() Unit {
	return Unit{Body: []string{""}}
}

// Line returns a one-line unit keyed by its own text.
func Line(text string) Unit {
	return Unit{Keyword: text, Body: []string{text}}
}

// Equal compares keyword and body.
func (u Unit) Equal(other Unit) bool {
	return u.Keyword == other.Keyword && slices.Equal(u.Body, other.Body)
}

// Compare orders units by keyword, then body, line by line.
func (u Unit) Compare(other Unit) int {
	if c := strings.Compare(u.Keyword, other.Keyword); c != 0 {
		return c
	}
	return slices.Compare(u.Body, other.Body)
}

// IsBlank reports whether u is a single empty line.
func (u Unit) IsBlank() bool {
	return len(u.Body) == 1 && u.Body[0] == ""
}

// IsInclude reports whether u is an #include directive.
func (u Unit) IsInclude() bool {
	return strings.HasPrefix(u.Keyword, IncludePrefix)
}

// IsNamespaceMarker reports whether u is the `using namespace std;` line.
func (u Unit) IsNamespaceMarker() bool {
	return u.Keyword == NamespaceMarker
}

// IsSimpleTypedef reports a single-line typedef without template arguments.
func (u Unit) IsSimpleTypedef() bool {
	return len(u.Body) == 1 && strings.HasPrefix(u.Body[0], TypedefPrefix) &&
		!strings.Contains(u.Body[0], "<")
}

// IsSimpleDefine reports a unit whose first line is a #define.
func (u Unit) IsSimpleDefine() bool {
	return len(u.Body) > 0 && strings.HasPrefix(u.Body[0], DefinePrefix)
}

// Lines concatenates the bodies of units.
func Lines(units []Unit) []string {
	n := 0
	for _, u := range units {
		n += len(u.Body)
	}
	out := make([]string, 0, n)
	for _, u := range units {
		out = append(out, u.Body...)
	}
	return out
}
