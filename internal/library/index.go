package library

import (
	"slices"

	"splice/internal/decl"
)

// Index maps keywords to the library declarations that define them and to
// the #include lines they need. It is built once by Load and only read
// afterwards.
type Index struct {
	// Decls maps a keyword to the canonical body of its declaration.
	Decls map[string][]string
	// Includes maps a keyword to its literal include line. An empty value
	// means the keyword is known but needs no directive.
	Includes map[string]string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		Decls:    make(map[string][]string),
		Includes: make(map[string]string),
	}
}

// Decl returns the declaration registered for kw as a unit.
func (ix *Index) Decl(kw string) (decl.Unit, bool) {
	if ix == nil {
		return decl.Unit{}, false
	}
	body, ok := ix.Decls[kw]
	if !ok {
		return decl.Unit{}, false
	}
	return decl.Unit{Keyword: kw, Body: slices.Clone(body)}, true
}

// Include returns the include line for kw. Keywords without a directive
// report ok=false.
func (ix *Index) Include(kw string) (string, bool) {
	if ix == nil {
		return "", false
	}
	line := ix.Includes[kw]
	return line, line != ""
}

// register adds units in order; later registrations replace earlier ones.
func (ix *Index) register(units []decl.Unit) {
	for _, u := range units {
		if u.Keyword == "" {
			continue
		}
		ix.Decls[u.Keyword] = u.Body
	}
}

// DeclKeywords returns the declaration keywords in sorted order.
func (ix *Index) DeclKeywords() []string {
	return sortedKeys(ix.Decls)
}

// IncludeKeywords returns the include-map keywords in sorted order.
func (ix *Index) IncludeKeywords() []string {
	return sortedKeys(ix.Includes)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
