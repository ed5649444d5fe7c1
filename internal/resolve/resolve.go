// Package resolve closes a source file over the library index: every keyword
// the file uses that the index can define is pulled in, transitively, and the
// required #include lines are collected.
package resolve

import (
	"slices"

	"go.uber.org/zap"

	"splice/internal/decl"
	"splice/internal/diag"
	"splice/internal/lexer"
	"splice/internal/library"
	"splice/internal/source"
)

// Resolver expands source files against an index. The index is only read, so
// one Resolver may serve many files.
type Resolver struct {
	Index  *library.Index
	Logger *zap.Logger
}

// Resolve returns lines with all missing library declarations inserted and
// the include block completed, sorted and deduplicated.
//
// Input must either have no include block at all, or have one that ends with
// the namespace marker; otherwise the result is a ContractMissingNamespace
// error.
func (r *Resolver) Resolve(lines source.Lines) ([]string, error) {
	s := state{ix: r.Index, log: r.Logger}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	start, err := s.header(lines)
	if err != nil {
		return nil, err
	}
	for line := start; line < len(lines); {
		u, next, err := decl.Extract(lines, line)
		if err != nil {
			return nil, err
		}
		s.body = append(s.body, u)
		line = next
	}

	passes := 0
	for changed := true; changed; {
		passes++
		if changed, err = s.pass(); err != nil {
			return nil, err
		}
	}
	s.sortIncludes()
	s.log.Debug("Resolved",
		zap.Int("passes", passes),
		zap.Int("includes", len(s.includes)),
		zap.Int("units", len(s.body)))

	out := decl.Lines(s.includes)
	return append(out, decl.Lines(s.body)...), nil
}

// state is the assembly state of one Resolve call.
type state struct {
	ix  *library.Index
	log *zap.Logger

	// includes holds the header units; units from firstInclude on are the
	// include lines and the namespace marker.
	includes     []decl.Unit
	firstInclude int
	body         []decl.Unit
}

// header reads units up to and including the namespace marker and returns
// the line where the body starts. Anything before the first #include stays
// in the header untouched.
func (s *state) header(lines source.Lines) (int, error) {
	s.firstInclude = -1
	for line := 0; line < len(lines); {
		u, next, err := decl.Extract(lines, line)
		if err != nil {
			return 0, err
		}
		s.includes = append(s.includes, u)
		switch {
		case u.IsInclude():
			if s.firstInclude == -1 {
				s.firstInclude = len(s.includes) - 1
			}
		case u.IsNamespaceMarker():
			if s.firstInclude == -1 {
				s.firstInclude = len(s.includes) - 1
			}
			return next, nil
		case s.firstInclude != -1:
			return 0, diag.Errorf(diag.ContractMissingNamespace, source.Pos{Line: line},
				"missing %q after the include block", decl.NamespaceMarker)
		}
		line = next
	}
	if s.firstInclude != -1 {
		return 0, diag.Newf(diag.ContractMissingNamespace, "missing %q", decl.NamespaceMarker)
	}

	// Нет блока include: создаём его, весь вход становится телом.
	s.includes = []decl.Unit{{
		Keyword: decl.NamespaceMarker,
		Body:    []string{decl.NamespaceMarker, ""},
	}}
	s.firstInclude = 0
	return 0, nil
}

// pass scans the body once. It stops at the first inserted declaration and
// reports true, since the insertion shifts every index after it.
func (s *state) pass() (bool, error) {
	a := newAnchors()
	for i := 0; i < len(s.body); i++ {
		a.observe(i, s.body[i])

		c := lexer.NewCursor(s.body[i].Body)
		for {
			if err := c.SkipTrivia(); err != nil {
				return false, err
			}
			if c.EOF() {
				break
			}
			kw := c.Keyword()
			if kw == "" {
				c.Next()
				continue
			}
			s.addInclude(kw)
			if d, ok := s.missing(kw); ok {
				s.insert(i, d, a)
				return true, nil
			}
		}
	}
	return false, nil
}

// addInclude appends the include line kw needs unless an identical unit is
// already in the header.
func (s *state) addInclude(kw string) {
	line, ok := s.ix.Include(kw)
	if !ok {
		return
	}
	u := decl.Line(line)
	if slices.ContainsFunc(s.includes, u.Equal) {
		return
	}
	s.includes = append(s.includes, u)
	s.log.Debug("Added include", zap.String("keyword", kw), zap.String("line", line))
}

// missing returns the library declaration of kw if no body unit defines kw.
func (s *state) missing(kw string) (decl.Unit, bool) {
	d, ok := s.ix.Decl(kw)
	if !ok {
		return decl.Unit{}, false
	}
	if slices.ContainsFunc(s.body, func(u decl.Unit) bool { return u.Keyword == kw }) {
		return decl.Unit{}, false
	}
	return d, true
}

// insert places d before unit i, or next to the simple typedef/define runs
// for simple typedefs and defines.
func (s *state) insert(i int, d decl.Unit, a anchors) {
	at, placement, separate := a.place(i, d, s.body)
	if separate {
		s.body = slices.Insert(s.body, at, decl.Blank())
	}
	s.body = slices.Insert(s.body, at, d)
	s.log.Debug("Inserted declaration",
		zap.String("keyword", d.Keyword),
		zap.Int("index", at),
		zap.String("placement", placement))
}

// sortIncludes sorts and deduplicates the include lines. Units before the
// first include keep their place; the namespace marker stays last.
func (s *state) sortIncludes() {
	tail := s.includes[s.firstInclude:]
	slices.SortFunc(tail, includeOrder)
	tail = slices.CompactFunc(tail, decl.Unit.Equal)
	s.includes = s.includes[:s.firstInclude+len(tail)]
}

func includeOrder(a, b decl.Unit) int {
	if am, bm := a.IsNamespaceMarker(), b.IsNamespaceMarker(); am != bm {
		if am {
			return 1
		}
		return -1
	}
	return a.Compare(b)
}
