package decl

import (
	"slices"
	"strings"

	"splice/internal/diag"
	"splice/internal/lexer"
	"splice/internal/source"
)

// Extract reads the unit that starts at line start and returns it together
// with the index of the first line after it.
//
// Classification priority is: #include / namespace marker, #define, typedef,
// template-prefixed struct/class, struct/class, function, and finally an
// unclassified block that ends at the next blank line.
func Extract(lines source.Lines, start int) (Unit, int, error) {
	if lines[start] == "" {
		return Blank(), start + 1, nil
	}
	x := extractor{
		c:     lexer.NewCursorAt(lines, source.Pos{Line: start}),
		start: start,
	}
	kw, end, err := x.run()
	if err != nil {
		return Unit{}, start, err
	}
	return Unit{Keyword: kw, Body: slices.Clone(lines[start:end])}, end, nil
}

// ExtractAll partitions lines into units.
func ExtractAll(lines source.Lines) ([]Unit, error) {
	units := make([]Unit, 0, len(lines)/4+1)
	for line := 0; line < len(lines); {
		u, next, err := Extract(lines, line)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
		line = next
	}
	return units, nil
}

type extractor struct {
	c           lexer.Cursor
	start       int
	sawTemplate bool
}

func (x *extractor) run() (string, int, error) {
	c := &x.c
	for {
		if err := c.SkipTrivia(); err != nil {
			return "", 0, err
		}
		if c.EOF() {
			return "", len(c.Lines), nil
		}
		if end, ok := x.passedBlank(); ok {
			return "", end, nil
		}

		if c.Peek() == '{' {
			if err := c.MatchBracket('{', '}'); err != nil {
				return "", 0, err
			}
		}
		if c.Peek() == '(' {
			if err := c.MatchBracket('(', ')'); err != nil {
				return "", 0, err
			}
		}

		text := c.Text()
		if c.Col == 0 && (strings.HasPrefix(text, IncludePrefix) || text == NamespaceMarker) {
			return x.directive()
		}
		if c.Col == 0 && strings.HasPrefix(text, DefinePrefix) {
			return x.define()
		}

		kwPos := c.Pos()
		word := c.Keyword()
		switch {
		case word == "typedef":
			return x.typedef()
		case word == "template<":
			x.sawTemplate = true
			if err := c.MatchBracket('<', '>'); err != nil {
				return "", 0, err
			}
		case word == "struct" || word == "class" || strings.HasSuffix(word, "("):
			name, end, ok, err := x.composite(word, kwPos)
			if err != nil {
				return "", 0, err
			}
			if ok {
				return name, end, nil
			}
		}
		if word == "" {
			c.Next()
		}
	}
}

// passedBlank reports whether the scan has just stepped over one or more
// blank lines onto the first non-space character of a line. The current
// unclassified block then ends before the blank lines.
func (x *extractor) passedBlank() (int, bool) {
	c := &x.c
	if c.Line <= x.start || c.Lines[c.Line-1] != "" {
		return 0, false
	}
	text := c.Text()
	for j := c.Col - 1; j >= 0; j-- {
		if !lexer.IsSpace(text[j]) {
			return 0, false
		}
	}
	end := c.Line
	for end > x.start && c.Lines[end-1] == "" {
		end--
	}
	return end, true
}

// directive handles #include lines and the namespace marker. They never
// absorb preceding lines: if the unit already started earlier, it ends here.
func (x *extractor) directive() (string, int, error) {
	c := &x.c
	if c.Line > x.start {
		return "", c.Line, nil
	}
	text := c.Text()
	end := c.Line + 1
	if text == NamespaceMarker && end < len(c.Lines) && c.Lines[end] == "" {
		end++
	}
	return text, end, nil
}

// define handles a #define line; the unit ends with the physical line,
// continuations included. A define without a body (include guards) is not
// referenceable.
func (x *extractor) define() (string, int, error) {
	c := &x.c
	text := c.Text()
	i := len(DefinePrefix)
	for i < len(text) && !lexer.IsIdentByte(text[i]) {
		i++
	}
	j := i
	for j < len(text) && lexer.IsIdentByte(text[j]) {
		j++
	}
	name := text[i:j]
	if name == "" {
		return "", 0, diag.Errorf(diag.ParseBadDefine, c.Pos(), "could not parse #define")
	}
	if j == len(text) {
		name = ""
	} else if text[j] == '(' {
		name += "("
	}
	c.Col = j
	c.FinishLine()
	return name, c.Line + 1, nil
}

// typedef runs to the next top-level ';'; the name is the identifier right
// before it.
func (x *extractor) typedef() (string, int, error) {
	c := &x.c
	if err := c.FindSemicolon(); err != nil {
		return "", 0, err
	}
	text := c.Text()
	i := c.Col
	for i > 0 && lexer.IsIdentByte(text[i-1]) {
		i--
	}
	if i == c.Col {
		return "", 0, diag.Errorf(diag.ParseBadTypedef, c.Pos(), "could not parse typedef")
	}
	return text[i:c.Col], c.Line + 1, nil
}

// composite handles struct/class definitions and function definitions. It
// reports ok=false for forward declarations, which end in ';' before any '{'.
func (x *extractor) composite(word string, at source.Pos) (name string, end int, ok bool, err error) {
	c := &x.c
	isFunc := strings.HasSuffix(word, "(")
	name = word
	if !isFunc {
		// struct/class: the name follows.
		for {
			if err := c.SkipTrivia(); err != nil {
				return "", 0, false, err
			}
			if c.EOF() || (c.Peek() != ' ' && !lexer.IsIdentByte(c.Peek())) {
				return "", 0, false, diag.Errorf(diag.ParseBadStructDef, at, "could not parse %s definition", word)
			}
			name = c.Keyword()
			if name != "" {
				break
			}
			c.Next()
		}
	}

	for {
		if err := c.SkipTrivia(); err != nil {
			return "", 0, false, err
		}
		if c.EOF() {
			return "", 0, false, diag.Errorf(diag.ParseBadDefinition, at, "could not parse definition of %q", strings.TrimSuffix(name, "("))
		}
		if ch := c.Peek(); ch == ';' || ch == '{' {
			break
		}
		c.Next()
	}
	if c.Peek() == ';' {
		return "", 0, false, nil
	}

	// Templated types are referenced as Name<...>.
	if !isFunc && x.sawTemplate {
		name += "<"
	}
	if err := c.MatchBracket('{', '}'); err != nil {
		return "", 0, false, err
	}
	end = c.Line + 1
	if end < len(c.Lines) && c.Lines[end] == "" {
		end++
	}
	return name, end, true, nil
}
