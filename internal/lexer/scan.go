package lexer

import (
	"strings"

	"splice/internal/diag"
)

// SkipComment consumes a comment starting at the cursor and reports whether
// there was one. A line comment runs to the end of its physical line
// (continuations included); a block comment runs to the matching "*/" on any
// later line. The cursor is left on the first character after the comment.
func (c *Cursor) SkipComment() (bool, error) {
	if c.Peek() != '/' {
		return false, nil
	}
	switch c.PeekOffset(1) {
	case '/':
		c.FinishLine()
		c.Next()
		return true, nil
	case '*':
		start := c.Pos()
		c.Col += 2
		for {
			c.Next()
			if c.EOF() {
				return false, diag.Errorf(diag.ParseUnclosedComment, start, "unclosed comment")
			}
			cur := c.Lines[c.Line]
			if c.Col > 0 && cur[c.Col-1] == '*' && cur[c.Col] == '/' {
				break
			}
		}
		c.Next()
		return true, nil
	}
	return false, nil
}

// SkipString consumes a "..." or '...' literal starting at the cursor and
// reports whether there was one. A backslash escapes the character after it,
// so an escaped quote does not terminate the literal. A literal must end on
// the line it started on unless the line is continued with '\'.
func (c *Cursor) SkipString() (bool, error) {
	q := c.Peek()
	if q != '"' && q != '\'' {
		return false, nil
	}
	start := c.Pos()
	for {
		c.NextOnLine()
		if cur := c.Text(); c.Col > 0 && c.Col < len(cur) && cur[c.Col-1] == '\\' {
			c.NextOnLine()
		}
		cur := c.Text()
		if c.Col >= len(cur) {
			return false, diag.Errorf(diag.ParseUnclosedString, start, "unclosed string")
		}
		if cur[c.Col] == q {
			break
		}
	}
	c.Next()
	return true, nil
}

// SkipTrivia skips any run of comments and string literals, so that the
// cursor rests on a character that may carry structure.
func (c *Cursor) SkipTrivia() error {
	for {
		ok, err := c.SkipComment()
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		ok, err = c.SkipString()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

// MatchBracket advances from an opening delimiter to its matching closer,
// honouring nesting and ignoring delimiters inside comments and literals.
//
// The cursor must be on open when MatchBracket is called; callers check this
// before calling. On success the cursor rests on the matching close
// character, so the caller decides how to step past it.
func (c *Cursor) MatchBracket(open, close byte) error {
	start := c.Pos()
	depth := 0
	for {
		switch c.Peek() {
		case open:
			depth++
		case close:
			depth--
		}
		if depth == 0 {
			return nil
		}
		c.Next()
		if err := c.SkipTrivia(); err != nil {
			return err
		}
		if c.EOF() {
			return diag.Errorf(diag.ParseUnclosedBracket, start, "unclosed bracket %q", string(open))
		}
	}
}

// FindSemicolon advances to the next ';' that is not nested inside () or {}.
func (c *Cursor) FindSemicolon() error {
	start := c.Pos()
	for {
		if err := c.SkipTrivia(); err != nil {
			return err
		}
		if c.Peek() == '(' {
			if err := c.MatchBracket('(', ')'); err != nil {
				return err
			}
		}
		if c.Peek() == '{' {
			if err := c.MatchBracket('{', '}'); err != nil {
				return err
			}
		}
		if c.EOF() {
			return diag.Errorf(diag.ParseMissingSemicolon, start, "missing semicolon")
		}
		if c.Peek() == ';' {
			return nil
		}
		c.Next()
	}
}

// Keyword reads the identifier at the cursor. If '(' or '<' directly follows
// it, that character is appended to the result but not consumed. An
// identifier ends at the end of its line. Returns "" (without moving) when the
// cursor is not on an identifier character.
func (c *Cursor) Keyword() string {
	if !isIdentByte(c.Peek()) {
		return ""
	}
	startLine := c.Line
	var b strings.Builder
	for {
		b.WriteByte(c.Peek())
		c.Next()
		if c.Line > startLine {
			return b.String()
		}
		ch := c.Peek()
		if ch == '(' || ch == '<' {
			b.WriteByte(ch)
			return b.String()
		}
		if !isIdentByte(ch) {
			return b.String()
		}
	}
}
