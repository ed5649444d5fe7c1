package lexer

import (
	"splice/internal/source"
)

// Cursor is a position inside a line sequence. Line == len(Lines) is the
// end-of-input position; every other position produced by Next points at a
// real character.
type Cursor struct {
	Lines source.Lines
	Line  int
	Col   int
}

// NewCursor creates a cursor at the first character of lines.
func NewCursor(lines source.Lines) Cursor {
	return Cursor{Lines: lines}
}

// NewCursorAt creates a cursor at pos.
func NewCursorAt(lines source.Lines, pos source.Pos) Cursor {
	return Cursor{Lines: lines, Line: pos.Line, Col: pos.Col}
}

// EOF проверяет, достигнут ли конец ввода
func (c *Cursor) EOF() bool {
	return c.Line >= len(c.Lines)
}

// Pos returns the current position.
func (c *Cursor) Pos() source.Pos {
	return source.Pos{Line: c.Line, Col: c.Col}
}

// Text returns the current line, or "" at end of input.
func (c *Cursor) Text() string {
	return c.Lines.Line(c.Line)
}

// AtLineEnd reports whether the cursor is past the last character of its line.
func (c *Cursor) AtLineEnd() bool {
	return c.EOF() || c.Col >= len(c.Lines[c.Line])
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.AtLineEnd() || c.Col < 0 {
		return 0
	}
	return c.Lines[c.Line][c.Col]
}

// PeekOffset reads the byte n positions away on the same line, or 0.
func (c *Cursor) PeekOffset(n int) byte {
	if c.EOF() {
		return 0
	}
	i := c.Col + n
	if i < 0 || i >= len(c.Lines[c.Line]) {
		return 0
	}
	return c.Lines[c.Line][i]
}

// NextOnLine moves one character forward on the current line. When that
// lands on a trailing '\' and another line follows, the cursor continues at
// the start of the following line, so continued lines read as one.
func (c *Cursor) NextOnLine() {
	c.Col++
	line := c.Lines[c.Line]
	if c.Col+1 == len(line) && line[c.Col] == '\\' && c.Line+1 < len(c.Lines) {
		c.Line++
		c.Col = 0
	}
}

// Next moves to the next character, crossing line ends. Empty lines are
// skipped, so after Next the cursor is either on a character or at EOF.
func (c *Cursor) Next() {
	if c.EOF() {
		return
	}
	c.Col++
	if c.Col < len(c.Lines[c.Line]) {
		return
	}
	c.Col = 0
	for {
		c.Line++
		if c.Line >= len(c.Lines) || len(c.Lines[c.Line]) > 0 {
			return
		}
	}
}

// FinishLine consumes the rest of the physical line, following continuations.
func (c *Cursor) FinishLine() {
	for !c.AtLineEnd() {
		c.NextOnLine()
	}
}
