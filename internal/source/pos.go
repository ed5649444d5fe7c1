package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Pos is a cursor location inside Lines. Line == len(lines) means end of input.
type Pos struct {
	Line int // 0-based
	Col  int // 0-based, in bytes
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// LineCol converts p to a 1-based display position.
func (p Pos) LineCol() LineCol {
	line, err := safecast.Conv[uint32](p.Line + 1)
	if err != nil {
		panic(fmt.Errorf("line overflow: %w", err))
	}
	col, err := safecast.Conv[uint32](p.Col + 1)
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	return LineCol{Line: line, Col: col}
}
