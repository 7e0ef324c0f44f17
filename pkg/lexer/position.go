package lexer

import "fmt"

// Position is a location in the source text. Line and Column are 1-based;
// the zero Position means "unknown" (e.g. for hand-built syntax trees).
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders the position as line:column
func (p Position) String() string {
	if !p.IsValid() {
		return "?"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position points into a source file
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Creates a new Position instance
func NewPosition(line, column, offset int) Position {
	return Position{
		Line:   line,
		Column: column,
		Offset: offset,
	}
}
