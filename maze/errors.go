package maze

import (
	"errors"
	"fmt"
)

// Construction errors.
var (
	ErrMissingStart      = errors.New("no start position found")
	ErrInvalidMarkers    = errors.New("invalid marker configuration")
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrInvalidGoalCount  = errors.New("invalid goal count")
)

// ParseError reports a character that is not a known marker.
type ParseError struct {
	Char rune
	Row  int
	Col  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid character %q at row %d, column %d", e.Char, e.Row, e.Col)
}

// DuplicateStartError reports a second start marker.
type DuplicateStartError struct {
	First  CellPosition
	Second CellPosition
}

func (e *DuplicateStartError) Error() string {
	return fmt.Sprintf("multiple start positions found: (%d, %d) and (%d, %d)",
		e.First.Row, e.First.Col, e.Second.Row, e.Second.Col)
}
