/*
Package maze provides the grid model searched by the solver.

A Maze is parsed from a character layout, one row per line, where every
character is a start, goal or wall marker or a blank. Rows may differ in
length; the grid is as wide as the longest row and shorter rows are padded
with empty cells.

The package also generates random layouts with a loop-erased random walk
and renders a maze back to text with a path drawn through it.
*/
package maze

import (
	"iter"
	"slices"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Directions lists the eight moves in the order neighbors are produced.
var Directions = [8]CellPosition{
	{Row: -1, Col: -1},
	{Row: -1, Col: 0},
	{Row: -1, Col: 1},
	{Row: 0, Col: 1},
	{Row: 0, Col: -1},
	{Row: 1, Col: -1},
	{Row: 1, Col: 0},
	{Row: 1, Col: 1},
}

// Maze represents a rectangular grid of cells with one start and any number of goals.
type Maze struct {
	rows    int      // Number of rows (lines in the layout)
	cols    int      // Number of columns (longest line)
	grid    [][]Cell // 2D grid of cells forming the maze
	start   CellPosition
	goals   []CellPosition
	goalSet mapset.Set[CellPosition]
	markers Markers
}

// Parse builds a Maze from a character layout. A nil markers uses DefaultMarkers.
// No Maze is returned when the layout holds an unknown character, more than
// one start, or no start at all.
func Parse(layout string, markers *Markers) (*Maze, error) {
	mk := DefaultMarkers()
	if markers != nil {
		mk = markers.clone()
	}
	table, err := mk.lookup()
	if err != nil {
		return nil, err
	}

	lines := splitLines(layout)
	rows, cols := len(lines), 0
	for _, line := range lines {
		cols = max(cols, len(line))
	}

	grid := make([][]Cell, rows)
	for i := range grid {
		grid[i] = make([]Cell, cols)
		for j := range grid[i] {
			grid[i][j] = Cell{Value: Empty, Position: CellPosition{Row: i, Col: j}}
		}
	}

	m := &Maze{
		rows:    rows,
		cols:    cols,
		grid:    grid,
		goalSet: mapset.New[CellPosition](),
		markers: mk,
	}

	hasStart := false
	for i, line := range lines {
		for j, char := range line {
			pos := CellPosition{Row: i, Col: j}
			value, known := table[char]
			if !known {
				return nil, &ParseError{Char: char, Row: i, Col: j}
			}

			switch value {
			case Start:
				if hasStart {
					return nil, &DuplicateStartError{First: m.start, Second: pos}
				}
				m.start, hasStart = pos, true
			case Goal:
				m.goals = append(m.goals, pos)
				m.goalSet.Put(pos)
			}
			grid[i][j].Value = value
		}
	}

	if !hasStart {
		return nil, ErrMissingStart
	}
	return m, nil
}

// splitLines breaks the layout into rows of runes. A trailing line break
// does not produce an extra row.
func splitLines(layout string) [][]rune {
	layout = strings.ReplaceAll(layout, "\r\n", "\n")
	layout = strings.ReplaceAll(layout, "\r", "\n")
	layout = strings.TrimSuffix(layout, "\n")
	if layout == "" {
		return nil
	}

	parts := strings.Split(layout, "\n")
	lines := make([][]rune, len(parts))
	for i, part := range parts {
		lines[i] = []rune(part)
	}
	return lines
}

// Rows returns the number of rows in the grid.
func (m *Maze) Rows() int { return m.rows }

// Cols returns the number of columns in the grid.
func (m *Maze) Cols() int { return m.cols }

// Start returns the start position. The boolean is false for a zero Maze.
func (m *Maze) Start() (CellPosition, bool) {
	if m.rows == 0 || m.grid[m.start.Row][m.start.Col].Value != Start {
		return CellPosition{}, false
	}
	return m.start, true
}

// Goals returns the goal positions in layout order.
func (m *Maze) Goals() []CellPosition {
	return slices.Clone(m.goals)
}

// IsGoal reports whether pos is one of the goals.
func (m *Maze) IsGoal(pos CellPosition) bool {
	return m.goalSet.Has(pos)
}

// InBound checks if a position is inside the grid.
func (m *Maze) InBound(pos CellPosition) bool {
	return pos.Row >= 0 && pos.Row < m.rows && pos.Col >= 0 && pos.Col < m.cols
}

// Cell returns the cell at pos.
func (m *Maze) Cell(pos CellPosition) (Cell, bool) {
	if !m.InBound(pos) {
		return Cell{}, false
	}
	return m.grid[pos.Row][pos.Col], true
}

// Neighbors yields the in-bound, non-wall positions around pos in Directions order.
func (m *Maze) Neighbors(pos CellPosition) iter.Seq[CellPosition] {
	return func(yield func(CellPosition) bool) {
		for _, delta := range Directions {
			next := pos.Add(delta)
			if !m.InBound(next) || m.grid[next.Row][next.Col].IsWall() {
				continue
			}
			if !yield(next) {
				return
			}
		}
	}
}

// Equal compares grid contents, start and goals.
func (m *Maze) Equal(other *Maze) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.rows != other.rows || m.cols != other.cols || m.start != other.start {
		return false
	}
	if !slices.Equal(m.goals, other.goals) {
		return false
	}
	for i := range m.grid {
		if !slices.Equal(m.grid[i], other.grid[i]) {
			return false
		}
	}
	return true
}

// String returns the layout using the canonical marker of each tag.
func (m *Maze) String() string {
	return m.Render(nil)
}
