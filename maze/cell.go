package maze

// Value tags what a cell holds.
type Value uint8

const (
	Empty Value = iota
	Wall
	Start
	Goal
)

// String returns the lowercase name of the tag.
func (v Value) String() string {
	switch v {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Start:
		return "start"
	case Goal:
		return "goal"
	default:
		return "unknown"
	}
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int // Row index of the cell
	Col int // Column index of the cell
}

// Add returns the position shifted by delta.
func (p CellPosition) Add(delta CellPosition) CellPosition {
	return CellPosition{Row: p.Row + delta.Row, Col: p.Col + delta.Col}
}

// Cell represents a single cell in a maze grid.
// Two cells are equal when both their value and position match.
type Cell struct {
	Value    Value        // Value is the tag parsed from the layout.
	Position CellPosition // Position matches the cell's indices in the grid.
}

// IsWall reports whether the cell blocks movement.
func (c Cell) IsWall() bool {
	return c.Value == Wall
}
