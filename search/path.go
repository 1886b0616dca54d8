package search

import (
	"fmt"
	"slices"
	"strings"

	"github.com/beka-birhanu/sma-maze/maze"
)

// reconstructPath follows parent ids from last back to the start and
// returns the positions start first.
func reconstructPath(nodes map[int]*node, last *node) []maze.CellPosition {
	path := []maze.CellPosition{last.pos}
	for current := last; current.parent >= 0; {
		current = nodes[current.parent]
		path = append(path, current.pos)
	}
	slices.Reverse(path)
	return path
}

// FormatPath renders a path as "(x=0, y=0) -> (x=1, y=1)", x being the row.
func FormatPath(path []maze.CellPosition) string {
	steps := make([]string, len(path))
	for i, pos := range path {
		steps[i] = fmt.Sprintf("(x=%d, y=%d)", pos.Row, pos.Col)
	}
	return strings.Join(steps, " -> ")
}
