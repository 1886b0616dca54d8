package search

import "github.com/beka-birhanu/sma-maze/maze"

// Manhattan returns |row_a - row_b| + |col_a - col_b|.
//
// With diagonal moves at unit cost this can overestimate the remaining
// distance, so paths are not guaranteed to be shortest.
func Manhattan(a, b maze.CellPosition) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
