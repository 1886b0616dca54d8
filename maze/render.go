package maze

import (
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// PathGlyph marks interior path cells in Render output.
const PathGlyph = '∙'

// Render provides a textual representation of the maze with path drawn on it.
// The first and last positions of path keep their own markers.
func (m *Maze) Render(path []CellPosition) string {
	onPath := mapset.New[CellPosition]()
	if len(path) > 2 {
		for _, pos := range path[1 : len(path)-1] {
			onPath.Put(pos)
		}
	}

	var output strings.Builder
	for _, row := range m.grid {
		for _, cell := range row {
			if onPath.Has(cell.Position) {
				output.WriteRune(PathGlyph)
				continue
			}
			output.WriteRune(m.markers.glyph(cell.Value))
		}
		output.WriteByte('\n')
	}
	return output.String()
}
