package maze

import (
	"math/rand"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

const (
	// MaxDimension bounds the width and height of a generated maze, in rooms.
	MaxDimension = 100
)

// lattice moves, fixed order so a seed always yields the same maze
var latticeDirections = [4]CellPosition{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: 1},
	{Row: 0, Col: -1},
}

// GenerateConfig holds the parameters of a random maze.
type GenerateConfig struct {
	Width  int   // Width in rooms (layout is 2*Width+1 characters wide)
	Height int   // Height in rooms (layout is 2*Height+1 lines)
	Goals  int   // Number of goal markers to place
	Seed   int64 // Seed for the random source
}

type move struct {
	from CellPosition
	to   CellPosition
}

type generator struct {
	width  int
	height int
	rng    *rand.Rand
	layout [][]rune
}

// Generate creates a random perfect maze and returns its layout using
// DefaultMarkers. The start is the top-left room, the first goal the
// bottom-right room and further goals land on random distinct rooms.
func Generate(c GenerateConfig) (string, error) {
	if min(c.Width, c.Height) <= 0 || max(c.Width, c.Height) > MaxDimension {
		return "", ErrInvalidDimensions
	}
	if c.Goals < 0 || c.Goals > c.Width*c.Height-1 {
		return "", ErrInvalidGoalCount
	}

	g := &generator{
		width:  c.Width,
		height: c.Height,
		rng:    rand.New(rand.NewSource(c.Seed)),
	}
	g.fillWalls()
	g.carve()
	g.placeMarkers(c.Goals)

	var output strings.Builder
	for _, line := range g.layout {
		output.WriteString(string(line))
		output.WriteByte('\n')
	}
	return output.String(), nil
}

func (g *generator) fillWalls() {
	wall := DefaultMarkers().Wall[0]
	g.layout = make([][]rune, 2*g.height+1)
	for i := range g.layout {
		g.layout[i] = make([]rune, 2*g.width+1)
		for j := range g.layout[i] {
			g.layout[i][j] = wall
		}
	}
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			g.set(g.toLayout(CellPosition{Row: row, Col: col}), blank)
		}
	}
}

// carve opens passages until every room is connected to the first one.
func (g *generator) carve() {
	visited := mapset.New[CellPosition]()
	visited.Put(g.randomRoom())

	for visited.Size() < g.width*g.height {
		for room, mv := range g.randomWalk(visited) {
			g.openWall(mv)
			visited.Put(room)
		}
	}
}

// randomWalk walks from an unvisited room until it hits the visited set.
// Only the last exit of each room is kept, which erases the loops.
func (g *generator) randomWalk(visited mapset.Set[CellPosition]) map[CellPosition]move {
	room := g.randomUnvisitedRoom(visited)
	exits := make(map[CellPosition]move)

	for {
		neighbors := g.neighbors(room)
		next := neighbors[g.rng.Intn(len(neighbors))]
		exits[room] = next
		if visited.Has(next.to) {
			break
		}
		room = next.to
	}
	return exits
}

func (g *generator) neighbors(room CellPosition) []move {
	var result []move
	for _, delta := range latticeDirections {
		next := room.Add(delta)
		if next.Row >= 0 && next.Row < g.height && next.Col >= 0 && next.Col < g.width {
			result = append(result, move{from: room, to: next})
		}
	}
	return result
}

// openWall removes the wall character between two adjacent rooms.
func (g *generator) openWall(mv move) {
	from, to := g.toLayout(mv.from), g.toLayout(mv.to)
	g.set(CellPosition{Row: (from.Row + to.Row) / 2, Col: (from.Col + to.Col) / 2}, blank)
}

func (g *generator) placeMarkers(goals int) {
	mk := DefaultMarkers()
	start := CellPosition{Row: 0, Col: 0}
	g.set(g.toLayout(start), mk.Start[0])
	if goals == 0 {
		return
	}

	last := CellPosition{Row: g.height - 1, Col: g.width - 1}
	g.set(g.toLayout(last), mk.Goal[0])

	for _, idx := range g.rng.Perm(g.width * g.height) {
		if goals == 1 {
			return
		}
		room := CellPosition{Row: idx / g.width, Col: idx % g.width}
		if room == start || room == last {
			continue
		}
		g.set(g.toLayout(room), mk.Goal[0])
		goals--
	}
}

func (g *generator) randomRoom() CellPosition {
	return CellPosition{Row: g.rng.Intn(g.height), Col: g.rng.Intn(g.width)}
}

func (g *generator) randomUnvisitedRoom(visited mapset.Set[CellPosition]) CellPosition {
	for {
		room := g.randomRoom()
		if !visited.Has(room) {
			return room
		}
	}
}

func (g *generator) toLayout(room CellPosition) CellPosition {
	return CellPosition{Row: 2*room.Row + 1, Col: 2*room.Col + 1}
}

func (g *generator) set(pos CellPosition, r rune) {
	g.layout[pos.Row][pos.Col] = r
}
