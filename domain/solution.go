// Package domain holds the records the service stores and returns.
package domain

import (
	"errors"
	"io"
	"time"

	"github.com/beka-birhanu/sma-maze/maze"
	"github.com/beka-birhanu/sma-maze/search"
	"github.com/google/uuid"
)

var ErrSolutionNotFound = errors.New("solution not found")

// Point is a (row, column) pair as stored and served.
type Point struct {
	Row int `bson:"row" json:"row"`
	Col int `bson:"col" json:"col"`
}

// SolveRequest carries a layout and the bound settings to search it with.
type SolveRequest struct {
	Layout string
	Bound  *int    // nil searches without a bound
	Policy string  // none, double or scale
	Factor float64 // growth factor for the scale policy
}

// Solution represents one search run as stored in the database.
type Solution struct {
	ID          uuid.UUID `bson:"_id"`
	Fingerprint string    `bson:"fingerprint"`
	Layout      string    `bson:"layout"`
	Bound       *int      `bson:"bound,omitempty"`
	Policy      string    `bson:"policy"`
	Outcome     string    `bson:"outcome"`
	Path        []Point   `bson:"path"`
	Cost        int       `bson:"cost"`
	Expanded    int       `bson:"expanded"`
	Closed      int       `bson:"closed"`
	CreatedAt   time.Time `bson:"createdAt"`
	Cached      bool      `bson:"-"`
}

// NewSolution records the result of searching layout.
func NewSolution(fingerprint, layout string, bound *int, policy search.Policy, res search.Result) *Solution {
	path := make([]Point, len(res.Path))
	for i, pos := range res.Path {
		path[i] = Point{Row: pos.Row, Col: pos.Col}
	}

	return &Solution{
		ID:          uuid.New(),
		Fingerprint: fingerprint,
		Layout:      layout,
		Bound:       bound,
		Policy:      policy.String(),
		Outcome:     res.Outcome.String(),
		Path:        path,
		Cost:        res.Cost,
		Expanded:    res.Expanded,
		Closed:      res.Closed,
		CreatedAt:   time.Now().UTC(),
	}
}

// Positions converts the stored path back to maze positions.
func (s *Solution) Positions() []maze.CellPosition {
	positions := make([]maze.CellPosition, len(s.Path))
	for i, p := range s.Path {
		positions[i] = maze.CellPosition{Row: p.Row, Col: p.Col}
	}
	return positions
}

// Render draws the stored path onto the stored layout.
func (s *Solution) Render() (string, error) {
	m, err := maze.Parse(s.Layout, nil)
	if err != nil {
		return "", err
	}
	return m.Render(s.Positions()), nil
}

// DrawPNG draws the stored path onto the stored layout as a PNG image.
func (s *Solution) DrawPNG(w io.Writer, scale int) error {
	m, err := maze.Parse(s.Layout, nil)
	if err != nil {
		return err
	}
	return m.DrawPNG(w, s.Positions(), scale)
}
