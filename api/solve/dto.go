// Package solveapi exposes maze generation and bounded search over HTTP.
package solveapi

import (
	"time"

	dmn "github.com/beka-birhanu/sma-maze/domain"
	"github.com/google/uuid"
)

// GenerateRequest asks for a random maze of Width x Height rooms.
type GenerateRequest struct {
	Width  int    `json:"width" binding:"required"`
	Height int    `json:"height" binding:"required"`
	Goals  int    `json:"goals"`
	Seed   *int64 `json:"seed"`
}

// GenerateResponse carries the generated layout and the seed that produced it.
type GenerateResponse struct {
	Layout string `json:"layout"`
	Seed   int64  `json:"seed"`
}

// SolveRequest represents a request to search a layout.
type SolveRequest struct {
	Layout string  `json:"layout" binding:"required"`
	Bound  *int    `json:"bound"`
	Policy string  `json:"policy"`
	Factor float64 `json:"factor"`
}

// ImageQuery sets the cell size of a rendered solution image.
type ImageQuery struct {
	Scale int `form:"scale" binding:"omitempty,min=1,max=64"`
}

// SolutionResponse represents a finished search run.
type SolutionResponse struct {
	ID        uuid.UUID   `json:"id"`
	Outcome   string      `json:"outcome"`
	Path      []dmn.Point `json:"path"`
	Cost      int         `json:"cost"`
	Expanded  int         `json:"expanded"`
	Closed    int         `json:"closed"`
	Bound     *int        `json:"bound,omitempty"`
	Policy    string      `json:"policy"`
	Rendered  string      `json:"rendered"`
	Cached    bool        `json:"cached"`
	CreatedAt time.Time   `json:"created_at"`
}

func newSolutionResponse(s *dmn.Solution) (*SolutionResponse, error) {
	rendered, err := s.Render()
	if err != nil {
		return nil, err
	}

	return &SolutionResponse{
		ID:        s.ID,
		Outcome:   s.Outcome,
		Path:      s.Path,
		Cost:      s.Cost,
		Expanded:  s.Expanded,
		Closed:    s.Closed,
		Bound:     s.Bound,
		Policy:    s.Policy,
		Rendered:  rendered,
		Cached:    s.Cached,
		CreatedAt: s.CreatedAt,
	}, nil
}
