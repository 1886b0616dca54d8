package i

import (
	"context"

	dmn "github.com/beka-birhanu/sma-maze/domain"
	"github.com/beka-birhanu/sma-maze/maze"
	"github.com/beka-birhanu/sma-maze/search"
	"github.com/google/uuid"
)

// Solver searches layouts and serves stored solutions.
type Solver interface {
	Solve(ctx context.Context, req dmn.SolveRequest) (*dmn.Solution, error)
	Stream(ctx context.Context, req dmn.SolveRequest, observe search.Observer) (*dmn.Solution, error)
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Solution, error)
	Generate(cfg maze.GenerateConfig) (string, error)
}

// Logger is the leveled logger handed to services.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}
