package i

import (
	"context"

	dmn "github.com/beka-birhanu/sma-maze/domain"
	"github.com/google/uuid"
)

// SolutionRepo defines the interface for solution persistence operations.
type SolutionRepo interface {
	// Save inserts or updates a solution in the repository.
	Save(ctx context.Context, solution *dmn.Solution) error

	// ByID retrieves a solution by its unique ID.
	// Returns dmn.ErrSolutionNotFound if no such solution exists.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Solution, error)
}
