package i

import (
	"context"

	"github.com/google/uuid"
)

// SolutionCache maps a layout fingerprint to the ID of its stored solution.
type SolutionCache interface {
	// Lookup returns the cached solution ID; the boolean is false on a miss.
	Lookup(ctx context.Context, fingerprint string) (uuid.UUID, bool, error)

	// Store remembers the solution ID for the fingerprint.
	Store(ctx context.Context, fingerprint string, id uuid.UUID) error

	// Lock serializes work on one fingerprint across instances.
	// The returned function releases the lock.
	Lock(ctx context.Context, fingerprint string) (func(), error)
}
