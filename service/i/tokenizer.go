package i

import (
	"time"
)

// Tokenizer issues and checks the bearer tokens API clients present.
type Tokenizer interface {
	// Generate creates a token for subject that expires after expTime.
	Generate(subject string, expTime time.Duration) (string, error)

	// Decode validates a token and returns its subject.
	Decode(token string) (string, error)
}
