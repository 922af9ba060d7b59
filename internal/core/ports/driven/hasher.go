package driven

import (
	"hash"

	"github.com/custodia-labs/dedup-cli/internal/core/domain"
)

// HashProvider creates digest states for the supported algorithms.
type HashProvider interface {
	// New returns a fresh hash state. Every call returns an independent
	// value so concurrent workers never share state.
	// Returns domain.ErrUnknownAlgorithm for unsupported names.
	New(algorithm domain.HashAlgorithm) (hash.Hash, error)

	// Supports reports whether the algorithm can be created.
	Supports(algorithm domain.HashAlgorithm) bool
}
