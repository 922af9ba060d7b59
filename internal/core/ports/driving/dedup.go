package driving

import (
	"context"

	"github.com/custodia-labs/dedup-cli/internal/core/domain"
)

// Deduplicator finds duplicate files beneath a set of roots and removes
// all but one copy of each.
type Deduplicator interface {
	// Run executes the whole pipeline. It returns an error only for
	// configuration errors and, unless cfg.Lenient is set, hash errors.
	// Traversal and deletion problems are reflected in the result.
	Run(ctx context.Context, cfg domain.Config) (*domain.Result, error)
}
