// Package throttle paces deletions on a driven.FileSystem.
package throttle

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/dedup-cli/internal/core/ports/driven"
)

// FileSystem delegates to another driven.FileSystem and waits for a token
// before each Remove. Reads are not limited.
type FileSystem struct {
	driven.FileSystem
	limiter *rate.Limiter
}

// Ensure FileSystem implements the interface.
var _ driven.FileSystem = (*FileSystem)(nil)

// Wrap limits fsys to perSecond removals per second. A non-positive rate
// returns fsys unchanged.
func Wrap(fsys driven.FileSystem, perSecond float64) driven.FileSystem {
	if perSecond <= 0 {
		return fsys
	}
	return &FileSystem{
		FileSystem: fsys,
		limiter:    rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// Remove waits for the limiter, then removes path.
func (f *FileSystem) Remove(ctx context.Context, path string) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return err
	}
	return f.FileSystem.Remove(ctx, path)
}
