package services

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/custodia-labs/dedup-cli/internal/core/domain"
	"github.com/custodia-labs/dedup-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dedup-cli/internal/logger"
)

// NormaliseRoots turns candidate paths into the set of roots to search.
//
// Candidates are processed in order. Each is made absolute, its symbolic
// links are resolved, and it is rejected when it, or any of its ancestors,
// has already been accepted. Accepted roots are the resolved paths, so a
// link to an accepted root is redundant. A root accepted earlier is never
// removed when a later candidate turns out to be its ancestor, so
// ["/a/b", "/a"] keeps both. Candidates that do not exist or are not
// directories are returned in skipped and never accepted.
func NormaliseRoots(fsys driven.FileSystem, candidates []string) (roots []domain.RootPath, skipped []error) {
	accepted := make(map[string]struct{}, len(candidates))

	for _, candidate := range candidates {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("%w: resolve %q: %w", domain.ErrConfiguration, candidate, err))
			continue
		}

		if ancestor, ok := acceptedAncestor(accepted, abs); ok {
			logger.Info("Root %s is inside %s, ignoring", abs, ancestor)
			continue
		}

		resolved, err := fsys.EvalSymlinks(abs)
		var info fs.FileInfo
		if err == nil {
			info, err = fsys.Stat(resolved)
		}
		switch {
		case errors.Is(err, fs.ErrNotExist):
			skipped = append(skipped, fmt.Errorf("%w: %s", domain.ErrRootNotFound, abs))
			continue
		case err != nil:
			skipped = append(skipped, fmt.Errorf("%w: stat %s: %w", domain.ErrConfiguration, abs, err))
			continue
		case !info.IsDir():
			skipped = append(skipped, fmt.Errorf("%w: %s", domain.ErrNotDirectory, abs))
			continue
		}

		if resolved != abs {
			if ancestor, ok := acceptedAncestor(accepted, resolved); ok {
				logger.Info("Root %s resolves to %s inside %s, ignoring", abs, resolved, ancestor)
				continue
			}
			logger.Debug("Root %s resolves to %s", abs, resolved)
		}

		accepted[resolved] = struct{}{}
		roots = append(roots, domain.RootPath(resolved))
	}

	for _, err := range skipped {
		logger.Warn("%v, ignoring", err)
	}
	return roots, skipped
}

// acceptedAncestor walks from path up to the filesystem root and returns
// the first member of accepted it meets, including path itself.
func acceptedAncestor(accepted map[string]struct{}, path string) (string, bool) {
	for p := path; ; {
		if _, ok := accepted[p]; ok {
			return p, true
		}
		parent := filepath.Dir(p)
		if parent == p {
			return "", false
		}
		p = parent
	}
}
