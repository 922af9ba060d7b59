package services

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/custodia-labs/dedup-cli/internal/core/domain"
	"github.com/custodia-labs/dedup-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dedup-cli/internal/logger"
)

// Walker enumerates the regular files beneath a set of roots.
type Walker struct {
	fs       driven.FileSystem
	filter   domain.FileTypeFilter
	observer driven.ProgressObserver
}

// NewWalker creates a walker. The observer may be nil.
func NewWalker(fsys driven.FileSystem, filter domain.FileTypeFilter, observer driven.ProgressObserver) *Walker {
	return &Walker{
		fs:       fsys,
		filter:   filter,
		observer: observerOrNop(observer),
	}
}

// Walk descends depth-first into every root, entries sorted by name, and
// collects the regular files the filter accepts. Directories are always
// descended; symbolic links and other special files are never followed or
// collected. A directory that cannot be listed contributes nothing and is
// reported in skipped. Walk stops descending once ctx is done.
func (w *Walker) Walk(ctx context.Context, roots []domain.RootPath) (files []domain.FileEntry, skipped []error) {
	w.observer.StageStarted(domain.StageWalk, -1)
	defer w.observer.StageFinished(domain.StageWalk)

	for _, root := range roots {
		logger.Debug("Walking root %s", root)
		w.walkDir(ctx, root.String(), &files, &skipped)
	}
	return files, skipped
}

func (w *Walker) walkDir(ctx context.Context, dir string, files *[]domain.FileEntry, skipped *[]error) {
	if ctx.Err() != nil {
		return
	}

	infos, err := w.fs.ReadDir(dir)
	if err != nil {
		terr := &domain.TraversalError{Path: dir, Err: err}
		logger.Warn("%v, skipping directory", terr)
		*skipped = append(*skipped, terr)
		return
	}
	slices.SortFunc(infos, func(a, b os.FileInfo) int {
		return strings.Compare(a.Name(), b.Name())
	})

	for _, info := range infos {
		path := filepath.Join(dir, info.Name())
		switch {
		case info.IsDir():
			w.walkDir(ctx, path, files, skipped)
		case info.Mode().IsRegular() && w.filter.Match(info.Name()):
			*files = append(*files, domain.FileEntry{Path: path, Size: info.Size()})
			w.observer.ItemDone(domain.StageWalk)
		}
	}
}
