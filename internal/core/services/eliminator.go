package services

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/dedup-cli/internal/core/domain"
	"github.com/custodia-labs/dedup-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dedup-cli/internal/logger"
)

// EliminatorOptions tunes an Eliminator.
type EliminatorOptions struct {
	// Workers bounds concurrent deletions. Values below 1 mean 1.
	Workers int

	// DryRun records planned deletions without removing anything.
	DryRun bool

	// Observer receives per-file progress. May be nil.
	Observer driven.ProgressObserver
}

// Eliminator keeps the first member of each duplicate set and deletes
// the others.
type Eliminator struct {
	fs   driven.FileSystem
	opts EliminatorOptions
}

// deletion is one scheduled removal.
type deletion struct {
	entry    domain.FileEntry
	survivor string
}

// NewEliminator creates an eliminator.
func NewEliminator(fsys driven.FileSystem, opts EliminatorOptions) *Eliminator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	opts.Observer = observerOrNop(opts.Observer)
	return &Eliminator{fs: fsys, opts: opts}
}

// Eliminate deletes every non-survivor of every set and returns one outcome
// per attempt, in set order. The survivor is the first entry of a set.
// A path that is some set's survivor is never deleted and no path is
// attempted twice, even when traversal reported it more than once. A path
// that reaches the survivor's file by another route is left alone.
// A file that is already gone counts as deleted. Other failures are
// recorded and do not stop the remaining deletions.
func (e *Eliminator) Eliminate(ctx context.Context, sets []domain.DuplicateSet) []domain.DeletionOutcome {
	plan := e.plan(sets)

	e.opts.Observer.StageStarted(domain.StageDelete, len(plan))
	defer e.opts.Observer.StageFinished(domain.StageDelete)

	// Each worker writes only its own index.
	outcomes := make([]domain.DeletionOutcome, len(plan))

	var g errgroup.Group
	g.SetLimit(e.opts.Workers)
	for i := range plan {
		g.Go(func() error {
			outcomes[i] = e.remove(ctx, plan[i])
			e.opts.Observer.ItemDone(domain.StageDelete)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (e *Eliminator) plan(sets []domain.DuplicateSet) []deletion {
	survivors := make(map[string]struct{}, len(sets))
	for _, set := range sets {
		survivors[set.Survivor().Path] = struct{}{}
	}

	scheduled := make(map[string]struct{})
	var plan []deletion
	for _, set := range sets {
		keep := set.Survivor().Path
		for _, entry := range set.Redundant() {
			if _, ok := survivors[entry.Path]; ok {
				logger.Debug("Not deleting %s: it is a survivor", entry.Path)
				continue
			}
			if _, ok := scheduled[entry.Path]; ok {
				logger.Debug("Not deleting %s twice", entry.Path)
				continue
			}
			scheduled[entry.Path] = struct{}{}
			plan = append(plan, deletion{entry: entry, survivor: keep})
		}
	}
	return plan
}

func (e *Eliminator) remove(ctx context.Context, d deletion) domain.DeletionOutcome {
	outcome := domain.DeletionOutcome{Entry: d.entry, Survivor: d.survivor}

	if e.sameFile(d.entry.Path, d.survivor) {
		logger.Warn("Not deleting %s: it is the same file as %s", d.entry.Path, d.survivor)
		outcome.Status = domain.OutcomeSameFile
		return outcome
	}

	if e.opts.DryRun {
		logger.Info("Would delete %s (duplicate of %s)", d.entry.Path, d.survivor)
		outcome.Status = domain.OutcomePlanned
		return outcome
	}

	if err := ctx.Err(); err != nil {
		outcome.Status = domain.OutcomeFailed
		outcome.Err = &domain.DeletionError{Path: d.entry.Path, Err: err}
		return outcome
	}

	err := e.fs.Remove(ctx, d.entry.Path)
	switch {
	case err == nil:
		logger.Info("Deleted %s (duplicate of %s)", d.entry.Path, d.survivor)
		outcome.Status = domain.OutcomeDeleted
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("%s already gone", d.entry.Path)
		outcome.Status = domain.OutcomeAlreadyGone
	default:
		derr := &domain.DeletionError{Path: d.entry.Path, Err: err}
		logger.Warn("%v", derr)
		outcome.Status = domain.OutcomeFailed
		outcome.Err = derr
	}
	return outcome
}

// sameFile reports whether both paths currently name one file on disk.
func (e *Eliminator) sameFile(path, survivor string) bool {
	a, err := e.fs.Stat(path)
	if err != nil {
		return false
	}
	b, err := e.fs.Stat(survivor)
	if err != nil {
		return false
	}
	return os.SameFile(a, b)
}
