package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/dedup-cli/internal/core/domain"
	"github.com/custodia-labs/dedup-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dedup-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dedup-cli/internal/logger"
)

// Ensure DedupService implements the interface.
var _ driving.Deduplicator = (*DedupService)(nil)

// DedupService runs the duplicate detection and elimination pipeline:
// normalise roots, walk, group by size, hash, group by digest, eliminate,
// summarise. Each stage consumes the complete output of the previous one.
type DedupService struct {
	fs       driven.FileSystem
	hashers  driven.HashProvider
	observer driven.ProgressObserver
	reports  driven.ReportWriter
	newRunID func() string
	now      func() time.Time
}

// DedupOption configures optional collaborators of a DedupService.
type DedupOption func(*DedupService)

// WithObserver reports pipeline progress to o.
func WithObserver(o driven.ProgressObserver) DedupOption {
	return func(s *DedupService) { s.observer = o }
}

// WithReportWriter writes a report when the config names a report path.
func WithReportWriter(w driven.ReportWriter) DedupOption {
	return func(s *DedupService) { s.reports = w }
}

// WithRunIDGenerator sets how run identifiers are produced.
func WithRunIDGenerator(fn func() string) DedupOption {
	return func(s *DedupService) { s.newRunID = fn }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) DedupOption {
	return func(s *DedupService) { s.now = now }
}

// NewDedupService creates the pipeline over a filesystem and hash provider.
func NewDedupService(fsys driven.FileSystem, hashers driven.HashProvider, opts ...DedupOption) *DedupService {
	s := &DedupService{
		fs:      fsys,
		hashers: hashers,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.observer = observerOrNop(s.observer)
	if s.newRunID == nil {
		s.newRunID = func() string {
			return fmt.Sprintf("run-%d", s.now().UnixNano())
		}
	}
	return s
}

// Run executes the pipeline.
func (s *DedupService) Run(ctx context.Context, cfg domain.Config) (*domain.Result, error) {
	// 1. Validate before touching the filesystem
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	algorithm, err := domain.ParseHashAlgorithm(cfg.HashAlgorithm)
	if err != nil {
		return nil, err
	}
	if !s.hashers.Supports(algorithm) {
		return nil, fmt.Errorf("%w: %s has no implementation", domain.ErrUnknownAlgorithm, algorithm)
	}
	workers := cfg.EffectiveWorkers()

	result := &domain.Result{
		RunID:     s.newRunID(),
		StartedAt: s.now(),
		DryRun:    cfg.DryRun,
		Algorithm: algorithm,
	}
	logger.Info("Run %s: algorithm=%s workers=%d dry-run=%t", result.RunID, algorithm, workers, cfg.DryRun)

	// 2. Normalise roots
	logger.Section("Roots")
	s.observer.StageStarted(domain.StageNormalise, len(cfg.Roots))
	result.Roots, _ = NormaliseRoots(s.fs, cfg.Roots)
	s.observer.StageFinished(domain.StageNormalise)
	for _, r := range result.Roots {
		logger.Info("Searching %s", r)
	}

	// 3. Walk
	logger.Section("Walk")
	filter := cfg.Filter()
	if filter.Empty() {
		logger.Info("File type filter is empty, nothing will match")
	}
	files, _ := NewWalker(s.fs, filter, s.observer).Walk(ctx, result.Roots)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result.FilesFound = len(files)
	logger.Info("Collected %d files", len(files))

	// 4. Size gate
	result.SizeGroups = GroupBySize(files)
	candidates := result.SizeGroups.Shared()
	result.Candidates = len(candidates)
	logger.Info("Possible duplicate count %d", result.Candidates)

	// 5. Hash
	logger.Section("Hash")
	hasher := NewContentHasher(s.fs, s.hashers, algorithm, HashOptions{
		Workers:  workers,
		Lenient:  cfg.Lenient,
		Observer: s.observer,
	})
	hashed, _, err := hasher.HashAll(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("hash candidates: %w", err)
	}

	// 6. Group by digest
	result.HashGroups = GroupByHash(hashed)
	result.DuplicateSets = domain.DuplicateSets(result.HashGroups)
	logger.Info("Found %d duplicate sets", len(result.DuplicateSets))

	// 7. Eliminate
	logger.Section("Eliminate")
	eliminator := NewEliminator(s.fs, EliminatorOptions{
		Workers:  workers,
		DryRun:   cfg.DryRun,
		Observer: s.observer,
	})
	result.Outcomes = eliminator.Eliminate(ctx, result.DuplicateSets)

	// 8. Summarise
	result.Summary = Summarise(hashed, result.Outcomes)
	result.FinishedAt = s.now()
	logger.Info("Run %s finished in %s", result.RunID, result.Duration())

	if cfg.ReportPath != "" && s.reports != nil {
		if err := s.reports.Write(ctx, cfg.ReportPath, result); err != nil {
			logger.Warn("could not write report %s: %v", cfg.ReportPath, err)
		}
	}

	return result, nil
}
