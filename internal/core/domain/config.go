package domain

import (
	"errors"
	"fmt"
	"runtime"
)

// DefaultFileTypes are the suffixes searched when none are configured.
var DefaultFileTypes = []string{".jpg", ".gif"}

// Config is the validated input of a dedup run.
type Config struct {
	// Roots are the candidate directories, in the order given.
	Roots []string

	// FileTypes are the accepted filename suffixes.
	// Empty means nothing matches; MatchAllFileTypes matches everything.
	FileTypes []string

	// HashAlgorithm names the digest algorithm.
	HashAlgorithm string

	// Workers bounds hashing and deletion concurrency.
	// Zero selects runtime.NumCPU().
	Workers int

	// Lenient excludes files that cannot be hashed instead of aborting.
	Lenient bool

	// DryRun records planned deletions without removing anything.
	DryRun bool

	// DeleteRate caps deletions per second. Zero means unlimited.
	DeleteRate float64

	// ReportPath, when set, receives a JSON report of the run.
	ReportPath string
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	types := make([]string, len(DefaultFileTypes))
	copy(types, DefaultFileTypes)
	return Config{
		FileTypes:     types,
		HashAlgorithm: string(DefaultHashAlgorithm),
	}
}

// Validate checks the configuration. Missing roots on disk are not checked
// here; they are skipped with a warning during normalisation.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Roots) == 0 {
		errs = append(errs, ErrNoRoots)
	}
	if _, err := ParseHashAlgorithm(c.HashAlgorithm); err != nil {
		errs = append(errs, err)
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Workers))
	}
	if c.DeleteRate < 0 {
		errs = append(errs, fmt.Errorf("%w: %g", ErrInvalidDeleteRate, c.DeleteRate))
	}
	return errors.Join(errs...)
}

// EffectiveWorkers returns the concurrency to use.
func (c *Config) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Filter returns the file-type filter described by FileTypes.
func (c *Config) Filter() FileTypeFilter {
	return NewFileTypeFilter(c.FileTypes)
}
