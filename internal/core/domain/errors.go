package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every error produced by the dedup pipeline wraps exactly
// one of these so callers can classify it with errors.Is.
var (
	// ErrConfiguration indicates the run configuration is unusable.
	// Fatal unless it only concerns a single missing root.
	ErrConfiguration = errors.New("configuration error")

	// ErrTraversal indicates a directory could not be listed.
	// Never fatal: the subtree yields no entries.
	ErrTraversal = errors.New("traversal error")

	// ErrHash indicates a candidate file could not be opened or read
	// while computing its digest.
	ErrHash = errors.New("hash error")

	// ErrDeletion indicates a non-survivor file could not be removed.
	// Never fatal: recorded per file.
	ErrDeletion = errors.New("deletion error")
)

// Configuration errors.
var (
	// ErrNoRoots indicates no root directories were supplied.
	ErrNoRoots = fmt.Errorf("%w: no roots supplied", ErrConfiguration)

	// ErrUnknownAlgorithm indicates the named hash algorithm is not supported.
	ErrUnknownAlgorithm = fmt.Errorf("%w: unknown hash algorithm", ErrConfiguration)

	// ErrRootNotFound indicates a root path does not exist.
	ErrRootNotFound = fmt.Errorf("%w: root does not exist", ErrConfiguration)

	// ErrNotDirectory indicates a root path exists but is not a directory.
	ErrNotDirectory = fmt.Errorf("%w: root is not a directory", ErrConfiguration)

	// ErrInvalidWorkers indicates a negative worker count.
	ErrInvalidWorkers = fmt.Errorf("%w: workers must not be negative", ErrConfiguration)

	// ErrInvalidDeleteRate indicates a negative deletion rate.
	ErrInvalidDeleteRate = fmt.Errorf("%w: delete rate must not be negative", ErrConfiguration)
)

// HashError reports a file whose digest could not be computed.
type HashError struct {
	Path string
	Err  error
}

func (e *HashError) Error() string {
	return fmt.Sprintf("hash %s: %v", e.Path, e.Err)
}

// Unwrap exposes both the category and the cause.
func (e *HashError) Unwrap() []error {
	return []error{ErrHash, e.Err}
}

// DeletionError reports a non-survivor that could not be removed.
type DeletionError struct {
	Path string
	Err  error
}

func (e *DeletionError) Error() string {
	return fmt.Sprintf("delete %s: %v", e.Path, e.Err)
}

// Unwrap exposes both the category and the cause.
func (e *DeletionError) Unwrap() []error {
	return []error{ErrDeletion, e.Err}
}

// TraversalError reports a directory that could not be listed.
type TraversalError struct {
	Path string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("list %s: %v", e.Path, e.Err)
}

// Unwrap exposes both the category and the cause.
func (e *TraversalError) Unwrap() []error {
	return []error{ErrTraversal, e.Err}
}
