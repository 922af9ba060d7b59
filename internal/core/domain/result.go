package domain

import "time"

// Summary is the externally observable result of a run.
type Summary struct {
	// FilesProcessed is the number of entries that reached hashing.
	FilesProcessed int

	// FilesDeleted is the number of successful deletion outcomes.
	FilesDeleted int

	// FilesFailed is the number of deletions that failed.
	FilesFailed int

	// FilesPlanned is the number of deletions skipped by a dry run.
	FilesPlanned int

	// BytesReclaimed is the total size of successfully deleted files.
	BytesReclaimed int64
}

// Result carries a run's summary together with the intermediate detail
// for callers that need more than the counts.
type Result struct {
	Summary

	// RunID uniquely identifies the run.
	RunID string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run ended.
	FinishedAt time.Time

	// DryRun indicates no file was removed.
	DryRun bool

	// Algorithm is the canonical hash algorithm name used.
	Algorithm HashAlgorithm

	// Roots are the normalised roots that were searched.
	Roots []RootPath

	// FilesFound is the number of files the walker collected.
	FilesFound int

	// Candidates is the number of files sharing a length with another file.
	Candidates int

	// SizeGroups partitions every collected file by length.
	SizeGroups SizeGroups

	// HashGroups partitions every hashed file by length and digest.
	HashGroups HashGroups

	// DuplicateSets are the hash groups with two or more members.
	DuplicateSets []DuplicateSet

	// Outcomes holds one record per attempted deletion.
	Outcomes []DeletionOutcome
}

// Duration returns the wall time of the run.
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
