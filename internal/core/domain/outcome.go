package domain

// OutcomeStatus classifies a deletion attempt.
type OutcomeStatus string

// Deletion outcome statuses.
const (
	// OutcomeDeleted means the file was removed.
	OutcomeDeleted OutcomeStatus = "deleted"

	// OutcomeAlreadyGone means the file no longer existed. Counted as success.
	OutcomeAlreadyGone OutcomeStatus = "already_gone"

	// OutcomeFailed means the file could not be removed.
	OutcomeFailed OutcomeStatus = "failed"

	// OutcomePlanned means the file would have been removed in a dry run.
	OutcomePlanned OutcomeStatus = "planned"

	// OutcomeSameFile means the path names the survivor itself, through a
	// link or an aliased root, and was left alone.
	OutcomeSameFile OutcomeStatus = "same_file"
)

// DeletionOutcome records what happened to one non-survivor.
type DeletionOutcome struct {
	// Entry is the file the attempt concerned.
	Entry FileEntry

	// Survivor is the path kept in place of Entry.
	Survivor string

	// Status classifies the attempt.
	Status OutcomeStatus

	// Err is the failure reason. Nil unless Status is OutcomeFailed.
	Err error
}

// Succeeded reports whether the file is no longer on disk because of, or
// despite, this attempt.
func (o DeletionOutcome) Succeeded() bool {
	return o.Status == OutcomeDeleted || o.Status == OutcomeAlreadyGone
}
