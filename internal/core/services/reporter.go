package services

import "github.com/custodia-labs/dedup-cli/internal/core/domain"

// Summarise counts what a run achieved. FilesProcessed is the number of
// entries that were hashed; FilesDeleted counts outcomes that left the file
// gone, including files that had already disappeared.
func Summarise(hashed []domain.FileEntry, outcomes []domain.DeletionOutcome) domain.Summary {
	s := domain.Summary{FilesProcessed: len(hashed)}
	for _, o := range outcomes {
		switch o.Status {
		case domain.OutcomeDeleted:
			s.FilesDeleted++
			s.BytesReclaimed += o.Entry.Size
		case domain.OutcomeAlreadyGone:
			s.FilesDeleted++
		case domain.OutcomeFailed:
			s.FilesFailed++
		case domain.OutcomePlanned:
			s.FilesPlanned++
		}
	}
	return s
}
