package driven

import "github.com/custodia-labs/dedup-cli/internal/core/domain"

// ProgressObserver receives pipeline progress. Optional: services accept nil.
// ItemDone is called from worker goroutines and must be safe for
// concurrent use.
type ProgressObserver interface {
	// StageStarted announces a stage with the number of items it will
	// process, or -1 when unknown.
	StageStarted(stage domain.Stage, total int)

	// ItemDone reports one processed item.
	ItemDone(stage domain.Stage)

	// StageFinished announces the end of a stage.
	StageFinished(stage domain.Stage)
}
