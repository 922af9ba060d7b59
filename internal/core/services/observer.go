package services

import (
	"github.com/custodia-labs/dedup-cli/internal/core/domain"
	"github.com/custodia-labs/dedup-cli/internal/core/ports/driven"
)

// nopObserver discards progress.
type nopObserver struct{}

func (nopObserver) StageStarted(domain.Stage, int) {}
func (nopObserver) ItemDone(domain.Stage)          {}
func (nopObserver) StageFinished(domain.Stage)     {}

func observerOrNop(o driven.ProgressObserver) driven.ProgressObserver {
	if o == nil {
		return nopObserver{}
	}
	return o
}
