package cli

import (
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/custodia-labs/dedup-cli/internal/core/domain"
	"github.com/custodia-labs/dedup-cli/internal/core/ports/driven"
)

// Ensure progressObserver implements the interface.
var _ driven.ProgressObserver = (*progressObserver)(nil)

var stageDescriptions = map[domain.Stage]string{
	domain.StageWalk:   "Scanning",
	domain.StageHash:   "Hashing",
	domain.StageDelete: "Deleting",
}

// progressObserver renders one progress bar per pipeline stage.
type progressObserver struct {
	mu  sync.Mutex
	w   io.Writer
	bar *progressbar.ProgressBar
}

func newProgressObserver(w io.Writer) *progressObserver {
	return &progressObserver{w: w}
}

// StageStarted opens a bar for the stage. A negative total shows a spinner.
func (p *progressObserver) StageStarted(stage domain.Stage, total int) {
	desc, ok := stageDescriptions[stage]
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionClearOnFinish(),
	)
}

// ItemDone advances the current bar.
func (p *progressObserver) ItemDone(_ domain.Stage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

// StageFinished closes the current bar.
func (p *progressObserver) StageFinished(_ domain.Stage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}

// showProgress reports whether bars should be drawn on stderr.
// Verbose logging and bars would interleave, so verbose mode disables them.
func showProgress(quiet, verbose bool) bool {
	if quiet || verbose {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}
