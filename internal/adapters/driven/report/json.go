// Package report writes run reports as JSON.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/custodia-labs/dedup-cli/internal/core/domain"
	"github.com/custodia-labs/dedup-cli/internal/core/ports/driven"
)

// Ensure JSONWriter implements the interface.
var _ driven.ReportWriter = (*JSONWriter)(nil)

// ActionKept marks the survivor of a duplicate set.
const ActionKept = "kept"

// ActionSkipped marks a set member that was not attempted because the
// same path was kept or scheduled elsewhere.
const ActionSkipped = "skipped"

// Report is the JSON document written for a run.
type Report struct {
	RunID          string         `json:"run_id"`
	StartedAt      time.Time      `json:"started_at"`
	FinishedAt     time.Time      `json:"finished_at"`
	DurationMS     int64          `json:"duration_ms"`
	DryRun         bool           `json:"dry_run"`
	Algorithm      string         `json:"algorithm"`
	Roots          []string       `json:"roots"`
	FilesFound     int            `json:"files_found"`
	Candidates     int            `json:"candidates"`
	FilesProcessed int            `json:"files_processed"`
	FilesDeleted   int            `json:"files_deleted"`
	FilesFailed    int            `json:"files_failed"`
	FilesPlanned   int            `json:"files_planned"`
	BytesReclaimed int64          `json:"bytes_reclaimed"`
	DuplicateSets  []DuplicateSet `json:"duplicate_sets"`
}

// DuplicateSet is one group of identical files.
type DuplicateSet struct {
	Digest string `json:"digest"`
	Size   int64  `json:"size"`
	Files  []File `json:"files"`
}

// File is one member of a duplicate set and what happened to it.
type File struct {
	Path   string `json:"path"`
	Action string `json:"action"`
	Error  string `json:"error,omitempty"`
}

// JSONWriter writes reports to a billy filesystem.
type JSONWriter struct {
	fs billy.Filesystem
}

// NewJSONWriter writes through fs.
func NewJSONWriter(fs billy.Filesystem) *JSONWriter {
	return &JSONWriter{fs: fs}
}

// NewOSJSONWriter writes to the host filesystem. Relative paths resolve
// against the working directory.
func NewOSJSONWriter() *JSONWriter {
	return NewJSONWriter(osfs.New(""))
}

// Write encodes result and stores it at path, replacing any existing file.
func (w *JSONWriter) Write(ctx context.Context, path string, result *domain.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(FromResult(result), "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')

	if err := util.WriteFile(w.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// FromResult builds the report document for result.
func FromResult(result *domain.Result) Report {
	r := Report{
		RunID:          result.RunID,
		StartedAt:      result.StartedAt,
		FinishedAt:     result.FinishedAt,
		DurationMS:     result.Duration().Milliseconds(),
		DryRun:         result.DryRun,
		Algorithm:      result.Algorithm.String(),
		Roots:          make([]string, 0, len(result.Roots)),
		FilesFound:     result.FilesFound,
		Candidates:     result.Candidates,
		FilesProcessed: result.FilesProcessed,
		FilesDeleted:   result.FilesDeleted,
		FilesFailed:    result.FilesFailed,
		FilesPlanned:   result.FilesPlanned,
		BytesReclaimed: result.BytesReclaimed,
		DuplicateSets:  make([]DuplicateSet, 0, len(result.DuplicateSets)),
	}
	for _, root := range result.Roots {
		r.Roots = append(r.Roots, root.String())
	}

	outcomes := make(map[string]domain.DeletionOutcome, len(result.Outcomes))
	for _, o := range result.Outcomes {
		outcomes[o.Entry.Path] = o
	}

	for _, set := range result.DuplicateSets {
		ds := DuplicateSet{Digest: set.Digest, Size: set.Size}
		ds.Files = append(ds.Files, File{Path: set.Survivor().Path, Action: ActionKept})
		for _, entry := range set.Redundant() {
			o, ok := outcomes[entry.Path]
			if !ok || o.Survivor != set.Survivor().Path {
				ds.Files = append(ds.Files, File{Path: entry.Path, Action: ActionSkipped})
				continue
			}
			f := File{Path: entry.Path, Action: string(o.Status)}
			if o.Err != nil {
				f.Error = o.Err.Error()
			}
			ds.Files = append(ds.Files, f)
		}
		r.DuplicateSets = append(r.DuplicateSets, ds)
	}
	return r
}
