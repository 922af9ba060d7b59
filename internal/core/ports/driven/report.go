package driven

import (
	"context"

	"github.com/custodia-labs/dedup-cli/internal/core/domain"
)

// ReportWriter persists the detail of a finished run for later inspection.
type ReportWriter interface {
	// Write stores the report at path.
	Write(ctx context.Context, path string, result *domain.Result) error
}
