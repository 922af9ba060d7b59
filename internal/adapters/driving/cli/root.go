// Package cli provides the cobra command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dedup-cli/internal/core/domain"
	"github.com/custodia-labs/dedup-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dedup-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dedup-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	verboseFlag bool
	quietFlag   bool
	configFlag  string
)

// SettingsFactory opens the layered settings. configPath is the value of
// --config and may be empty.
type SettingsFactory func(configPath string) (driving.SettingsService, error)

// DeduplicatorFactory builds the pipeline for a resolved configuration.
// observer may be nil.
type DeduplicatorFactory func(cfg domain.Config, observer driven.ProgressObserver) driving.Deduplicator

// Services wires the core into the commands.
type Services struct {
	Settings     SettingsFactory
	Deduplicator DeduplicatorFactory
}

// Package-level services, set by SetServices.
var (
	newSettingsService SettingsFactory
	newDeduplicator    DeduplicatorFactory
)

var rootCmd = &cobra.Command{
	Use:   "dedup",
	Short: "Find and delete duplicate files",
	Long: `dedup searches directory trees for files with identical content and
deletes all but one copy of each.

Files are first grouped by length; only files sharing a length are hashed.
Within each group of identical content the first file found is kept.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// --quiet wins over --verbose
		logger.SetVerbose(verboseFlag && !quietFlag)
		logger.SetQuiet(quietFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log every stage and file")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "suppress warnings and progress")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default ~/.dedup/config.toml)")
}

// SetServices injects the service factories.
func SetServices(s Services) {
	newSettingsService = s.Settings
	newDeduplicator = s.Deduplicator
}

// SetVersion sets the version reported by "dedup version".
func SetVersion(v string) {
	version = v
}

// ExecuteContext runs the root command. Cancelling ctx stops a run
// between files.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
