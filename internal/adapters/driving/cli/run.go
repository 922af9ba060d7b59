package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/dedup-cli/internal/core/domain"
	"github.com/custodia-labs/dedup-cli/internal/core/ports/driven"
)

var (
	runRoots      []string
	runTypes      []string
	runHash       string
	runWorkers    int
	runLenient    bool
	runDryRun     bool
	runDeleteRate float64
	runReport     string
)

var runCmd = &cobra.Command{
	Use:   "run [root...]",
	Short: "Find and delete duplicate files",
	Long: `Searches the given roots for duplicate files and deletes every copy
except the first one found.

Roots may be passed as arguments or with --root. A root nested inside an
earlier root is ignored. Only files whose names end with one of the
configured types are considered (default .jpg and .gif; "*" matches all).

Settings are read from the config file, then DEDUP_* environment variables,
then flags; later sources win.`,
	RunE: runDedup,
}

func init() {
	runCmd.Flags().StringArrayVarP(&runRoots, "root", "r", nil, "directory to search (repeatable)")
	runCmd.Flags().StringArrayVarP(&runTypes, "type", "t", nil, "file name suffix to include, e.g. .png (repeatable)")
	runCmd.Flags().StringVar(&runHash, "hash", string(domain.DefaultHashAlgorithm), "content hash algorithm")
	runCmd.Flags().IntVarP(&runWorkers, "workers", "w", 0, "concurrent hash and delete workers (0 = one per CPU)")
	runCmd.Flags().BoolVar(&runLenient, "lenient", false, "skip unreadable files instead of aborting")
	runCmd.Flags().BoolVarP(&runDryRun, "dry-run", "n", false, "report what would be deleted without deleting")
	runCmd.Flags().Float64Var(&runDeleteRate, "delete-rate", 0, "maximum deletions per second (0 = unlimited)")
	runCmd.Flags().StringVar(&runReport, "report", "", "write a JSON report to this file")
	rootCmd.AddCommand(runCmd)
}

func runDedup(cmd *cobra.Command, args []string) error {
	if newSettingsService == nil || newDeduplicator == nil {
		return errors.New("dedup service not configured")
	}

	settings, err := newSettingsService(configFlag)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	cfg, err := settings.Get()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	applyRunFlags(cmd, cfg, args)

	var observer driven.ProgressObserver
	if showProgress(quietFlag, verboseFlag) {
		observer = newProgressObserver(cmd.ErrOrStderr())
	}

	result, err := newDeduplicator(*cfg, observer).Run(cmd.Context(), *cfg)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), result)
	return nil
}

// applyRunFlags overlays explicitly set flags and positional roots on cfg.
func applyRunFlags(cmd *cobra.Command, cfg *domain.Config, args []string) {
	flags := cmd.Flags()

	if flags.Changed("root") || len(args) > 0 {
		roots := make([]string, 0, len(runRoots)+len(args))
		roots = append(roots, runRoots...)
		cfg.Roots = append(roots, args...)
	}
	if flags.Changed("type") {
		cfg.FileTypes = append([]string(nil), runTypes...)
	}
	if flags.Changed("hash") {
		cfg.HashAlgorithm = runHash
	}
	if flags.Changed("workers") {
		cfg.Workers = runWorkers
	}
	if flags.Changed("lenient") {
		cfg.Lenient = runLenient
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = runDryRun
	}
	if flags.Changed("delete-rate") {
		cfg.DeleteRate = runDeleteRate
	}
	if flags.Changed("report") {
		cfg.ReportPath = runReport
	}
}

// printSummary writes the run result. The candidate line and the two count
// lines are always printed, in this order.
func printSummary(w io.Writer, result *domain.Result) {
	fmt.Fprintln(w, styles.Title.Render("Duplicate scan complete"))
	fmt.Fprintf(w, "Possible duplicate count %d\n", result.Candidates)
	fmt.Fprintf(w, "Files found to process: %d\n", result.FilesProcessed)
	fmt.Fprintf(w, "Files deleted: %d\n", result.FilesDeleted)

	if result.DryRun {
		fmt.Fprintln(w, styles.Warning.Render(
			fmt.Sprintf("Dry run: %d files would be deleted", result.FilesPlanned)))
	}
	if result.FilesFailed > 0 {
		fmt.Fprintln(w, styles.Error.Render(
			fmt.Sprintf("Failed to delete %d files", result.FilesFailed)))
	}
	if result.BytesReclaimed > 0 {
		fmt.Fprintln(w, styles.Success.Render(
			fmt.Sprintf("Space reclaimed: %s", humanize.Bytes(uint64(result.BytesReclaimed)))))
	}
	fmt.Fprintln(w, styles.Muted.Render(
		fmt.Sprintf("%d duplicate sets in %d files searched (run %s)",
			len(result.DuplicateSets), result.FilesFound, result.RunID)))
}
