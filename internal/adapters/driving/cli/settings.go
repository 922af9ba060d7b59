package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/dedup-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show effective settings",
	Long: `Show the settings a run would use before command line flags are applied:
built-in defaults, overridden by the config file, overridden by DEDUP_*
environment variables.`,
	RunE: runSettingsShow,
}

var settingsDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Show built-in defaults",
	RunE:  runSettingsDefaults,
}

func init() {
	settingsCmd.AddCommand(settingsDefaultsCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if newSettingsService == nil {
		return errors.New("settings service not configured")
	}

	settingsService, err := newSettingsService(configFlag)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	cfg, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("Source: %s\n", settingsService.Source())
	cmd.Println()
	printConfig(cmd, cfg)
	cmd.Println()

	// Roots normally come from the command line, so their absence is not
	// reported here.
	check := *cfg
	if len(check.Roots) == 0 {
		check.Roots = []string{"."}
	}
	if err := check.Validate(); err != nil {
		cmd.Println(styles.Warning.Render(fmt.Sprintf("Warning: %v", err)))
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsDefaults(cmd *cobra.Command, _ []string) error {
	cfg := domain.DefaultConfig()
	printConfig(cmd, &cfg)
	return nil
}

func printConfig(cmd *cobra.Command, cfg *domain.Config) {
	cmd.Printf("  Roots:          %s\n", listOrNone(cfg.Roots))
	cmd.Printf("  File types:     %s\n", listOrNone(cfg.FileTypes))
	cmd.Printf("  Hash algorithm: %s\n", cfg.HashAlgorithm)
	cmd.Printf("  Workers:        %s\n", workersDescription(cfg.Workers))
	cmd.Printf("  Lenient:        %s\n", yesNo(cfg.Lenient))
	cmd.Printf("  Dry run:        %s\n", yesNo(cfg.DryRun))
	cmd.Printf("  Delete rate:    %s\n", rateDescription(cfg.DeleteRate))
	cmd.Printf("  Report:         %s\n", valueOrNone(cfg.ReportPath))
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

func valueOrNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func workersDescription(n int) string {
	if n == 0 {
		return "one per CPU"
	}
	return fmt.Sprintf("%d", n)
}

func rateDescription(r float64) string {
	if r <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%g/s", r)
}
