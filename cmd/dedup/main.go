// Command dedup finds and deletes duplicate files.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/custodia-labs/dedup-cli/internal/adapters/driven/config/env"
	"github.com/custodia-labs/dedup-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/dedup-cli/internal/adapters/driven/filesystem/billyfs"
	"github.com/custodia-labs/dedup-cli/internal/adapters/driven/filesystem/throttle"
	"github.com/custodia-labs/dedup-cli/internal/adapters/driven/hashing"
	"github.com/custodia-labs/dedup-cli/internal/adapters/driven/report"
	"github.com/custodia-labs/dedup-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/dedup-cli/internal/core/domain"
	"github.com/custodia-labs/dedup-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dedup-cli/internal/core/ports/driving"
	"github.com/custodia-labs/dedup-cli/internal/core/services"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Settings:     openSettings,
		Deduplicator: newDeduplicator,
	})

	err := cli.ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}

// exitCode maps a command error to the process status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrConfiguration):
		return 2
	default:
		return 1
	}
}

// openSettings layers DEDUP_* variables over the TOML config file.
func openSettings(configPath string) (driving.SettingsService, error) {
	var base driven.ConfigStore
	if configPath != "" {
		store, err := file.OpenConfigFile(configPath)
		if err != nil {
			return nil, err
		}
		base = store
	} else {
		store, err := file.NewConfigStore("")
		if err != nil {
			return nil, err
		}
		base = store
	}

	layered, err := env.NewStore(base)
	if err != nil {
		return nil, err
	}
	return services.NewSettingsService(layered), nil
}

func newDeduplicator(cfg domain.Config, observer driven.ProgressObserver) driving.Deduplicator {
	fsys := throttle.Wrap(billyfs.NewOS(), cfg.DeleteRate)
	return services.NewDedupService(fsys, hashing.NewRegistry(),
		services.WithObserver(observer),
		services.WithReportWriter(report.NewOSJSONWriter()),
		services.WithRunIDGenerator(uuid.NewString),
	)
}
