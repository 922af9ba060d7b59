package services

import (
	"github.com/custodia-labs/dedup-cli/internal/core/domain"
	"github.com/custodia-labs/dedup-cli/internal/core/ports/driven"
	"github.com/custodia-labs/dedup-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyRoots         = "dedup.roots"
	KeyFileTypes     = "dedup.file_types"
	KeyHashAlgorithm = "dedup.hash_algorithm"
	KeyWorkers       = "dedup.workers"
	KeyLenient       = "dedup.lenient"
	KeyDryRun        = "dedup.dry_run"
	KeyDeleteRate    = "dedup.delete_rate"
	KeyReportPath    = "dedup.report_path"
)

// SettingsService builds the run configuration from stored settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get overlays stored values on the defaults. The result is not validated:
// roots usually come from the command line afterwards.
func (s *SettingsService) Get() (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	if roots := s.configStore.GetStringSlice(KeyRoots); roots != nil {
		cfg.Roots = roots
	}
	// An explicitly empty list is kept: it means "match nothing".
	if _, ok := s.configStore.Get(KeyFileTypes); ok {
		cfg.FileTypes = s.configStore.GetStringSlice(KeyFileTypes)
	}
	cfg.HashAlgorithm = s.getString(KeyHashAlgorithm, cfg.HashAlgorithm)
	cfg.Workers = s.getInt(KeyWorkers, cfg.Workers)
	cfg.Lenient = s.getBool(KeyLenient, cfg.Lenient)
	cfg.DryRun = s.getBool(KeyDryRun, cfg.DryRun)
	cfg.DeleteRate = s.getFloat(KeyDeleteRate, cfg.DeleteRate)
	cfg.ReportPath = s.getString(KeyReportPath, cfg.ReportPath)

	return &cfg, nil
}

// GetDefaults returns the built-in configuration.
func (s *SettingsService) GetDefaults() domain.Config {
	return domain.DefaultConfig()
}

// Source returns where stored settings are read from.
func (s *SettingsService) Source() string {
	return s.configStore.Path()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetInt(key)
	}
	return defaultVal
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetFloat(key)
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetBool(key)
	}
	return defaultVal
}
