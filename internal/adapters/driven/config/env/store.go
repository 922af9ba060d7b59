// Package env layers DEDUP_* environment variables over another config store.
package env

import (
	"fmt"
	"sync"

	"github.com/kelseyhightower/envconfig"

	"github.com/custodia-labs/dedup-cli/internal/adapters/driven/config/values"
	"github.com/custodia-labs/dedup-cli/internal/core/ports/driven"
)

// Prefix is the environment variable prefix.
const Prefix = "DEDUP"

// Ensure Store implements the interface.
var _ driven.ConfigStore = (*Store)(nil)

// overrides lists the recognised variables. Pointer fields stay nil when the
// variable is unset, so an explicit "false" or "0" still overrides the base.
type overrides struct {
	Roots         []string `envconfig:"ROOTS"`
	FileTypes     []string `envconfig:"FILE_TYPES"`
	HashAlgorithm string   `envconfig:"HASH_ALGORITHM"`
	Workers       *int     `envconfig:"WORKERS"`
	Lenient       *bool    `envconfig:"LENIENT"`
	DryRun        *bool    `envconfig:"DRY_RUN"`
	DeleteRate    *float64 `envconfig:"DELETE_RATE"`
	ReportPath    string   `envconfig:"REPORT_PATH"`
}

// Store answers lookups from the environment first and falls back to base.
type Store struct {
	mu   sync.RWMutex
	base driven.ConfigStore
	env  values.Map
}

// NewStore reads the environment and wraps base.
func NewStore(base driven.ConfigStore) (*Store, error) {
	s := &Store{base: base, env: make(values.Map)}
	if err := s.readEnv(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) readEnv() error {
	var o overrides
	if err := envconfig.Process(Prefix, &o); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	m := make(values.Map)
	if o.Roots != nil {
		m["dedup.roots"] = o.Roots
	}
	if o.FileTypes != nil {
		m["dedup.file_types"] = o.FileTypes
	}
	if o.HashAlgorithm != "" {
		m["dedup.hash_algorithm"] = o.HashAlgorithm
	}
	if o.Workers != nil {
		m["dedup.workers"] = *o.Workers
	}
	if o.Lenient != nil {
		m["dedup.lenient"] = *o.Lenient
	}
	if o.DryRun != nil {
		m["dedup.dry_run"] = *o.DryRun
	}
	if o.DeleteRate != nil {
		m["dedup.delete_rate"] = *o.DeleteRate
	}
	if o.ReportPath != "" {
		m["dedup.report_path"] = o.ReportPath
	}

	s.mu.Lock()
	s.env = m
	s.mu.Unlock()
	return nil
}

func (s *Store) lookup(key string) (values.Map, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.env[key]
	return s.env, ok
}

// Get retrieves a configuration value by key.
func (s *Store) Get(key string) (any, bool) {
	if env, ok := s.lookup(key); ok {
		return env.Get(key)
	}
	return s.base.Get(key)
}

// GetString retrieves a string configuration value.
func (s *Store) GetString(key string) string {
	if env, ok := s.lookup(key); ok {
		return env.String(key)
	}
	return s.base.GetString(key)
}

// GetInt retrieves an integer configuration value.
func (s *Store) GetInt(key string) int {
	if env, ok := s.lookup(key); ok {
		return env.Int(key)
	}
	return s.base.GetInt(key)
}

// GetFloat retrieves a numeric configuration value.
func (s *Store) GetFloat(key string) float64 {
	if env, ok := s.lookup(key); ok {
		return env.Float(key)
	}
	return s.base.GetFloat(key)
}

// GetBool retrieves a boolean configuration value.
func (s *Store) GetBool(key string) bool {
	if env, ok := s.lookup(key); ok {
		return env.Bool(key)
	}
	return s.base.GetBool(key)
}

// GetStringSlice retrieves a string slice configuration value.
func (s *Store) GetStringSlice(key string) []string {
	if env, ok := s.lookup(key); ok {
		return env.StringSlice(key)
	}
	return s.base.GetStringSlice(key)
}

// Load reloads the base store, then the environment.
func (s *Store) Load() error {
	if err := s.base.Load(); err != nil {
		return err
	}
	return s.readEnv()
}

// Path returns the base store's path.
func (s *Store) Path() string {
	return s.base.Path()
}
