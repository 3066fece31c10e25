// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for toolrouter.
//
// Configuration is loaded from a single file specified by:
//   - TOOLROUTER_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures deterministic,
// auditable configuration with no hidden overrides.
//
// The config file may contain environment-specific sections (development,
// staging, production) that override base values when the environment matches.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for toolrouterd.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Paths configures directory locations.
	Paths PathsConfig `yaml:"paths"`

	// Transport configures the JSON-RPC surface.
	Transport TransportConfig `yaml:"transport"`

	// Search configures the BM25 field-weighted search engine.
	Search SearchConfig `yaml:"search"`

	// WorkingSet configures the working-set manager defaults.
	WorkingSet WorkingSetConfig `yaml:"working_set"`

	// Reducer configures the result-reducer trim/truncate limits.
	Reducer ReducerConfig `yaml:"reducer"`

	// EnvironmentOverrides contains per-environment overrides.
	// These are applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Paths      *PathsConfig      `yaml:"paths,omitempty"`
	Transport  *TransportConfig  `yaml:"transport,omitempty"`
	Search     *SearchConfig     `yaml:"search,omitempty"`
	WorkingSet *WorkingSetConfig `yaml:"working_set,omitempty"`
	Reducer    *ReducerConfig    `yaml:"reducer,omitempty"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Root is the base directory for toolrouter data.
	Root string `yaml:"root"`

	// CatalogFixtures is a directory for JSONC catalog fixtures, created by
	// EnsurePaths. Nothing loads it automatically; toolrouterctl seed reads
	// only the file named by its --file flag.
	CatalogFixtures string `yaml:"catalog_fixtures"`

	// State is a directory for runtime state, created by EnsurePaths. The
	// daemon keeps catalog snapshots and digests in memory and writes
	// nothing here.
	State string `yaml:"state"`
}

// TransportConfig configures the JSON-RPC 2.0 surface.
type TransportConfig struct {
	// Socket is the Unix socket path the daemon listens on. Empty means
	// stdio transport (newline-delimited JSON-RPC over stdin/stdout).
	Socket string `yaml:"socket"`

	// MaxBatchSize bounds the number of requests accepted in one JSON-RPC
	// batch array.
	MaxBatchSize int `yaml:"max_batch_size"`
}

// SearchConfig configures the field-weighted BM25 search engine.
type SearchConfig struct {
	// K1 and B are the BM25 tuning constants.
	K1 float64 `yaml:"k1"`
	B  float64 `yaml:"b"`

	// FieldWeights maps ToolSearchDoc field names to their BM25 weight.
	FieldWeights map[string]float64 `yaml:"field_weights"`

	// ExactMatchBoost and PrefixMatchBoost are added to the BM25 score
	// when the normalized query equals, or is a prefix of, the tool name.
	ExactMatchBoost  float64 `yaml:"exact_match_boost"`
	PrefixMatchBoost float64 `yaml:"prefix_match_boost"`

	// PopularityBoost scales ln(1+popularity) into the final score.
	PopularityBoost float64 `yaml:"popularity_boost"`

	// MinScore filters out BM25-mode hits scoring at or below this
	// threshold. Not applied in regex mode.
	MinScore float64 `yaml:"min_score"`

	// MinTokenLength is the shortest token the tokenizer is to keep. It is
	// loaded from the file but not passed to the search engine, which
	// always uses the tokenizer's default minimum of 2.
	MinTokenLength int `yaml:"min_token_length"`
}

// WorkingSetConfig configures per-session working-set defaults.
type WorkingSetConfig struct {
	// DefaultBudgetTokens is the budget a new session reports from Get
	// before any Update has set one; every Update sets the session's
	// budget from its own budgetTokens.
	DefaultBudgetTokens int `yaml:"default_budget_tokens"`

	// DefaultTTLMs is the eviction TTL applied to non-pinned entries.
	DefaultTTLMs int64 `yaml:"default_ttl_ms"`

	// MaxEntries caps the number of entries per session; 0 means
	// unbounded (budget enforcement alone governs eviction).
	MaxEntries int `yaml:"max_entries"`

	// DefaultTokenCost is used when a tool referenced by a working set
	// is missing from the catalog.
	DefaultTokenCost int `yaml:"default_token_cost"`
}

// ReducerConfig configures the result-reducer's trim/truncate limits.
type ReducerConfig struct {
	MaxTextBytes       int `yaml:"max_text_bytes"`
	MaxStructuredBytes int `yaml:"max_structured_bytes"`
	MaxStructuredKeys  int `yaml:"max_structured_keys"`
	MaxStructuredItems int `yaml:"max_structured_items"`
	MaxDepth           int `yaml:"max_depth"`
}

// Default returns the default configuration.
// These defaults are used as a base before loading the config file.
// They exist primarily to ensure all fields have sensible zero-values,
// not as a fallback - the config file is required.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultRoot := filepath.Join(homeDir, ".cache", "toolrouter")

	return &Config{
		Environment: Development,
		Paths: PathsConfig{
			Root:            defaultRoot,
			CatalogFixtures: filepath.Join(defaultRoot, "fixtures"),
			State:           filepath.Join(defaultRoot, "state"),
		},
		Transport: TransportConfig{
			Socket:       "",
			MaxBatchSize: 64,
		},
		Search: SearchConfig{
			K1: 1.2,
			B:  0.75,
			FieldWeights: map[string]float64{
				"name":        4.0,
				"title":       2.0,
				"synonyms":    2.5,
				"description": 1.8,
				"argNames":    1.4,
				"argDescs":    1.2,
				"tags":        1.2,
				"examples":    0.9,
				"serverId":    0.2,
			},
			ExactMatchBoost:  1.5,
			PrefixMatchBoost: 0.4,
			PopularityBoost:  0.05,
			MinScore:         0,
			MinTokenLength:   2,
		},
		WorkingSet: WorkingSetConfig{
			DefaultBudgetTokens: 8000,
			DefaultTTLMs:        15 * 60 * 1000,
			MaxEntries:          0,
			DefaultTokenCost:    120,
		},
		Reducer: ReducerConfig{
			MaxTextBytes:       12_000,
			MaxStructuredBytes: 24_000,
			MaxStructuredKeys:  200,
			MaxStructuredItems: 200,
			MaxDepth:           6,
		},
	}
}

// Load loads configuration from the TOOLROUTER_CONFIG environment variable.
//
// This is the only way to load configuration without an explicit path.
// There are no fallbacks or defaults - if TOOLROUTER_CONFIG is not set, this
// fails. This ensures deterministic, auditable configuration with no hidden
// overrides.
func Load() (*Config, error) {
	configPath := os.Getenv("TOOLROUTER_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("TOOLROUTER_CONFIG environment variable not set; " +
			"set it to the path of your toolrouter.yaml config file, or use --config flag")
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables do
// not override config values - this ensures deterministic, auditable
// configuration. The only expansion performed is ${HOME} and similar path
// variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, c)
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		if overrides == nil {
			overrides = &ConfigOverrides{
				Transport: &TransportConfig{MaxBatchSize: 256},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Paths != nil {
		if overrides.Paths.Root != "" {
			c.Paths.Root = overrides.Paths.Root
		}
		if overrides.Paths.CatalogFixtures != "" {
			c.Paths.CatalogFixtures = overrides.Paths.CatalogFixtures
		}
		if overrides.Paths.State != "" {
			c.Paths.State = overrides.Paths.State
		}
	}

	if overrides.Transport != nil {
		if overrides.Transport.Socket != "" {
			c.Transport.Socket = overrides.Transport.Socket
		}
		if overrides.Transport.MaxBatchSize != 0 {
			c.Transport.MaxBatchSize = overrides.Transport.MaxBatchSize
		}
	}

	if overrides.Search != nil {
		if overrides.Search.K1 != 0 {
			c.Search.K1 = overrides.Search.K1
		}
		if overrides.Search.B != 0 {
			c.Search.B = overrides.Search.B
		}
		for field, weight := range overrides.Search.FieldWeights {
			c.Search.FieldWeights[field] = weight
		}
		if overrides.Search.MinScore != 0 {
			c.Search.MinScore = overrides.Search.MinScore
		}
	}

	if overrides.WorkingSet != nil {
		if overrides.WorkingSet.DefaultBudgetTokens != 0 {
			c.WorkingSet.DefaultBudgetTokens = overrides.WorkingSet.DefaultBudgetTokens
		}
		if overrides.WorkingSet.DefaultTTLMs != 0 {
			c.WorkingSet.DefaultTTLMs = overrides.WorkingSet.DefaultTTLMs
		}
		if overrides.WorkingSet.MaxEntries != 0 {
			c.WorkingSet.MaxEntries = overrides.WorkingSet.MaxEntries
		}
		if overrides.WorkingSet.DefaultTokenCost != 0 {
			c.WorkingSet.DefaultTokenCost = overrides.WorkingSet.DefaultTokenCost
		}
	}

	if overrides.Reducer != nil {
		if overrides.Reducer.MaxTextBytes != 0 {
			c.Reducer.MaxTextBytes = overrides.Reducer.MaxTextBytes
		}
		if overrides.Reducer.MaxStructuredBytes != 0 {
			c.Reducer.MaxStructuredBytes = overrides.Reducer.MaxStructuredBytes
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"TOOLROUTER_ROOT": c.Paths.Root,
		"HOME":            os.Getenv("HOME"),
	}

	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["TOOLROUTER_ROOT"] = c.Paths.Root

	c.Paths.CatalogFixtures = expandVars(c.Paths.CatalogFixtures, vars)
	c.Paths.State = expandVars(c.Paths.State, vars)
	c.Transport.Socket = expandVars(c.Transport.Socket, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Paths.Root == "" {
		errs = append(errs, fmt.Errorf("paths.root is required"))
	}

	if c.Search.K1 <= 0 {
		errs = append(errs, fmt.Errorf("search.k1 must be positive"))
	}
	if c.Search.B < 0 || c.Search.B > 1 {
		errs = append(errs, fmt.Errorf("search.b must be in [0,1]"))
	}
	if len(c.Search.FieldWeights) == 0 {
		errs = append(errs, fmt.Errorf("search.field_weights must not be empty"))
	}

	if c.WorkingSet.DefaultBudgetTokens <= 0 {
		errs = append(errs, fmt.Errorf("working_set.default_budget_tokens must be positive"))
	}

	if c.Reducer.MaxTextBytes <= 0 {
		errs = append(errs, fmt.Errorf("reducer.max_text_bytes must be positive"))
	}
	if c.Reducer.MaxStructuredBytes <= 0 {
		errs = append(errs, fmt.Errorf("reducer.max_structured_bytes must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsurePaths creates all configured directories if they don't exist.
func (c *Config) EnsurePaths() error {
	paths := []string{c.Paths.Root, c.Paths.CatalogFixtures, c.Paths.State}

	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}

	return nil
}
