// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Development {
		t.Errorf("expected environment=development, got %s", cfg.Environment)
	}

	if cfg.Search.K1 != 1.2 {
		t.Errorf("expected search.k1=1.2, got %v", cfg.Search.K1)
	}

	if cfg.WorkingSet.DefaultBudgetTokens != 8000 {
		t.Errorf("expected working_set.default_budget_tokens=8000, got %d", cfg.WorkingSet.DefaultBudgetTokens)
	}

	if cfg.Reducer.MaxTextBytes != 12_000 {
		t.Errorf("expected reducer.max_text_bytes=12000, got %d", cfg.Reducer.MaxTextBytes)
	}
}

func TestLoad_RequiresToolrouterConfig(t *testing.T) {
	origConfig := os.Getenv("TOOLROUTER_CONFIG")
	defer os.Setenv("TOOLROUTER_CONFIG", origConfig)

	os.Unsetenv("TOOLROUTER_CONFIG")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when TOOLROUTER_CONFIG not set, got nil")
	}

	expectedMsg := "TOOLROUTER_CONFIG environment variable not set"
	if err.Error()[:len(expectedMsg)] != expectedMsg {
		t.Errorf("expected error message to start with %q, got %q", expectedMsg, err.Error())
	}
}

func TestLoad_WithToolrouterConfig(t *testing.T) {
	origConfig := os.Getenv("TOOLROUTER_CONFIG")
	defer os.Setenv("TOOLROUTER_CONFIG", origConfig)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "toolrouter.yaml")

	configContent := `
environment: staging
paths:
  root: /test/root
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	os.Setenv("TOOLROUTER_CONFIG", configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Environment != Staging {
		t.Errorf("expected environment=staging, got %s", cfg.Environment)
	}

	if cfg.Paths.Root != "/test/root" {
		t.Errorf("expected root=/test/root, got %s", cfg.Paths.Root)
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "toolrouter.yaml")

	configContent := `
environment: staging

paths:
  root: /custom/root

search:
  k1: 1.5
  min_score: 0.1

working_set:
  default_budget_tokens: 5000
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Environment != Staging {
		t.Errorf("expected environment=staging, got %s", cfg.Environment)
	}

	if cfg.Paths.Root != "/custom/root" {
		t.Errorf("expected root=/custom/root, got %s", cfg.Paths.Root)
	}

	if cfg.Search.K1 != 1.5 {
		t.Errorf("expected search.k1=1.5, got %v", cfg.Search.K1)
	}

	if cfg.WorkingSet.DefaultBudgetTokens != 5000 {
		t.Errorf("expected working_set.default_budget_tokens=5000, got %d", cfg.WorkingSet.DefaultBudgetTokens)
	}

	// Field weights should still carry the built-in defaults; the file
	// only overrides k1 and min_score.
	if cfg.Search.FieldWeights["name"] != 4.0 {
		t.Errorf("expected default name weight=4.0, got %v", cfg.Search.FieldWeights["name"])
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "toolrouter.yaml")

	configContent := `
environment: production

paths:
  root: /default/root

transport:
  max_batch_size: 64
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	// Production without an explicit "production:" section gets the
	// built-in larger batch-size override.
	if cfg.Transport.MaxBatchSize != 256 {
		t.Errorf("expected max_batch_size=256 from production default override, got %d", cfg.Transport.MaxBatchSize)
	}
}

func TestEnvVarsDoNotOverride(t *testing.T) {
	origRoot := os.Getenv("TOOLROUTER_ROOT")
	origEnv := os.Getenv("TOOLROUTER_ENVIRONMENT")
	defer func() {
		os.Setenv("TOOLROUTER_ROOT", origRoot)
		os.Setenv("TOOLROUTER_ENVIRONMENT", origEnv)
	}()

	os.Setenv("TOOLROUTER_ROOT", "/env/root")
	os.Setenv("TOOLROUTER_ENVIRONMENT", "staging")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "toolrouter.yaml")

	configContent := `
environment: development
paths:
  root: /file/root
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Environment != Development {
		t.Errorf("expected environment=development from file, got %s (env vars should not override)", cfg.Environment)
	}

	if cfg.Paths.Root != "/file/root" {
		t.Errorf("expected root=/file/root from file, got %s (env vars should not override)", cfg.Paths.Root)
	}
}

func TestExpandVars(t *testing.T) {
	tests := []struct {
		input    string
		vars     map[string]string
		expected string
	}{
		{
			input:    "${HOME}/toolrouter",
			vars:     map[string]string{"HOME": "/home/user"},
			expected: "/home/user/toolrouter",
		},
		{
			input:    "${MISSING:-default}",
			vars:     map[string]string{},
			expected: "default",
		},
		{
			input:    "${PRESENT:-default}",
			vars:     map[string]string{"PRESENT": "value"},
			expected: "value",
		},
		{
			input:    "${A}/${B}",
			vars:     map[string]string{"A": "first", "B": "second"},
			expected: "first/second",
		},
		{
			input:    "no variables here",
			vars:     map[string]string{},
			expected: "no variables here",
		},
	}

	for _, tt := range tests {
		result := expandVars(tt.input, tt.vars)
		if result != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "invalid environment",
			modify: func(c *Config) {
				c.Environment = "invalid"
			},
			wantErr: true,
		},
		{
			name: "empty root path",
			modify: func(c *Config) {
				c.Paths.Root = ""
			},
			wantErr: true,
		},
		{
			name: "non-positive k1",
			modify: func(c *Config) {
				c.Search.K1 = 0
			},
			wantErr: true,
		},
		{
			name: "b out of range",
			modify: func(c *Config) {
				c.Search.B = 1.5
			},
			wantErr: true,
		},
		{
			name: "empty field weights",
			modify: func(c *Config) {
				c.Search.FieldWeights = nil
			},
			wantErr: true,
		},
		{
			name: "non-positive budget",
			modify: func(c *Config) {
				c.WorkingSet.DefaultBudgetTokens = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnsurePaths(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := Default()
	cfg.Paths.Root = filepath.Join(tmpDir, "toolrouter")
	cfg.Paths.CatalogFixtures = filepath.Join(cfg.Paths.Root, "fixtures")
	cfg.Paths.State = filepath.Join(cfg.Paths.Root, "state")

	if err := cfg.EnsurePaths(); err != nil {
		t.Fatalf("EnsurePaths failed: %v", err)
	}

	for _, path := range []string{cfg.Paths.Root, cfg.Paths.CatalogFixtures, cfg.Paths.State} {
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("path %s not created: %v", path, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("path %s is not a directory", path)
		}
	}
}
