// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// setupTestConfig sets CPICTL_CFG to point to a test config file.
// Returns cleanup function that should be deferred.
func setupTestConfig(t *testing.T, testdataFile string) (cleanup func()) {
	t.Helper()

	configPath := filepath.Join("testdata", testdataFile)
	absPath, err := filepath.Abs(configPath)
	assert.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("CPICTL_CFG", absPath)

	// Reset the global Config to force reload
	Config = Type{}

	return func() {
		Config = Type{}
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple string values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, "United Kingdom", cfg.Data["country"])
				assert.Equal(t, "./data", cfg.Data["data_dir"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				get, ok := cfg.Data["get"].(map[string]interface{})
				assert.True(t, ok, "get should be a map")
				assert.Equal(t, "France", get["country"])
				assert.Equal(t, "PCPI_IX", get["indicator"])
			},
		},
		{
			name:     "mixed types",
			testFile: "mixed-types.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Equal(t, "cpi-project", cfg.Data["name"])
				assert.Equal(t, 1, cfg.Data["version"])
				assert.Equal(t, true, cfg.Data["enabled"])
				assert.Equal(t, 30.5, cfg.Data["timeout"])
				countries, ok := cfg.Data["countries"].([]interface{})
				assert.True(t, ok)
				assert.Len(t, countries, 2)
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				// Empty YAML unmarshals to nil map, which is acceptable
				assert.NotEmpty(t, cfg.Source, "should have a source path")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			cfg, err := Load()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_Namespace(t *testing.T) {
	cleanup := setupTestConfig(t, "namespace.yaml")
	defer cleanup()

	cfg, err := Load("warm")
	assert.NoError(t, err)
	assert.Equal(t, "warm", cfg.Namespace)

	val, err := GetString("setting")
	assert.NoError(t, err)
	assert.Equal(t, "warm-value", val)
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("CPICTL_CFG", "/nonexistent/path/cpictl.yaml")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_CPICTL_CFG_IsDirectory(t *testing.T) {
	t.Setenv("CPICTL_CFG", "testdata")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestLoad_StandardLocations(t *testing.T) {
	abs, err := filepath.Abs("testdata")
	assert.NoError(t, err)

	t.Setenv("CPICTL_CFG", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("APPDATA", "")
	t.Setenv("HOME", t.TempDir())
	Config = Type{}

	_, err = Load()
	assert.Error(t, err)

	// No cpictl.yaml in testdata either, so still not found.
	t.Setenv("XDG_CONFIG_HOME", abs)
	_, err = Load()
	assert.Error(t, err)
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{name: "simple string value", testFile: "simple.yaml", key: "country", want: "United Kingdom"},
		{name: "nested string value", testFile: "nested.yaml", key: "s3.region", want: "eu-west-2"},
		{
			name:         "missing key with default",
			testFile:     "simple.yaml",
			key:          "missing",
			defaultValue: []string{"default-value"},
			want:         "default-value",
		},
		{name: "missing key without default", testFile: "simple.yaml", key: "missing", wantErr: true},
		{name: "non-string value", testFile: "mixed-types.yaml", key: "version", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			// Force load
			_, _ = Load()

			got, err := GetString(tt.key, tt.defaultValue...)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []int
		want         int
		wantErr      bool
	}{
		{name: "int value", testFile: "mixed-types.yaml", key: "version", want: 1},
		{name: "float value converted to int", testFile: "mixed-types.yaml", key: "timeout", want: 30},
		{name: "nested int value", testFile: "nested.yaml", key: "s3.max_retries", want: 5},
		{
			name:         "missing key with default",
			testFile:     "simple.yaml",
			key:          "missing",
			defaultValue: []int{60},
			want:         60,
		},
		{name: "missing key without default", testFile: "simple.yaml", key: "missing", wantErr: true},
		{name: "non-int value", testFile: "simple.yaml", key: "country", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			_, _ = Load()

			got, err := GetInt(tt.key, tt.defaultValue...)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetStringSlice(t *testing.T) {
	cleanup := setupTestConfig(t, "mixed-types.yaml")
	defer cleanup()

	got, err := GetStringSlice("countries")
	assert.NoError(t, err)
	assert.Equal(t, []string{"United Kingdom", "France"}, got)

	got, err = GetStringSlice("name")
	assert.NoError(t, err)
	assert.Equal(t, []string{"cpi-project"}, got)

	_, err = GetStringSlice("version")
	assert.Error(t, err)

	_, err = GetStringSlice("missing")
	assert.Error(t, err)
}

func TestConfig_GetWithNamespace(t *testing.T) {
	cleanup := setupTestConfig(t, "namespace.yaml")
	defer cleanup()

	_, err := Load()
	assert.NoError(t, err)

	Config.Namespace = "get"

	// Should find namespaced value first
	val, err := Config.get("setting")
	assert.NoError(t, err)
	assert.Equal(t, "get-value", val)

	val, err = Config.get("specific")
	assert.NoError(t, err)
	assert.Equal(t, "get-specific", val)

	// Change namespace, falls back to the global value where missing.
	Config.Namespace = "warm"
	val, err = Config.get("setting")
	assert.NoError(t, err)
	assert.Equal(t, "warm-value", val)

	_, err = Config.get("specific")
	assert.Error(t, err)

	Config.Namespace = "purge"
	val, err = Config.get("setting")
	assert.NoError(t, err)
	assert.Equal(t, "global-value", val)
}

func TestConfig_GetNestedPath(t *testing.T) {
	cleanup := setupTestConfig(t, "deep-nested.yaml")
	defer cleanup()

	_, err := Load()
	assert.NoError(t, err)

	val, err := Config.get("level1.level2.level3.value")
	assert.NoError(t, err)
	assert.Equal(t, "deep-value", val)
}

func TestConfig_LazyLoad(t *testing.T) {
	cleanup := setupTestConfig(t, "simple.yaml")
	defer cleanup()

	// Don't explicitly call Load(), just use GetString
	val, err := GetString("country")
	assert.NoError(t, err)
	assert.Equal(t, "United Kingdom", val)
	assert.NotEmpty(t, Config.Source, "Config should be loaded")
}
