// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// =============================================================================
// DEFAULTS AND VALIDATION
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Character != "baldi" {
		t.Errorf("default character = %q", cfg.Character)
	}
	if cfg.Gemini.Model != "gemini-flash-latest" {
		t.Errorf("default model = %q", cfg.Gemini.Model)
	}
	if cfg.Gemini.MaxTurnHistory != 10 {
		t.Errorf("default max_turn_history = %d", cfg.Gemini.MaxTurnHistory)
	}
	if cfg.Gemini.Temperature != 0.8 || cfg.Gemini.TopP != 0.95 || cfg.Gemini.TopK != 40 {
		t.Errorf("unexpected sampling defaults: %+v", cfg.Gemini)
	}
	if !cfg.Assets.SoundsEnabled {
		t.Error("sounds should be enabled by default")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty character", func(c *Config) { c.Character = "" }, "character"},
		{"empty model", func(c *Config) { c.Gemini.Model = "" }, "gemini.model"},
		{"zero history", func(c *Config) { c.Gemini.MaxTurnHistory = 0 }, "gemini.max_turn_history"},
		{"huge history", func(c *Config) { c.Gemini.MaxTurnHistory = 500 }, "gemini.max_turn_history"},
		{"negative temperature", func(c *Config) { c.Gemini.Temperature = -1 }, "gemini.temperature"},
		{"temperature too high", func(c *Config) { c.Gemini.Temperature = 3 }, "gemini.temperature"},
		{"top_p out of range", func(c *Config) { c.Gemini.TopP = 1.5 }, "gemini.top_p"},
		{"top_k zero", func(c *Config) { c.Gemini.TopK = 0 }, "gemini.top_k"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("error should name field %s: %v", tc.field, err)
			}
		})
	}
}

func TestSetDefaults_FillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	if cfg.Character != "baldi" {
		t.Errorf("character = %q", cfg.Character)
	}
	if cfg.Gemini.MaxTurnHistory != 10 {
		t.Errorf("max_turn_history = %d", cfg.Gemini.MaxTurnHistory)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("theme = %q", cfg.UI.Theme)
	}
}

func TestMigrate_NormalizesCharacter(t *testing.T) {
	cfg := Default()
	cfg.Character = "  LeBron  "
	if err := cfg.Migrate(); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	if cfg.Character != "lebron_james" {
		t.Errorf("migrated character = %q", cfg.Character)
	}
}

// =============================================================================
// LOAD / SAVE ROUND TRIPS
// =============================================================================

func TestLoadFromPath_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
character = "steve"

[gemini]
model = "gemini-pro-latest"
max_turn_history = 5
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.Character != "steve" {
		t.Errorf("character = %q", cfg.Character)
	}
	if cfg.Gemini.Model != "gemini-pro-latest" {
		t.Errorf("model = %q", cfg.Gemini.Model)
	}
	if cfg.Gemini.MaxTurnHistory != 5 {
		t.Errorf("max_turn_history = %d", cfg.Gemini.MaxTurnHistory)
	}
	// Unspecified fields fall back to defaults.
	if cfg.Gemini.Temperature != 0.8 {
		t.Errorf("temperature should default, got %g", cfg.Gemini.Temperature)
	}
}

func TestLoadFromPath_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"character":"villager","gemini":{"top_k":64}}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.Character != "villager" {
		t.Errorf("character = %q", cfg.Character)
	}
	if cfg.Gemini.TopK != 64 {
		t.Errorf("top_k = %d", cfg.Gemini.TopK)
	}
}

func TestLoadFromPath_InvalidConfigRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[gemini]
temperature = 9.0
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected invalid config to be rejected")
	}
}

func TestLoadTOML_FixesInsecurePermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`character = "baldi"`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("permissions not tightened: %o", info.Mode().Perm())
	}
}

func TestSaveJSON_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := Default()
	cfg.Character = "lebron_james"
	cfg.Gemini.APIKey = "secret"
	if err := SaveJSON(cfg, path); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}

	loaded := Default()
	if err := LoadJSON(loaded, path); err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if loaded.Character != "lebron_james" {
		t.Errorf("character = %q", loaded.Character)
	}
	if loaded.Gemini.APIKey != "secret" {
		t.Errorf("api key did not round-trip")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file permissions = %o, want 0600", info.Mode().Perm())
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("CHALKBOARD_API_KEY", "env-key")
	t.Setenv("CHALKBOARD_MODEL", "env-model")
	t.Setenv("CHALKBOARD_CHARACTER", "steve")
	t.Setenv("CHALKBOARD_MAX_TURN_HISTORY", "7")
	t.Setenv("CHALKBOARD_NO_SOUND", "1")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Gemini.APIKey != "env-key" {
		t.Errorf("api key = %q", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.Model != "env-model" {
		t.Errorf("model = %q", cfg.Gemini.Model)
	}
	if cfg.Character != "steve" {
		t.Errorf("character = %q", cfg.Character)
	}
	if cfg.Gemini.MaxTurnHistory != 7 {
		t.Errorf("max_turn_history = %d", cfg.Gemini.MaxTurnHistory)
	}
	if cfg.Assets.SoundsEnabled {
		t.Error("CHALKBOARD_NO_SOUND should disable sounds")
	}
}

func TestApplyEnvOverrides_GeminiKeyFallback(t *testing.T) {
	t.Setenv("CHALKBOARD_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "fallback-key")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Gemini.APIKey != "fallback-key" {
		t.Errorf("api key = %q", cfg.Gemini.APIKey)
	}
}

// =============================================================================
// DOT NOTATION GET/SET
// =============================================================================

func TestGetSet_DotNotation(t *testing.T) {
	cfg := Default()

	val, err := cfg.Get("gemini.model")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != "gemini-flash-latest" {
		t.Errorf("Get(gemini.model) = %v", val)
	}

	if err := cfg.Set("gemini.max_turn_history", "25"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if cfg.Gemini.MaxTurnHistory != 25 {
		t.Errorf("max_turn_history = %d", cfg.Gemini.MaxTurnHistory)
	}

	if err := cfg.Set("character", "villager"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if cfg.Character != "villager" {
		t.Errorf("character = %q", cfg.Character)
	}

	if _, err := cfg.Get("no.such.key"); err == nil {
		t.Error("expected error for unknown key")
	}
	if err := cfg.Set("gemini.nope", "x"); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestString_RedactsAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Gemini.APIKey = "super-secret"

	out := cfg.String()
	if strings.Contains(out, "super-secret") {
		t.Error("String() must not expose the API key")
	}
	if !strings.Contains(out, "[REDACTED]") {
		t.Error("String() should mark the key as redacted")
	}
}

// =============================================================================
// GLOBAL SINGLETON
// =============================================================================

// TestConfig_ConcurrentAccess tests that Global(), SetGlobal(), and ReloadGlobal()
// can be safely called concurrently without race conditions.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup

	// 50 writers using SetGlobal, 50 readers using Global
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			c := Default()
			c.Character = "steve"
			SetGlobal(c)
		}()

		go func() {
			defer wg.Done()
			cfg := Global()
			if cfg == nil {
				t.Error("Global() returned nil")
			}
		}()
	}

	wg.Wait()
}

// TestConfig_GlobalInitialization tests that Global() properly initializes
// the config on first access.
func TestConfig_GlobalInitialization(t *testing.T) {
	ResetGlobalForTesting()

	cfg := Global()
	if cfg == nil {
		t.Fatal("Global() returned nil")
	}
	if cfg.Gemini.Model == "" {
		t.Error("model should not be empty after initialization")
	}
}

// TestConfig_GlobalFallsBackOnInvalidLoad tests that a failed Load leaves
// callers with usable defaults instead of a nil config.
func TestConfig_GlobalFallsBackOnInvalidLoad(t *testing.T) {
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	// A rejected env override makes Load fail validation.
	t.Setenv("CHALKBOARD_MAX_TURN_HISTORY", "-5")

	cfg := Global()
	if cfg == nil {
		t.Fatal("Global() must never return nil")
	}
	if cfg.Gemini.MaxTurnHistory != Default().Gemini.MaxTurnHistory {
		t.Errorf("fallback should carry defaults, got history window %d", cfg.Gemini.MaxTurnHistory)
	}
}

// TestConfig_SetGlobalOverwrites tests that SetGlobal properly overwrites
// the existing global config.
func TestConfig_SetGlobalOverwrites(t *testing.T) {
	ResetGlobalForTesting()

	_ = Global()

	customCfg := Default()
	customCfg.Character = "villager"
	SetGlobal(customCfg)

	if Global().Character != "villager" {
		t.Error("SetGlobal did not overwrite global config")
	}
}
