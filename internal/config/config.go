// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// chalkboard.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.chalkboard/config.toml
//   - ~/.chalkboard/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/chalkboard-tui/internal/persona"
	"github.com/jeranaias/chalkboard-tui/internal/util"
)

// customCharacterID is the shape of a loadable custom persona id: the
// basename of a .txt file under the persona directory.
var customCharacterID = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// characterResolvable reports whether id names a built-in character or a
// custom persona file under personaDir.
func characterResolvable(id, personaDir string) bool {
	if persona.IsBuiltin(id) {
		return true
	}
	if !customCharacterID.MatchString(id) {
		return false
	}
	_, err := os.Stat(filepath.Join(personaDir, id+".txt"))
	return err == nil
}

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete chalkboard configuration.
type Config struct {
	// General settings
	Version   string `toml:"version" json:"version"`
	Character string `toml:"character" json:"character"`

	// Gemini generation configuration
	Gemini GeminiConfig `toml:"gemini" json:"gemini"`

	// Assets configuration (sounds, custom personas)
	Assets AssetsConfig `toml:"assets" json:"assets"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// GeminiConfig contains the remote generation settings.
type GeminiConfig struct {
	// APIKey is the Gemini API key
	APIKey string `toml:"api_key" json:"api_key"`
	// Model is the Gemini model identifier
	Model string `toml:"model" json:"model"`
	// MaxTurnHistory is the number of retained exchanges; the window holds
	// twice this many turns (a prompt and a reply per exchange)
	MaxTurnHistory int `toml:"max_turn_history" json:"max_turn_history"`
	// Temperature controls sampling randomness (0.0-2.0)
	Temperature float64 `toml:"temperature" json:"temperature"`
	// TopP is the nucleus sampling cutoff (0.0-1.0)
	TopP float64 `toml:"top_p" json:"top_p"`
	// TopK is the top-k sampling cutoff
	TopK int `toml:"top_k" json:"top_k"`
}

// AssetsConfig contains filesystem locations for sounds and personas.
type AssetsConfig struct {
	// SoundsDir is the root directory holding sound assets. Character
	// subdirectories take precedence over files at the root.
	SoundsDir string `toml:"sounds_dir" json:"sounds_dir"`
	// PersonaDir is the directory scanned for custom persona .txt files
	PersonaDir string `toml:"persona_dir" json:"persona_dir"`
	// SoundsEnabled toggles all sound playback
	SoundsEnabled bool `toml:"sounds_enabled" json:"sounds_enabled"`
}

// UIConfig contains user interface configuration.
type UIConfig struct {
	// Theme is the color theme: "dark", "light", or "auto"
	Theme string `toml:"theme" json:"theme"`
	// ShowTimestamps displays a timestamp next to each turn
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
	// CompactMode reduces padding in the TUI
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a configuration populated with default values.
func Default() *Config {
	return &Config{
		Version:   "1",
		Character: "baldi",
		Gemini: GeminiConfig{
			Model:          "gemini-flash-latest",
			MaxTurnHistory: 10,
			Temperature:    0.8,
			TopP:           0.95,
			TopK:           40,
		},
		Assets: AssetsConfig{
			SoundsDir:     defaultAssetsPath("sounds"),
			PersonaDir:    defaultAssetsPath("personas"),
			SoundsEnabled: true,
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// defaultAssetsPath builds a path under the config directory, falling back
// to a relative path when the home directory is unknown.
func defaultAssetsPath(sub string) string {
	dir, err := ConfigDir()
	if err != nil {
		return sub
	}
	return filepath.Join(dir, sub)
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the chalkboard configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".chalkboard"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// ensureSecurePermissions checks and fixes permissions on config files.
// SECURITY: Config files should be 0600 (owner read/write only) to protect API keys.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err // File doesn't exist or not accessible
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}

	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
// CONFIG: Comprehensive validation ensures safe configuration
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	// Try TOML first
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	// Try JSON as fallback
	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	// Defaults only
	cfg, err = finishLoad(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// finishLoad applies overrides, migration, defaults, and validation.
func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := cfg.Migrate(); err != nil {
		return nil, fmt.Errorf("config migration failed: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
// SECURITY: Checks and fixes file permissions on load.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		// Log warning but don't fail - permissions might not be fixable on all systems
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	_, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
// SECURITY: Checks and fixes file permissions on load.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		// Default to TOML
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finishLoad(cfg)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	// SECURITY: Ensure permissions are correct even if file already existed
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to set config file permissions: %w", err)
	}

	fmt.Fprintln(file, "# chalkboard configuration file")
	fmt.Fprintln(file, "# Generated by chalkboard - edit with care")
	fmt.Fprintln(file, "#")
	fmt.Fprintln(file, "# Documentation: https://github.com/jeranaias/chalkboard-tui")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// SaveJSON saves the configuration to a JSON file.
// SECURITY: Creates config files with 0600 permissions (owner read/write only).
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFileWithDir(path, data, 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Character == "" {
		errs = append(errs, ValidationError{
			Field:   "character",
			Message: "character id cannot be empty",
		})
	} else if !characterResolvable(c.Character, c.Assets.PersonaDir) {
		errs = append(errs, ValidationError{
			Field:   "character",
			Message: fmt.Sprintf("unknown character id %q (not a built-in, no custom persona file)", c.Character),
		})
	}

	if c.Gemini.Model == "" {
		errs = append(errs, ValidationError{
			Field:   "gemini.model",
			Message: "model cannot be empty",
		})
	}

	// The window must hold at least one exchange; a huge window just burns
	// tokens, so cap it.
	if c.Gemini.MaxTurnHistory < 1 || c.Gemini.MaxTurnHistory > 100 {
		errs = append(errs, ValidationError{
			Field:   "gemini.max_turn_history",
			Message: fmt.Sprintf("must be 1-100, got %d", c.Gemini.MaxTurnHistory),
		})
	}

	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		errs = append(errs, ValidationError{
			Field:   "gemini.temperature",
			Message: fmt.Sprintf("must be between 0.0 and 2.0, got %g", c.Gemini.Temperature),
		})
	}

	if c.Gemini.TopP < 0 || c.Gemini.TopP > 1 {
		errs = append(errs, ValidationError{
			Field:   "gemini.top_p",
			Message: fmt.Sprintf("must be between 0.0 and 1.0, got %g", c.Gemini.TopP),
		})
	}

	if c.Gemini.TopK < 1 || c.Gemini.TopK > 1000 {
		errs = append(errs, ValidationError{
			Field:   "gemini.top_k",
			Message: fmt.Sprintf("must be 1-1000, got %d", c.Gemini.TopK),
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value configuration fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Character == "" {
		c.Character = defaults.Character
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = defaults.Gemini.Model
	}
	if c.Gemini.MaxTurnHistory == 0 {
		c.Gemini.MaxTurnHistory = defaults.Gemini.MaxTurnHistory
	}
	if c.Gemini.Temperature == 0 {
		c.Gemini.Temperature = defaults.Gemini.Temperature
	}
	if c.Gemini.TopP == 0 {
		c.Gemini.TopP = defaults.Gemini.TopP
	}
	if c.Gemini.TopK == 0 {
		c.Gemini.TopK = defaults.Gemini.TopK
	}

	if c.Assets.SoundsDir == "" {
		c.Assets.SoundsDir = defaults.Assets.SoundsDir
	}
	if c.Assets.PersonaDir == "" {
		c.Assets.PersonaDir = defaults.Assets.PersonaDir
	}

	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// Migrate handles migration from old configuration formats to new ones.
func (c *Config) Migrate() error {
	// Character ids are lowercase on disk and in slash commands.
	c.Character = strings.ToLower(strings.TrimSpace(c.Character))

	// Old configs used the short character id for LeBron.
	if c.Character == "lebron" {
		c.Character = "lebron_james"
	}

	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CHALKBOARD_API_KEY: overrides gemini.api_key
//   - GEMINI_API_KEY: fallback for gemini.api_key
//   - CHALKBOARD_MODEL: overrides gemini.model
//   - CHALKBOARD_CHARACTER: overrides character
//   - CHALKBOARD_MAX_TURN_HISTORY: overrides gemini.max_turn_history
//   - CHALKBOARD_SOUNDS_DIR: overrides assets.sounds_dir
//   - CHALKBOARD_PERSONA_DIR: overrides assets.persona_dir
//   - CHALKBOARD_NO_SOUND: set to "1" or "true" to disable sound playback
func (c *Config) ApplyEnvOverrides() {
	// CHALKBOARD_API_KEY takes precedence over GEMINI_API_KEY
	if key := os.Getenv("CHALKBOARD_API_KEY"); key != "" {
		c.Gemini.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Gemini.APIKey = key
	}

	if model := os.Getenv("CHALKBOARD_MODEL"); model != "" {
		c.Gemini.Model = model
	}

	if character := os.Getenv("CHALKBOARD_CHARACTER"); character != "" {
		c.Character = character
	}

	if hist := os.Getenv("CHALKBOARD_MAX_TURN_HISTORY"); hist != "" {
		if n, err := strconv.Atoi(hist); err == nil {
			c.Gemini.MaxTurnHistory = n
		}
	}

	if dir := os.Getenv("CHALKBOARD_SOUNDS_DIR"); dir != "" {
		c.Assets.SoundsDir = dir
	}

	if dir := os.Getenv("CHALKBOARD_PERSONA_DIR"); dir != "" {
		c.Assets.PersonaDir = dir
	}

	if noSound := os.Getenv("CHALKBOARD_NO_SOUND"); noSound != "" {
		if noSound == "1" || strings.ToLower(noSound) == "true" {
			c.Assets.SoundsEnabled = false
		}
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "gemini.model").
func (c *Config) Get(key string) (interface{}, error) {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return nil, errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})

		if !field.IsValid() {
			return nil, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			return field.Interface(), nil
		}

		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return nil, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return nil, fmt.Errorf("invalid key: %s", key)
}

// Set sets a configuration value using dot notation (e.g., "gemini.model").
func (c *Config) Set(key string, value interface{}) error {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})

		if !field.IsValid() {
			return fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			if !field.CanSet() {
				return fmt.Errorf("cannot set field: %s", key)
			}
			return setFieldValue(field, value)
		}

		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}

	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	// Handle string input with type conversion
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			boolVal := strVal == "1" || strings.ToLower(strVal) == "true" || strings.ToLower(strVal) == "yes"
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}

	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"character",
		"gemini.api_key",
		"gemini.model",
		"gemini.max_turn_history",
		"gemini.temperature",
		"gemini.top_p",
		"gemini.top_k",
		"assets.sounds_dir",
		"assets.persona_dir",
		"assets.sounds_enabled",
		"ui.theme",
		"ui.show_timestamps",
		"ui.compact_mode",
	}
}

// Merge merges another config into this one, overwriting only non-zero values.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Version != "" {
		c.Version = other.Version
	}
	if other.Character != "" {
		c.Character = other.Character
	}

	if other.Gemini.APIKey != "" {
		c.Gemini.APIKey = other.Gemini.APIKey
	}
	if other.Gemini.Model != "" {
		c.Gemini.Model = other.Gemini.Model
	}
	if other.Gemini.MaxTurnHistory != 0 {
		c.Gemini.MaxTurnHistory = other.Gemini.MaxTurnHistory
	}
	if other.Gemini.Temperature != 0 {
		c.Gemini.Temperature = other.Gemini.Temperature
	}
	if other.Gemini.TopP != 0 {
		c.Gemini.TopP = other.Gemini.TopP
	}
	if other.Gemini.TopK != 0 {
		c.Gemini.TopK = other.Gemini.TopK
	}

	if other.Assets.SoundsDir != "" {
		c.Assets.SoundsDir = other.Assets.SoundsDir
	}
	if other.Assets.PersonaDir != "" {
		c.Assets.PersonaDir = other.Assets.PersonaDir
	}

	if other.UI.Theme != "" {
		c.UI.Theme = other.UI.Theme
	}
	if other.UI.ShowTimestamps {
		c.UI.ShowTimestamps = true
	}
	if other.UI.CompactMode {
		c.UI.CompactMode = true
	}
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a string representation of the config for debugging.
// SECURITY: Redacts the API key to prevent accidental exposure in logs,
// error messages, or debug output.
func (c *Config) String() string {
	safe := c.Clone()

	if safe.Gemini.APIKey != "" {
		safe.Gemini.APIKey = "[REDACTED]"
	}

	data, _ := json.MarshalIndent(safe, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			// Log but don't fail - use defaults
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
