// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for chalkboard.
//
// CLI: Comprehensive help and examples for all commands
//
// Command: config [subcommand]
// Short:   View and modify configuration
//
// Subcommands:
//   show (default)      Display current configuration
//   get <key>           Get a single configuration value
//   set <key> <value>   Set a configuration value
//   reset               Reset to default configuration
//   path                Show configuration file path
//
// Examples:
//   chalkboard config                        Show current config (default)
//   chalkboard config get character
//   chalkboard config set character steve
//   chalkboard config set gemini.api_key YOUR_KEY
//   chalkboard config set gemini.model gemini-pro-latest
//   chalkboard config set gemini.max_turn_history 20
//   chalkboard config set assets.sounds_enabled false
//   chalkboard config reset                  Reset to defaults
//   chalkboard config path                   Show config file location
package cli

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chalkboard-tui/internal/config"
	"github.com/jeranaias/chalkboard-tui/internal/ui/styles"
)

// =============================================================================
// CONFIG STYLES
// =============================================================================

var (
	// Config title style
	configTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")). // Cyan
				MarginBottom(1)

	// Config section style
	configSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("255")). // White
				MarginTop(1)

	// Config key style
	configKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")). // Light gray
			Width(20)

	// Config value style
	configValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")) // Green

	// Config value masked (for secrets)
	configMaskedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("242")) // Dim

	// Success style
	configSuccessStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")).
				Bold(true)

	// Path style
	configPathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
)

// =============================================================================
// CONFIG WRAPPER FUNCTIONS
// =============================================================================

// Config is an alias to the main config type.
type Config = config.Config

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return config.Default()
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return ""
	}
	return path
}

// LoadConfig loads the configuration from the config file.
// Returns default config if file doesn't exist.
func LoadConfig() (*Config, error) {
	return config.Load()
}

// SaveConfig saves the configuration to the config file.
func SaveConfig(cfg *Config) error {
	return config.Save(cfg)
}

// =============================================================================
// HANDLE CONFIG
// =============================================================================

// HandleConfig handles the "config" command.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow()

	case "get":
		return handleConfigGet(args.ConfigKey)

	case "set":
		return handleConfigSet(args.ConfigKey, args.ConfigVal)

	case "reset":
		return handleConfigReset()

	case "path":
		return handleConfigPath()

	default:
		return NewCommandError("config", "dispatch",
			fmt.Sprintf("unknown subcommand %q", args.Subcommand), nil)
	}
}

// handleConfigShow displays the current configuration.
func handleConfigShow() error {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s (using defaults)\n", err)
		cfg = DefaultConfig()
	}

	separator := strings.Repeat("=", 41)
	fmt.Println()
	fmt.Println(configTitleStyle.Render("chalkboard Configuration"))
	fmt.Println(SeparatorStyle.Render(separator))
	fmt.Println()

	// General section
	fmt.Println(configSectionStyle.Render("[general]"))
	fmt.Printf("  %s%s\n",
		configKeyStyle.Render("character:"),
		configValueStyle.Render(cfg.Character))
	fmt.Println()

	// Gemini section
	fmt.Println(configSectionStyle.Render("[gemini]"))
	keyDisplay := maskAPIKey(cfg.Gemini.APIKey)
	fmt.Printf("  %s%s\n",
		configKeyStyle.Render("api_key:"),
		configMaskedStyle.Render(keyDisplay))
	fmt.Printf("  %s%s\n",
		configKeyStyle.Render("model:"),
		configValueStyle.Render(cfg.Gemini.Model))
	fmt.Printf("  %s%s\n",
		configKeyStyle.Render("max_turn_history:"),
		configValueStyle.Render(fmt.Sprintf("%d exchanges", cfg.Gemini.MaxTurnHistory)))
	fmt.Printf("  %s%s\n",
		configKeyStyle.Render("temperature:"),
		configValueStyle.Render(fmt.Sprintf("%.2f", cfg.Gemini.Temperature)))
	fmt.Printf("  %s%s\n",
		configKeyStyle.Render("top_p:"),
		configValueStyle.Render(fmt.Sprintf("%.2f", cfg.Gemini.TopP)))
	fmt.Printf("  %s%s\n",
		configKeyStyle.Render("top_k:"),
		configValueStyle.Render(fmt.Sprintf("%d", cfg.Gemini.TopK)))
	fmt.Println()

	// Assets section
	fmt.Println(configSectionStyle.Render("[assets]"))
	fmt.Printf("  %s%s\n",
		configKeyStyle.Render("sounds_dir:"),
		configValueStyle.Render(cfg.Assets.SoundsDir))
	fmt.Printf("  %s%s\n",
		configKeyStyle.Render("persona_dir:"),
		configValueStyle.Render(cfg.Assets.PersonaDir))
	soundsStr := "false"
	if cfg.Assets.SoundsEnabled {
		soundsStr = "true"
	}
	fmt.Printf("  %s%s\n",
		configKeyStyle.Render("sounds_enabled:"),
		configValueStyle.Render(soundsStr))
	fmt.Println()

	// UI section
	fmt.Println(configSectionStyle.Render("[ui]"))
	fmt.Printf("  %s%s\n",
		configKeyStyle.Render("theme:"),
		configValueStyle.Render(cfg.UI.Theme))
	timestampsStr := "false"
	if cfg.UI.ShowTimestamps {
		timestampsStr = "true"
	}
	fmt.Printf("  %s%s\n",
		configKeyStyle.Render("show_timestamps:"),
		configValueStyle.Render(timestampsStr))
	fmt.Println()

	// Config file path
	fmt.Println(SeparatorStyle.Render(strings.Repeat("-", 41)))
	fmt.Printf("Config file: %s\n", configPathStyle.Render(ConfigPath()))
	fmt.Println()

	return nil
}

// handleConfigGet prints a single configuration value.
func handleConfigGet(key string) error {
	if key == "" {
		return fmt.Errorf("no config key provided\nUsage: chalkboard config get <key>")
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s (using defaults)\n", err)
		cfg = DefaultConfig()
	}

	key = strings.ToLower(key)
	value, err := cfg.Get(key)
	if err != nil {
		return fmt.Errorf("unknown config key: %s\n\nValid keys:\n  %s",
			key, strings.Join(config.GetAllKeys(), "\n  "))
	}

	fmt.Println(maskIfSecret(key, fmt.Sprintf("%v", value)))
	return nil
}

// handleConfigSet sets a configuration value using dot notation.
func handleConfigSet(key, value string) error {
	if key == "" {
		return fmt.Errorf("no config key provided\nUsage: chalkboard config set <key> <value>")
	}
	if value == "" {
		return fmt.Errorf("no config value provided\nUsage: chalkboard config set %s <value>", key)
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s (using defaults)\n", err)
		cfg = DefaultConfig()
	}

	key = strings.ToLower(key)
	if err := cfg.Set(key, value); err != nil {
		return fmt.Errorf("unknown config key: %s\n\nValid keys:\n  %s",
			key, strings.Join(config.GetAllKeys(), "\n  "))
	}

	// Validate before saving so a bad value never lands on disk
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration value: %w", err)
	}
	if err := SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s %s = %s\n",
		configSuccessStyle.Render("[OK]"),
		key,
		maskIfSecret(key, value))
	return nil
}

// handleConfigReset resets configuration to defaults.
func handleConfigReset() error {
	cfg := DefaultConfig()

	if err := SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s Configuration reset to defaults\n", configSuccessStyle.Render("[OK]"))
	fmt.Printf("Config file: %s\n", configPathStyle.Render(ConfigPath()))

	return nil
}

// handleConfigPath shows the config file path.
func handleConfigPath() error {
	path := ConfigPath()
	fmt.Println(path)

	// Also show if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, styles.RenderInfo("file does not exist - will be created on first use"))
	}

	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// maskAPIKey masks an API key for display using a SHA-256 fingerprint.
// This prevents key prefix exposure in terminal scrollback and logs.
func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) < 8 {
		return "[invalid key]"
	}
	// Use SHA-256 hash to create a secure fingerprint
	hash := sha256.Sum256([]byte(key))
	// Show first 8 chars of hash as fingerprint (4 bytes = 8 hex chars)
	return fmt.Sprintf("sha256:%x...", hash[:4])
}

// maskIfSecret masks the value if the key is a secret field.
func maskIfSecret(key, value string) string {
	secretKeys := []string{"key", "secret", "token", "password"}
	keyLower := strings.ToLower(key)
	for _, s := range secretKeys {
		if strings.Contains(keyLower, s) {
			return maskAPIKey(value)
		}
	}
	return value
}
