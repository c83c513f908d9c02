// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// setup.go - First-run wizard and setup commands for chalkboard.
//
// CLI: Comprehensive help and examples for all commands
//
// Command: setup
// Short:   First-run setup wizard
//
// Examples:
//   chalkboard setup              Run interactive setup wizard
//   chalkboard setup quick        Minimal setup (API key only)
//   chalkboard setup key          Update the API key only
//
// The setup wizard walks through:
//   1. Gemini API key (hidden input)
//   2. Teacher character selection
//   3. Model selection
//   4. Sound effects on/off
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/jeranaias/chalkboard-tui/internal/config"
	"github.com/jeranaias/chalkboard-tui/internal/persona"
	"github.com/jeranaias/chalkboard-tui/internal/ui/styles"
)

// =============================================================================
// SETUP COMMAND HANDLER
// =============================================================================

// HandleSetup handles the "setup" command with various subcommands.
// Modes:
//   - setup: Full interactive wizard
//   - setup quick: API key only, defaults for everything else
//   - setup key: Update the API key only
//   - setup character: Character selection only
func HandleSetup(args Args) error {
	if err := RequiresTTY("run setup"); err != nil {
		return err
	}

	switch args.Subcommand {
	case "", "wizard":
		return runFullWizard()
	case "quick":
		return runQuickSetup()
	case "key":
		return runKeySetup()
	case "character":
		return runCharacterSetup()
	default:
		return fmt.Errorf("unknown setup subcommand: %s", args.Subcommand)
	}
}

// =============================================================================
// FULL WIZARD
// =============================================================================

// runFullWizard runs the complete interactive setup wizard.
func runFullWizard() error {
	cfg := config.Default()

	// Header
	fmt.Println()
	fmt.Println("chalkboard Setup Wizard")
	fmt.Println(strings.Repeat("=", 23))
	fmt.Println()

	// Step 1: API Key
	fmt.Println("Step 1: Gemini API Key")
	fmt.Println(strings.Repeat("-", 22))
	fmt.Println("Get a key at https://aistudio.google.com/apikey")
	key := promptSecure("API key (press Enter to keep env/config value)")
	if key != "" {
		cfg.Gemini.APIKey = key
	}
	fmt.Println()

	// Step 2: Character Selection
	fmt.Println("Step 2: Teacher Character")
	fmt.Println(strings.Repeat("-", 25))
	characters := persona.List()
	for i, char := range characters {
		marker := "  "
		if char.ID == persona.DefaultID {
			marker = "* "
		}
		fmt.Printf("%s[%d] %-14s %s\n", marker, i+1, char.ID, char.Description)
	}
	fmt.Println()
	fmt.Println("  * = default")
	fmt.Println()

	options := make([]string, len(characters))
	for i := range characters {
		options[i] = strconv.Itoa(i + 1)
	}
	choice := promptChoice("Select character", options, 0)
	cfg.Character = characters[choice].ID
	fmt.Println()

	// Step 3: Model Selection
	fmt.Println("Step 3: Model Selection")
	fmt.Println(strings.Repeat("-", 23))
	cfg.Gemini.Model = promptString("Gemini model", cfg.Gemini.Model)
	fmt.Println()

	// Step 4: Sound Effects
	fmt.Println("Step 4: Sound Effects")
	fmt.Println(strings.Repeat("-", 21))
	cfg.Assets.SoundsEnabled = promptYesNo("Enable character sound effects?", true)
	fmt.Println()

	// Save configuration
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	configPath, _ := config.ConfigPathTOML()

	// Completion
	fmt.Println()
	fmt.Println(styles.RenderSuccess("Setup Complete!"))
	fmt.Printf("Config saved to %s\n", configPath)
	fmt.Println("Run 'chalkboard' to start class!")
	fmt.Println()

	return nil
}

// =============================================================================
// QUICK SETUP
// =============================================================================

// runQuickSetup asks only for the API key and saves defaults for the rest.
func runQuickSetup() error {
	fmt.Println()
	fmt.Println("chalkboard Quick Setup")
	fmt.Println(strings.Repeat("=", 22))
	fmt.Println()

	cfg := config.Default()

	key := promptSecure("Gemini API key")
	if key == "" {
		fmt.Println(styles.RenderWarning("No key entered; you can set CHALKBOARD_API_KEY instead."))
	}
	cfg.Gemini.APIKey = key

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	configPath, _ := config.ConfigPathTOML()

	fmt.Println()
	fmt.Println(styles.RenderSuccess("Quick Setup Complete!"))
	fmt.Printf("  %s%s\n", RenderLabel("Character:", 12), cfg.Character)
	fmt.Printf("  %s%s\n", RenderLabel("Model:", 12), cfg.Gemini.Model)
	fmt.Printf("  %s%s\n", RenderLabel("Config:", 12), configPath)
	fmt.Println()
	fmt.Println("Run 'chalkboard' to start!")
	fmt.Println()

	return nil
}

// =============================================================================
// KEY SETUP
// =============================================================================

// runKeySetup updates only the API key in the saved configuration.
func runKeySetup() error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	fmt.Println()
	key := promptSecure("New Gemini API key")
	if key == "" {
		fmt.Println("Cancelled.")
		return nil
	}

	cfg.Gemini.APIKey = key
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println("API key updated.")
	return nil
}

// =============================================================================
// CHARACTER SETUP
// =============================================================================

// runCharacterSetup runs interactive character selection.
func runCharacterSetup() error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}

	fmt.Println()
	fmt.Println("chalkboard Character Setup")
	fmt.Println(strings.Repeat("=", 26))
	fmt.Println()

	characters := persona.List()

	fmt.Println("Available characters:")
	fmt.Println()
	for i, char := range characters {
		marker := "  "
		if char.ID == cfg.Character {
			marker = "* "
		}
		fmt.Printf("%s[%d] %-14s %s\n", marker, i+1, char.ID, char.Description)
	}
	fmt.Println()
	fmt.Println("  * = current")
	fmt.Println()

	fmt.Println("Enter number to select, or 'c' to cancel:")
	choice := setupPromptInput("> ")
	choice = strings.TrimSpace(strings.ToLower(choice))

	if choice == "c" || choice == "" {
		fmt.Println("Cancelled.")
		return nil
	}

	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(characters) {
		fmt.Println("Invalid selection.")
		return nil
	}

	cfg.Character = characters[idx-1].ID
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("Default character set to %s.\n", cfg.Character)
	fmt.Println()
	return nil
}

// =============================================================================
// INPUT HELPERS
// =============================================================================

var inputReader = bufio.NewReader(os.Stdin)
var inputMutex sync.Mutex

// setupPromptInput reads a line from stdin (for setup wizard).
func setupPromptInput(prompt string) string {
	inputMutex.Lock()
	defer inputMutex.Unlock()

	fmt.Print(prompt)
	line, err := inputReader.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// promptInputWithDefault reads with a default value shown.
func promptInputWithDefault(prompt, defaultVal string) string {
	if defaultVal != "" {
		prompt = fmt.Sprintf("%s [%s]: ", prompt, defaultVal)
	} else {
		prompt = prompt + ": "
	}

	input := setupPromptInput(prompt)
	if input == "" {
		return defaultVal
	}
	return input
}

// promptString prompts for a string input with optional default.
func promptString(prompt string, defaultVal string) string {
	return promptInputWithDefault(prompt, defaultVal)
}

// promptSecure prompts for sensitive input (API keys) without echoing.
// Uses golang.org/x/term for secure cross-platform input.
func promptSecure(prompt string) string {
	inputMutex.Lock()
	defer inputMutex.Unlock()

	if prompt != "" {
		fmt.Print(prompt)
		if !strings.HasSuffix(prompt, ": ") && !strings.HasSuffix(prompt, " ") {
			fmt.Print(": ")
		}
	}

	keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return ""
	}
	fmt.Println() // Add newline after hidden input

	return strings.TrimSpace(string(keyBytes))
}

// promptYesNo prompts for a yes/no answer.
func promptYesNo(prompt string, defaultYes bool) bool {
	suffix := "[Y/n]"
	if !defaultYes {
		suffix = "[y/N]"
	}

	input := setupPromptInput(fmt.Sprintf("%s %s: ", prompt, suffix))
	input = strings.ToLower(strings.TrimSpace(input))

	if input == "" {
		return defaultYes
	}

	return input == "y" || input == "yes"
}

// promptChoice prompts user to select from numbered options.
// Returns the index of the selected option (0-based).
func promptChoice(prompt string, options []string, defaultIdx int) int {
	suffix := fmt.Sprintf("[%s]", options[defaultIdx])
	input := setupPromptInput(fmt.Sprintf("%s %s: ", prompt, suffix))
	input = strings.TrimSpace(input)

	if input == "" {
		return defaultIdx
	}

	// Try to find matching option
	for i, opt := range options {
		if input == opt || input == strconv.Itoa(i+1) {
			return i
		}
	}

	return defaultIdx
}
