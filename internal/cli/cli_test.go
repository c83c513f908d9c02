// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface parsing and execution.
//
// This test file covers argument parsing, exit-code mapping, and text
// wrapping. These are the user-facing surfaces that must work reliably.
package cli

import (
	"errors"
	"os"
	"strings"
	"testing"
)

// =============================================================================
// INTEGRATION-STYLE TESTS (testing Parse() with os.Args simulation)
// =============================================================================

// TestParse_Integration tests the actual Parse() function by temporarily
// modifying os.Args. This is an integration test of the full CLI parsing.
func TestParse_Integration(t *testing.T) {
	// Save original args
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	tests := []struct {
		name        string
		args        []string
		wantCommand Command
		validate    func(*testing.T, Args)
	}{
		{
			name:        "no args defaults to TUI",
			args:        []string{"chalkboard"},
			wantCommand: CmdTUI,
		},
		{
			name:        "ask command",
			args:        []string{"chalkboard", "ask", "What is Go?"},
			wantCommand: CmdAsk,
			validate: func(t *testing.T, a Args) {
				if a.Query != "What is Go?" {
					t.Errorf("Query = %q, want %q", a.Query, "What is Go?")
				}
			},
		},
		{
			name:        "ask with model flag",
			args:        []string{"chalkboard", "ask", "--model", "gemini-pro-latest", "Hello"},
			wantCommand: CmdAsk,
			validate: func(t *testing.T, a Args) {
				if a.Model != "gemini-pro-latest" {
					t.Errorf("Model = %q, want %q", a.Model, "gemini-pro-latest")
				}
				if a.Query != "Hello" {
					t.Errorf("Query = %q, want %q", a.Query, "Hello")
				}
			},
		},
		{
			name:        "ask with character flag",
			args:        []string{"chalkboard", "ask", "-c", "steve", "How do I craft?"},
			wantCommand: CmdAsk,
			validate: func(t *testing.T, a Args) {
				if a.Character != "steve" {
					t.Errorf("Character = %q, want %q", a.Character, "steve")
				}
			},
		},
		{
			name:        "ask with repeated attachments",
			args:        []string{"chalkboard", "ask", "-a", "essay.txt", "--attach", "rubric.pdf", "Grade this"},
			wantCommand: CmdAsk,
			validate: func(t *testing.T, a Args) {
				if len(a.Attach) != 2 {
					t.Fatalf("len(Attach) = %d, want 2", len(a.Attach))
				}
				if a.Attach[0] != "essay.txt" || a.Attach[1] != "rubric.pdf" {
					t.Errorf("Attach = %v", a.Attach)
				}
				if a.Query != "Grade this" {
					t.Errorf("Query = %q, want %q", a.Query, "Grade this")
				}
			},
		},
		{
			name:        "ask with attach equals form",
			args:        []string{"chalkboard", "ask", "--attach=notes.pdf", "Summarize"},
			wantCommand: CmdAsk,
			validate: func(t *testing.T, a Args) {
				if len(a.Attach) != 1 || a.Attach[0] != "notes.pdf" {
					t.Errorf("Attach = %v, want [notes.pdf]", a.Attach)
				}
			},
		},
		{
			name:        "ask with quiet flag",
			args:        []string{"chalkboard", "ask", "-q", "Question"},
			wantCommand: CmdAsk,
			validate: func(t *testing.T, a Args) {
				if !a.Quiet {
					t.Error("Quiet should be true")
				}
			},
		},
		{
			name:        "chat command",
			args:        []string{"chalkboard", "chat"},
			wantCommand: CmdChat,
		},
		{
			name:        "chat with character",
			args:        []string{"chalkboard", "chat", "--character", "lebron_james"},
			wantCommand: CmdChat,
			validate: func(t *testing.T, a Args) {
				if a.Character != "lebron_james" {
					t.Errorf("Character = %q, want %q", a.Character, "lebron_james")
				}
			},
		},
		{
			name:        "global character flag before command",
			args:        []string{"chalkboard", "--character=villager", "chat"},
			wantCommand: CmdChat,
			validate: func(t *testing.T, a Args) {
				if a.Character != "villager" {
					t.Errorf("Character = %q, want %q", a.Character, "villager")
				}
			},
		},
		{
			name:        "no-sound flag",
			args:        []string{"chalkboard", "--no-sound", "chat"},
			wantCommand: CmdChat,
			validate: func(t *testing.T, a Args) {
				if !a.NoSound {
					t.Error("NoSound should be true")
				}
			},
		},
		{
			name:        "characters command",
			args:        []string{"chalkboard", "characters"},
			wantCommand: CmdCharacters,
		},
		{
			name:        "config command",
			args:        []string{"chalkboard", "config", "show"},
			wantCommand: CmdConfig,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "show" {
					t.Errorf("Subcommand = %q, want %q", a.Subcommand, "show")
				}
			},
		},
		{
			name:        "config set",
			args:        []string{"chalkboard", "config", "set", "character", "baldi"},
			wantCommand: CmdConfig,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "set" {
					t.Errorf("Subcommand = %q, want %q", a.Subcommand, "set")
				}
				if a.ConfigKey != "character" || a.ConfigVal != "baldi" {
					t.Errorf("ConfigKey/Val = %q/%q, want character/baldi", a.ConfigKey, a.ConfigVal)
				}
			},
		},
		{
			name:        "setup command",
			args:        []string{"chalkboard", "setup", "quick"},
			wantCommand: CmdSetup,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "quick" {
					t.Errorf("Subcommand = %q, want %q", a.Subcommand, "quick")
				}
			},
		},
		{
			name:        "help command",
			args:        []string{"chalkboard", "help"},
			wantCommand: CmdHelp,
		},
		{
			name:        "version flag",
			args:        []string{"chalkboard", "--version"},
			wantCommand: CmdVersion,
		},
		{
			name:        "unknown command falls back to TUI",
			args:        []string{"chalkboard", "blackboard"},
			wantCommand: CmdTUI,
			validate: func(t *testing.T, a Args) {
				if len(a.Raw) != 1 || a.Raw[0] != "blackboard" {
					t.Errorf("Raw = %v, want [blackboard]", a.Raw)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			cmd, args := Parse()

			if cmd != tt.wantCommand {
				t.Errorf("Command = %v, want %v", cmd, tt.wantCommand)
			}

			if tt.validate != nil {
				tt.validate(t, args)
			}
		})
	}
}

// =============================================================================
// EXIT CODE TESTS
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"validation error", NewValidationError("question", "", "required argument missing"), ExitUsageError},
		{"not found error", NewNotFoundError("character", "socrates"), ExitNotFoundError},
		{"auth error by message", errors.New("authentication failed: invalid API key"), ExitAuthError},
		{"config error by message", errors.New("failed to load configuration"), ExitConfigError},
		{"timeout error by message", errors.New("context deadline exceeded"), ExitTimeoutError},
		{"network error by message", errors.New("dial tcp: connection refused"), ExitNetworkError},
		{"generic error", errors.New("something odd happened"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetExitCode_WrappedValidation(t *testing.T) {
	err := WrapError(NewValidationError("attachment", "x.png", "unsupported"), "ask failed")
	if got := GetExitCode(err); got != ExitUsageError {
		t.Errorf("GetExitCode(wrapped validation) = %d, want %d", got, ExitUsageError)
	}
}

// =============================================================================
// TEXT WRAPPING TESTS
// =============================================================================

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth int
		wantMax  int
	}{
		{"short line untouched", "hello world", 40, 40},
		{"long line wraps", strings.Repeat("word ", 20), 30, 30},
		{"preserves newlines", "line one\nline two", 40, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.text, tt.maxWidth)
			for _, line := range strings.Split(got, "\n") {
				if len(line) > tt.wantMax {
					t.Errorf("line %q exceeds width %d", line, tt.wantMax)
				}
			}
		})
	}
}

func TestWrapText_KeepsAllWords(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	got := WrapText(text, 15)
	joined := strings.Join(strings.Fields(got), " ")
	if joined != text {
		t.Errorf("WrapText dropped words: %q", joined)
	}
}

// =============================================================================
// COLOR CONTROL TESTS
// =============================================================================

func TestForceColorsEnabled(t *testing.T) {
	defer ForceColorsEnabled(false)

	ForceColorsEnabled(true)
	if !ColorsEnabled() {
		t.Error("colors should be enabled after forcing on")
	}

	ForceColorsEnabled(false)
	if ColorsEnabled() {
		t.Error("colors should be disabled after forcing off")
	}
}

// =============================================================================
// SECRET MASKING TESTS
// =============================================================================

func TestMaskAPIKey(t *testing.T) {
	if got := maskAPIKey(""); got != "(not set)" {
		t.Errorf("maskAPIKey(empty) = %q", got)
	}
	if got := maskAPIKey("short"); got != "[invalid key]" {
		t.Errorf("maskAPIKey(short) = %q", got)
	}

	masked := maskAPIKey("AIzaSyExampleExampleExample")
	if !strings.HasPrefix(masked, "sha256:") {
		t.Errorf("maskAPIKey should return fingerprint, got %q", masked)
	}
	if strings.Contains(masked, "AIza") {
		t.Errorf("maskAPIKey leaked key material: %q", masked)
	}
}

func TestMaskIfSecret(t *testing.T) {
	if got := maskIfSecret("gemini.api_key", "AIzaSyExampleExampleExample"); strings.Contains(got, "AIza") {
		t.Errorf("maskIfSecret leaked secret value: %q", got)
	}
	if got := maskIfSecret("character", "baldi"); got != "baldi" {
		t.Errorf("maskIfSecret masked non-secret: %q", got)
	}
}
