// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for chalkboard.
//
// CLI: Comprehensive help and examples for all commands
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdSetup
	CmdConfig
	CmdCharacters
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet     bool
	Verbose   bool
	Model     string
	Character string
	NoSound   bool

	// Command-specific
	Query      string
	Attach     []string
	ConfigKey  string
	ConfigVal  string
	Subcommand string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `chalkboard - fictional teacher personas on your terminal

Chalkboard is a chat client that answers questions in the voice of a
fictional teacher character, backed by the Gemini API.

It provides:
  - Four built-in characters (Baldi, LeBron James, Steve, Villager)
  - Custom characters loaded from a persona directory
  - Character sound effects on praise, mistakes, and frustration
  - PDF and text attachments alongside questions

Usage:
  chalkboard                      Start TUI (default)
  chalkboard ask "question"       Ask a single question
  chalkboard chat                 Interactive chat
  chalkboard characters           List available characters
  chalkboard config [show|get|set|path]  Configuration
  chalkboard setup                First-run wizard
  chalkboard version              Show version
  chalkboard help                 Show this help

Ask Commands:
  chalkboard ask "question"         Ask and print the answer
    --attach FILE, -a FILE          Attach a .pdf or .txt file (repeatable)
    --model NAME, -m NAME           Override the configured model
    --character ID, -c ID           Answer as a specific character

Chat Commands:
  chalkboard chat                   Start an interactive session
    --character ID, -c ID           Start as a specific character
    --model NAME, -m NAME           Override the configured model

  Slash commands inside chat:
    /help /clear /character /characters /attach /history /quit

Config Commands:
  chalkboard config show            Show current configuration
  chalkboard config get <key>       Get a single value (dot notation)
  chalkboard config set <key> <val> Set a value and save
  chalkboard config path            Print the config file path

Global Flags:
  -q, --quiet       Minimal output
  -v, --verbose     Debug output
  --model NAME      Override default model
  --character ID    Override default character
  --no-sound        Disable sound effects

Examples:
  # Basic usage
  chalkboard                               Start TUI interface
  chalkboard ask "What is 2 + 2?"          Ask a single question
  chalkboard chat --character lebron_james Chat with LeBron

  # Attachments
  chalkboard ask "Summarize this" --attach notes.pdf
  chalkboard ask "Grade my essay" -a essay.txt -a rubric.txt

  # Configuration
  chalkboard config show                   Show current configuration
  chalkboard config set gemini.api_key YOUR_KEY
  chalkboard config set character steve    Default to Steve

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("chalkboard version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	args := os.Args[1:]

	// Parse global flags first
	remaining, parsedArgs := parseGlobalFlags(args)

	// If no remaining args, default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	// Check first argument for command
	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "ask":
		// Parse ask-specific flags and query
		parseAskArgs(&parsedArgs, remaining)
		return CmdAsk, parsedArgs

	case "chat":
		// Parse chat-specific flags
		parseChatArgs(&parsedArgs, remaining)
		return CmdChat, parsedArgs

	case "characters", "character", "personas":
		parseCharactersArgs(&parsedArgs, remaining)
		return CmdCharacters, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "setup":
		parseSetupArgs(&parsedArgs, remaining)
		return CmdSetup, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command - could be a direct prompt, default to TUI
		// Restore the command as it might be part of args
		parsedArgs.Raw = append([]string{cmd}, remaining...)
		return CmdTUI, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "--verbose":
			parsedArgs.Verbose = true
		case "--no-sound", "--mute":
			parsedArgs.NoSound = true
		case "--model":
			if i+1 < len(args) {
				i++
				parsedArgs.Model = args[i]
			}
		case "--character":
			if i+1 < len(args) {
				i++
				parsedArgs.Character = args[i]
			}
		default:
			// Check for --model=value / --character=value format
			if strings.HasPrefix(arg, "--model=") {
				parsedArgs.Model = strings.TrimPrefix(arg, "--model=")
			} else if strings.HasPrefix(arg, "--character=") {
				parsedArgs.Character = strings.TrimPrefix(arg, "--character=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseAskArgs parses ask command specific arguments.
func parseAskArgs(args *Args, remaining []string) {
	var query []string

	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch arg {
		case "-a", "--attach", "-f", "--file":
			if i+1 < len(remaining) {
				i++
				args.Attach = append(args.Attach, remaining[i])
			}
		case "-m", "--model":
			if i+1 < len(remaining) {
				i++
				args.Model = remaining[i]
			}
		case "-c", "--character":
			if i+1 < len(remaining) {
				i++
				args.Character = remaining[i]
			}
		default:
			// Check for --attach=value / --model=value / --character=value format
			if strings.HasPrefix(arg, "--attach=") {
				args.Attach = append(args.Attach, strings.TrimPrefix(arg, "--attach="))
			} else if strings.HasPrefix(arg, "--file=") {
				args.Attach = append(args.Attach, strings.TrimPrefix(arg, "--file="))
			} else if strings.HasPrefix(arg, "--model=") {
				args.Model = strings.TrimPrefix(arg, "--model=")
			} else if strings.HasPrefix(arg, "--character=") {
				args.Character = strings.TrimPrefix(arg, "--character=")
			} else if !strings.HasPrefix(arg, "-") {
				query = append(query, arg)
			}
		}
		i++
	}

	args.Query = strings.Join(query, " ")
}

// parseChatArgs parses chat command specific arguments.
func parseChatArgs(args *Args, remaining []string) {
	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]

		switch arg {
		case "-m", "--model":
			if i+1 < len(remaining) {
				i++
				args.Model = remaining[i]
			}
		case "-c", "--character":
			if i+1 < len(remaining) {
				i++
				args.Character = remaining[i]
			}
		default:
			if strings.HasPrefix(arg, "--model=") {
				args.Model = strings.TrimPrefix(arg, "--model=")
			} else if strings.HasPrefix(arg, "--character=") {
				args.Character = strings.TrimPrefix(arg, "--character=")
			}
		}
	}
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = remaining[2]
		}
	}
}

// parseSetupArgs parses setup command specific arguments.
func parseSetupArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
	}
}

// parseCharactersArgs parses characters command specific arguments.
func parseCharactersArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
	}
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// ERROR HANDLING: Errors must not be silently ignored

// HandleAsk handles the "ask" command.
// This delegates to the full implementation in ask.go.
func HandleAsk(args Args) {
	if err := HandleAskCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

// HandleChat handles the "chat" command.
// This delegates to the full implementation in chat.go.
func HandleChat(args Args) {
	if err := HandleChatCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

// NOTE: HandleConfig is implemented in config.go
// NOTE: HandleSetup is implemented in setup.go
// NOTE: HandleCharacters is implemented in characters_cmd.go

// HandleVersion handles the "version" command.
func HandleVersion() {
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
