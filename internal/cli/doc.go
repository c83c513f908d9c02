// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface parsing and execution for
// chalkboard.
//
// This package implements all CLI commands for the chalkboard TUI
// application, covering both interactive and non-interactive modes.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed command-line arguments with global and command-specific flags
//
// # Usage
//
// Parse and execute commands:
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdAsk:
//	    cli.HandleAsk(args)
//	case cli.CmdChat:
//	    cli.HandleChat(args)
//	// ... other commands
//	}
//
// # Commands Overview
//
//   - ask: Single question answered by the active teacher character
//   - chat: Interactive chat session with slash commands
//   - characters: List built-in and custom characters
//   - config: Configuration management
//   - setup: First-run wizard
package cli
