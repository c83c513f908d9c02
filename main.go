// Chalkboard - a desktop classroom chatbot with teacher characters.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chalkboard-tui/internal/cli"
	"github.com/jeranaias/chalkboard-tui/internal/config"
	"github.com/jeranaias/chalkboard-tui/internal/ui/chat"
	"github.com/jeranaias/chalkboard-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdAsk:
		cli.HandleAsk(args)

	case cli.CmdChat:
		cli.HandleChat(args)

	case cli.CmdSetup:
		cli.HandleErrorAndExit(cli.HandleSetup(args))

	case cli.CmdConfig:
		cli.HandleErrorAndExit(cli.HandleConfig(args))

	case cli.CmdCharacters:
		cli.HandleErrorAndExit(cli.HandleCharacters(args))

	case cli.CmdVersion:
		cli.HandleVersion()

	case cli.CmdHelp:
		cli.HandleHelp()

	default:
		runTUI(args)
	}
}

// runTUI launches the full-screen classroom interface.
func runTUI(args cli.Args) {
	if !cli.IsTTY() {
		fmt.Fprintln(os.Stderr, "Error: the classroom needs a terminal. Try 'chalkboard ask' for piped use.")
		os.Exit(cli.ExitUsageError)
	}

	cfg := config.Global()

	if cfg.Gemini.APIKey == "" {
		fmt.Fprintln(os.Stderr, "Error: no API key configured. Run 'chalkboard setup' or set CHALKBOARD_API_KEY")
		os.Exit(cli.ExitAuthError)
	}

	session, err := cli.NewSessionFromConfig(cfg, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}

	soundsEnabled := cfg.Assets.SoundsEnabled && !args.NoSound
	session.PlayStartup()
	defer session.PlayShutdown()

	stopWatcher := cli.WatchPersonas(session)
	defer stopWatcher()

	modelName := cfg.Gemini.Model
	if args.Model != "" {
		modelName = args.Model
	}

	m := chat.New(styles.NewTheme(), session, chat.Options{
		Version:        Version,
		ModelName:      modelName,
		SoundEnabled:   soundsEnabled,
		ShowTimestamps: cfg.UI.ShowTimestamps,
		CompactMode:    cfg.UI.CompactMode,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitGeneralError)
	}
}
