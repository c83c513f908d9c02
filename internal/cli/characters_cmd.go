// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// characters_cmd.go - Character listing command for chalkboard.
//
// Command: characters [subcommand]
// Short:   List available teacher characters
//
// Subcommands:
//   list (default)      List built-in and custom characters
//   dir                 Show the custom persona directory
//
// Examples:
//   chalkboard characters            List all characters
//   chalkboard characters dir        Show where custom personas load from
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/chalkboard-tui/internal/config"
	"github.com/jeranaias/chalkboard-tui/internal/persona"
)

// HandleCharacters handles the "characters" command.
func HandleCharacters(args Args) error {
	switch args.Subcommand {
	case "", "list":
		return handleCharactersList()
	case "dir":
		return handleCharactersDir()
	default:
		return NewCommandError("characters", "dispatch",
			fmt.Sprintf("unknown subcommand %q", args.Subcommand), nil)
	}
}

// handleCharactersList lists built-in and custom characters.
func handleCharactersList() error {
	cfg := config.Global()

	fmt.Println()
	fmt.Println(TitleStyle.Render("Teacher Characters"))
	fmt.Println(RenderSeparator(41))
	fmt.Println()

	fmt.Println(SectionStyle.Render("Built-in"))
	for _, char := range persona.List() {
		marker := "  "
		if char.ID == cfg.Character {
			marker = SuccessStyle.Render("* ")
		}
		fmt.Printf("%s%s  %s\n",
			marker,
			HighlightStyle.Render(fmt.Sprintf("%-14s", char.ID)),
			ValueStyle.Render(char.Description))
	}
	fmt.Println()

	// Custom characters from the persona directory
	registry := persona.NewRegistry(cfg.Assets.PersonaDir)
	if err := registry.Reload(); err != nil {
		fmt.Fprintf(os.Stderr, "%s Custom characters unavailable: %v\n",
			WarningStyle.Render("[!]"), err)
	}

	var custom []persona.Character
	for _, char := range registry.All() {
		if !persona.IsBuiltin(char.ID) {
			custom = append(custom, char)
		}
	}

	if len(custom) > 0 {
		fmt.Println(SectionStyle.Render("Custom"))
		for _, char := range custom {
			marker := "  "
			if char.ID == cfg.Character {
				marker = SuccessStyle.Render("* ")
			}
			fmt.Printf("%s%s  %s\n",
				marker,
				HighlightStyle.Render(fmt.Sprintf("%-14s", char.ID)),
				DimStyle.Render(char.Name))
		}
		fmt.Println()
	}

	fmt.Println(DimStyle.Render(strings.Repeat("-", 41)))
	fmt.Printf("Default: %s (change with 'chalkboard config set character <id>')\n",
		HighlightStyle.Render(cfg.Character))
	fmt.Println()

	return nil
}

// handleCharactersDir shows the custom persona directory.
func handleCharactersDir() error {
	cfg := config.Global()
	fmt.Println(cfg.Assets.PersonaDir)

	if _, err := os.Stat(cfg.Assets.PersonaDir); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "%s (directory does not exist - drop .txt prompt files there to add characters)\n",
			DimStyle.Render("Note"))
	}

	return nil
}
