// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file holds the tea.Cmd factories that call the teacher session off
// the UI goroutine, plus slash command parsing.
package chat

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chalkboard-tui/internal/teacher"
)

// askTimeout bounds a full exchange including tool-call continuations.
const askTimeout = 2 * time.Minute

// =============================================================================
// SESSION COMMANDS
// =============================================================================

// askCmd sends a question to the teacher in a command goroutine.
func askCmd(session *teacher.Session, question string, attachments []string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()

		text, err := session.Ask(ctx, question, attachments)
		return AskCompleteMsg{Text: text, Err: err}
	}
}

// introCmd fetches the teacher's opening greeting.
func introCmd(session *teacher.Session) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()

		text, err := session.Intro(ctx)
		return IntroMsg{Text: text, Err: err}
	}
}

// switchCharacterCmd switches the active teacher, plays the new character's
// startup sound, and fetches a fresh greeting. The session resets its
// conversation window as part of the switch.
func switchCharacterCmd(session *teacher.Session, id string) tea.Cmd {
	return func() tea.Msg {
		if err := session.SwitchCharacter(id); err != nil {
			return CharacterSwitchedMsg{ID: id, Err: err}
		}

		sound := session.PlayStartup()

		ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
		defer cancel()
		intro, err := session.Intro(ctx)

		return CharacterSwitchedMsg{
			ID:    session.Character().ID,
			Name:  session.Character().Name,
			Intro: intro,
			Sound: sound,
			Err:   err,
		}
	}
}

// =============================================================================
// ANIMATION COMMANDS
// =============================================================================

// thinkingTickCmd schedules the next spinner frame.
func thinkingTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return thinkingTickMsg{Time: t}
	})
}

// =============================================================================
// SLASH COMMAND PARSING
// =============================================================================

// parseSlashCommand splits "/character baldi" into ("character", "baldi").
// The input must start with "/". The command is lowercased; the argument
// keeps its case (file paths are case-sensitive).
func parseSlashCommand(input string) (cmd, arg string) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(input), "/")
	parts := strings.SplitN(trimmed, " ", 2)
	cmd = strings.ToLower(parts[0])
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}
