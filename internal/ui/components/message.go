// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the chalkboard TUI.
package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chalkboard-tui/internal/model"
	"github.com/jeranaias/chalkboard-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE RENDERING
// =============================================================================

// MessageOptions controls how a message bubble is rendered.
type MessageOptions struct {
	// TeacherName labels model turns (e.g. "Baldi").
	TeacherName string
	// MaxWidth is the available width in columns.
	MaxWidth int
	// ShowTimestamps adds a dim HH:MM suffix to the speaker label.
	ShowTimestamps bool
	// Compact drops the bubble borders for narrow terminals.
	Compact bool
}

// RenderTurn renders a conversation turn as a styled message bubble.
// User turns align right, teacher turns align left with the character's name.
func RenderTurn(theme *styles.Theme, turn model.Turn, opts MessageOptions) string {
	if opts.MaxWidth < 20 {
		opts.MaxWidth = 20
	}

	switch turn.Role {
	case model.RoleUser:
		return renderUserTurn(theme, turn, opts)
	case model.RoleModel:
		return renderTeacherTurn(theme, turn, opts)
	default:
		// Tool turns never reach the display path, but render something
		// legible if one does.
		return theme.SystemBubble.Render(turn.Text)
	}
}

// RenderSystemNote renders an announcement line (character switches, clears).
func RenderSystemNote(theme *styles.Theme, text string) string {
	return theme.SystemBubble.Render(text)
}

func renderUserTurn(theme *styles.Theme, turn model.Turn, opts MessageOptions) string {
	label := lipgloss.NewStyle().Bold(true).Foreground(styles.Cyan).Render("You")
	label += renderTimestamp(theme, turn.Timestamp, opts)

	body := turn.Text
	bubble := theme.UserBubble
	if opts.Compact {
		bubble = bubble.UnsetBorderStyle().UnsetBackground().MarginLeft(2)
	}
	bubble = bubble.MaxWidth(opts.MaxWidth)

	block := label + "\n" + bubble.Render(body)
	return lipgloss.NewStyle().
		Width(opts.MaxWidth).
		Align(lipgloss.Right).
		Render(block)
}

func renderTeacherTurn(theme *styles.Theme, turn model.Turn, opts MessageOptions) string {
	name := opts.TeacherName
	if name == "" {
		name = "Teacher"
	}
	label := theme.SpeakerLabel.Render(name)
	label += renderTimestamp(theme, turn.Timestamp, opts)

	// Fenced code blocks get highlighted; bare backtick spans get the
	// inline treatment.
	body := turn.Text
	if strings.Contains(body, "```") {
		body = ParseCodeBlocks(body, opts.MaxWidth-8)
	} else if strings.Contains(body, "`") {
		body = ParseInlineCode(body)
	}

	bubble := theme.TeacherBubble
	if opts.Compact {
		bubble = bubble.UnsetBorderStyle().UnsetBackground().MarginRight(0)
	}
	bubble = bubble.MaxWidth(opts.MaxWidth)

	return label + "\n" + bubble.Render(body)
}

func renderTimestamp(theme *styles.Theme, ts time.Time, opts MessageOptions) string {
	if !opts.ShowTimestamps || ts.IsZero() {
		return ""
	}
	return " " + theme.Timestamp.Render(ts.Format("15:04"))
}
