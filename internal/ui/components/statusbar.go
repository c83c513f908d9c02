// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the chalkboard TUI.
package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chalkboard-tui/internal/ui/styles"
	"github.com/jeranaias/chalkboard-tui/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// StatusInfo holds data displayed in the bottom status bar.
type StatusInfo struct {
	TeacherName  string
	Model        string
	Exchanges    int
	SoundEnabled bool
	// Waiting indicates a response is in flight.
	Waiting bool
}

// shortcut pairs for the right side of the bar
var statusShortcuts = []struct {
	key  string
	desc string
}{
	{"Enter", "send"},
	{"?", "help"},
	{"Ctrl+C", "quit"},
}

// RenderStatusBar renders the bottom status bar, adapting to width.
// Narrow terminals drop the shortcut hints; wide terminals show everything.
func RenderStatusBar(theme *styles.Theme, info StatusInfo, width int) string {
	var left strings.Builder

	left.WriteString(theme.StatsValue.Render(info.TeacherName))
	left.WriteString(theme.StatsLabel.Render(" | "))
	left.WriteString(theme.StatsLabel.Render(util.TruncateWidth(info.Model, 24)))
	left.WriteString(theme.StatsLabel.Render(" | "))
	left.WriteString(theme.StatsValue.Render(strconv.Itoa(info.Exchanges)))
	left.WriteString(theme.StatsLabel.Render(" exchanges"))
	left.WriteString(" ")
	left.WriteString(SoundBadge(theme, info.SoundEnabled))

	if width < 60 {
		return theme.StatusBar.Width(width).Render(left.String())
	}

	var right strings.Builder
	for i, s := range statusShortcuts {
		if i > 0 {
			right.WriteString("  ")
		}
		right.WriteString(theme.ShortcutKey.Render(s.key))
		right.WriteString(theme.ShortcutDesc.Render(" " + s.desc))
	}

	leftStr := left.String()
	rightStr := right.String()

	gap := width - lipgloss.Width(leftStr) - lipgloss.Width(rightStr) - 2
	if gap < 1 {
		gap = 1
	}

	return theme.StatusBar.Width(width).Render(leftStr + strings.Repeat(" ", gap) + rightStr)
}
