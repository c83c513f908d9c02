// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the chalkboard TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chalkboard-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN
// =============================================================================

// Chalkboard logo, ASCII-only so it renders everywhere.
const welcomeLogo = `
  ____ _           _ _    _                         _
 / ___| |__   __ _| | | _| |__   ___   __ _ _ __ __| |
| |   | '_ \ / _` + "`" + ` | | |/ / '_ \ / _ \ / _` + "`" + ` | '__/ _` + "`" + ` |
| |___| | | | (_| | |   <| |_) | (_) | (_| | | | (_| |
 \____|_| |_|\__,_|_|_|\_\_.__/ \___/ \__,_|_|  \__,_|
`

// WelcomeInfo holds the lines displayed under the logo.
type WelcomeInfo struct {
	Version      string
	TeacherName  string
	Model        string
	SoundEnabled bool
}

// RenderWelcome renders the startup welcome box.
func RenderWelcome(theme *styles.Theme, info WelcomeInfo, width int) string {
	var b strings.Builder

	b.WriteString(theme.WelcomeLogo.Render(strings.TrimPrefix(welcomeLogo, "\n")))
	b.WriteString("\n")
	if info.Version != "" {
		b.WriteString(theme.WelcomeVersion.Render("v" + info.Version))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(theme.WelcomeInfo.Render("Teacher: "))
	b.WriteString(theme.WelcomeKey.Render(info.TeacherName))
	b.WriteString("\n")
	b.WriteString(theme.WelcomeInfo.Render("Model:   "))
	b.WriteString(theme.WelcomeKey.Render(info.Model))
	b.WriteString("\n")
	if !info.SoundEnabled {
		b.WriteString(theme.WarningStyle.Render("Sounds disabled"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(theme.WelcomeInfo.Render("Type a question and press "))
	b.WriteString(theme.WelcomeKey.Render("Enter"))
	b.WriteString(theme.WelcomeInfo.Render(". Use "))
	b.WriteString(theme.WelcomeKey.Render("/help"))
	b.WriteString(theme.WelcomeInfo.Render(" for commands."))

	box := theme.WelcomeBox.Render(b.String())
	if width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
	}
	return box
}
