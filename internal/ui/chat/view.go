// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chalkboard-tui/internal/ui/components"
	"github.com/jeranaias/chalkboard-tui/internal/util"
)

// View renders the full chat interface.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.renderHelp())
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n")

	if m.state == StateWaiting {
		b.WriteString(m.thinking.Render(m.theme))
	}
	b.WriteString("\n")

	b.WriteString(m.theme.InputContainer.Width(m.width - 2).Render(m.input.View()))
	if counter := m.renderCharCount(); counter != "" {
		b.WriteString("\n")
		b.WriteString(counter)
	}
	b.WriteString("\n")

	b.WriteString(components.RenderStatusBar(m.theme, components.StatusInfo{
		TeacherName:  m.session.Character().Name,
		Model:        m.opts.ModelName,
		Exchanges:    m.exchanges,
		SoundEnabled: m.opts.SoundEnabled,
		Waiting:      m.state == StateWaiting,
	}, m.width))

	return b.String()
}

// =============================================================================
// HEADER
// =============================================================================

// Questions this long start eating into the context window; nudge the
// student toward attachments instead.
const charCountWarnAt = 1000

// renderCharCount shows a right-aligned character count once the input
// grows beyond a quick one-liner.
func (m Model) renderCharCount() string {
	count := util.RuneLen(m.input.Value())
	if count < 80 {
		return ""
	}
	style := m.theme.CharCount
	if count >= charCountWarnAt {
		style = m.theme.CharCountWarning
	}
	return lipgloss.NewStyle().
		Width(m.width - 2).
		Align(lipgloss.Right).
		Render(style.Render(fmt.Sprintf("%d chars", count)))
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render(m.session.Character().Name)
	subtitle := m.theme.HeaderSubtitle.Render(" - Chalkboard")
	return m.theme.Header.Width(m.width - 2).Render(title + subtitle)
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// refreshViewport re-renders the transcript into the viewport.
// gotoBottom scrolls to the newest entry; resizes keep the position.
func (m *Model) refreshViewport(gotoBottom bool) {
	m.viewport.SetContent(m.renderEntries())
	if gotoBottom {
		m.viewport.GotoBottom()
	}
}

func (m Model) renderEntries() string {
	if m.showWelcome && len(m.entries) == 0 {
		return components.RenderWelcome(m.theme, components.WelcomeInfo{
			Version:      m.opts.Version,
			TeacherName:  m.session.Character().Name,
			Model:        m.opts.ModelName,
			SoundEnabled: m.opts.SoundEnabled,
		}, m.width)
	}

	opts := components.MessageOptions{
		TeacherName:    m.session.Character().Name,
		MaxWidth:       m.contentWidth(),
		ShowTimestamps: m.opts.ShowTimestamps,
		Compact:        m.opts.CompactMode || m.width < 60,
	}

	rendered := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		switch e.kind {
		case entryTurn:
			rendered = append(rendered, components.RenderTurn(m.theme, e.turn, opts))
		case entrySystem:
			rendered = append(rendered, components.RenderSystemNote(m.theme, e.note))
		case entrySound:
			rendered = append(rendered, components.RenderSoundEvent(m.theme, e.sound))
		}
	}
	return strings.Join(rendered, "\n\n")
}

func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

var helpCommands = []struct {
	cmd  string
	desc string
}{
	{"/help", "Show this help"},
	{"/clear", "Clear the conversation"},
	{"/character <id>", "Switch teacher (history resets)"},
	{"/characters", "List available teachers"},
	{"/attach <file>", "Attach a .pdf or .txt to your next question"},
	{"/history", "Show how many turns are retained"},
	{"/quit", "Leave the classroom"},
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(m.theme.HelpHeading.Render("Commands"))
	b.WriteString("\n")
	for _, c := range helpCommands {
		b.WriteString(m.theme.ShortcutKey.Render(padRight(c.cmd, 18)))
		b.WriteString(m.theme.ShortcutDesc.Render(c.desc))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.HelpHeading.Render("Keys"))
	b.WriteString("\n")
	for _, group := range m.keyMap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(m.theme.ShortcutKey.Render(padRight(h.Key, 18)))
			b.WriteString(m.theme.ShortcutDesc.Render(h.Desc))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.theme.ShortcutDesc.Render("Press Esc or ? to close"))

	box := m.theme.HelpBox.Render(b.String())
	return lipgloss.Place(m.viewport.Width, m.viewport.Height, lipgloss.Center, lipgloss.Center, box)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}
	return s + strings.Repeat(" ", width-len(s))
}
