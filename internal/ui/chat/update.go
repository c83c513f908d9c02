// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chalkboard-tui/internal/model"
	"github.com/jeranaias/chalkboard-tui/internal/persona"
	"github.com/jeranaias/chalkboard-tui/internal/ui/components"
	"github.com/jeranaias/chalkboard-tui/internal/ui/styles"
)

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case thinkingTickMsg:
		if m.state != StateWaiting {
			return m, nil
		}
		m.thinking.Tick()
		return m, thinkingTickCmd(m.thinking.Spinner.Duration())

	case IntroMsg:
		m.state = StateReady
		if msg.Err != nil {
			m.appendNote("Could not reach the teacher: " + msg.Err.Error())
		} else if msg.Text != "" {
			m.appendTurn(model.RoleModel, msg.Text)
		}
		m.refreshViewport(true)
		return m, nil

	case AskCompleteMsg:
		m.state = StateReady
		if msg.Err != nil {
			m.appendNote("Error: " + msg.Err.Error())
		} else {
			m.appendTurn(model.RoleModel, msg.Text)
			m.exchanges++
		}
		m.refreshViewport(true)
		return m, nil

	case CharacterSwitchedMsg:
		return m.handleCharacterSwitched(msg)
	}

	// Pass everything else to the focused components.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// RESIZE
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	// header (3) + thinking line (1) + input (3) + status bar (1)
	viewportHeight := msg.Height - 8
	if viewportHeight < 3 {
		viewportHeight = 3
	}
	m.viewport.Width = msg.Width
	m.viewport.Height = viewportHeight
	m.input.Width = msg.Width - 6

	m.refreshViewport(false)
	return m
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Dismiss):
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Help):
		// "?" toggles help only when the input line is empty, so typing
		// questions ("Why?") still works.
		if m.input.Value() == "" {
			m.showHelp = !m.showHelp
			return m, nil
		}

	case key.Matches(msg, m.keyMap.Clear):
		m.clearConversation()
		return m, nil

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keyMap.Up),
		key.Matches(msg, m.keyMap.Down),
		key.Matches(msg, m.keyMap.PageUp),
		key.Matches(msg, m.keyMap.PageDown),
		key.Matches(msg, m.keyMap.Home),
		key.Matches(msg, m.keyMap.End):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleSubmit processes the current input line.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.showWelcome = false

	if strings.HasPrefix(text, "/") {
		return m.handleSlashCommand(text)
	}

	if m.state == StateWaiting {
		// One question at a time; drop input while a response is in flight.
		m.appendNote("Still waiting for the teacher. Hold on!")
		m.refreshViewport(true)
		return m, nil
	}

	m.appendTurn(model.RoleUser, text)
	attachments := m.pendingAttachments
	m.pendingAttachments = nil
	if len(attachments) > 0 {
		m.appendNote(fmt.Sprintf("Attaching %d document(s)", len(attachments)))
	}

	m.state = StateWaiting
	m.thinking = components.NewThinkingIndicator(m.session.Character().ID)
	m.refreshViewport(true)

	return m, tea.Batch(
		askCmd(m.session, text, attachments),
		thinkingTickCmd(m.thinking.Spinner.Duration()),
	)
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

func (m Model) handleSlashCommand(input string) (tea.Model, tea.Cmd) {
	cmd, arg := parseSlashCommand(input)

	switch cmd {
	case "help", "h", "?":
		m.showHelp = true
		return m, nil

	case "clear", "c":
		m.clearConversation()
		return m, nil

	case "quit", "q", "exit":
		return m, tea.Quit

	case "character", "char":
		if arg == "" {
			c := m.session.Character()
			m.appendNote(fmt.Sprintf("Current teacher: %s (%s)", c.Name, c.ID))
			m.refreshViewport(true)
			return m, nil
		}
		if m.state == StateWaiting {
			m.appendNote("Finish the current question before switching teachers.")
			m.refreshViewport(true)
			return m, nil
		}
		return m, switchCharacterCmd(m.session, strings.ToLower(arg))

	case "characters", "personas":
		m.appendNote(m.renderCharacterList())
		m.refreshViewport(true)
		return m, nil

	case "attach", "a":
		m.handleAttach(arg)
		m.refreshViewport(true)
		return m, nil

	case "history":
		turns := m.session.History()
		if len(turns) == 0 {
			m.appendNote("No turns retained yet.")
		} else {
			capacity := m.session.MaxTurns()
			bar := styles.RenderProgressBar(12, float64(len(turns))/float64(capacity)*100)
			m.appendNote(fmt.Sprintf("Window [%s] %d/%d turns retained.", bar, len(turns), capacity))
		}
		m.refreshViewport(true)
		return m, nil

	default:
		m.appendNote("Unknown command /" + cmd + ". Try /help.")
		m.refreshViewport(true)
		return m, nil
	}
}

// handleAttach validates and queues an attachment for the next question.
func (m *Model) handleAttach(path string) {
	if path == "" {
		if len(m.pendingAttachments) == 0 {
			m.appendNote("No attachments queued. Usage: /attach <file.pdf|file.txt>")
			return
		}
		m.appendNote("Queued: " + strings.Join(m.pendingAttachments, ", "))
		return
	}

	if _, err := os.Stat(path); err != nil {
		m.appendNote("Cannot read " + path + ": " + err.Error())
		return
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".txt":
		m.pendingAttachments = append(m.pendingAttachments, path)
		m.appendNote("Attached " + filepath.Base(path) + " (sent with your next question)")
	default:
		m.appendNote("Only .pdf and .txt files are supported.")
	}
}

// clearConversation resets both the session window and the transcript.
func (m *Model) clearConversation() {
	m.session.Clear()
	m.entries = nil
	m.pendingAttachments = nil
	m.showWelcome = true
	m.appendNote("Conversation cleared. Fresh chalkboard!")
	m.refreshViewport(false)
}

// renderCharacterList lists the known teachers with the active one marked.
// Custom personas from the session's registry appear after the built-ins.
func (m Model) renderCharacterList() string {
	var b strings.Builder
	b.WriteString("Available teachers:\n")
	active := m.session.Character().ID
	list := persona.List()
	if reg := m.session.Registry(); reg != nil {
		list = reg.All()
	}
	for i, c := range list {
		marker := "  "
		if c.ID == active {
			marker = "* "
		}
		prefix := styles.RenderTreeLine(i == len(list)-1)
		fmt.Fprintf(&b, "%s%s%-14s %s\n", prefix, marker, c.ID, c.Description)
	}
	b.WriteString("Switch with /character <id>")
	return b.String()
}

// =============================================================================
// CHARACTER SWITCH RESULT
// =============================================================================

func (m Model) handleCharacterSwitched(msg CharacterSwitchedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil && msg.Name == "" {
		m.appendNote("Switch failed: " + msg.Err.Error())
		m.refreshViewport(true)
		return m, nil
	}

	// The session already dropped the old conversation window.
	m.entries = nil
	m.theme.SetCharacterAccent(msg.ID)
	m.thinking = components.NewThinkingIndicator(msg.ID)
	m.input.Prompt = msg.Name + "> "

	m.appendNote("Switched to " + msg.Name + " (history cleared)")
	if m.opts.SoundEnabled {
		m.appendSound(msg.Sound)
	}
	if msg.Err != nil {
		m.appendNote("Could not fetch a greeting: " + msg.Err.Error())
	} else if msg.Intro != "" {
		m.appendTurn(model.RoleModel, msg.Intro)
	}

	m.refreshViewport(true)
	return m, nil
}
