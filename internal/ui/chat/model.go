// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chalkboard-tui/internal/audio"
	"github.com/jeranaias/chalkboard-tui/internal/model"
	"github.com/jeranaias/chalkboard-tui/internal/teacher"
	"github.com/jeranaias/chalkboard-tui/internal/ui/components"
	"github.com/jeranaias/chalkboard-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady   State = iota // Ready for input
	StateWaiting              // Waiting for the teacher's response
)

// =============================================================================
// TRANSCRIPT ENTRIES
// =============================================================================

// entryKind distinguishes what a transcript entry holds.
type entryKind int

const (
	entryTurn   entryKind = iota // a conversation turn
	entrySystem                  // an announcement (switches, clears, errors)
	entrySound                   // a sound playback result
)

// entry is one item in the displayed transcript. The transcript is display
// state only; conversational memory lives in the session's bounded window.
type entry struct {
	kind  entryKind
	turn  model.Turn
	note  string
	sound audio.Result
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Options configures the chat view.
type Options struct {
	Version        string
	ModelName      string
	SoundEnabled   bool
	ShowTimestamps bool
	CompactMode    bool
}

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Teacher session (owns the conversation window and audio)
	session *teacher.Session
	opts    Options

	// Transcript display
	entries     []entry
	showWelcome bool

	// Attachments queued for the next question
	pendingAttachments []string

	// UI components
	viewport viewport.Model
	input    textinput.Model
	thinking components.ThinkingIndicator

	// Key bindings
	keyMap KeyMap

	// Overlays
	showHelp bool

	// Session stats
	exchanges int
	startTime time.Time
}

// New creates a new chat model around an existing teacher session.
func New(theme *styles.Theme, session *teacher.Session, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = session.Character().Name + "> "
	ti.Placeholder = "Ask your teacher..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	theme.SetCharacterAccent(session.Character().ID)

	return Model{
		state:       StateReady,
		theme:       theme,
		session:     session,
		opts:        opts,
		viewport:    vp,
		input:       ti,
		keyMap:      DefaultKeyMap(),
		showWelcome: true,
		thinking:    components.NewThinkingIndicator(session.Character().ID),
		startTime:   time.Now(),
	}
}

// Init requests the teacher's opening greeting.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, introCmd(m.session))
}

// Session exposes the underlying teacher session (for lifecycle sounds).
func (m Model) Session() *teacher.Session {
	return m.session
}

// Exchanges returns the number of completed exchanges this run.
func (m Model) Exchanges() int {
	return m.exchanges
}

// appendTurn adds a conversation turn to the transcript.
func (m *Model) appendTurn(role model.Role, text string) {
	m.entries = append(m.entries, entry{
		kind: entryTurn,
		turn: model.Turn{Role: role, Text: text, Timestamp: time.Now()},
	})
}

// appendNote adds a system announcement to the transcript.
func (m *Model) appendNote(text string) {
	m.entries = append(m.entries, entry{kind: entrySystem, note: text})
}

// appendSound adds a sound playback result to the transcript.
func (m *Model) appendSound(result audio.Result) {
	m.entries = append(m.entries, entry{kind: entrySound, sound: result})
}
