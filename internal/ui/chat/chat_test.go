// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chalkboard-tui/internal/audio"
	"github.com/jeranaias/chalkboard-tui/internal/model"
	"github.com/jeranaias/chalkboard-tui/internal/persona"
	"github.com/jeranaias/chalkboard-tui/internal/teacher"
	"github.com/jeranaias/chalkboard-tui/internal/ui/styles"
)

// newTestModel builds a chat model around a muted session. No network or
// audio calls happen unless a command is actually executed.
func newTestModel(t *testing.T) Model {
	t.Helper()

	mgr := audio.NewManagerWithPlayer(t.TempDir(), audio.MutedPlayer{})
	session, err := teacher.NewSession(teacher.SessionOptions{
		APIKey:       "test-key",
		Model:        "gemini-flash-latest",
		MaxExchanges: 10,
	}, "baldi", mgr, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	m := New(styles.NewTheme(), session, Options{
		Version:   "1.0.0",
		ModelName: "gemini-flash-latest",
	})
	m = m.handleResize(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

// =============================================================================
// SLASH COMMAND PARSING
// =============================================================================

func TestParseSlashCommand(t *testing.T) {
	tests := []struct {
		input    string
		wantCmd  string
		wantArg  string
	}{
		{"/help", "help", ""},
		{"/character baldi", "character", "baldi"},
		{"/CHARACTER Steve", "character", "Steve"},
		{"/attach /tmp/Notes File.pdf", "attach", "/tmp/Notes File.pdf"},
		{"  /clear  ", "clear", ""},
		{"/", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, arg := parseSlashCommand(tt.input)
			if cmd != tt.wantCmd || arg != tt.wantArg {
				t.Errorf("parseSlashCommand(%q) = (%q, %q), want (%q, %q)",
					tt.input, cmd, arg, tt.wantCmd, tt.wantArg)
			}
		})
	}
}

// =============================================================================
// MODEL CONSTRUCTION
// =============================================================================

func TestNew(t *testing.T) {
	m := newTestModel(t)

	if m.state != StateReady {
		t.Errorf("initial state = %v, want StateReady", m.state)
	}
	if !m.showWelcome {
		t.Error("welcome screen should show initially")
	}
	if got := m.input.Prompt; !strings.HasPrefix(got, "Baldi") {
		t.Errorf("input prompt = %q, want Baldi prefix", got)
	}
}

func TestView_RendersWithoutPanic(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	if !strings.Contains(out, "Baldi") {
		t.Errorf("view should show teacher name, got %q", out[:min(len(out), 200)])
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// =============================================================================
// UPDATE HANDLING
// =============================================================================

func TestUpdate_AskComplete(t *testing.T) {
	m := newTestModel(t)
	m.state = StateWaiting

	updated, _ := m.Update(AskCompleteMsg{Text: "Four! GREAT JOB!"})
	got := updated.(Model)

	if got.state != StateReady {
		t.Errorf("state after completion = %v, want StateReady", got.state)
	}
	if got.exchanges != 1 {
		t.Errorf("exchanges = %d, want 1", got.exchanges)
	}
	last := got.entries[len(got.entries)-1]
	if last.kind != entryTurn || last.turn.Role != model.RoleModel {
		t.Errorf("last entry should be a teacher turn, got %+v", last)
	}
}

func TestUpdate_AskError(t *testing.T) {
	m := newTestModel(t)
	m.state = StateWaiting

	updated, _ := m.Update(AskCompleteMsg{Err: errors.New("request timed out")})
	got := updated.(Model)

	if got.state != StateReady {
		t.Errorf("state after error = %v, want StateReady", got.state)
	}
	if got.exchanges != 0 {
		t.Error("failed exchange should not count")
	}
	last := got.entries[len(got.entries)-1]
	if last.kind != entrySystem || !strings.Contains(last.note, "request timed out") {
		t.Errorf("error should land as a system note, got %+v", last)
	}
}

func TestUpdate_Intro(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(IntroMsg{Text: "Oh hi! Welcome to class!"})
	got := updated.(Model)

	if len(got.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(got.entries))
	}
	if got.entries[0].turn.Text != "Oh hi! Welcome to class!" {
		t.Errorf("intro text = %q", got.entries[0].turn.Text)
	}
}

func TestUpdate_ThinkingTickOnlyWhileWaiting(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(thinkingTickMsg{})
	if cmd != nil {
		t.Error("tick while ready should not reschedule")
	}

	m.state = StateWaiting
	_, cmd = m.Update(thinkingTickMsg{})
	if cmd == nil {
		t.Error("tick while waiting should reschedule")
	}
}

// =============================================================================
// SLASH COMMAND BEHAVIOR
// =============================================================================

func TestSlashCommand_Clear(t *testing.T) {
	m := newTestModel(t)
	m.appendTurn(model.RoleUser, "hello")
	m.exchanges = 2

	updated, _ := m.handleSlashCommand("/clear")
	got := updated.(Model)

	// Only the "cleared" note survives.
	if len(got.entries) != 1 || got.entries[0].kind != entrySystem {
		t.Errorf("clear should leave one system note, got %+v", got.entries)
	}
	if len(got.session.History()) != 0 {
		t.Error("session history should be empty after clear")
	}
}

func TestSlashCommand_CharactersList(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.handleSlashCommand("/characters")
	got := updated.(Model)

	note := got.entries[len(got.entries)-1].note
	for _, id := range []string{"baldi", "lebron_james", "steve", "villager"} {
		if !strings.Contains(note, id) {
			t.Errorf("character list missing %q: %s", id, note)
		}
	}
	if !strings.Contains(note, "* baldi") {
		t.Errorf("active character should be marked: %s", note)
	}
}

func TestSlashCommand_CharactersListIncludesCustom(t *testing.T) {
	dir := t.TempDir()
	prompt := []byte("name: Coach Carter\nYou are a strict but caring basketball coach.")
	if err := os.WriteFile(filepath.Join(dir, "coach.txt"), prompt, 0o644); err != nil {
		t.Fatal(err)
	}
	registry := persona.NewRegistry(dir)
	if err := registry.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	mgr := audio.NewManagerWithPlayer(t.TempDir(), audio.MutedPlayer{})
	session, err := teacher.NewSession(teacher.SessionOptions{
		APIKey:       "test-key",
		Model:        "gemini-flash-latest",
		MaxExchanges: 10,
	}, "baldi", mgr, registry)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	m := New(styles.NewTheme(), session, Options{
		Version:   "1.0.0",
		ModelName: "gemini-flash-latest",
	})

	updated, _ := m.handleSlashCommand("/characters")
	got := updated.(Model)

	note := got.entries[len(got.entries)-1].note
	if !strings.Contains(note, "coach") {
		t.Errorf("custom persona should be listed: %s", note)
	}
	if !strings.Contains(note, "* baldi") {
		t.Errorf("active built-in should stay marked: %s", note)
	}
}

func TestSlashCommand_CharacterShowsCurrent(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.handleSlashCommand("/character")
	got := updated.(Model)

	note := got.entries[len(got.entries)-1].note
	if !strings.Contains(note, "Baldi") {
		t.Errorf("bare /character should show current teacher: %s", note)
	}
}

func TestSlashCommand_History(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.handleSlashCommand("/history")
	got := updated.(Model)

	note := got.entries[len(got.entries)-1].note
	if !strings.Contains(note, "No turns retained") {
		t.Errorf("empty session /history note = %q", note)
	}
}

func TestSlashCommand_Unknown(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.handleSlashCommand("/dance")
	got := updated.(Model)

	note := got.entries[len(got.entries)-1].note
	if !strings.Contains(note, "/dance") {
		t.Errorf("unknown command should be echoed: %s", note)
	}
}

// =============================================================================
// ATTACHMENTS
// =============================================================================

func TestHandleAttach(t *testing.T) {
	m := newTestModel(t)

	dir := t.TempDir()
	pdf := filepath.Join(dir, "worksheet.pdf")
	if err := os.WriteFile(pdf, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	png := filepath.Join(dir, "photo.png")
	if err := os.WriteFile(png, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	m.handleAttach(pdf)
	if len(m.pendingAttachments) != 1 {
		t.Fatalf("pdf should queue, got %v", m.pendingAttachments)
	}

	m.handleAttach(png)
	if len(m.pendingAttachments) != 1 {
		t.Errorf("png should be rejected, got %v", m.pendingAttachments)
	}

	m.handleAttach(filepath.Join(dir, "missing.txt"))
	if len(m.pendingAttachments) != 1 {
		t.Errorf("missing file should be rejected, got %v", m.pendingAttachments)
	}
}

// =============================================================================
// CHARACTER SWITCH RESULT
// =============================================================================

func TestHandleCharacterSwitched(t *testing.T) {
	m := newTestModel(t)
	m.appendTurn(model.RoleUser, "old message")

	updated, _ := m.Update(CharacterSwitchedMsg{
		ID:    "steve",
		Name:  "Steve",
		Intro: "Hey! Let's mine some knowledge!",
		Sound: audio.Result{Status: audio.StatusUnsupported},
	})
	got := updated.(Model)

	if !strings.HasPrefix(got.input.Prompt, "Steve") {
		t.Errorf("prompt should follow the new teacher: %q", got.input.Prompt)
	}

	var sawSwitch, sawIntro, sawOld bool
	for _, e := range got.entries {
		if e.kind == entrySystem && strings.Contains(e.note, "Switched to Steve") {
			sawSwitch = true
		}
		if e.kind == entryTurn && strings.Contains(e.turn.Text, "mine some knowledge") {
			sawIntro = true
		}
		if e.kind == entryTurn && strings.Contains(e.turn.Text, "old message") {
			sawOld = true
		}
	}
	if !sawSwitch || !sawIntro {
		t.Errorf("switch announcement or intro missing: %+v", got.entries)
	}
	if sawOld {
		t.Error("old transcript should be dropped on switch")
	}
}

func TestHandleCharacterSwitched_Error(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(CharacterSwitchedMsg{
		ID:  "socrates",
		Err: errors.New("unknown character: socrates"),
	})
	got := updated.(Model)

	note := got.entries[len(got.entries)-1].note
	if !strings.Contains(note, "socrates") {
		t.Errorf("switch failure should surface the error: %s", note)
	}
}
