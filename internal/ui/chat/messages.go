// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the Bubble Tea message types used by the chat interface.
// All remote work happens in command goroutines; these messages carry the
// outcomes back to Update.
package chat

import (
	"time"

	"github.com/jeranaias/chalkboard-tui/internal/audio"
)

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// IntroMsg delivers the teacher's opening greeting.
type IntroMsg struct {
	Text string
	Err  error
}

// AskCompleteMsg delivers the outcome of a question.
type AskCompleteMsg struct {
	Text string
	Err  error
}

// CharacterSwitchedMsg confirms a /character switch. On success the
// conversation has already been reset and Intro holds the new teacher's
// greeting. Sound carries the new character's startup sound result.
type CharacterSwitchedMsg struct {
	ID    string
	Name  string
	Intro string
	Sound audio.Result
	Err   error
}

// =============================================================================
// ANIMATION MESSAGES
// =============================================================================

// thinkingTickMsg advances the thinking spinner while a response is in flight.
type thinkingTickMsg struct {
	Time time.Time
}
