// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the chalkboard TUI.
package components

import (
	"time"

	"github.com/jeranaias/chalkboard-tui/internal/ui/styles"
)

// =============================================================================
// THINKING INDICATOR
// =============================================================================

// thinkingPhrases gives each built-in teacher a flavored waiting line.
// Custom characters get the default.
var thinkingPhrases = map[string]string{
	"baldi":        "Baldi is checking your math...",
	"lebron_james": "LeBron is drawing up a play...",
	"steve":        "Steve is checking the crafting recipe...",
	"villager":     "Hmm... hrmm...",
}

const defaultThinkingPhrase = "Thinking..."

// characterSpinners picks an animation to match the teacher's temperament.
var characterSpinners = map[string]styles.SpinnerConfig{
	"lebron_james": styles.LineSpinner,
	"villager":     styles.DotsSpinner,
}

// ThinkingIndicator renders the animated waiting line shown while a response
// is in flight.
type ThinkingIndicator struct {
	CharacterID string
	Spinner     styles.SpinnerConfig
	Start       time.Time
	frame       int
}

// NewThinkingIndicator creates an indicator for the given character.
func NewThinkingIndicator(characterID string) ThinkingIndicator {
	spinner, ok := characterSpinners[characterID]
	if !ok {
		spinner = styles.ChalkSpinner
	}
	return ThinkingIndicator{
		CharacterID: characterID,
		Spinner:     spinner,
		Start:       time.Now(),
	}
}

// Tick advances the animation by one frame.
func (t *ThinkingIndicator) Tick() {
	t.frame = (t.frame + 1) % len(t.Spinner.Frames)
}

// Phrase returns the character-flavored waiting line.
func (t ThinkingIndicator) Phrase() string {
	if phrase, ok := thinkingPhrases[t.CharacterID]; ok {
		return phrase
	}
	return defaultThinkingPhrase
}

// Render renders the spinner frame, phrase, and elapsed time.
func (t ThinkingIndicator) Render(theme *styles.Theme) string {
	frame := theme.Spinner.Render(t.Spinner.Frames[t.frame])
	phrase := theme.ThinkingText.Render(t.Phrase())

	elapsed := time.Since(t.Start).Round(time.Second)
	if elapsed < time.Second {
		return frame + " " + phrase
	}
	return frame + " " + phrase + " " + theme.ThinkingTime.Render("("+elapsed.String()+")")
}
