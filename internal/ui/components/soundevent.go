// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the chalkboard TUI.
package components

import (
	"path/filepath"

	"github.com/jeranaias/chalkboard-tui/internal/audio"
	"github.com/jeranaias/chalkboard-tui/internal/ui/styles"
)

// =============================================================================
// SOUND EVENT RENDERING
// =============================================================================

// RenderSoundEvent renders a one-line summary of a sound playback result.
// Played clips show the file name; unsupported platforms show a muted notice;
// errors show the reason.
func RenderSoundEvent(theme *styles.Theme, result audio.Result) string {
	switch result.Status {
	case audio.StatusPlayed:
		name := filepath.Base(result.File)
		return theme.SoundPlayed.Render(styles.StatusIndicators.Sound + " " + name)
	case audio.StatusUnsupported:
		return theme.SoundMuted.Render(styles.StatusIndicators.Muted + " sound unavailable on this platform")
	default:
		reason := result.Reason
		if reason == "" {
			reason = "playback failed"
		}
		return theme.SoundFailed.Render(styles.StatusIndicators.Error + " " + reason)
	}
}

// SoundBadge returns a compact status-bar badge for the audio setup.
func SoundBadge(theme *styles.Theme, enabled bool) string {
	if enabled {
		return theme.SuccessStyle.Render("Sound " + styles.StatusIndicators.Sound)
	}
	return theme.WarningStyle.Render("Muted " + styles.StatusIndicators.Muted)
}
