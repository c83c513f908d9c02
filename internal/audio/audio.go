// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package audio provides classroom sound-effect playback and the dispatch
// table that maps remote tool calls onto sound events.
//
// The dispatcher never returns a Go error: every outcome — including an
// unknown tool name or a missing asset — is a structured Result so the
// generation client always has a well-formed payload to feed back to the
// remote model.
package audio

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
)

// =============================================================================
// SOUND EVENTS
// =============================================================================

// SoundFiles maps sound-event keys to asset filenames.
var SoundFiles = map[string]string{
	"app_start":    "app_start.wav",
	"window_close": "window_close.wav",
	"great_job":    "great_job.wav",
	"wrong":        "wrong.wav",
	"mad_sounds":   "mad_sounds.wav",
}

// FunctionSoundMap maps remote tool-call names to sound-event keys.
// This is the closed set of tools declared to the remote model.
var FunctionSoundMap = map[string]string{
	"play_great_job_sound": "great_job",
	"play_wrong_sound":     "wrong",
	"play_mad_sounds":      "mad_sounds",
}

// ToolNames returns the declared tool names in a stable order.
func ToolNames() []string {
	return []string{"play_great_job_sound", "play_wrong_sound", "play_mad_sounds"}
}

// =============================================================================
// RESULT TYPE
// =============================================================================

// Result statuses.
const (
	StatusPlayed      = "played"
	StatusUnsupported = "unsupported"
	StatusError       = "error"
)

// Result is the structured outcome of a playback request. It doubles as the
// function-response payload fed back to the remote model.
type Result struct {
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
	File     string `json:"file,omitempty"`
	Platform string `json:"platform,omitempty"`
	Blocking string `json:"blocking,omitempty"`
}

// =============================================================================
// PLAYER INTERFACE
// =============================================================================

// Player performs the actual platform playback of one audio file.
type Player interface {
	// Play plays the file at path, blocking until done when blocking is set.
	Play(path string, blocking bool) error
	// Available reports whether this platform can play audio at all.
	Available() bool
}

// MutedPlayer is a Player that reports no audio support. Use it when sounds
// are disabled in configuration so tool calls still get structured results.
type MutedPlayer struct{}

// Play never plays anything.
func (MutedPlayer) Play(string, bool) error { return nil }

// Available always reports false.
func (MutedPlayer) Available() bool { return false }

// =============================================================================
// MANAGER
// =============================================================================

// Manager resolves sound events to asset paths and serializes playback.
//
// It is constructed explicitly and passed to whatever needs it; there is no
// package-level instance. Character-specific assets take precedence over the
// shared assets root.
type Manager struct {
	assetsDir    string
	characterDir string
	player       Player
	mu           sync.Mutex
}

// NewManager creates a manager over the given assets root using the
// platform's default player.
func NewManager(assetsDir string) *Manager {
	return NewManagerWithPlayer(assetsDir, newPlatformPlayer())
}

// NewManagerWithPlayer creates a manager with an explicit player.
func NewManagerWithPlayer(assetsDir string, player Player) *Manager {
	return &Manager{
		assetsDir: assetsDir,
		player:    player,
	}
}

// SetCharacterDir sets the per-character audio subdirectory, relative to the
// assets root. An empty value disables the character-specific lookup.
func (m *Manager) SetCharacterDir(subdir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.characterDir = subdir
}

// PlayEvent plays a named sound event and returns metadata for logging and
// tool feedback. Unknown keys and missing assets come back as error results.
func (m *Manager) PlayEvent(soundKey string, blocking bool) Result {
	filename, ok := SoundFiles[soundKey]
	if !ok {
		return Result{
			Status: StatusError,
			Reason: fmt.Sprintf("Unknown sound key '%s'", soundKey),
		}
	}
	return m.playFile(filename, blocking)
}

// HandleFunctionCall plays the audio mapped from a remote tool call and
// returns the result to feed back as the function response.
func (m *Manager) HandleFunctionCall(functionName string) Result {
	soundKey, ok := FunctionSoundMap[functionName]
	if !ok {
		return Result{
			Status: StatusError,
			Reason: fmt.Sprintf("Unsupported function '%s'", functionName),
		}
	}
	return m.PlayEvent(soundKey, false)
}

// playFile resolves the asset path and plays it under the manager's lock so
// overlapping tool calls do not interleave playback.
func (m *Manager) playFile(filename string, blocking bool) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.resolvePath(filename)
	if path == "" {
		return Result{
			Status: StatusError,
			Reason: fmt.Sprintf("Missing audio asset '%s'", filename),
		}
	}

	meta := Result{
		File:     filename,
		Platform: runtime.GOOS,
		Blocking: yesNo(blocking),
	}

	if m.player == nil || !m.player.Available() {
		meta.Status = StatusUnsupported
		return meta
	}

	if err := m.player.Play(path, blocking); err != nil {
		meta.Status = StatusError
		meta.Reason = err.Error()
		return meta
	}

	meta.Status = StatusPlayed
	return meta
}

// resolvePath finds the asset, preferring the character directory and
// falling back to the assets root. Returns "" when neither exists.
func (m *Manager) resolvePath(filename string) string {
	if m.characterDir != "" {
		charPath := filepath.Join(m.assetsDir, m.characterDir, filename)
		if fileExists(charPath) {
			return charPath
		}
	}
	rootPath := filepath.Join(m.assetsDir, filename)
	if fileExists(rootPath) {
		return rootPath
	}
	return ""
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
