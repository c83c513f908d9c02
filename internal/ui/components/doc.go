// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the chalkboard TUI.
//
// Each component is a pure renderer: it takes data and a theme and returns a
// styled string. State lives in the chat model, not here.
//
//   - message.go: user/teacher/system message bubbles with optional timestamps
//   - codeblock.go: chroma-backed syntax highlighting for fenced code blocks
//   - spinner.go: the "teacher is thinking" indicator with per-character phrases
//   - soundevent.go: rendered lines for sound effect playback results
//   - welcome.go: the startup welcome box
//   - statusbar.go: the bottom status bar with shortcuts and session info
package components
