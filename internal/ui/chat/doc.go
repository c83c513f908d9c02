// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat view, the default full-screen
// interface for talking to a teacher character.
//
// The package follows the standard Elm-style split:
//
//   - model.go: the Model struct and constructor
//   - update.go: message handling and key routing
//   - view.go: rendering
//   - commands.go: tea.Cmd factories that call the teacher session off the
//     UI goroutine, plus slash command parsing
//   - messages.go: the Bubble Tea message types
//   - keys.go: key bindings
//
// Remote calls never block the UI: askCmd and friends run the session call
// in a command goroutine and deliver the outcome as a message.
package chat
