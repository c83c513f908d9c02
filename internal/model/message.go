// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and turns.
package model

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the speaker of a turn.
type Role string

const (
	// RoleUser is a turn authored by the student.
	RoleUser Role = "user"
	// RoleModel is a turn authored by the remote model.
	RoleModel Role = "model"
	// RoleTool is a synthetic turn carrying a tool-call result back to the
	// remote model. Tool turns never enter the retained history; they exist
	// only inside the generation client's continuation loop.
	RoleTool Role = "tool"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleModel:
		return "Teacher"
	case RoleTool:
		return "Sound"
	default:
		return string(r)
	}
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn is one role-tagged utterance in a conversation.
//
// Text is trimmed of leading/trailing whitespace at creation and the struct
// is never mutated afterwards; eviction from the history window is the only
// way a turn goes away.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTurn creates a turn with a generated ID and trimmed text.
func NewTurn(role Role, text string) Turn {
	return Turn{
		ID:        generateID(),
		Role:      role,
		Text:      strings.TrimSpace(text),
		Timestamp: time.Now(),
	}
}

// NewUserTurn creates a new user turn.
func NewUserTurn(text string) Turn {
	return NewTurn(RoleUser, text)
}

// NewModelTurn creates a new model turn.
func NewModelTurn(text string) Turn {
	return NewTurn(RoleModel, text)
}

// IsEmpty returns true if the turn carries no text.
func (t Turn) IsEmpty() bool {
	return t.Text == ""
}

// Preview returns a truncated preview of the turn text.
// Uses rune-based truncation to handle Unicode correctly.
func (t Turn) Preview(maxLen int) string {
	runes := []rune(t.Text)
	if len(runes) <= maxLen {
		return t.Text
	}
	return string(runes[:maxLen-3]) + "..."
}

// EstimateTokens gives a rough estimate of token count.
// Uses the approximation of ~4 characters per token.
func (t Turn) EstimateTokens() int {
	return (len(t.Text) + 3) / 4
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique turn ID.
func generateID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "turn_" + hex.EncodeToString(bytes)
}
