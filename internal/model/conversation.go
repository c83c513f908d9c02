// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and turns.
package model

import (
	"time"
)

// DefaultMaxExchanges is the default number of question/answer exchanges to
// retain when no capacity is configured.
const DefaultMaxExchanges = 10

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the bounded turn history for one session.
//
// Capacity is fixed at construction: maxExchanges question/answer pairs, so
// at most 2*maxExchanges turns. Appending beyond capacity evicts the oldest
// turn first — a true sliding window, never a snapshot-and-clear.
//
// Conversation is not safe for concurrent use; the orchestrator owns it
// exclusively and callers must serialize access.
type Conversation struct {
	// Identity
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Turns, insertion order = chronological order.
	Turns []Turn `json:"turns"`

	maxTurns int
}

// NewConversation creates a conversation retaining maxExchanges exchanges.
// A non-positive maxExchanges falls back to DefaultMaxExchanges.
func NewConversation(maxExchanges int) *Conversation {
	if maxExchanges <= 0 {
		maxExchanges = DefaultMaxExchanges
	}
	return &Conversation{
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Turns:     make([]Turn, 0, maxExchanges*2),
		maxTurns:  maxExchanges * 2,
	}
}

// =============================================================================
// TURN MANAGEMENT
// =============================================================================

// Append adds a turn to the history, evicting the oldest turn when the
// window is full.
func (c *Conversation) Append(t Turn) {
	if len(c.Turns) >= c.maxTurns {
		evict := len(c.Turns) - c.maxTurns + 1
		c.Turns = append(c.Turns[:0], c.Turns[evict:]...)
	}
	c.Turns = append(c.Turns, t)
	c.UpdatedAt = time.Now()
	c.updateTitle()
}

// AppendUser creates and appends a user turn, returning it.
func (c *Conversation) AppendUser(text string) Turn {
	t := NewUserTurn(text)
	c.Append(t)
	return t
}

// AppendModel creates and appends a model turn, returning it.
func (c *Conversation) AppendModel(text string) Turn {
	t := NewModelTurn(text)
	c.Append(t)
	return t
}

// History returns the retained turns, oldest first. The returned slice is a
// copy; mutating it does not affect the window.
func (c *Conversation) History() []Turn {
	out := make([]Turn, len(c.Turns))
	copy(out, c.Turns)
	return out
}

// Last returns the most recent turn and true, or a zero turn and false.
func (c *Conversation) Last() (Turn, bool) {
	if len(c.Turns) == 0 {
		return Turn{}, false
	}
	return c.Turns[len(c.Turns)-1], true
}

// LastModel returns the most recent model turn, if any.
func (c *Conversation) LastModel() (Turn, bool) {
	for i := len(c.Turns) - 1; i >= 0; i-- {
		if c.Turns[i].Role == RoleModel {
			return c.Turns[i], true
		}
	}
	return Turn{}, false
}

// Len returns the number of retained turns.
func (c *Conversation) Len() int {
	return len(c.Turns)
}

// MaxTurns returns the capacity of the window in turns.
func (c *Conversation) MaxTurns() int {
	return c.maxTurns
}

// IsEmpty returns true if no turns are retained.
func (c *Conversation) IsEmpty() bool {
	return len(c.Turns) == 0
}

// Clear removes all retained turns. The capacity is unchanged.
func (c *Conversation) Clear() {
	c.Turns = c.Turns[:0]
	c.UpdatedAt = time.Now()
}

// =============================================================================
// TOKEN TRACKING
// =============================================================================

// EstimateTokens estimates the total token count of the retained history.
func (c *Conversation) EstimateTokens() int {
	total := 0
	for _, t := range c.Turns {
		total += t.EstimateTokens()
		// Overhead for turn structure (~4 tokens per turn)
		total += 4
	}
	return total
}

// =============================================================================
// TITLE MANAGEMENT
// =============================================================================

// updateTitle auto-generates a title from the first user turn if not set.
func (c *Conversation) updateTitle() {
	if c.Title != "" {
		return
	}
	for _, t := range c.Turns {
		if t.Role == RoleUser && !t.IsEmpty() {
			c.Title = t.Preview(50)
			return
		}
	}
}

// GetTitle returns the conversation title or a default.
func (c *Conversation) GetTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return "New Lesson"
}
