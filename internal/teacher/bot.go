// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package teacher orchestrates one tutoring conversation: it owns the
// bounded history window and drives the remote generator.
package teacher

import (
	"context"

	"github.com/jeranaias/chalkboard-tui/internal/model"
)

// Generator produces a model reply for the given history. Implementations
// run their own tool-call resolution; by the time Generate returns, any
// side effects have already happened.
type Generator interface {
	Generate(ctx context.Context, turns []model.Turn, attachments []string) (string, error)
}

// Orchestrator pairs a conversation window with a generator.
//
// The ordering contract is strict: the user turn is committed to history
// before the remote call, and it stays committed even when the call fails.
// A failed exchange leaves a dangling user turn; the next submission simply
// carries it along.
type Orchestrator struct {
	conversation *model.Conversation
	generator    Generator
}

// NewOrchestrator creates an orchestrator with a fresh conversation.
// maxExchanges bounds the retained history (two turns per exchange).
func NewOrchestrator(generator Generator, maxExchanges int) *Orchestrator {
	return &Orchestrator{
		conversation: model.NewConversation(maxExchanges),
		generator:    generator,
	}
}

// Ask submits one user message and returns the teacher's reply.
//
// Attachments are request-scoped: they ride this submission only and are
// never written into history.
func (o *Orchestrator) Ask(ctx context.Context, text string, attachments []string) (string, error) {
	o.conversation.AppendUser(text)

	reply, err := o.generator.Generate(ctx, o.conversation.History(), attachments)
	if err != nil {
		return "", err
	}

	o.conversation.AppendModel(reply)
	return reply, nil
}

// History returns a copy of the retained turns.
func (o *Orchestrator) History() []model.Turn {
	return o.conversation.History()
}

// Conversation exposes the underlying window for display code.
func (o *Orchestrator) Conversation() *model.Conversation {
	return o.conversation
}

// Clear drops all retained turns.
func (o *Orchestrator) Clear() {
	o.conversation.Clear()
}
