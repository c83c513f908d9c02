// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package teacher

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jeranaias/chalkboard-tui/internal/audio"
	"github.com/jeranaias/chalkboard-tui/internal/gemini"
	"github.com/jeranaias/chalkboard-tui/internal/model"
	"github.com/jeranaias/chalkboard-tui/internal/persona"
)

// IntroPrompt is the hidden first message that kicks off a lesson: the
// teacher greets the student before any real input arrives.
const IntroPrompt = "Introduce yourself to your new student and invite them to ask " +
	"their first question."

// SessionOptions configures a tutoring session.
type SessionOptions struct {
	APIKey       string
	Model        string
	Temperature  float64
	TopP         float64
	TopK         int
	MaxExchanges int
}

// Session is the controller for one tutoring run: it binds the active
// character, the audio manager, and the orchestrator, and rebuilds the
// generation stack when the character changes.
//
// The client is bound to one system instruction, so a character switch
// means a new client and a fresh conversation.
type Session struct {
	id           string
	opts         SessionOptions
	audioManager *audio.Manager
	registry     *persona.Registry
	character    persona.Character
	client       *gemini.Client
	orchestrator *Orchestrator
	baseURL      string
}

// NewSession creates a session with the given character active. The audio
// manager and persona registry come from the caller; a session never
// reaches for globals.
func NewSession(opts SessionOptions, characterID string, audioManager *audio.Manager, registry *persona.Registry) (*Session, error) {
	s := &Session{
		id:           uuid.New().String(),
		opts:         opts,
		audioManager: audioManager,
		registry:     registry,
	}
	if err := s.SwitchCharacter(characterID); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Character returns the active persona.
func (s *Session) Character() persona.Character {
	return s.character
}

// Registry returns the persona registry the session resolves characters
// against, or nil when the session runs on built-ins only.
func (s *Session) Registry() *persona.Registry {
	return s.registry
}

// WithBaseURL points the generation client at a custom endpoint.
func (s *Session) WithBaseURL(url string) *Session {
	s.baseURL = url
	s.rebuild()
	return s
}

// SwitchCharacter activates the named persona, pointing the audio manager
// at its sound directory and rebuilding the generation stack. History does
// not survive a switch: the new teacher starts with a clean slate.
func (s *Session) SwitchCharacter(id string) error {
	char, err := s.lookup(id)
	if err != nil {
		return err
	}
	s.character = char
	s.audioManager.SetCharacterDir(char.AudioDir)
	s.rebuild()
	return nil
}

// lookup resolves a character through the registry when one is configured,
// falling back to the built-in set.
func (s *Session) lookup(id string) (persona.Character, error) {
	if id == "" {
		return persona.Default(), nil
	}
	if s.registry != nil {
		return s.registry.Get(id)
	}
	return persona.Get(id)
}

// rebuild constructs a fresh client and orchestrator for the active
// character.
func (s *Session) rebuild() {
	client := gemini.NewClient(s.opts.APIKey, s.character.Prompt, gemini.Options{
		Model:       s.opts.Model,
		Temperature: s.opts.Temperature,
		TopP:        s.opts.TopP,
		TopK:        s.opts.TopK,
	}, s.audioManager)
	if s.baseURL != "" {
		client = client.WithBaseURL(s.baseURL)
	}
	s.client = client
	s.orchestrator = NewOrchestrator(client, s.opts.MaxExchanges)
}

// Ask submits one student message and returns the teacher's reply.
func (s *Session) Ask(ctx context.Context, text string, attachments []string) (string, error) {
	return s.orchestrator.Ask(ctx, text, attachments)
}

// Intro asks the active teacher to greet the student. The greeting goes
// through the normal exchange path so it lands in history like any other
// turn.
func (s *Session) Intro(ctx context.Context) (string, error) {
	reply, err := s.orchestrator.Ask(ctx, IntroPrompt, nil)
	if err != nil {
		return "", fmt.Errorf("intro failed: %w", err)
	}
	return reply, nil
}

// History returns a copy of the retained turns.
func (s *Session) History() []model.Turn {
	return s.orchestrator.History()
}

// MaxTurns returns the capacity of the conversation window in turns.
func (s *Session) MaxTurns() int {
	return s.orchestrator.Conversation().MaxTurns()
}

// Clear drops the conversation.
func (s *Session) Clear() {
	s.orchestrator.Clear()
}

// PlayStartup plays the application start sound. Fire-and-forget: the
// result is returned for logging but startup never blocks on audio.
func (s *Session) PlayStartup() audio.Result {
	return s.audioManager.PlayEvent("app_start", false)
}

// PlayShutdown plays the window-close sound, blocking so it finishes
// before the process exits.
func (s *Session) PlayShutdown() audio.Result {
	return s.audioManager.PlayEvent("window_close", true)
}
