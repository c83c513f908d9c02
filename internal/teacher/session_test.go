// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package teacher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jeranaias/chalkboard-tui/internal/audio"
	"github.com/jeranaias/chalkboard-tui/internal/persona"
)

// silentPlayer pretends every play succeeds.
type silentPlayer struct{ played []string }

func (p *silentPlayer) Play(path string, _ bool) error {
	p.played = append(p.played, path)
	return nil
}

func (p *silentPlayer) Available() bool { return true }

func testOpts() SessionOptions {
	return SessionOptions{
		APIKey:       "test-key",
		Model:        "gemini-flash-latest",
		Temperature:  0.8,
		TopP:         0.95,
		TopK:         40,
		MaxExchanges: 10,
	}
}

func newTextServer(t *testing.T, text string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"` +
			text + `"}]},"finishReason":"STOP"}]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewSessionDefaultsCharacter(t *testing.T) {
	mgr := audio.NewManagerWithPlayer(t.TempDir(), &silentPlayer{})
	s, err := NewSession(testOpts(), "", mgr, nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.Character().ID != persona.DefaultID {
		t.Errorf("default character = %q", s.Character().ID)
	}
	if s.ID() == "" {
		t.Error("session should have an ID")
	}
}

func TestNewSessionUnknownCharacter(t *testing.T) {
	mgr := audio.NewManagerWithPlayer(t.TempDir(), &silentPlayer{})
	if _, err := NewSession(testOpts(), "no-such-teacher", mgr, nil); err == nil {
		t.Fatal("expected error for unknown character")
	}
}

func TestSwitchCharacterResetsHistory(t *testing.T) {
	srv := newTextServer(t, "Hi there!")
	mgr := audio.NewManagerWithPlayer(t.TempDir(), &silentPlayer{})
	s, err := NewSession(testOpts(), "baldi", mgr, nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	s.WithBaseURL(srv.URL)

	if _, err := s.Ask(context.Background(), "hello", nil); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if len(s.History()) == 0 {
		t.Fatal("expected history before switch")
	}

	if err := s.SwitchCharacter("steve"); err != nil {
		t.Fatalf("SwitchCharacter failed: %v", err)
	}
	if s.Character().ID != "steve" {
		t.Errorf("active character = %q", s.Character().ID)
	}
	if len(s.History()) != 0 {
		t.Error("history must not survive a character switch")
	}
}

func TestSessionUsesRegistryCharacters(t *testing.T) {
	dir := t.TempDir()
	reg := persona.NewRegistry(dir)
	mgr := audio.NewManagerWithPlayer(t.TempDir(), &silentPlayer{})

	// Built-ins resolve through the registry too.
	s, err := NewSession(testOpts(), "villager", mgr, reg)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	if s.Character().Name == "" {
		t.Error("expected a named character")
	}
}

func TestIntroGoesThroughHistory(t *testing.T) {
	srv := newTextServer(t, "Welcome to class!")
	mgr := audio.NewManagerWithPlayer(t.TempDir(), &silentPlayer{})
	s, err := NewSession(testOpts(), "baldi", mgr, nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	s.WithBaseURL(srv.URL)

	greeting, err := s.Intro(context.Background())
	if err != nil {
		t.Fatalf("Intro failed: %v", err)
	}
	if greeting != "Welcome to class!" {
		t.Errorf("greeting = %q", greeting)
	}
	hist := s.History()
	if len(hist) != 2 || hist[0].Text != IntroPrompt {
		t.Errorf("intro exchange should be recorded, history: %+v", hist)
	}
}

func TestLifecycleSounds(t *testing.T) {
	mgr := audio.NewManagerWithPlayer(t.TempDir(), &silentPlayer{})
	s, err := NewSession(testOpts(), "baldi", mgr, nil)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	// Assets are missing in the temp dir, so the result reports an error
	// rather than panicking; lifecycle sounds are best-effort.
	if res := s.PlayStartup(); res.Status == "" {
		t.Error("PlayStartup should always return a structured result")
	}
	if res := s.PlayShutdown(); res.Status == "" {
		t.Error("PlayShutdown should always return a structured result")
	}
}
