// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package persona

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// =============================================================================
// BUILT-IN TESTS
// =============================================================================

func TestGet_Builtins(t *testing.T) {
	for _, id := range []string{"baldi", "lebron_james", "steve", "villager"} {
		c, err := Get(id)
		if err != nil {
			t.Fatalf("Get(%s): %v", id, err)
		}
		if c.ID != id {
			t.Errorf("Get(%s).ID = %q", id, c.ID)
		}
		if c.Prompt == "" {
			t.Errorf("Get(%s) has empty prompt", id)
		}
		// Every shipped persona documents the sound-effect tools.
		for _, tool := range []string{"play_great_job_sound", "play_wrong_sound", "play_mad_sounds"} {
			if !strings.Contains(c.Prompt, tool) {
				t.Errorf("Get(%s) prompt missing tool mention %q", id, tool)
			}
		}
	}
}

func TestGet_Unknown(t *testing.T) {
	if _, err := Get("gandalf"); err == nil {
		t.Error("Get(gandalf) should fail")
	}
}

func TestDefault(t *testing.T) {
	if Default().ID != DefaultID {
		t.Errorf("Default().ID = %q, want %q", Default().ID, DefaultID)
	}
}

func TestList_SortedAndComplete(t *testing.T) {
	list := List()
	if len(list) != 4 {
		t.Fatalf("List() len = %d, want 4", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}

// =============================================================================
// REGISTRY TESTS
// =============================================================================

func TestRegistry_MissingDirIsEmpty(t *testing.T) {
	r := NewRegistry(filepath.Join(t.TempDir(), "nope"))
	if err := r.Reload(); err != nil {
		t.Fatalf("Reload on missing dir: %v", err)
	}
	if len(r.All()) != 4 {
		t.Errorf("All() len = %d, want only built-ins", len(r.All()))
	}
}

func TestRegistry_LoadsCustomPersona(t *testing.T) {
	dir := t.TempDir()
	prompt := "name: Professor Oak\nYou are Professor Oak. Teach biology with Pokémon examples."
	if err := os.WriteFile(filepath.Join(dir, "oak.txt"), []byte(prompt), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry(dir)
	if err := r.Reload(); err != nil {
		t.Fatal(err)
	}

	c, err := r.Get("oak")
	if err != nil {
		t.Fatalf("Get(oak): %v", err)
	}
	if c.Name != "Professor Oak" {
		t.Errorf("Name = %q", c.Name)
	}
	if !strings.HasPrefix(c.Prompt, "You are Professor Oak.") {
		t.Errorf("Prompt = %q", c.Prompt)
	}
	if !c.Custom {
		t.Error("loaded persona not marked custom")
	}
}

func TestRegistry_NameHeaderOptional(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "coach.txt"), []byte("You are a gym coach."), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry(dir)
	if err := r.Reload(); err != nil {
		t.Fatal(err)
	}

	c, err := r.Get("coach")
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "coach" {
		t.Errorf("Name = %q, want filename fallback", c.Name)
	}
}

func TestRegistry_BuiltinNotShadowed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "baldi.txt"), []byte("imposter"), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry(dir)
	if err := r.Reload(); err != nil {
		t.Fatal(err)
	}

	c, err := r.Get("baldi")
	if err != nil {
		t.Fatal(err)
	}
	if c.Custom || c.Prompt == "imposter" {
		t.Error("custom file shadowed a built-in persona")
	}
}

func TestRegistry_ReloadDropsRemoved(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "temp.txt")
	if err := os.WriteFile(path, []byte("temporary persona"), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry(dir)
	if err := r.Reload(); err != nil {
		t.Fatal(err)
	}
	if !r.Has("temp") {
		t.Fatal("persona not loaded")
	}

	os.Remove(path)
	if err := r.Reload(); err != nil {
		t.Fatal(err)
	}
	if r.Has("temp") {
		t.Error("removed persona survived reload")
	}
}

func TestRegistry_EmptyFileSkipped(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "blank.txt"), []byte("  \n "), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry(dir)
	if err := r.Reload(); err != nil {
		t.Fatal(err)
	}
	if r.Has("blank") {
		t.Error("empty persona file should be skipped")
	}
}
