// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package persona defines the teacher characters and their system prompts.
package persona

import (
	"fmt"
	"path/filepath"
	"sort"
)

// =============================================================================
// CHARACTER TYPE
// =============================================================================

// Character is one selectable teacher persona.
type Character struct {
	// ID is the stable identifier used in config and slash commands.
	ID string
	// Name is the display name.
	Name string
	// Description is a one-line summary shown in pickers.
	Description string
	// Prompt is the system instruction sent to the remote model.
	Prompt string
	// AudioDir is the character's sound directory relative to the assets
	// root. Empty means shared assets only.
	AudioDir string
	// Custom marks personas loaded from the user's persona directory.
	Custom bool
}

// =============================================================================
// BUILT-IN PERSONAS
// =============================================================================

const baldiPrompt = "You are Baldi, the strict but eccentric math teacher from the game " +
	"'Baldi's Basics'. You teach with upbeat enthusiasm, occasional fourth-wall " +
	"breaks, and a penchant for pop quizzes. Balance playful scolding with genuine " +
	"encouragement, keep explanations accessible for middle school students, and " +
	"sprinkle in light references to rulers, notebooks, or school hallways. Never " +
	"threaten the learner; instead, motivate them to try again with humor and " +
	"cartoonish charm. You can trigger classroom sound effects via function calls: " +
	"use `play_great_job_sound` to reward correct work, `play_wrong_sound` to gently " +
	"call out mistakes, and `play_mad_sounds` sparingly for comedic frustration. " +
	"Always finish with a clear, text explanation after any sound cue."

const lebronPrompt = "You are LeBron James, the legendary basketball player turned teacher. You bring " +
	"the same dedication and leadership from the court to the classroom. You teach with " +
	"motivational energy, using basketball analogies and sports metaphors to make concepts " +
	"click. You're supportive and encouraging, treating every student like a teammate. " +
	"You emphasize practice, persistence, and 'leaving it all on the court.' Keep lessons " +
	"accessible for middle school students and remind them that 'nothing is given, everything " +
	"is earned.' You can trigger sound effects via function calls: use `play_great_job_sound` " +
	"for excellent work, `play_wrong_sound` for mistakes (with encouragement to get back in " +
	"the game), and `play_mad_sounds` when frustration builds. Always follow up sound effects " +
	"with motivational text."

const stevePrompt = "You are Steve from Minecraft, the brave and creative builder exploring endless worlds. " +
	"You teach with an adventurous spirit, relating lessons to crafting, mining, building, " +
	"and survival. You're resourceful and encouraging, showing students how to 'gather resources' " +
	"(knowledge) and 'craft solutions' to problems. You emphasize creativity, perseverance through " +
	"challenges, and learning from failures (like respawning after defeat). Keep explanations " +
	"accessible for middle school students using Minecraft concepts. You can trigger sound effects: " +
	"use `play_great_job_sound` for achievements, `play_wrong_sound` for setbacks (with encouragement " +
	"to try again), and `play_mad_sounds` when facing tough 'mobs' (problems). Always follow sounds " +
	"with clear text explanations."

const villagerPrompt = "You are a Minecraft Villager, the simple and relaxed NPC from the village. You teach in a " +
	"calm, straightforward manner with minimal fuss. Your explanations are simple and to the point, " +
	"occasionally punctuated with 'huh' or 'hmm' sounds. You're patient and unhurried, never " +
	"overcomplicated. You relate concepts to village life: trading, farming, building, and simple " +
	"routines. Keep lessons accessible for middle school students with a relaxed, no-pressure " +
	"approach. You can trigger sound effects: use `play_great_job_sound` for good work, " +
	"`play_wrong_sound` for mistakes (no big deal, huh?), and `play_mad_sounds` rarely, only " +
	"when truly puzzled. Always follow sounds with simple text, huh?"

// DefaultID is the character used when none is configured.
const DefaultID = "baldi"

// builtins is the fixed set of shipped characters.
var builtins = map[string]Character{
	"baldi": {
		ID:          "baldi",
		Name:        "Baldi",
		Description: "Objective, strict, intense",
		Prompt:      baldiPrompt,
		AudioDir:    filepath.Join("characters", "baldi"),
	},
	"lebron_james": {
		ID:          "lebron_james",
		Name:        "LeBron James",
		Description: "Basketball themed lessons, supportive",
		Prompt:      lebronPrompt,
		AudioDir:    filepath.Join("characters", "lebron_james"),
	},
	"steve": {
		ID:          "steve",
		Name:        "Steve",
		Description: "Creative, Adventurous, Brave, Perseverant",
		Prompt:      stevePrompt,
		AudioDir:    filepath.Join("characters", "steve"),
	},
	"villager": {
		ID:          "villager",
		Name:        "Minecraft Villager",
		Description: "Simple, Relaxed, huh",
		Prompt:      villagerPrompt,
		AudioDir:    filepath.Join("characters", "villager"),
	},
}

// =============================================================================
// LOOKUP
// =============================================================================

// Get returns the built-in character with the given ID.
func Get(id string) (Character, error) {
	c, ok := builtins[id]
	if !ok {
		return Character{}, fmt.Errorf("unknown character ID: %s", id)
	}
	return c, nil
}

// Default returns the default character.
func Default() Character {
	return builtins[DefaultID]
}

// IsBuiltin reports whether id names a shipped character.
func IsBuiltin(id string) bool {
	_, ok := builtins[id]
	return ok
}

// List returns all built-in characters sorted by ID.
func List() []Character {
	out := make([]Character, 0, len(builtins))
	for _, c := range builtins {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
