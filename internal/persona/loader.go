// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package persona

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// =============================================================================
// REGISTRY
// =============================================================================

// Registry combines the built-in characters with custom personas loaded from
// a directory of prompt files. Safe for concurrent use; the watcher reloads
// it from a background goroutine while surfaces read it.
type Registry struct {
	dir string

	mu     sync.RWMutex
	custom map[string]Character
}

// NewRegistry creates a registry over the given persona directory. The
// directory may not exist yet; Reload treats that as "no custom personas".
func NewRegistry(dir string) *Registry {
	return &Registry{
		dir:    dir,
		custom: make(map[string]Character),
	}
}

// Reload rescans the persona directory. Each *.txt file becomes a custom
// character: the filename (without extension) is the ID, the first line is
// the display name when prefixed with "name:", and the rest is the prompt.
func (r *Registry) Reload() error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			r.mu.Lock()
			r.custom = make(map[string]Character)
			r.mu.Unlock()
			return nil
		}
		return fmt.Errorf("failed to read persona directory: %w", err)
	}

	custom := make(map[string]Character)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".txt")
		if IsBuiltin(id) {
			// Built-ins cannot be shadowed from disk.
			continue
		}
		c, err := loadPersonaFile(filepath.Join(r.dir, entry.Name()), id)
		if err != nil {
			// A broken persona file disables that persona, not the app.
			continue
		}
		custom[id] = c
	}

	r.mu.Lock()
	r.custom = custom
	r.mu.Unlock()
	return nil
}

// loadPersonaFile parses one persona prompt file.
func loadPersonaFile(path, id string) (Character, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Character{}, err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return Character{}, fmt.Errorf("persona file %s is empty", path)
	}

	name := id
	if line, rest, found := strings.Cut(text, "\n"); found {
		if n, ok := strings.CutPrefix(strings.TrimSpace(line), "name:"); ok {
			name = strings.TrimSpace(n)
			text = strings.TrimSpace(rest)
		}
	}

	return Character{
		ID:          id,
		Name:        name,
		Description: "Custom persona",
		Prompt:      text,
		Custom:      true,
	}, nil
}

// Get resolves an ID against custom personas first, then built-ins.
func (r *Registry) Get(id string) (Character, error) {
	r.mu.RLock()
	c, ok := r.custom[id]
	r.mu.RUnlock()
	if ok {
		return c, nil
	}
	return Get(id)
}

// Has reports whether the ID resolves to any persona.
func (r *Registry) Has(id string) bool {
	_, err := r.Get(id)
	return err == nil
}

// All returns built-ins followed by custom personas, each group sorted by ID.
func (r *Registry) All() []Character {
	out := List()

	r.mu.RLock()
	custom := make([]Character, 0, len(r.custom))
	for _, c := range r.custom {
		custom = append(custom, c)
	}
	r.mu.RUnlock()

	sort.Slice(custom, func(i, j int) bool { return custom[i].ID < custom[j].ID })
	return append(out, custom...)
}

// Dir returns the persona directory this registry watches.
func (r *Registry) Dir() string {
	return r.dir
}
