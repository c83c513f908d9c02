// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !windows

package audio

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
)

// fileExists reports whether path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// newPlatformPlayer returns a player backed by whichever command-line
// audio tool this platform has. When none is found, playback reports
// unsupported rather than failing.
func newPlatformPlayer() Player {
	candidates := []string{"aplay", "paplay"}
	if runtime.GOOS == "darwin" {
		candidates = []string{"afplay"}
	}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return &execPlayer{binary: path}
		}
	}
	return &execPlayer{}
}

// execPlayer plays audio by spawning an external command.
type execPlayer struct {
	binary string
}

func (p *execPlayer) Available() bool {
	return p.binary != ""
}

func (p *execPlayer) Play(path string, blocking bool) error {
	if p.binary == "" {
		return errors.New("no audio player binary found")
	}
	cmd := exec.Command(p.binary, path)
	if blocking {
		return cmd.Run()
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the process so finished players don't linger as zombies.
	go cmd.Wait()
	return nil
}
