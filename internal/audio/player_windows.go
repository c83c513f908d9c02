// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build windows

package audio

import (
	"fmt"
	"os"
	"os/exec"
)

// fileExists reports whether path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// newPlatformPlayer returns the Windows player, which shells out to
// PowerShell's Media.SoundPlayer.
func newPlatformPlayer() Player {
	return &windowsPlayer{}
}

type windowsPlayer struct{}

func (p *windowsPlayer) Available() bool {
	_, err := exec.LookPath("powershell")
	return err == nil
}

func (p *windowsPlayer) Play(path string, blocking bool) error {
	method := "Play"
	if blocking {
		method = "PlaySync"
	}
	script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').%s()", path, method)
	cmd := exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script)
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
