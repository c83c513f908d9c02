// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the chalkboard TUI.
//
// The package is organized into three layers:
//
//   - colors.go: the adaptive color palette. Every color is a
//     lipgloss.AdaptiveColor with light and dark variants, so the UI reads
//     well on both terminal backgrounds. The dark palette leans into slate
//     greens and chalk whites to match the schoolhouse theme. Each built-in
//     teacher also has an accent color, looked up via CharacterAccent.
//
//   - theme.go: the Theme struct, which composes the palette into concrete
//     lipgloss styles for every UI region (header, message bubbles, input
//     area, status bar, error boxes). Construct one with NewTheme and retint
//     it with SetCharacterAccent when the active teacher changes.
//
//   - animations.go: spinner frame sets, progress bars, and other small
//     animation primitives. All frames are ASCII-only so they render on
//     terminals without Unicode support.
//
// Usage:
//
//	theme := styles.NewTheme()
//	theme.SetCharacterAccent("baldi")
//	header := theme.Header.Render("Chalkboard")
//
// ACCESSIBILITY: status rendering helpers (RenderSuccess, RenderError, and
// friends) pair high-contrast colors with ASCII shape indicators so state is
// never communicated by color alone.
package styles
