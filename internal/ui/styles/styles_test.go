// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
	"time"
)

// =============================================================================
// CHARACTER ACCENT TESTS
// =============================================================================

func TestCharacterAccent(t *testing.T) {
	tests := []struct {
		id   string
		want string // expected dark variant
	}{
		{"baldi", AccentBaldi.Dark},
		{"lebron_james", AccentLeBron.Dark},
		{"steve", AccentSteve.Dark},
		{"villager", AccentVillager.Dark},
		{"custom_teacher", Purple.Dark},
		{"", Purple.Dark},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := CharacterAccent(tt.id); got.Dark != tt.want {
				t.Errorf("CharacterAccent(%q).Dark = %q, want %q", tt.id, got.Dark, tt.want)
			}
		})
	}
}

// =============================================================================
// STATUS RENDERING TESTS
// =============================================================================

func TestRenderStatus_Indicators(t *testing.T) {
	if got := RenderSuccess("saved"); !strings.Contains(got, StatusIndicators.Success) {
		t.Errorf("RenderSuccess missing indicator: %q", got)
	}
	if got := RenderError("failed"); !strings.Contains(got, StatusIndicators.Error) {
		t.Errorf("RenderError missing indicator: %q", got)
	}
	if got := RenderStatus(true, "ok"); !strings.Contains(got, StatusIndicators.Success) {
		t.Errorf("RenderStatus(true) missing indicator: %q", got)
	}
	if got := RenderStatus(false, "bad"); !strings.Contains(got, StatusIndicators.Error) {
		t.Errorf("RenderStatus(false) missing indicator: %q", got)
	}
}

// =============================================================================
// THEME TESTS
// =============================================================================

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}

	// A few representative styles should render text without panicking.
	if out := theme.HeaderTitle.Render("Chalkboard"); out == "" {
		t.Error("HeaderTitle rendered empty string")
	}
	if out := theme.UserBubble.Render("hi"); out == "" {
		t.Error("UserBubble rendered empty string")
	}
}

func TestTheme_LayoutModes(t *testing.T) {
	theme := NewTheme()

	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	for _, tt := range tests {
		theme.SetSize(tt.width, 24)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("GetLayoutMode() at width %d = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestTheme_SetCharacterAccent(t *testing.T) {
	theme := NewTheme()
	// Should not panic and should keep styles renderable for any ID.
	for _, id := range []string{"baldi", "lebron_james", "steve", "villager", "someone_else"} {
		theme.SetCharacterAccent(id)
		if out := theme.SpeakerLabel.Render("Teacher"); out == "" {
			t.Errorf("SpeakerLabel empty after accent %q", id)
		}
	}
}

// =============================================================================
// ANIMATION TESTS
// =============================================================================

func TestSpinnerConfig_Duration(t *testing.T) {
	if d := LineSpinner.Duration(); d != time.Second/10 {
		t.Errorf("LineSpinner.Duration() = %v, want %v", d, time.Second/10)
	}
	if len(ChalkSpinner.Frames) == 0 {
		t.Error("ChalkSpinner has no frames")
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		percent float64
	}{
		{"empty", 10, 0},
		{"half", 10, 50},
		{"full", 10, 100},
		{"over", 10, 150},
		{"negative", 10, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgressBar(tt.width, tt.percent)
			if len(got) != tt.width {
				t.Errorf("len = %d, want %d (%q)", len(got), tt.width, got)
			}
		})
	}

	if got := RenderProgressBar(0, 50); got != "" {
		t.Errorf("zero width should render empty, got %q", got)
	}
}

func TestRenderTreeLine(t *testing.T) {
	if got := RenderTreeLine(true); !strings.HasPrefix(got, TreeChars.Corner) {
		t.Errorf("last line should use corner: %q", got)
	}
	if got := RenderTreeLine(false); !strings.HasPrefix(got, TreeChars.Tee) {
		t.Errorf("middle line should use tee: %q", got)
	}
}
