// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single query command handler for chalkboard CLI.
//
// CLI: Comprehensive help and examples for all commands
// USABILITY: Markdown rendering for better CLI experience
//
// Handles the "chalkboard ask" command which sends a single question to the
// configured teacher character and prints the answer to stdout.
//
// Command: ask [question]
// Short:   Ask a single question
//
// Examples:
//   chalkboard ask "What is the capital of France?"
//   chalkboard ask "Grade my essay" --attach essay.txt
//   chalkboard ask --character steve "How do I make a crafting table?"
//
// Flags:
//   -a, --attach FILE    Attach a .pdf or .txt file (repeatable)
//   -m, --model NAME     Use specific model (overrides config)
//   -c, --character ID   Answer as a specific character
//   -q, --quiet          Minimal output
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chalkboard-tui/internal/audio"
	"github.com/jeranaias/chalkboard-tui/internal/config"
	"github.com/jeranaias/chalkboard-tui/internal/persona"
	"github.com/jeranaias/chalkboard-tui/internal/teacher"
	"github.com/jeranaias/chalkboard-tui/internal/ui/styles"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the global glamour renderer for markdown output.
// USABILITY: Renders markdown responses with syntax highlighting and formatting.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fallback to plain text if renderer initialization fails
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown content for terminal display.
// Returns the original content if rendering fails or renderer is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}

	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayResponse displays a response with markdown rendering when appropriate.
// Only renders markdown when stdout is a TTY to avoid corrupting piped output.
func displayResponse(response string) {
	if IsStdoutTTY() {
		fmt.Print(renderMarkdown(response))
	} else {
		fmt.Print(response)
	}
}

// =============================================================================
// STYLES
// =============================================================================

var (
	// Attachment info style
	attachStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan)

	// Character banner style
	characterBannerStyle = lipgloss.NewStyle().
				Foreground(styles.Purple).
				Bold(true)

	// Error style
	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose)
)

// =============================================================================
// SESSION CONSTRUCTION
// =============================================================================

// NewSessionFromConfig builds a teacher session from the global config plus
// CLI overrides. Shared by the ask and chat commands.
func NewSessionFromConfig(cfg *config.Config, args Args) (*teacher.Session, error) {
	characterID := cfg.Character
	if args.Character != "" {
		characterID = args.Character
	}

	model := cfg.Gemini.Model
	if args.Model != "" {
		model = args.Model
	}

	soundsEnabled := cfg.Assets.SoundsEnabled && !args.NoSound
	var manager *audio.Manager
	if soundsEnabled {
		manager = audio.NewManager(cfg.Assets.SoundsDir)
	} else {
		manager = audio.NewManagerWithPlayer(cfg.Assets.SoundsDir, audio.MutedPlayer{})
	}

	registry := persona.NewRegistry(cfg.Assets.PersonaDir)
	if err := registry.Reload(); err != nil && args.Verbose {
		fmt.Fprintf(os.Stderr, "%s Custom characters unavailable: %v\n",
			WarningStyle.Render("[!]"), err)
	}

	opts := teacher.SessionOptions{
		APIKey:       cfg.Gemini.APIKey,
		Model:        model,
		Temperature:  cfg.Gemini.Temperature,
		TopP:         cfg.Gemini.TopP,
		TopK:         cfg.Gemini.TopK,
		MaxExchanges: cfg.Gemini.MaxTurnHistory,
	}

	session, err := teacher.NewSession(opts, characterID, manager, registry)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// WatchPersonas starts a background watcher that reloads the session's
// custom personas when files under the persona directory change. The
// returned closer stops the watcher; it is a no-op closer when the
// directory cannot be watched (missing dir, exhausted inotify handles).
func WatchPersonas(session *teacher.Session) func() {
	registry := session.Registry()
	if registry == nil {
		return func() {}
	}
	w, err := persona.NewWatcher(registry, 250*time.Millisecond)
	if err != nil {
		return func() {}
	}
	go w.Watch()
	return func() { w.Close() }
}

// validateAttachments fails fast on attachments the session would reject.
// The generation client re-checks before any request; this just gives a
// friendlier error up front for files that do not exist.
func validateAttachments(paths []string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				return ErrNotFound("attachment", p)
			}
			return fmt.Errorf("cannot access attachment %s: %w", p, err)
		}
	}
	return nil
}

// =============================================================================
// ASK HANDLER
// =============================================================================

// HandleAskCommand handles the "ask" command.
// This replaces the stub implementation in cli.go.
func HandleAskCommand(args Args) error {
	// Load configuration
	cfg := config.Global()

	// Get the question from args.Query (built by parseAskArgs from positional args)
	question := args.Query

	// If no question from args, try reading from stdin (for piped input)
	if question == "" {
		// Check if stdin has data (is a pipe, not a terminal)
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			// Stdin is a pipe, read from it
			reader := bufio.NewReader(os.Stdin)
			stdinData, err := io.ReadAll(reader)
			if err == nil && len(stdinData) > 0 {
				question = strings.TrimSpace(string(stdinData))
				if !args.Quiet {
					fmt.Fprintf(os.Stderr, "%s Read question from stdin (%d bytes)\n",
						attachStyle.Render("[+]"), len(stdinData))
				}
			}
		}
	}

	if question == "" {
		return ErrMissingArgument("question", `chalkboard ask "your question"`)
	}

	if cfg.Gemini.APIKey == "" {
		return fmt.Errorf("no API key configured. Run 'chalkboard setup' or set CHALKBOARD_API_KEY")
	}

	if err := validateAttachments(args.Attach); err != nil {
		return err
	}

	session, err := NewSessionFromConfig(cfg, args)
	if err != nil {
		return err
	}

	if !args.Quiet {
		for _, path := range args.Attach {
			fmt.Fprintf(os.Stderr, "%s Attaching: %s\n",
				attachStyle.Render("[+]"), path)
		}
		fmt.Fprintf(os.Stderr, "%s %s\n\n",
			RenderConditional(characterBannerStyle, "Teacher:"),
			session.Character().Name)
	}

	ctx := context.Background()
	answer, err := session.Ask(ctx, question, args.Attach)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
		return WrapError(err, "ask failed")
	}

	// USABILITY: Display response with markdown rendering when on TTY
	displayResponse(answer)

	// Ensure newline after response
	if !strings.HasSuffix(answer, "\n") {
		fmt.Println()
	}

	return nil
}
