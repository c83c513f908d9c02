// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler for chalkboard CLI.
//
// CLI: Comprehensive help and examples for all commands
// USABILITY: Markdown rendering and history for better CLI experience
//
// Handles the "chalkboard chat" command which provides an interactive REPL
// for conversing with a teacher character.
//
// Command: chat
// Short:   Start an interactive chat session
//
// Examples:
//   chalkboard chat                          Start chat with default character
//   chalkboard chat --character steve        Chat with Steve
//   chalkboard chat --model gemini-pro-latest
//
// Flags:
//   -c, --character ID   Start as a specific character
//   -m, --model NAME     Use specific model (overrides config)
//   -q, --quiet          Minimal output
//
// Interactive Commands (during chat):
//   /help, /h           Show available commands
//   /clear, /c          Clear conversation history
//   /character [id]     Show or switch character
//   /characters         List available characters
//   /attach <path>      Queue a file for the next message
//   /history            Show conversation history
//   /quit, /q           Exit chat
//   Ctrl+D              Exit chat
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/chalkboard-tui/internal/audio"
	"github.com/jeranaias/chalkboard-tui/internal/config"
	"github.com/jeranaias/chalkboard-tui/internal/model"
	"github.com/jeranaias/chalkboard-tui/internal/persona"
	"github.com/jeranaias/chalkboard-tui/internal/teacher"
	"github.com/jeranaias/chalkboard-tui/internal/ui/styles"
	"github.com/jeranaias/chalkboard-tui/internal/util"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	// Prompt style
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	// Welcome banner style
	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	// Info style
	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	// Command style
	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	// Warning style
	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)

	// Session summary header
	summaryHeaderStyle = lipgloss.NewStyle().
				Foreground(styles.Cyan).
				Bold(true)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
// USABILITY: Supports arrow keys for history navigation and line editing.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	// Get history file path in config directory
	configDir, err := config.ConfigDir()
	if err != nil {
		// Fallback to temp directory if config dir unavailable
		configDir = os.TempDir()
	}
	historyFile := filepath.Join(configDir, "chat_history")

	cli := &ChatCLI{
		line:        line,
		historyFile: historyFile,
	}

	// Load existing history
	cli.LoadHistory()

	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
// Supports history navigation with arrow keys.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}

	// Add non-empty input to history
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}

	return input, nil
}

// SaveHistory persists command history to file with secure permissions.
func (c *ChatCLI) SaveHistory() {
	// Ensure config directory exists
	if err := config.EnsureConfigDir(); err != nil {
		return
	}

	// Create file with secure permissions (0600 - owner read/write only)
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// SESSION STATE
// =============================================================================

// ChatSession holds the state for an interactive chat session.
type ChatSession struct {
	// Teacher session (character, history, generation client)
	Teacher *teacher.Session

	// Attachments queued by /attach for the next message
	PendingAttachments []string

	// Configuration
	Config *config.Config
	Quiet  bool

	// Tracking
	StartTime time.Time
	Exchanges int

	// Input history handler
	// USABILITY: Provides readline-like input with history
	InputCLI *ChatCLI
}

// =============================================================================
// CHAT HANDLER
// =============================================================================

// HandleChatCommand handles the "chat" command with full interactive support.
// This replaces the stub implementation in cli.go.
func HandleChatCommand(args Args) error {
	cfg := config.Global()

	if !CanPrompt() {
		return fmt.Errorf("interactive chat requires a terminal; try 'chalkboard ask' instead")
	}

	if cfg.Gemini.APIKey == "" {
		return fmt.Errorf("no API key configured. Run 'chalkboard setup' or set CHALKBOARD_API_KEY")
	}

	ts, err := NewSessionFromConfig(cfg, args)
	if err != nil {
		return err
	}

	session := &ChatSession{
		Teacher:   ts,
		Config:    cfg,
		Quiet:     args.Quiet,
		StartTime: time.Now(),
		InputCLI:  NewChatCLI(),
	}

	// Classroom door opens
	startup := ts.PlayStartup()
	defer ts.PlayShutdown()
	if args.Verbose {
		fmt.Println(styles.RenderStatus(startup.Status == audio.StatusPlayed, "startup sound"))
	}

	// Pick up custom persona edits while the REPL runs
	stopWatcher := WatchPersonas(ts)
	defer stopWatcher()

	// Show welcome message
	if !session.Quiet {
		printWelcome(session)
	}

	// Ensure input history is saved on exit
	// USABILITY: Save history for future sessions
	defer session.InputCLI.Close()

	// Teacher greets the student before the first question
	ctx := context.Background()
	greeting, err := ts.Intro(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
	} else {
		fmt.Println()
		displayResponse(greeting)
		fmt.Println()
	}

	// Main REPL loop using liner for input history
	// USABILITY: Provides readline-like line editing and history navigation
	for {
		// Read input with history support
		prompt := session.Teacher.Character().Name + "> "
		input, err := session.InputCLI.ReadInput(GetStyleForTTY(promptStyle).Render(prompt))
		if err != nil {
			if err == liner.ErrPromptAborted {
				// Ctrl+C pressed - exit gracefully
				fmt.Println()
				printExitSummary(session)
				return nil
			}
			// EOF (Ctrl+D) or other error - exit gracefully
			fmt.Println()
			printExitSummary(session)
			return nil
		}

		input = strings.TrimSpace(input)

		// Skip empty input
		if input == "" {
			continue
		}

		// Handle slash commands
		if strings.HasPrefix(input, "/") {
			shouldContinue, err := handleSlashCommand(input, session)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s %v\n",
					errorStyle.Render("[Error]"),
					err)
			}
			if !shouldContinue {
				printExitSummary(session)
				return nil
			}
			continue
		}

		// Handle exit/quit without slash
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			printExitSummary(session)
			return nil
		}

		// Process the message
		if err := processMessage(session, input); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n",
				errorStyle.Render("[Error]"),
				err)
		}
	}
}

// =============================================================================
// MESSAGE PROCESSING
// =============================================================================

// processMessage sends a message to the active teacher and prints the reply.
// Queued attachments ride this message and are then dropped: they are
// request-scoped, not part of the retained history.
func processMessage(session *ChatSession, input string) error {
	attachments := session.PendingAttachments
	session.PendingAttachments = nil

	if len(attachments) > 0 && !session.Quiet {
		for _, path := range attachments {
			fmt.Fprintf(os.Stderr, "%s Attaching: %s\n",
				attachStyle.Render("[+]"), path)
		}
	}

	startTime := time.Now()

	// Space before response
	fmt.Println()

	ctx := context.Background()
	reply, err := session.Teacher.Ask(ctx, input, attachments)
	if err != nil {
		return err
	}

	// USABILITY: Display response with markdown rendering when on TTY
	displayResponse(reply)

	// Ensure newline after response
	fmt.Println()

	session.Exchanges++

	// Show brief stats (unless quiet)
	if !session.Quiet {
		fmt.Fprintf(os.Stderr, "%s %s | %s\n",
			infoStyle.Render("[Stats]"),
			commandStyle.Render(session.Teacher.Character().Name),
			time.Since(startTime).Round(time.Millisecond))
		fmt.Println()
	}

	return nil
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand processes slash commands.
// Returns (shouldContinue, error) where shouldContinue=false means exit.
func handleSlashCommand(cmd string, session *ChatSession) (bool, error) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return true, nil
	}

	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case "/help", "/h", "/?":
		printHelp()
		return true, nil

	case "/clear", "/c":
		session.Teacher.Clear()
		session.PendingAttachments = nil
		fmt.Println(commandStyle.Render("[Conversation cleared]"))
		return true, nil

	case "/character", "/char":
		return handleCharacterCommand(session, args)

	case "/characters":
		printCharacterList(session)
		return true, nil

	case "/attach", "/a":
		return handleAttachCommand(session, args)

	case "/history":
		printHistory(session)
		return true, nil

	case "/quit", "/q", "/exit":
		return false, nil

	case "/":
		// Just "/" shows help
		printHelp()
		return true, nil

	default:
		return true, fmt.Errorf("unknown command: %s (type /help for commands)", command)
	}
}

// handleCharacterCommand handles the /character command.
// Switching characters resets the conversation: the generation client is
// bound to one system prompt, so the new teacher starts fresh.
func handleCharacterCommand(session *ChatSession, args []string) (bool, error) {
	if len(args) == 0 {
		char := session.Teacher.Character()
		fmt.Printf("%s %s (%s)\n",
			infoStyle.Render("[Character]"),
			commandStyle.Render(char.Name),
			char.ID)
		return true, nil
	}

	id := strings.ToLower(args[0])
	if err := session.Teacher.SwitchCharacter(id); err != nil {
		return true, err
	}
	session.PendingAttachments = nil

	fmt.Printf("%s Switched to %s (history cleared)\n",
		commandStyle.Render("[OK]"),
		session.Teacher.Character().Name)

	// New teacher introduces themselves
	greeting, err := session.Teacher.Intro(context.Background())
	if err != nil {
		return true, err
	}
	fmt.Println()
	displayResponse(greeting)
	fmt.Println()

	return true, nil
}

// handleAttachCommand queues a file for the next message.
func handleAttachCommand(session *ChatSession, args []string) (bool, error) {
	if len(args) == 0 {
		if len(session.PendingAttachments) == 0 {
			fmt.Println(infoStyle.Render("[No attachments queued]"))
			return true, nil
		}
		for _, path := range session.PendingAttachments {
			fmt.Printf("  %s %s\n", attachStyle.Render("-"), path)
		}
		return true, nil
	}

	path := args[0]
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return true, ErrNotFound("attachment", path)
		}
		return true, fmt.Errorf("cannot access attachment %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".pdf" && ext != ".txt" {
		return true, NewValidationError("attachment", path, "only .pdf and .txt files are supported")
	}

	session.PendingAttachments = append(session.PendingAttachments, path)
	fmt.Printf("%s Queued for next message: %s\n",
		commandStyle.Render("[OK]"), path)
	return true, nil
}

// =============================================================================
// DISPLAY FUNCTIONS
// =============================================================================

// printWelcome prints the welcome banner.
func printWelcome(session *ChatSession) {
	char := session.Teacher.Character()

	fmt.Println()
	fmt.Println(welcomeStyle.Render("chalkboard interactive chat"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 30)))
	fmt.Printf("%s %s\n",
		infoStyle.Render("Teacher:"),
		commandStyle.Render(char.Name))
	fmt.Printf("%s %s\n",
		infoStyle.Render("Model:"),
		commandStyle.Render(session.Config.Gemini.Model))

	if !session.Config.Assets.SoundsEnabled {
		fmt.Printf("%s %s\n",
			infoStyle.Render("Sounds:"),
			warningStyle.Render("Disabled"))
	}

	fmt.Println()
	fmt.Println(infoStyle.Render("Type your message and press Enter. Commands: /help, /quit"))
	fmt.Println()
}

// printHelp prints available commands.
func printHelp() {
	fmt.Println()
	fmt.Println(summaryHeaderStyle.Render("Available Commands"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 20)))
	fmt.Println()

	commands := []struct {
		cmd  string
		desc string
	}{
		{"/help, /h", "Show this help"},
		{"/clear, /c", "Clear conversation history"},
		{"/character [id]", "Show or switch teacher character"},
		{"/characters", "List available characters"},
		{"/attach <path>", "Queue a .pdf or .txt for the next message"},
		{"/history", "Show conversation history"},
		{"/quit, /q", "Exit chat"},
	}

	for _, c := range commands {
		fmt.Printf("  %s  %s\n",
			commandStyle.Render(fmt.Sprintf("%-17s", c.cmd)),
			infoStyle.Render(c.desc))
	}

	fmt.Println()
	fmt.Println(infoStyle.Render("Tip: Ctrl+D exits"))
	fmt.Println()
}

// printCharacterList lists built-in and custom characters.
func printCharacterList(session *ChatSession) {
	fmt.Println()
	fmt.Println(summaryHeaderStyle.Render("Characters"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 20)))
	fmt.Println()

	active := session.Teacher.Character().ID
	for _, char := range persona.List() {
		marker := "  "
		if char.ID == active {
			marker = commandStyle.Render("* ")
		}
		fmt.Printf("%s%s  %s\n",
			marker,
			commandStyle.Render(fmt.Sprintf("%-14s", char.ID)),
			infoStyle.Render(char.Description))
	}

	// Custom characters from the persona directory
	registry := persona.NewRegistry(session.Config.Assets.PersonaDir)
	if err := registry.Reload(); err == nil {
		for _, char := range registry.All() {
			if persona.IsBuiltin(char.ID) {
				continue
			}
			marker := "  "
			if char.ID == active {
				marker = commandStyle.Render("* ")
			}
			fmt.Printf("%s%s  %s\n",
				marker,
				commandStyle.Render(fmt.Sprintf("%-14s", char.ID)),
				infoStyle.Render("custom"))
		}
	}

	fmt.Println()
	fmt.Println(infoStyle.Render("Switch with /character <id>"))
	fmt.Println()
}

// printHistory prints conversation history.
func printHistory(session *ChatSession) {
	turns := session.Teacher.History()
	if len(turns) == 0 {
		fmt.Println(infoStyle.Render("[No messages yet]"))
		return
	}

	fmt.Println()
	fmt.Println(summaryHeaderStyle.Render("Conversation History"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 25)))
	fmt.Println()

	teacherName := session.Teacher.Character().Name
	for i, turn := range turns {
		role := string(turn.Role)
		switch turn.Role {
		case model.RoleUser:
			role = lipgloss.NewStyle().Foreground(styles.Cyan).Render("You")
		case model.RoleModel:
			role = lipgloss.NewStyle().Foreground(styles.Purple).Render(teacherName)
		}

		// UNICODE: Rune-aware truncation preserves multi-byte characters
		content := util.TruncateRunes(turn.Text, 100)
		content = strings.ReplaceAll(content, "\n", " ")

		fmt.Printf("  %d. %s: %s\n", i+1, role, content)
	}

	fmt.Println()
}

// printExitSummary prints the session summary on exit.
func printExitSummary(session *ChatSession) {
	// Skip if no exchanges
	if session.Exchanges == 0 {
		fmt.Println(infoStyle.Render("Class dismissed!"))
		return
	}

	elapsed := time.Since(session.StartTime).Round(time.Second)

	fmt.Println()
	fmt.Println(summaryHeaderStyle.Render("Session Summary"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 15)))

	fmt.Printf("  %s %s\n",
		infoStyle.Render("Teacher:"),
		commandStyle.Render(session.Teacher.Character().Name))
	fmt.Printf("  %s %d\n",
		infoStyle.Render("Exchanges:"),
		session.Exchanges)
	fmt.Printf("  %s %s\n",
		infoStyle.Render("Duration:"),
		elapsed.String())

	fmt.Println()
	fmt.Println(infoStyle.Render("Class dismissed!"))
}
