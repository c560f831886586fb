// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - argument parsing and command selection for chatbot-tui.
package cli

import (
	"fmt"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdConfig
	CmdHistory
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	Command Command

	// Global flags
	Env     string // overrides the configured environment
	BaseURL string // overrides the API base URL
	Verbose bool

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args remaining after parsing
	Raw []string
}

const usageText = `chatbot-tui - terminal client for the chatbot backend

A single-screen chat client: rooms as tabs, messages in a scrollback,
text and image sends to the AI backend, inline edits.

Usage:
  chatbot-tui                  Start the TUI (default)
  chatbot-tui config show      Print the effective configuration
  chatbot-tui config path      Print the config file location
  chatbot-tui history [N]      Show the last N activity entries (default 20)
  chatbot-tui history prune    Drop activity entries older than 30 days
  chatbot-tui version          Show version information
  chatbot-tui help             Show this help

Flags:
  --env development|production Select the backend environment
  --base-url URL               Override the API base URL
  --verbose                    Verbose logging to ~/.chatbot/chatbot.log

Keys (inside the TUI):
  tab / shift+tab   Switch rooms        enter    Send message
  ctrl+n            New room            ctrl+d   Delete room (confirm)
  ctrl+o            Attach image        ctrl+x   Remove attachment
  ctrl+e            Edit last message   esc      Cancel dialog / edit
  ctrl+c            Quit

Environment:
  CHATBOT_ENV       Same as --env
  CHATBOT_BASE_URL  Same as --base-url
  NO_COLOR          Disable colored output
`

// Usage returns the top-level help text.
func Usage() string {
	return usageText
}

// VersionString returns the formatted version line.
func VersionString() string {
	return fmt.Sprintf("chatbot-tui %s (%s, %s, %s/%s)",
		Version, GitCommit, BuildDate, runtime.GOOS, runtime.GOARCH)
}

// Parse parses os.Args[1:] style arguments into an Args.
func Parse(argv []string) (*Args, error) {
	args := &Args{Command: CmdTUI}

	var positional []string
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--verbose" || arg == "-v":
			args.Verbose = true
		case arg == "--env":
			if i+1 >= len(argv) {
				return nil, fmt.Errorf("--env requires a value")
			}
			i++
			args.Env = argv[i]
		case strings.HasPrefix(arg, "--env="):
			args.Env = strings.TrimPrefix(arg, "--env=")
		case arg == "--base-url":
			if i+1 >= len(argv) {
				return nil, fmt.Errorf("--base-url requires a value")
			}
			i++
			args.BaseURL = argv[i]
		case strings.HasPrefix(arg, "--base-url="):
			args.BaseURL = strings.TrimPrefix(arg, "--base-url=")
		case arg == "--help" || arg == "-h":
			args.Command = CmdHelp
			return args, nil
		case arg == "--version":
			args.Command = CmdVersion
			return args, nil
		case strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("unknown flag: %s", arg)
		default:
			positional = append(positional, arg)
		}
	}

	if len(positional) == 0 {
		return args, nil
	}

	switch positional[0] {
	case "config":
		args.Command = CmdConfig
		if len(positional) > 1 {
			args.Subcommand = positional[1]
			args.Raw = positional[2:]
		}
	case "history":
		args.Command = CmdHistory
		if len(positional) > 1 {
			args.Subcommand = positional[1]
			args.Raw = positional[2:]
		}
	case "version":
		args.Command = CmdVersion
	case "help":
		args.Command = CmdHelp
	default:
		return nil, fmt.Errorf("unknown command: %s", positional[0])
	}

	return args, nil
}
