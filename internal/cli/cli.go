// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - command parsing for genie.
package cli

import (
	"fmt"
	"strings"
)

// Version information (can be overridden at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command is the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdStatus
	CmdConfig
	CmdSessions
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	Command Command

	// Global flags
	Quiet     bool
	Anonymous bool   // Force anonymous mode, nothing persisted
	Theme     string // Override the configured theme

	// Command-specific
	Query      string
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args remaining after command and flag parsing
	Raw []string
}

const usageText = `genie - CollegeGenie AI study assistant

Genie answers coursework questions across your enrolled subjects,
with conversation history and session statistics.

Usage:
  genie                      Start the TUI (default)
  genie ask "question"       Ask a single question
  genie chat                 Interactive line-based chat
  genie status, s            Show configuration and connectivity
  genie config [show|set|path]  Manage configuration
  genie sessions [list|show|delete]  Saved conversations
  genie version              Show version
  genie help                 Show this help

Global flags:
  --anonymous     Do not persist anything this session
  --theme NAME    Override theme (auto, dark, light)
  -q, --quiet     Minimal output

Interactive commands (inside chat and the TUI):
  /help           Show available commands
  /subjects       List supported subjects
  /clear          Clear conversation history
  /stats          Show session statistics
  /quit           Exit

Environment:
  COLLEGEGENIE_API_KEY    API key for the completion endpoint
  COLLEGEGENIE_API_URL    Override the endpoint URL
  COLLEGEGENIE_MODEL      Override the model name
  COLLEGEGENIE_OWNER_ID   Account ID for conversation history
`

// Usage returns the top-level help text.
func Usage() string {
	return usageText
}

// VersionString returns the full version line.
func VersionString() string {
	return fmt.Sprintf("genie %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}

// Parse parses command line arguments (excluding the program name).
func Parse(argv []string) Args {
	args := Args{Command: CmdTUI}

	// Split off global flags first so "genie --quiet ask ..." works too.
	var rest []string
	for i := 0; i < len(argv); i++ {
		switch argv[i] {
		case "-q", "--quiet":
			args.Quiet = true
		case "--anonymous":
			args.Anonymous = true
		case "--theme":
			if i+1 < len(argv) {
				args.Theme = argv[i+1]
				i++
			}
		case "-h", "--help":
			args.Command = CmdHelp
			return args
		default:
			rest = append(rest, argv[i])
		}
	}

	if len(rest) == 0 {
		return args
	}

	cmd := strings.ToLower(rest[0])
	rest = rest[1:]

	switch cmd {
	case "ask":
		args.Command = CmdAsk
		args.Query = strings.Join(rest, " ")
	case "chat":
		args.Command = CmdChat
	case "status", "s", "info":
		args.Command = CmdStatus
	case "config":
		args.Command = CmdConfig
		parseConfigArgs(&args, rest)
	case "sessions", "session":
		args.Command = CmdSessions
		if len(rest) > 0 {
			args.Subcommand = rest[0]
			args.Raw = rest[1:]
		} else {
			args.Subcommand = "list"
		}
	case "version", "-v", "--version":
		args.Command = CmdVersion
	case "help":
		args.Command = CmdHelp
	default:
		// Bare text is treated as an ask query, so "genie what is SQL"
		// does the obvious thing.
		args.Command = CmdAsk
		args.Query = strings.Join(append([]string{cmd}, rest...), " ")
	}

	return args
}

func parseConfigArgs(args *Args, rest []string) {
	if len(rest) == 0 {
		args.Subcommand = "show"
		return
	}
	args.Subcommand = strings.ToLower(rest[0])
	if args.Subcommand == "set" && len(rest) >= 3 {
		args.ConfigKey = rest[1]
		args.ConfigVal = strings.Join(rest[2:], " ")
	} else if len(rest) > 1 {
		args.Raw = rest[1:]
	}
}
