// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"testing"

	"github.com/jeranaias/collegegenie-tui/internal/config"
)

func TestParseCommands(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want Command
	}{
		{"no args is TUI", nil, CmdTUI},
		{"ask", []string{"ask", "what is SQL"}, CmdAsk},
		{"chat", []string{"chat"}, CmdChat},
		{"status", []string{"status"}, CmdStatus},
		{"status alias", []string{"s"}, CmdStatus},
		{"config", []string{"config"}, CmdConfig},
		{"sessions", []string{"sessions"}, CmdSessions},
		{"version", []string{"version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"help flag", []string{"--help"}, CmdHelp},
		{"bare text is ask", []string{"what", "is", "SQL"}, CmdAsk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.argv)
			if got.Command != tt.want {
				t.Errorf("Parse(%v).Command = %v, want %v", tt.argv, got.Command, tt.want)
			}
		})
	}
}

func TestParseAskQuery(t *testing.T) {
	args := Parse([]string{"ask", "explain", "SQL", "joins"})
	if args.Query != "explain SQL joins" {
		t.Errorf("Query = %q", args.Query)
	}

	args = Parse([]string{"what", "is", "normalization"})
	if args.Query != "what is normalization" {
		t.Errorf("bare Query = %q", args.Query)
	}
}

func TestParseGlobalFlags(t *testing.T) {
	args := Parse([]string{"--quiet", "--anonymous", "--theme", "dark", "status"})
	if !args.Quiet || !args.Anonymous {
		t.Errorf("flags not parsed: %+v", args)
	}
	if args.Theme != "dark" {
		t.Errorf("Theme = %q", args.Theme)
	}
	if args.Command != CmdStatus {
		t.Errorf("Command = %v", args.Command)
	}
}

func TestParseConfigSet(t *testing.T) {
	args := Parse([]string{"config", "set", "ui.theme", "dark"})
	if args.Subcommand != "set" || args.ConfigKey != "ui.theme" || args.ConfigVal != "dark" {
		t.Errorf("config set parse: %+v", args)
	}
}

func TestSetConfigValue(t *testing.T) {
	cfg := config.Default()

	if err := setConfigValue(cfg, "user.name", "Priya"); err != nil {
		t.Fatalf("user.name: %v", err)
	}
	if cfg.User.Name != "Priya" {
		t.Errorf("Name = %q", cfg.User.Name)
	}

	if err := setConfigValue(cfg, "ui.theme", "dark"); err != nil {
		t.Fatalf("ui.theme: %v", err)
	}

	if err := setConfigValue(cfg, "ui.theme", "sparkly"); err == nil {
		t.Error("invalid theme should fail validation")
	}

	if err := setConfigValue(cfg, "nope.nope", "x"); err == nil {
		t.Error("unknown key should error")
	}
}

func TestNewAppAnonymous(t *testing.T) {
	cfg := config.Default()
	cfg.User.OwnerID = "user-123"

	app := NewApp(cfg, true)
	defer app.Close()

	if app.Sink != nil {
		t.Error("anonymous app must not have a sink")
	}
	if app.Provider == nil {
		t.Error("provider must always be wired")
	}
	if app.Saving() {
		t.Error("anonymous app must not report saving")
	}
}
