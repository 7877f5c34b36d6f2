// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - configuration command.
//
// Command: config [show|set|path]
//
// Examples:
//   genie config                       Show current configuration
//   genie config set user.name Priya   Set a value
//   genie config set ui.theme dark
//   genie config path                  Print the config file location
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jeranaias/collegegenie-tui/internal/config"
)

// RunConfig handles "genie config".
func RunConfig(app *App, args Args) int {
	switch args.Subcommand {
	case "", "show":
		fmt.Print(app.Cfg.Summary())
		return 0

	case "path":
		path, err := config.Path()
		if err != nil {
			fmt.Fprintln(os.Stderr, "config path:", err)
			return 1
		}
		fmt.Println(path)
		return 0

	case "set":
		if args.ConfigKey == "" {
			fmt.Fprintln(os.Stderr, "usage: genie config set <key> <value>")
			return 1
		}
		if err := setConfigValue(app.Cfg, args.ConfigKey, args.ConfigVal); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := app.Cfg.Save(); err != nil {
			fmt.Fprintln(os.Stderr, "saving config:", err)
			return 1
		}
		fmt.Printf("%s = %s\n", args.ConfigKey, args.ConfigVal)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "unknown config subcommand %q\n", args.Subcommand)
		return 1
	}
}

// setConfigValue maps dotted keys onto config fields. Only keys a student
// plausibly edits by hand are exposed.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "api.base_url", "api.url":
		cfg.API.BaseURL = value
	case "api.model":
		cfg.API.Model = value
	case "api.timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("api.timeout_seconds must be a positive integer, got %q", value)
		}
		cfg.API.TimeoutSeconds = n
	case "user.name":
		cfg.User.Name = value
	case "user.owner_id":
		cfg.User.OwnerID = value
	case "persistence.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("persistence.enabled must be true or false, got %q", value)
		}
		cfg.Persistence.Enabled = b
	case "ui.theme":
		cfg.UI.Theme = value
	case "ui.show_stats_footer":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("ui.show_stats_footer must be true or false, got %q", value)
		}
		cfg.UI.ShowStatsFooter = b
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return cfg.Validate()
}
