// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - configuration and connectivity overview.
//
// Command: status
// Aliases: s, info
//
// Sections:
//   API:         endpoint, model, key presence
//   Persistence: owner, database path, reachability
//   UI:          theme, stats footer
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/collegegenie-tui/internal/storage"
	"github.com/jeranaias/collegegenie-tui/internal/ui/styles"
)

var (
	statusTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(styles.Cyan).
				MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Indigo)

	keyStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Width(14)

	okStyle   = lipgloss.NewStyle().Foreground(styles.Emerald)
	warnStyle = lipgloss.NewStyle().Foreground(styles.Amber)
)

// RunStatus handles "genie status".
func RunStatus(app *App, args Args) int {
	cfg := app.Cfg

	fmt.Println(statusTitleStyle.Render("CollegeGenie Status"))

	fmt.Println(sectionStyle.Render("API"))
	printRow("Endpoint", valueOr(cfg.API.BaseURL, "default"))
	printRow("Model", valueOr(cfg.API.Model, "default"))
	if cfg.API.Key != "" {
		printRow("Key", okStyle.Render("configured"))
	} else {
		printRow("Key", warnStyle.Render("missing, responses will fall back"))
	}

	fmt.Println()
	fmt.Println(sectionStyle.Render("Persistence"))
	if cfg.User.OwnerID == "" {
		printRow("Mode", warnStyle.Render("anonymous, nothing saved"))
	} else if !cfg.Persistence.Enabled {
		printRow("Mode", warnStyle.Render("disabled in config"))
	} else {
		printRow("Owner", cfg.User.OwnerID)
		dbPath, err := cfg.DatabasePath()
		if err != nil {
			printRow("Database", warnStyle.Render(err.Error()))
		} else {
			printRow("Database", dbPath)
			if store, err := storage.OpenChatStore(dbPath); err != nil {
				printRow("Reachable", warnStyle.Render(err.Error()))
			} else {
				store.Close()
				printRow("Reachable", okStyle.Render("yes"))
			}
		}
	}

	fmt.Println()
	fmt.Println(sectionStyle.Render("UI"))
	printRow("Theme", cfg.UI.Theme)
	printRow("Stats footer", onOff(cfg.UI.ShowStatsFooter))

	if !args.Quiet {
		fmt.Println()
		fmt.Println(keyStyle.Render("") + VersionString())
	}
	return 0
}

func printRow(key, value string) {
	fmt.Println("  " + keyStyle.Render(key) + value)
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
