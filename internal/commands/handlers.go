// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"

	"github.com/jeranaias/collegegenie-tui/internal/model"
	"github.com/jeranaias/collegegenie-tui/internal/telemetry"
	"github.com/jeranaias/collegegenie-tui/internal/util"
)

// Subjects is the fixed set of academic subjects genie can help with.
var Subjects = []string{
	"Allied Mathematics",
	"Machine Learning",
	"Cloud Computing",
	"Web Development",
	"Database Systems",
	"Software Engineering",
}

// Context carries the session state command handlers may read. SaveFunc is
// optional; the save command reports when it is absent.
type Context struct {
	Conversation *model.Conversation
	Stats        *telemetry.SessionStats
	SaveFunc     func() error
}

// NewContext creates a handler context for one session.
func NewContext(conv *model.Conversation, stats *telemetry.SessionStats) *Context {
	return &Context{Conversation: conv, Stats: stats}
}

func handleHelp(ctx *Context, args []string) Result {
	text := strings.Join([]string{
		"Available commands:",
		"/help - Show this help message",
		"/subjects - List college subjects I can help with",
		"/clear - Clear the conversation",
		"/stats - Show session statistics",
	}, "\n")
	return Result{Name: "help", Text: text}
}

func handleSubjects(ctx *Context, args []string) Result {
	return Result{
		Name: "subjects",
		Text: "I can help with the following subjects:\n" + strings.Join(Subjects, "\n"),
	}
}

func handleClear(ctx *Context, args []string) Result {
	// The log reset itself belongs to the session; the handler only
	// signals it.
	return Result{Name: "clear", Action: ActionClear}
}

func handleStats(ctx *Context, args []string) Result {
	const unavailable = "unavailable"

	count := 0
	if ctx.Conversation != nil {
		count = ctx.Conversation.Len()
	}

	latency := unavailable
	speed := unavailable
	if ctx.Stats != nil {
		if avg, ok := ctx.Stats.AverageLatencyMs(); ok {
			latency = util.FloatToString(avg, 0) + " ms"
		}
		if cpm, ok := ctx.Stats.TypingSpeedCPM(); ok {
			speed = util.FloatToString(cpm, 0) + " CPM"
		}
	}

	text := strings.Join([]string{
		"Session statistics:",
		"Messages: " + util.IntToString(count),
		"Average response latency: " + latency,
		"Typing speed: " + speed,
	}, "\n")
	return Result{Name: "stats", Text: text}
}

func handleSave(ctx *Context, args []string) Result {
	if ctx.SaveFunc == nil {
		return Result{Name: "save", Text: "Saving is not available in this session."}
	}
	if err := ctx.SaveFunc(); err != nil {
		return Result{Name: "save", Text: "Could not save the conversation: " + err.Error()}
	}
	return Result{Name: "save", Action: ActionSave, Text: "Conversation saved."}
}

func handleQuit(ctx *Context, args []string) Result {
	return Result{Name: "quit", Action: ActionQuit}
}
