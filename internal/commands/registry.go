// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
)

// Action is a side effect a command requests from the session, beyond (or
// instead of) appending response text.
type Action int

const (
	// ActionNone appends the command's text as an assistant message.
	ActionNone Action = iota

	// ActionClear discards the message log and reseeds the greeting.
	ActionClear

	// ActionSave persists the current conversation.
	ActionSave

	// ActionQuit exits the chat surface.
	ActionQuit
)

// Result is a resolved command.
type Result struct {
	// Name of the command that matched.
	Name string

	// Text is the response body to show, empty for pure actions.
	Text string

	// Action the session should carry out.
	Action Action
}

// Handler resolves a matched command synchronously. Handlers never touch
// the network.
type Handler func(ctx *Context, args []string) Result

// Command is a registered slash command.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Hidden      bool
	Handler     Handler
}

// Registry holds the command set in registration order, which is also
// prefix-match precedence order.
type Registry struct {
	commands []*Command
	byName   map[string]*Command
}

// NewRegistry creates a registry with the built-in command set.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]*Command)}
	r.registerBuiltins()
	return r
}

// Register adds a command and its aliases.
func (r *Registry) Register(cmd *Command) {
	r.commands = append(r.commands, cmd)
	r.byName[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.byName[alias] = cmd
	}
}

// All returns the registered commands in order.
func (r *Registry) All() []*Command {
	return r.commands
}

// Interpret inspects raw input for a command and resolves it. ok is false
// when the input is not a command (or names an unknown one) and should
// fall through to the completion provider.
func (r *Registry) Interpret(ctx *Context, raw string) (Result, bool) {
	parsed := Parse(raw)
	if !parsed.IsCommand {
		return Result{}, false
	}

	cmd := r.lookup(parsed)
	if cmd == nil {
		return Result{}, false
	}
	return cmd.Handler(ctx, parsed.Args), true
}

// lookup finds the command for a parse result: exact name or alias first,
// then prefix match in registration order (so "/HELP extra" and "/helpme"
// both resolve to help).
func (r *Registry) lookup(parsed ParseResult) *Command {
	if cmd, ok := r.byName[parsed.Name]; ok {
		return cmd
	}

	folded := foldCaser.String(parsed.RawInput)
	for _, cmd := range r.commands {
		if strings.HasPrefix(folded, commandPrefix+cmd.Name) {
			return cmd
		}
	}
	return nil
}

// registerBuiltins installs the command set. The four core commands come
// first so prefix precedence is stable.
func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "help",
		Aliases:     []string{"h", "?"},
		Description: "Show this help message",
		Handler:     handleHelp,
	})
	r.Register(&Command{
		Name:        "subjects",
		Description: "List college subjects I can help with",
		Handler:     handleSubjects,
	})
	r.Register(&Command{
		Name:        "clear",
		Aliases:     []string{"c"},
		Description: "Clear the conversation",
		Handler:     handleClear,
	})
	r.Register(&Command{
		Name:        "stats",
		Description: "Show session statistics",
		Handler:     handleStats,
	})
	r.Register(&Command{
		Name:        "save",
		Description: "Save the conversation",
		Hidden:      true,
		Handler:     handleSave,
	})
	r.Register(&Command{
		Name:        "quit",
		Aliases:     []string{"q", "exit"},
		Description: "Exit",
		Hidden:      true,
		Handler:     handleQuit,
	})
}
