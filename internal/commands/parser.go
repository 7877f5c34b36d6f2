// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"

	"golang.org/x/text/cases"
)

// commandPrefix marks a message as a command rather than chat text.
const commandPrefix = "/"

// foldCaser folds case for command matching, so /HELP and /help resolve
// identically regardless of locale.
var foldCaser = cases.Fold()

// ParseResult describes a parsed input line.
type ParseResult struct {
	// IsCommand is true when the trimmed input starts with the command
	// prefix. Text merely containing a command token is not a command.
	IsCommand bool

	// Name is the case-folded command word without the prefix.
	Name string

	// Args are the whitespace-separated tokens after the command word,
	// with quoted spans kept intact.
	Args []string

	// RawInput is the trimmed original input.
	RawInput string
}

// Parse inspects an input line for a reserved-prefix command.
func Parse(raw string) ParseResult {
	trimmed := strings.TrimSpace(raw)
	result := ParseResult{RawInput: trimmed}

	if !strings.HasPrefix(trimmed, commandPrefix) {
		return result
	}

	tokens := splitArgs(trimmed)
	if len(tokens) == 0 {
		return result
	}

	name := foldCaser.String(strings.TrimPrefix(tokens[0], commandPrefix))
	if name == "" {
		// A bare "/" is chat text, not a command.
		return result
	}

	result.IsCommand = true
	result.Name = name
	result.Args = tokens[1:]
	return result
}

// splitArgs tokenizes a command line, keeping single- or double-quoted
// spans together.
func splitArgs(line string) []string {
	var (
		tokens  []string
		current strings.Builder
		quote   rune
	)

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
		case r == ' ' || r == '\t':
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}
