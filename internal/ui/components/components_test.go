// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
)

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"short line untouched", "hello world", 20, "hello world"},
		{"wraps at width", "one two three four", 9, "one two\nthree\nfour"},
		{"zero width passthrough", "hello", 0, "hello"},
		{"preserves blank lines", "a\n\nb", 10, "a\n\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wordWrap(tt.input, tt.width)
			if got != tt.want {
				t.Errorf("wordWrap(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestMaxLineWidth(t *testing.T) {
	if got := maxLineWidth("ab\nabcd\na"); got != 4 {
		t.Errorf("maxLineWidth = %d, want 4", got)
	}
	// CJK characters occupy two cells each.
	if got := maxLineWidth("数学"); got != 4 {
		t.Errorf("maxLineWidth CJK = %d, want 4", got)
	}
}

func TestParseCodeBlocksPassthrough(t *testing.T) {
	input := "no fences here\njust prose"
	if got := ParseCodeBlocks(input, 80); got != input {
		t.Errorf("plain text changed: %q", got)
	}
}

func TestParseCodeBlocksRendersFence(t *testing.T) {
	input := "before\n```python\nprint('hi')\n```\nafter"
	got := ParseCodeBlocks(input, 80)

	if !strings.Contains(got, "before") || !strings.Contains(got, "after") {
		t.Errorf("surrounding prose lost: %q", got)
	}
	if !strings.Contains(got, "print") {
		t.Errorf("code content lost: %q", got)
	}
	if strings.Contains(got, "```") {
		t.Errorf("fence markers leaked into output: %q", got)
	}
}

func TestParseCodeBlocksUnclosedFence(t *testing.T) {
	input := "```sql\nSELECT 1;"
	got := ParseCodeBlocks(input, 80)
	if !strings.Contains(got, "SELECT 1;") {
		t.Errorf("unclosed fence content lost: %q", got)
	}
}

func TestStatusString(t *testing.T) {
	if StatusReady.String() != "Ready" {
		t.Errorf("StatusReady = %q", StatusReady.String())
	}
	if StatusThinking.String() != "Thinking..." {
		t.Errorf("StatusThinking = %q", StatusThinking.String())
	}
}
