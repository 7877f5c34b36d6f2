// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		want     string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"zero max", "hello", 0, ""},
		{"tiny max no ellipsis", "hello", 2, "he"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateRunes(tt.input, tt.maxRunes); got != tt.want {
				t.Errorf("TruncateRunes(%q, %d): got %q, want %q", tt.input, tt.maxRunes, got, tt.want)
			}
		})
	}

	got := TruncateRunes("数学は楽しいですね", 5)
	if RuneLen(got) != 5 {
		t.Errorf("multibyte truncation length: got %d runes (%q), want 5", RuneLen(got), got)
	}
}

func TestTruncateWidth(t *testing.T) {
	// CJK characters occupy two columns each.
	if got := TruncateWidth("数学", 10); got != "数学" {
		t.Errorf("short CJK string changed: %q", got)
	}
	got := TruncateWidth("数学は楽しい", 7)
	if StringWidth(got) > 7 {
		t.Errorf("truncated width %d exceeds 7 (%q)", StringWidth(got), got)
	}
	if TruncateWidth("hello", 0) != "" {
		t.Error("zero width should yield empty string")
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("one\ntwo"); got != "one" {
		t.Errorf("FirstLine: got %q, want %q", got, "one")
	}
	if got := FirstLine("single"); got != "single" {
		t.Errorf("FirstLine without newline: got %q", got)
	}
}

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.json")

	if err := AtomicWriteFile(path, []byte(`{"ok":true}`), 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("content mismatch: %q", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("permissions: got %o, want 0600", info.Mode().Perm())
	}

	// Overwrite replaces the previous content completely.
	if err := AtomicWriteFile(path, []byte("v2"), 0600); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "v2" {
		t.Errorf("overwrite content: got %q, want %q", data, "v2")
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if e.Name() != "out.json" {
			t.Errorf("leftover file %s", e.Name())
		}
	}
}
