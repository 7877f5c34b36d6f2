// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry tracks per-session conversation statistics for genie.
package telemetry

import (
	"sync"
	"time"
)

// Typing-speed estimation constants.
const (
	// typingStaleThreshold is the keystroke gap at or above which a sample
	// is treated as a pause rather than slow typing and discarded.
	typingStaleThreshold = 5 * time.Second

	// Weighted rolling average favors the newest sample.
	typingNewWeight  = 0.7
	typingPrevWeight = 0.3
)

// =============================================================================
// SESSION STATS
// =============================================================================

// SessionStats tracks derived statistics for one chat session: the rolling
// average completion latency and the typing-speed estimate.
//
// The two averages deliberately use different formulas. Latency combines the
// previous average and the new sample with equal weight; typing speed uses a
// 0.7/0.3 weighting toward the newest sample.
type SessionStats struct {
	mu sync.Mutex

	latencySamples int
	avgLatencyMs   float64

	typingSamples  int
	typingSpeedCPM float64
	lastKeystroke  time.Time
	lastInputLen   int
}

// NewSessionStats creates an empty stats tracker. Both estimates start
// unknown and become available after their first sample.
func NewSessionStats() *SessionStats {
	return &SessionStats{}
}

// RecordLatency folds a completed request's wall-clock latency into the
// rolling average. The first sample becomes the average; later samples are
// combined with the previous average at equal weight.
func (s *SessionStats) RecordLatency(latency time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sample := float64(latency.Milliseconds())
	if s.latencySamples == 0 {
		s.avgLatencyMs = sample
	} else {
		s.avgLatencyMs = (s.avgLatencyMs + sample) / 2
	}
	s.latencySamples++
}

// AverageLatencyMs returns the rolling average latency in milliseconds.
// ok is false until at least one request has resolved.
func (s *SessionStats) AverageLatencyMs() (avg float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.avgLatencyMs, s.latencySamples > 0
}

// RecordKeystroke feeds one input-change event into the typing-speed
// estimate. inputLen is the current length of the input box in runes.
//
// The interval since the previous event is converted to characters per
// minute when it is under the staleness threshold; longer gaps are treated
// as pauses and leave the estimate unchanged.
func (s *SessionStats) RecordKeystroke(inputLen int) {
	s.RecordKeystrokeAt(inputLen, time.Now())
}

// RecordKeystrokeAt is RecordKeystroke with an explicit event time.
func (s *SessionStats) RecordKeystrokeAt(inputLen int, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.lastKeystroke
	prevLen := s.lastInputLen
	s.lastKeystroke = at
	s.lastInputLen = inputLen

	if prev.IsZero() {
		return
	}

	interval := at.Sub(prev)
	if interval <= 0 || interval >= typingStaleThreshold {
		return
	}

	typed := inputLen - prevLen
	if typed <= 0 {
		// Deletions and paste-overwrites carry no speed signal.
		return
	}

	cpm := float64(typed) / interval.Minutes()
	if s.typingSamples == 0 {
		s.typingSpeedCPM = cpm
	} else {
		s.typingSpeedCPM = typingNewWeight*cpm + typingPrevWeight*s.typingSpeedCPM
	}
	s.typingSamples++
}

// TypingSpeedCPM returns the current typing-speed estimate in characters
// per minute. ok is false until at least one valid interval has been seen.
func (s *SessionStats) TypingSpeedCPM() (cpm float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typingSpeedCPM, s.typingSamples > 0
}

// ResetInput clears the keystroke reference point. Call after a submit or
// input clear so the next keystroke starts a fresh interval instead of
// measuring against stale text.
func (s *SessionStats) ResetInput() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastKeystroke = time.Time{}
	s.lastInputLen = 0
}
