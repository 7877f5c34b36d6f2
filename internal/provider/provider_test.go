// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	text  string
	err   error
	delay time.Duration
}

func (f *fakeCompleter) Complete(ctx context.Context, userText string) (string, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.text, f.err
}

type captureRecorder struct {
	interactions []Interaction
}

func (c *captureRecorder) RecordInteraction(i Interaction) {
	c.interactions = append(c.interactions, i)
}

func TestProvider_GetResponse_Success(t *testing.T) {
	rec := &captureRecorder{}
	p := New(&fakeCompleter{text: "A stack is LIFO.", delay: 10 * time.Millisecond}, rec)

	res := p.GetResponse(context.Background(), "what is a stack?", "conv_1")

	assert.Equal(t, "A stack is LIFO.", res.Text)
	assert.False(t, res.Fallback)
	assert.GreaterOrEqual(t, res.Latency, 10*time.Millisecond)

	require.Len(t, rec.interactions, 1)
	got := rec.interactions[0]
	assert.Equal(t, "conv_1", got.ConversationID)
	assert.Equal(t, "what is a stack?", got.Query)
	assert.Equal(t, "A stack is LIFO.", got.Response)
	assert.GreaterOrEqual(t, got.LatencyMs, int64(10))
}

func TestProvider_GetResponse_FailureFallsBack(t *testing.T) {
	rec := &captureRecorder{}
	p := New(&fakeCompleter{err: errors.New("connection refused")}, rec)

	// Every failure yields a member of the fixed apology set, never an
	// error surfaced to the caller.
	for i := 0; i < 20; i++ {
		res := p.GetResponse(context.Background(), "help me study", "conv_1")
		assert.True(t, res.Fallback)
		assert.True(t, IsFallbackResponse(res.Text), "unexpected fallback text %q", res.Text)
	}

	// Failed turns are never recorded.
	assert.Empty(t, rec.interactions)
}

func TestProvider_GetResponse_AnonymousSkipsRecording(t *testing.T) {
	rec := &captureRecorder{}
	p := New(&fakeCompleter{text: "ok"}, rec)

	p.GetResponse(context.Background(), "hi", "")
	assert.Empty(t, rec.interactions)
}

func TestProvider_GetResponse_NilRecorder(t *testing.T) {
	p := New(&fakeCompleter{text: "ok"}, nil)
	res := p.GetResponse(context.Background(), "hi", "conv_1")
	assert.Equal(t, "ok", res.Text)
}

func TestFallbackResponse_Deterministic(t *testing.T) {
	SeedFallback(42)
	first := FallbackResponse()
	SeedFallback(42)
	second := FallbackResponse()
	assert.Equal(t, first, second)
	assert.True(t, IsFallbackResponse(first))
}
