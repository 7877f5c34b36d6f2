// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(url string) *Client {
	return NewClient(ClientConfig{
		BaseURL:    url,
		APIKey:     "test-key",
		MaxRetries: 2,
	})
}

func completionHandler(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func TestClient_Complete(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		completionHandler("Integrals measure accumulated change.")(w, r)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	got, err := client.Complete(context.Background(), "explain integrals")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "Integrals measure accumulated change." {
		t.Errorf("content: got %q", got)
	}

	// Request carries the persona and fixed sampling parameters.
	if len(gotReq.Messages) != 2 {
		t.Fatalf("messages: got %d, want 2", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" || gotReq.Messages[0].Content != SystemPersona {
		t.Error("first message should be the system persona")
	}
	if gotReq.Messages[1].Role != "user" || gotReq.Messages[1].Content != "explain integrals" {
		t.Error("second message should be the user text")
	}
	if gotReq.Temperature != 0.7 {
		t.Errorf("temperature: got %v, want 0.7", gotReq.Temperature)
	}
	if gotReq.MaxTokens != 2048 {
		t.Errorf("max_tokens: got %d, want 2048", gotReq.MaxTokens)
	}
}

func TestClient_Complete_EmptyPrompt(t *testing.T) {
	client := newTestClient("http://localhost:1")
	if _, err := client.Complete(context.Background(), "   "); !errors.Is(err, ErrEmptyPrompt) {
		t.Errorf("expected ErrEmptyPrompt, got %v", err)
	}
}

func TestClient_Complete_NotConfigured(t *testing.T) {
	client := NewClient(ClientConfig{BaseURL: "http://localhost:1"})
	_, err := client.Complete(context.Background(), "hi")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestClient_Complete_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Complete(context.Background(), "hi")
	if !errors.Is(err, ErrBadStatus) {
		t.Fatalf("expected ErrBadStatus, got %v", err)
	}

	var ce *ClientError
	if !errors.As(err, &ce) {
		t.Fatal("expected a *ClientError")
	}
	if ce.Status != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", ce.Status)
	}
}

func TestClient_Complete_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "oops", http.StatusInternalServerError)
			return
		}
		completionHandler("recovered")(w, r)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	got, err := client.Complete(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Complete failed after retry: %v", err)
	}
	if got != "recovered" {
		t.Errorf("content: got %q", got)
	}
	if calls.Load() != 2 {
		t.Errorf("calls: got %d, want 2", calls.Load())
	}
}

func TestClient_Complete_MalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>gateway error</html>"},
		{"no choices", `{"choices":[]}`},
		{"empty content", `{"choices":[{"message":{"role":"assistant","content":""}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := newTestClient(srv.URL)
			if _, err := client.Complete(context.Background(), "hi"); !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestClient_Complete_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		completionHandler("late")(w, r)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		Timeout:    50 * time.Millisecond,
		MaxRetries: 1,
	})
	_, err := client.Complete(context.Background(), "hi")
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(ClientConfig{})
	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL: got %q", client.baseURL)
	}
	if client.model != DefaultModel {
		t.Errorf("model: got %q", client.model)
	}
	if client.timeout != DefaultTimeout {
		t.Errorf("timeout: got %v", client.timeout)
	}
	if client.maxRetries != DefaultMaxRetries {
		t.Errorf("maxRetries: got %d", client.maxRetries)
	}
}
