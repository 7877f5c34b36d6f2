// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Configuration constants for the completion endpoint.
const (
	// DefaultBaseURL is the default completion endpoint.
	DefaultBaseURL = "https://api.collegegenie.app/v1"

	// DefaultTimeout is the default timeout for completion requests.
	DefaultTimeout = 60 * time.Second

	// DefaultModel is used when the config does not name one.
	DefaultModel = "genie-chat"

	// DefaultMaxRetries is the number of attempts for transient errors.
	DefaultMaxRetries = 3

	// retryBaseDelay is the base delay for exponential backoff.
	retryBaseDelay = 500 * time.Millisecond

	// retryMaxDelay caps the exponential backoff.
	retryMaxDelay = 10 * time.Second

	// Fixed sampling parameters sent with every request.
	requestTemperature = 0.7
	requestMaxTokens   = 2048

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024
)

// SystemPersona is the fixed instruction sent with every completion request.
const SystemPersona = "You are CollegeGenie, an AI assistant focused on helping with college subjects like Allied Mathematics, Machine Learning, Cloud Computing, Web Development, Database Systems, and Software Engineering. Provide concise, helpful responses to students' questions."

// ErrorType categorizes completion request failures.
type ErrorType int

const (
	// ErrTypeConnection indicates the endpoint could not be reached.
	ErrTypeConnection ErrorType = iota

	// ErrTypeTimeout indicates the request exceeded its deadline.
	ErrTypeTimeout

	// ErrTypeStatus indicates a non-2xx response.
	ErrTypeStatus

	// ErrTypeMalformed indicates an unparseable or empty payload.
	ErrTypeMalformed

	// ErrTypeNotConfigured indicates a missing API key.
	ErrTypeNotConfigured
)

// Sentinel errors for errors.Is checks.
var (
	ErrConnection    = errors.New("completion endpoint unreachable")
	ErrTimeout       = errors.New("completion request timed out")
	ErrBadStatus     = errors.New("completion request rejected")
	ErrMalformed     = errors.New("malformed completion payload")
	ErrNotConfigured = errors.New("API key not configured")
	ErrEmptyPrompt   = errors.New("empty prompt")
)

// ClientError is a typed error returned by the completion client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error

	// Status is the HTTP status code for ErrTypeStatus errors.
	Status int
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is maps error types onto their sentinels.
func (e *ClientError) Is(target error) bool {
	switch target {
	case ErrConnection:
		return e.Type == ErrTypeConnection
	case ErrTimeout:
		return e.Type == ErrTypeTimeout
	case ErrBadStatus:
		return e.Type == ErrTypeStatus
	case ErrMalformed:
		return e.Type == ErrTypeMalformed
	case ErrNotConfigured:
		return e.Type == ErrTypeNotConfigured
	}
	return false
}

// ClientConfig configures the completion client. Zero values are filled
// with defaults by NewClient.
type ClientConfig struct {
	BaseURL    string
	APIKey     string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// chatMessage is one entry in the request payload.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the completion request payload.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

// chatResponse is the completion response payload. Only the first choice
// is consumed.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Client talks to the remote completion endpoint.
//
// Client carries no conversation state; each Complete call is independent.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	timeout    time.Duration
	maxRetries int
	httpClient *http.Client
}

// NewClient creates a completion client, filling zero-value config fields
// with defaults.
func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		model:      cfg.Model,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

// IsConfigured reports whether an API key is set.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Complete sends the user text to the completion endpoint and returns the
// first choice's content verbatim. Transient failures are retried with
// exponential backoff before an error is returned.
func (c *Client) Complete(ctx context.Context, userText string) (string, error) {
	if strings.TrimSpace(userText) == "" {
		return "", ErrEmptyPrompt
	}
	if !c.IsConfigured() {
		return "", &ClientError{Type: ErrTypeNotConfigured, Message: "API key not configured"}
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPersona},
			{Role: "user", Content: userText},
		},
		Temperature: requestTemperature,
		MaxTokens:   requestMaxTokens,
		Stream:      false,
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", c.wrapContextErr(ctx.Err())
			case <-time.After(backoffDelay(attempt)):
			}
		}

		content, err := c.doRequest(ctx, reqBody)
		if err == nil {
			return content, nil
		}
		if !isRetryable(err) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

// doRequest performs a single completion request.
func (c *Client) doRequest(ctx context.Context, reqBody chatRequest) (string, error) {
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ClientError{Type: ErrTypeMalformed, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", "genie/0.1.0")

	resp, err := c.httpClient.Do(req)

	// Drop the auth header immediately so request dumps never carry it.
	req.Header.Del("Authorization")

	if err != nil {
		return "", c.wrapTransportErr(err)
	}
	defer resp.Body.Close()

	// SECURITY: Read with a size limit to prevent memory exhaustion.
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to read response", Cause: err}
	}
	if int64(len(body)) == MaxResponseSize {
		return "", &ClientError{Type: ErrTypeMalformed, Message: "response exceeded maximum size"}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ClientError{
			Type:    ErrTypeStatus,
			Message: fmt.Sprintf("completion endpoint returned HTTP %d", resp.StatusCode),
			Status:  resp.StatusCode,
		}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", &ClientError{Type: ErrTypeMalformed, Message: "failed to parse response", Cause: err}
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", &ClientError{Type: ErrTypeMalformed, Message: "response contained no completion"}
	}

	return chatResp.Choices[0].Message.Content, nil
}

// wrapTransportErr classifies a transport-level failure.
func (c *Client) wrapTransportErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ClientError{Type: ErrTypeTimeout, Message: "completion request timed out", Cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return &ClientError{Type: ErrTypeConnection, Message: "completion request canceled", Cause: err}
	}
	return &ClientError{Type: ErrTypeConnection, Message: "completion endpoint unreachable", Cause: err}
}

// wrapContextErr classifies a context expiry hit while backing off.
func (c *Client) wrapContextErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ClientError{Type: ErrTypeTimeout, Message: "completion request timed out", Cause: err}
	}
	return &ClientError{Type: ErrTypeConnection, Message: "completion request canceled", Cause: err}
}

// isRetryable reports whether a failure is worth another attempt. Server
// errors and transport failures retry; client mistakes do not.
func isRetryable(err error) bool {
	var ce *ClientError
	if !errors.As(err, &ce) {
		return false
	}
	switch ce.Type {
	case ErrTypeConnection:
		return !errors.Is(ce.Cause, context.Canceled)
	case ErrTypeStatus:
		return ce.Status >= 500 || ce.Status == http.StatusTooManyRequests
	}
	return false
}

// backoffDelay returns the exponential backoff delay for an attempt.
func backoffDelay(attempt int) time.Duration {
	delay := retryBaseDelay * time.Duration(1<<uint(attempt))
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	return delay
}
