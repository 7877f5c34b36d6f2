// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the current state of a background write task.
type TaskStatus string

const (
	// TaskStatusQueued indicates the task is waiting for a worker.
	TaskStatusQueued TaskStatus = "Queued"

	// TaskStatusRunning indicates the task is currently executing.
	TaskStatusRunning TaskStatus = "Running"

	// TaskStatusComplete indicates the task finished successfully.
	TaskStatusComplete TaskStatus = "Complete"

	// TaskStatusFailed indicates the task encountered an error. Failures
	// are terminal: persistence writes are never retried.
	TaskStatusFailed TaskStatus = "Failed"

	// TaskStatusDropped indicates the queue was full and the task was
	// discarded without running.
	TaskStatusDropped TaskStatus = "Dropped"
)

// String returns the string representation of the task status.
func (s TaskStatus) String() string {
	return string(s)
}

// TaskFunc is the work a task performs, typically one persistence write.
type TaskFunc func(ctx context.Context) error

// Task is one fire-and-forget background write.
type Task struct {
	// ID is a unique identifier for this task.
	ID string

	// Description is a human-readable label for diagnostics.
	Description string

	// ConversationID is the conversation this write belongs to.
	ConversationID string

	fn TaskFunc

	mu        sync.RWMutex
	status    TaskStatus
	startTime time.Time
	endTime   time.Time
	err       error
}

// NewTask creates a queued task.
func NewTask(description, conversationID string, fn TaskFunc) *Task {
	return &Task{
		ID:             uuid.New().String(),
		Description:    description,
		ConversationID: conversationID,
		fn:             fn,
		status:         TaskStatusQueued,
	}
}

// Status returns the current task status.
func (t *Task) Status() TaskStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// Err returns the failure, if any.
func (t *Task) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.err
}

// Duration returns how long the task ran, or has been running.
func (t *Task) Duration() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.startTime.IsZero() {
		return 0
	}
	if t.endTime.IsZero() {
		return time.Since(t.startTime)
	}
	return t.endTime.Sub(t.startTime)
}

// Summary returns a one-line description for diagnostics.
func (t *Task) Summary() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return fmt.Sprintf("[%s] %s - %s", t.ID[:8], t.Description, t.status)
}

// run executes the task body and records the outcome.
func (t *Task) run(ctx context.Context) {
	t.mu.Lock()
	t.status = TaskStatusRunning
	t.startTime = time.Now()
	t.mu.Unlock()

	err := t.fn(ctx)

	t.mu.Lock()
	t.endTime = time.Now()
	if err != nil {
		t.status = TaskStatusFailed
		t.err = err
	} else {
		t.status = TaskStatusComplete
	}
	t.mu.Unlock()
}

// markDropped records that the queue discarded the task without running it.
func (t *Task) markDropped() {
	t.mu.Lock()
	t.status = TaskStatusDropped
	t.endTime = time.Now()
	t.mu.Unlock()
}
