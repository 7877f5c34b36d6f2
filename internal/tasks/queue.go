// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import (
	"context"
	"log"
	"sync"
	"time"
)

// Queue defaults.
const (
	// defaultBuffer is the pending-task capacity. A full buffer drops new
	// writes rather than blocking the chat turn.
	defaultBuffer = 64

	// defaultWorkers is the number of concurrent write workers. Writes
	// carry no ordering guarantee relative to each other, so more than
	// one worker is safe.
	defaultWorkers = 2

	// taskTimeout bounds a single write so a wedged sink cannot pin a
	// worker forever.
	taskTimeout = 30 * time.Second
)

// Notification is emitted when a task reaches a terminal state.
type Notification struct {
	TaskID      string
	Description string
	Status      TaskStatus
}

// Queue runs persistence writes in the background, detached from the chat
// turn. Submission never blocks: when the buffer is full the write is
// dropped and logged.
type Queue struct {
	pending chan *Task
	notify  chan Notification

	mu         sync.Mutex
	history    []*Task
	maxHistory int
	closed     bool

	wg sync.WaitGroup
}

// NewQueue creates a queue and starts its workers.
func NewQueue() *Queue {
	q := &Queue{
		pending:    make(chan *Task, defaultBuffer),
		notify:     make(chan Notification, 100),
		maxHistory: 50,
	}
	for i := 0; i < defaultWorkers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

// Submit enqueues a write and returns its task. The call never blocks; a
// full buffer or closed queue drops the write.
func (q *Queue) Submit(description, conversationID string, fn TaskFunc) *Task {
	task := NewTask(description, conversationID, fn)

	// The closed check and the send happen under the same lock so Close
	// cannot close the channel between them. The send never blocks, so
	// holding the lock across it is fine.
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		task.markDropped()
		return task
	}
	select {
	case q.pending <- task:
		q.mu.Unlock()
	default:
		q.mu.Unlock()
		task.markDropped()
		log.Printf("tasks: queue full, dropped %s", task.Summary())
		q.record(task)
	}
	return task
}

// Notifications returns the terminal-state channel. Receivers that fall
// behind lose notifications rather than stalling the workers.
func (q *Queue) Notifications() <-chan Notification {
	return q.notify
}

// History returns recent terminal tasks, newest last.
func (q *Queue) History() []*Task {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*Task, len(q.history))
	copy(out, q.history)
	return out
}

// Close stops accepting writes and waits for in-flight tasks to finish.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	close(q.pending)
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for task := range q.pending {
		ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
		task.run(ctx)
		cancel()

		if err := task.Err(); err != nil {
			// Write failures are diagnostics only, never surfaced to the
			// chat turn and never retried.
			log.Printf("tasks: %s failed: %v", task.Description, err)
		}
		q.record(task)
	}
}

// record appends a terminal task to bounded history and emits a
// notification without blocking.
func (q *Queue) record(task *Task) {
	q.mu.Lock()
	q.history = append(q.history, task)
	if len(q.history) > q.maxHistory {
		q.history = q.history[len(q.history)-q.maxHistory:]
	}
	q.mu.Unlock()

	select {
	case q.notify <- Notification{TaskID: task.ID, Description: task.Description, Status: task.Status()}:
	default:
	}
}
