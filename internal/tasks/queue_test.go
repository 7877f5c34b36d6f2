// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tasks

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestQueue_SubmitAndComplete(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	var ran atomic.Bool
	task := q.Submit("chat-message write", "conv_1", func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	waitForTerminal(t, task)
	if !ran.Load() {
		t.Error("task body did not run")
	}
	if task.Status() != TaskStatusComplete {
		t.Errorf("status: got %s, want Complete", task.Status())
	}
	if task.Err() != nil {
		t.Errorf("unexpected error: %v", task.Err())
	}
	if task.ConversationID != "conv_1" {
		t.Errorf("conversation ID: got %q", task.ConversationID)
	}
}

func TestQueue_FailureIsTerminal(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	wantErr := errors.New("sink unavailable")
	task := q.Submit("interaction-log write", "conv_1", func(ctx context.Context) error {
		return wantErr
	})

	waitForTerminal(t, task)
	if task.Status() != TaskStatusFailed {
		t.Errorf("status: got %s, want Failed", task.Status())
	}
	if !errors.Is(task.Err(), wantErr) {
		t.Errorf("error: got %v, want %v", task.Err(), wantErr)
	}
}

func TestQueue_SubmitNeverBlocks(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	release := make(chan struct{})
	defer close(release)

	// Wedge the workers, then overfill the buffer.
	block := func(ctx context.Context) error {
		<-release
		return nil
	}
	for i := 0; i < defaultWorkers; i++ {
		q.Submit("blocker", "conv_1", block)
	}

	done := make(chan struct{})
	var dropped int
	go func() {
		defer close(done)
		for i := 0; i < defaultBuffer+10; i++ {
			task := q.Submit("flood", "conv_1", func(ctx context.Context) error { return nil })
			if task.Status() == TaskStatusDropped {
				dropped++
			}
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Submit blocked")
	}
	if dropped == 0 {
		t.Error("expected some writes to be dropped once the buffer filled")
	}
}

func TestQueue_SubmitAfterClose(t *testing.T) {
	q := NewQueue()
	q.Close()

	task := q.Submit("late write", "conv_1", func(ctx context.Context) error { return nil })
	if task.Status() != TaskStatusDropped {
		t.Errorf("status: got %s, want Dropped", task.Status())
	}
}

func TestQueue_SubmitDuringCloseDoesNotPanic(t *testing.T) {
	// Shutdown races submission in production: quitting the app closes
	// the queue while a detached response goroutine may still be
	// recording its write. Neither side may panic.
	for i := 0; i < 500; i++ {
		q := NewQueue()

		start := make(chan struct{})
		var wg sync.WaitGroup
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				for j := 0; j < 8; j++ {
					q.Submit("late write", "conv_1", func(ctx context.Context) error { return nil })
				}
			}()
		}

		close(start)
		q.Close()
		wg.Wait()
	}
}

func TestQueue_Notifications(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	task := q.Submit("conversation upsert", "conv_1", func(ctx context.Context) error { return nil })

	select {
	case n := <-q.Notifications():
		if n.TaskID != task.ID {
			t.Errorf("notification task ID: got %q, want %q", n.TaskID, task.ID)
		}
		if n.Status != TaskStatusComplete {
			t.Errorf("notification status: got %s", n.Status)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no notification received")
	}
}

func waitForTerminal(t *testing.T, task *Task) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		switch task.Status() {
		case TaskStatusComplete, TaskStatusFailed, TaskStatusDropped:
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("task did not reach a terminal state: %s", task.Status())
}
