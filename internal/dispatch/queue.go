// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package dispatch provides the cooperative UI-thread task queue.
//
// Work is posted from any goroutine and executed by whichever goroutine
// owns the UI, either by calling RunPending once per frame or by running
// Run until its context ends.
package dispatch

import (
	"context"
	"sync"

	"github.com/gogpu/glass"
)

// Priority orders pending tasks. Higher priorities run first.
type Priority uint8

const (
	// PriorityBackground is for deferred work such as backdrop capture.
	PriorityBackground Priority = iota

	// PriorityNormal is the default priority.
	PriorityNormal

	// PriorityRender runs before everything else.
	PriorityRender

	numPriorities
)

// String returns the priority name.
func (p Priority) String() string {
	switch p {
	case PriorityBackground:
		return "Background"
	case PriorityNormal:
		return "Normal"
	case PriorityRender:
		return "Render"
	default:
		return "Unknown"
	}
}

// Queue is a priority FIFO of UI tasks. It is safe for concurrent use.
type Queue struct {
	mu     sync.Mutex
	tasks  [numPriorities][]func()
	closed bool
	wake   chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

// Post enqueues fn at priority p. It returns false when the queue is
// closed. Unknown priorities are treated as PriorityNormal.
func (q *Queue) Post(p Priority, fn func()) bool {
	if fn == nil {
		return false
	}
	if p >= numPriorities {
		p = PriorityNormal
	}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.tasks[p] = append(q.tasks[p], fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, ts := range q.tasks {
		n += len(ts)
	}
	return n
}

// RunPending runs the tasks queued at the time of the call, highest
// priority first, and returns how many ran. Tasks posted while running
// wait for the next call.
func (q *Queue) RunPending() int {
	q.mu.Lock()
	var batch [numPriorities][]func()
	for p := range q.tasks {
		batch[p] = q.tasks[p]
		q.tasks[p] = nil
	}
	q.mu.Unlock()

	n := 0
	for p := int(numPriorities) - 1; p >= 0; p-- {
		for _, fn := range batch[p] {
			run(Priority(p), fn)
			n++
		}
	}
	return n
}

func run(p Priority, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			glass.Logger().Error("dispatch: task panicked", "priority", p, "panic", r)
		}
	}()
	fn()
}

// Run executes tasks as they are posted until ctx is done or the queue is
// closed.
func (q *Queue) Run(ctx context.Context) error {
	for {
		q.RunPending()

		q.mu.Lock()
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.wake:
		}
	}
}

// Close rejects further posts, drops pending tasks and stops Run.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	for p := range q.tasks {
		q.tasks[p] = nil
	}
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}
