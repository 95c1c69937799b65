// MIT License
//
// Copyright (c) 2024 talust-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// go/src/queue/queue.go

// Package queue provides the single ordered message queue that decouples
// network I/O from dispatch. Capacity is bounded: when the queue is full,
// Add blocks and the backpressure propagates to the transport readers.
package queue

import (
	"errors"
	"sync"

	"github.com/talust-core/go/src/message"
)

// DefaultCapacity bounds the queue when the configuration does not.
const DefaultCapacity = 4096

// ErrClosed is returned by Add once the queue has been shut down.
var ErrClosed = errors.New("queue: closed")

// ErrFull is returned by TryAdd when the queue has no room.
var ErrFull = errors.New("queue: full")

// MessageQueue is a strictly FIFO, bounded, blocking queue of envelopes.
// Envelopes added from a single goroutine are taken in the same order.
type MessageQueue struct {
	ch   chan *message.Envelope
	done chan struct{}
	once sync.Once
}

// New creates a queue holding at most capacity envelopes.
func New(capacity int) *MessageQueue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MessageQueue{
		ch:   make(chan *message.Envelope, capacity),
		done: make(chan struct{}),
	}
}

// Add enqueues one envelope, blocking while the queue is full. It fails only
// after Close.
func (q *MessageQueue) Add(env *message.Envelope) error {
	select {
	case <-q.done:
		return ErrClosed
	default:
	}
	select {
	case q.ch <- env:
		return nil
	case <-q.done:
		return ErrClosed
	}
}

// TryAdd enqueues one envelope without blocking, failing with ErrFull when
// the queue has no room. Code running inside the dispatch pipeline (handlers,
// broadcast fan-out) must use this rather than Add: a worker blocked on its
// own queue would stall the loop that drains it.
func (q *MessageQueue) TryAdd(env *message.Envelope) error {
	select {
	case <-q.done:
		return ErrClosed
	default:
	}
	select {
	case q.ch <- env:
		return nil
	case <-q.done:
		return ErrClosed
	default:
		return ErrFull
	}
}

// Take blocks until an envelope is available and returns it. After Close it
// keeps returning queued envelopes until the queue is drained, then reports
// ok == false.
func (q *MessageQueue) Take() (*message.Envelope, bool) {
	select {
	case env := <-q.ch:
		return env, true
	case <-q.done:
		select {
		case env := <-q.ch:
			return env, true
		default:
			return nil, false
		}
	}
}

// Len returns the number of envelopes currently queued.
func (q *MessageQueue) Len() int {
	return len(q.ch)
}

// Close shuts the queue down. Pending envelopes remain takeable; further
// Add calls fail with ErrClosed.
func (q *MessageQueue) Close() {
	q.once.Do(func() { close(q.done) })
}
