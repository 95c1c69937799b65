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

// go/src/dispatch/types.go

// Package dispatch routes envelopes popped off the message queue to the
// validator and handlers registered for their type, executing them on a
// bounded worker pool.
package dispatch

import (
	"sync"

	"go.uber.org/zap"

	"github.com/talust-core/go/src/message"
	"github.com/talust-core/go/src/queue"
)

// Handler processes one envelope after validation. The returned bool only
// reports whether the envelope was accepted, for logging; it does not stop
// later handlers.
type Handler interface {
	Handle(env *message.Envelope) bool
}

// Validator decides whether an envelope may reach its handlers.
type Validator interface {
	Check(env *message.Envelope) bool
}

// Sender delivers an outbound envelope to its destination peer. Delivery is
// fire and forget.
type Sender interface {
	Send(env *message.Envelope) error
}

// Registry maps message types to their handlers (many, run in registration
// order) and validator (at most one). It is populated at startup and
// read-mostly afterwards.
type Registry struct {
	mu         sync.RWMutex
	handlers   map[message.Type][]Handler
	validators map[message.Type]Validator
}

// Dispatcher drains the message queue from a single consumer goroutine and
// executes each envelope's validator and handler chain on a fixed worker
// pool. Outbound envelopes (To set) are routed to the Sender instead.
type Dispatcher struct {
	queue    *queue.MessageQueue
	registry *Registry
	sender   Sender
	metrics  *Metrics
	workers  int
	tasks    chan task
	wg       sync.WaitGroup
	log      *zap.Logger
}

// task is one unit of worker-pool work: an envelope together with the
// validator and handlers resolved for its type.
type task struct {
	env       *message.Envelope
	validator Validator
	handlers  []Handler
}
