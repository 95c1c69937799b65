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

// go/src/dispatch/dispatcher.go
package dispatch

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/talust-core/go/src/message"
	"github.com/talust-core/go/src/queue"
)

// DefaultWorkers sizes the pool when the configuration does not.
const DefaultWorkers = 8

// NewDispatcher wires a dispatcher against the queue, registry and outbound
// sender. sender may be nil, in which case outbound envelopes are dropped
// with a warning.
func NewDispatcher(q *queue.MessageQueue, r *Registry, sender Sender, workers int, m *Metrics, log *zap.Logger) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Dispatcher{
		queue:    q,
		registry: r,
		sender:   sender,
		metrics:  m,
		workers:  workers,
		tasks:    make(chan task, workers),
		log:      log,
	}
}

// Start launches the worker pool and the single consumer loop. It returns
// immediately; the loop runs until the queue is closed and drained.
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	d.wg.Add(1)
	go d.loop()
}

// Stop closes the queue and waits for the loop and every in-flight task to
// finish. Queued envelopes are still processed.
func (d *Dispatcher) Stop() {
	d.queue.Close()
	d.wg.Wait()
}

// loop is the sole consumer of the message queue. One malformed envelope
// must never terminate it, so each iteration recovers on its own.
func (d *Dispatcher) loop() {
	defer d.wg.Done()
	defer close(d.tasks)
	for {
		env, ok := d.queue.Take()
		if !ok {
			return
		}
		d.dispatch(env)
	}
}

func (d *Dispatcher) dispatch(env *message.Envelope) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("dispatch failed", zap.Any("panic", r))
		}
	}()

	// Envelopes addressed to a peer are outbound copies (broadcast or a
	// direct reply); they go to the transport, not to local handlers.
	if env.To != "" {
		if d.sender == nil {
			d.log.Warn("outbound envelope dropped: no sender wired", zap.String("to", env.To))
			return
		}
		if err := d.sender.Send(env); err != nil {
			d.log.Warn("outbound send failed", zap.String("to", env.To), zap.Error(err))
		}
		return
	}

	handlers := d.registry.Handlers(env.Message.Type)
	if len(handlers) == 0 {
		// Expected from peers running other feature sets.
		d.metrics.Discarded.Inc()
		d.log.Debug("no handler for message type", zap.Int32("type", int32(env.Message.Type)))
		return
	}
	d.metrics.Dispatched.WithLabelValues(typeLabel(env.Message.Type)).Inc()
	d.tasks <- task{env: env, validator: d.registry.Validator(env.Message.Type), handlers: handlers}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for t := range d.tasks {
		d.run(t)
	}
}

// run executes one task: envelope signature gate, then the validator, then
// every handler in registration order. A handler's return value is logged
// but does not stop later handlers.
func (d *Dispatcher) run(t task) {
	defer func() {
		if r := recover(); r != nil {
			d.metrics.Rejected.WithLabelValues("panic").Inc()
			d.log.Error("task panicked", zap.Int32("type", int32(t.env.Message.Type)), zap.Any("panic", r))
		}
	}()
	start := time.Now()
	label := typeLabel(t.env.Message.Type)

	msg := t.env.Message
	if len(msg.Signer) > 0 && !msg.VerifySignature() {
		d.metrics.Rejected.WithLabelValues("signature").Inc()
		d.log.Info("envelope rejected: bad signature", zap.String("from", t.env.From))
		return
	}
	if t.validator != nil && !t.validator.Check(t.env) {
		d.metrics.Rejected.WithLabelValues("validator").Inc()
		return
	}
	for _, h := range t.handlers {
		if accepted := h.Handle(t.env); !accepted {
			d.log.Debug("handler did not accept envelope",
				zap.Int32("type", int32(msg.Type)), zap.String("from", t.env.From))
		}
	}
	d.metrics.Handled.WithLabelValues(label).Inc()
	d.metrics.TaskLatency.WithLabelValues(label).Observe(time.Since(start).Seconds())
}

func typeLabel(t message.Type) string {
	return strconv.Itoa(int(t))
}
