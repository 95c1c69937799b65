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

// go/src/dispatch/dispatcher_test.go
package dispatch

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/talust-core/go/src/message"
	"github.com/talust-core/go/src/queue"
)

// recorder collects the names of handlers that ran, in order.
type recorder struct {
	mu    sync.Mutex
	names []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	r.names = append(r.names, name)
	r.mu.Unlock()
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

type namedHandler struct {
	name string
	rec  *recorder
	done chan struct{}
}

func (h *namedHandler) Handle(env *message.Envelope) bool {
	h.rec.add(h.name)
	if h.done != nil {
		close(h.done)
	}
	return true
}

type panicHandler struct{}

func (panicHandler) Handle(env *message.Envelope) bool { panic("boom") }

type boolValidator struct{ ok bool }

func (v boolValidator) Check(env *message.Envelope) bool { return v.ok }

type captureSender struct {
	got chan *message.Envelope
}

func (s *captureSender) Send(env *message.Envelope) error {
	s.got <- env
	return nil
}

func newTestDispatcher(r *Registry, sender Sender) (*Dispatcher, *queue.MessageQueue) {
	q := queue.New(64)
	m := NewMetrics(prometheus.NewRegistry())
	return NewDispatcher(q, r, sender, 2, m, zap.NewNop()), q
}

func localEnv(t message.Type) *message.Envelope {
	return &message.Envelope{Message: message.New(t, nil)}
}

func TestHandlersRunInRegistrationOrder(t *testing.T) {
	rec := &recorder{}
	done := make(chan struct{})
	r := NewRegistry()
	r.AddHandler(message.TypeTransaction, &namedHandler{name: "first", rec: rec})
	r.AddHandler(message.TypeTransaction, &namedHandler{name: "second", rec: rec, done: done})

	d, q := newTestDispatcher(r, nil)
	d.Start()
	defer d.Stop()

	if err := q.Add(localEnv(message.TypeTransaction)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handlers did not run")
	}

	got := rec.snapshot()
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("handler order = %v, want [first second]", got)
	}
}

func TestValidatorFailureStopsHandlers(t *testing.T) {
	rec := &recorder{}
	r := NewRegistry()
	r.SetValidator(message.TypeTransaction, boolValidator{ok: false})
	r.AddHandler(message.TypeTransaction, &namedHandler{name: "h", rec: rec})

	d, q := newTestDispatcher(r, nil)
	d.Start()

	q.Add(localEnv(message.TypeTransaction))
	d.Stop() // waits for all queued tasks

	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("handlers ran after validator rejection: %v", got)
	}
}

func TestUnknownTypeDiscarded(t *testing.T) {
	rec := &recorder{}
	r := NewRegistry()
	r.AddHandler(message.TypeTransaction, &namedHandler{name: "h", rec: rec})

	d, q := newTestDispatcher(r, nil)
	d.Start()

	q.Add(localEnv(message.TypeError))
	d.Stop()

	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("handler ran for unregistered type: %v", got)
	}
}

func TestOutboundRoutedToSender(t *testing.T) {
	rec := &recorder{}
	r := NewRegistry()
	r.AddHandler(message.TypeTransaction, &namedHandler{name: "h", rec: rec})
	sender := &captureSender{got: make(chan *message.Envelope, 1)}

	d, q := newTestDispatcher(r, sender)
	d.Start()
	defer d.Stop()

	env := localEnv(message.TypeTransaction)
	env.To = "10.0.0.2:30303"
	q.Add(env)

	select {
	case sent := <-sender.got:
		if sent.To != env.To {
			t.Fatalf("sender got envelope for %q, want %q", sent.To, env.To)
		}
	case <-time.After(time.Second):
		t.Fatal("outbound envelope never reached the sender")
	}
	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("local handlers ran for an outbound envelope: %v", got)
	}
}

func TestHandlerPanicDoesNotKillWorkers(t *testing.T) {
	rec := &recorder{}
	done := make(chan struct{})
	r := NewRegistry()
	r.AddHandler(message.TypeBlock, panicHandler{})
	r.AddHandler(message.TypeTransaction, &namedHandler{name: "h", rec: rec, done: done})

	d, q := newTestDispatcher(r, nil)
	d.Start()
	defer d.Stop()

	q.Add(localEnv(message.TypeBlock))
	q.Add(localEnv(message.TypeTransaction))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not survive a panicking handler")
	}
}

func TestRejectsBadEnvelopeSignature(t *testing.T) {
	rec := &recorder{}
	r := NewRegistry()
	r.AddHandler(message.TypeTransaction, &namedHandler{name: "h", rec: rec})

	d, q := newTestDispatcher(r, nil)
	d.Start()

	env := localEnv(message.TypeTransaction)
	env.Message.Signer = []byte{0x02, 0x01}
	env.Message.SignContent = []byte("junk")
	q.Add(env)
	d.Stop()

	if got := rec.snapshot(); len(got) != 0 {
		t.Fatalf("handler ran for badly signed envelope: %v", got)
	}
}

func TestStopDrainsQueue(t *testing.T) {
	rec := &recorder{}
	r := NewRegistry()
	r.AddHandler(message.TypeTransaction, &namedHandler{name: "h", rec: rec})

	d, q := newTestDispatcher(r, nil)
	d.Start()

	const n = 20
	for i := 0; i < n; i++ {
		if err := q.Add(localEnv(message.TypeTransaction)); err != nil {
			t.Fatalf("Add #%d: %v", i, err)
		}
	}
	d.Stop()

	if got := len(rec.snapshot()); got != n {
		t.Fatalf("handled %d envelopes after Stop, want %d", got, n)
	}
}
