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

// go/src/queue/queue_test.go
package queue

import (
	"testing"
	"time"

	"github.com/talust-core/go/src/message"
)

func envOf(t message.Type) *message.Envelope {
	return &message.Envelope{Message: message.New(t, nil)}
}

func TestAddTakeFIFO(t *testing.T) {
	q := New(8)
	types := []message.Type{message.TypeNodeJoin, message.TypeTransaction, message.TypeBlock}
	for _, mt := range types {
		if err := q.Add(envOf(mt)); err != nil {
			t.Fatalf("Add(%d): %v", mt, err)
		}
	}
	if got := q.Len(); got != len(types) {
		t.Fatalf("Len() = %d, want %d", got, len(types))
	}
	for i, mt := range types {
		env, ok := q.Take()
		if !ok {
			t.Fatalf("Take() #%d: queue reported closed", i)
		}
		if env.Message.Type != mt {
			t.Fatalf("Take() #%d type = %d, want %d", i, env.Message.Type, mt)
		}
	}
}

func TestAddBlocksWhenFull(t *testing.T) {
	q := New(1)
	if err := q.Add(envOf(message.TypeTransaction)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	added := make(chan struct{})
	go func() {
		q.Add(envOf(message.TypeBlock))
		close(added)
	}()

	select {
	case <-added:
		t.Fatal("Add returned while queue was full")
	case <-time.After(50 * time.Millisecond):
	}

	if _, ok := q.Take(); !ok {
		t.Fatal("Take failed on non-empty queue")
	}
	select {
	case <-added:
	case <-time.After(time.Second):
		t.Fatal("Add did not unblock after Take")
	}
}

func TestTryAddNeverBlocks(t *testing.T) {
	q := New(1)
	if err := q.TryAdd(envOf(message.TypeTransaction)); err != nil {
		t.Fatalf("TryAdd on empty queue: %v", err)
	}
	if err := q.TryAdd(envOf(message.TypeBlock)); err != ErrFull {
		t.Fatalf("TryAdd on full queue = %v, want ErrFull", err)
	}
	if _, ok := q.Take(); !ok {
		t.Fatal("Take failed on non-empty queue")
	}
	if err := q.TryAdd(envOf(message.TypeBlock)); err != nil {
		t.Fatalf("TryAdd after drain: %v", err)
	}

	q.Close()
	if err := q.TryAdd(envOf(message.TypeError)); err != ErrClosed {
		t.Fatalf("TryAdd after Close = %v, want ErrClosed", err)
	}
}

func TestCloseDrainsThenStops(t *testing.T) {
	q := New(4)
	q.Add(envOf(message.TypeTransaction))
	q.Add(envOf(message.TypeBlock))
	q.Close()

	if err := q.Add(envOf(message.TypeError)); err != ErrClosed {
		t.Fatalf("Add after Close = %v, want ErrClosed", err)
	}

	for i := 0; i < 2; i++ {
		if _, ok := q.Take(); !ok {
			t.Fatalf("Take() #%d failed before queue drained", i)
		}
	}
	if env, ok := q.Take(); ok {
		t.Fatalf("Take() on drained closed queue returned %v", env)
	}
}

func TestTakeUnblocksOnClose(t *testing.T) {
	q := New(4)
	done := make(chan bool, 1)
	go func() {
		_, ok := q.Take()
		done <- ok
	}()
	time.Sleep(20 * time.Millisecond)
	q.Close()
	select {
	case ok := <-done:
		if ok {
			t.Fatal("Take on empty closed queue reported ok")
		}
	case <-time.After(time.Second):
		t.Fatal("Take did not return after Close")
	}
}
