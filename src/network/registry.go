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

// go/src/network/registry.go
package network

import (
	"errors"

	orderedmap "github.com/elliotchance/orderedmap/v2"
	"go.uber.org/zap"

	"github.com/talust-core/go/src/message"
	"github.com/talust-core/go/src/queue"
)

// ErrUnknownPeer is returned by Send when no live channel exists for the
// destination address.
var ErrUnknownPeer = errors.New("network: unknown peer")

// NewConnectionRegistry creates a registry for a node listening on self.
// Broadcast copies are fed back through q for the dispatch loop to route.
func NewConnectionRegistry(self string, q *queue.MessageQueue, log *zap.Logger) *ConnectionRegistry {
	return &ConnectionRegistry{
		peers: orderedmap.NewOrderedMap[string, *PeerChannel](),
		self:  self,
		queue: q,
		log:   log,
	}
}

// Register adds a live channel for the given remote address, replacing any
// stale one, and returns it.
func (r *ConnectionRegistry) Register(address string) *PeerChannel {
	pc := &PeerChannel{
		Address: address,
		Out:     make(chan *message.Envelope, peerSendBuffer),
	}
	r.mu.Lock()
	if old, ok := r.peers.Get(address); ok {
		old.close()
	}
	r.peers.Set(address, pc)
	r.mu.Unlock()
	r.log.Info("peer registered", zap.String("address", address))
	return pc
}

// Remove drops the channel for the given address, closing its outbound
// channel so the transport's write loop terminates.
func (r *ConnectionRegistry) Remove(address string) {
	r.mu.Lock()
	pc, ok := r.peers.Get(address)
	if ok {
		r.peers.Delete(address)
	}
	r.mu.Unlock()
	if ok {
		pc.close()
		r.log.Info("peer removed", zap.String("address", address))
	}
}

// Get returns the live channel for address, if any.
func (r *ConnectionRegistry) Get(address string) (*PeerChannel, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.peers.Get(address)
}

// Addresses returns the live peer addresses in connection order.
func (r *ConnectionRegistry) Addresses() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, r.peers.Len())
	for el := r.peers.Front(); el != nil; el = el.Next() {
		out = append(out, el.Key)
	}
	return out
}

// Count returns the number of live peers.
func (r *ConnectionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.peers.Len()
}

// Broadcast enqueues one copy of the envelope per live peer, skipping the
// peer the envelope arrived from and the node's own address. The copies
// share the wire message and travel through the message queue so the worker
// pool paces the fan-out. Enqueueing never blocks: Broadcast runs on the
// workers that drain the queue, so a full queue drops the copy instead of
// deadlocking the pipeline.
func (r *ConnectionRegistry) Broadcast(env *message.Envelope) {
	targets := r.Addresses()
	r.log.Info("broadcasting message",
		zap.Int32("type", int32(env.Message.Type)),
		zap.Int("peers", len(targets)))
	for _, addr := range targets {
		if addr == r.self || addr == env.From {
			continue
		}
		clone := &message.Envelope{Message: env.Message, To: addr}
		if err := r.queue.TryAdd(clone); err != nil {
			r.log.Warn("broadcast copy dropped", zap.String("to", addr), zap.Error(err))
		}
	}
}

// Send hands an outbound envelope to its destination peer's channel.
// Fire and forget: a full channel drops the envelope.
func (r *ConnectionRegistry) Send(env *message.Envelope) error {
	pc, ok := r.Get(env.To)
	if !ok {
		return ErrUnknownPeer
	}
	select {
	case pc.Out <- env:
		return nil
	default:
		r.log.Warn("peer send buffer full, dropping", zap.String("to", env.To))
		return nil
	}
}

func (pc *PeerChannel) close() {
	pc.once.Do(func() { close(pc.Out) })
}
