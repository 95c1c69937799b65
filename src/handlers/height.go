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

// go/src/handlers/height.go
package handlers

import (
	"go.uber.org/zap"

	"github.com/talust-core/go/src/cache"
	"github.com/talust-core/go/src/codec"
	"github.com/talust-core/go/src/message"
	"github.com/talust-core/go/src/queue"
)

// HeightHandler answers chain-height requests from the transient cache.
type HeightHandler struct {
	cache *cache.TransientCache
	queue *queue.MessageQueue
	log   *zap.Logger
}

// NewHeightHandler creates the handler.
func NewHeightHandler(c *cache.TransientCache, q *queue.MessageQueue, log *zap.Logger) *HeightHandler {
	return &HeightHandler{cache: c, queue: q, log: log}
}

// Handle enqueues a height response to the requester without blocking; a
// full queue drops the reply rather than stalling the worker.
func (h *HeightHandler) Handle(env *message.Envelope) bool {
	content, err := codec.Marshal(message.HeightResponse{Height: h.cache.CurrentHeight()})
	if err != nil {
		return false
	}
	resp := &message.Envelope{
		Message: message.New(message.TypeHeightResp, content),
		To:      env.From,
	}
	if err := h.queue.TryAdd(resp); err != nil {
		h.log.Warn("height response dropped", zap.String("to", env.From), zap.Error(err))
		return false
	}
	return true
}

// HeightRespHandler records a peer's reported height, keeping the highest
// seen value as the node's working height.
type HeightRespHandler struct {
	cache *cache.TransientCache
	log   *zap.Logger
}

// NewHeightRespHandler creates the handler.
func NewHeightRespHandler(c *cache.TransientCache, log *zap.Logger) *HeightRespHandler {
	return &HeightRespHandler{cache: c, log: log}
}

// Handle updates the cached height when the peer reports a higher one.
func (h *HeightRespHandler) Handle(env *message.Envelope) bool {
	var resp message.HeightResponse
	if err := codec.Unmarshal(env.Message.Content, &resp); err != nil {
		return false
	}
	if resp.Height > h.cache.CurrentHeight() {
		h.cache.SetCurrentHeight(resp.Height)
		h.log.Info("chain height updated", zap.Uint64("height", resp.Height), zap.String("from", env.From))
	}
	return true
}
