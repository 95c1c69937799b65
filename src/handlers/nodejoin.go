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

// go/src/handlers/nodejoin.go
package handlers

import (
	"go.uber.org/zap"

	"github.com/talust-core/go/src/codec"
	"github.com/talust-core/go/src/message"
	"github.com/talust-core/go/src/queue"
)

// NodeJoinHandler answers join requests from peers. The reply travels back
// through the message queue so the dispatch loop routes it out.
type NodeJoinHandler struct {
	self  string
	queue *queue.MessageQueue
	log   *zap.Logger
}

// NewNodeJoinHandler creates the handler for a node listening on self.
func NewNodeJoinHandler(self string, q *queue.MessageQueue, log *zap.Logger) *NodeJoinHandler {
	return &NodeJoinHandler{self: self, queue: q, log: log}
}

// Handle accepts the join and enqueues the response to the requester. The
// enqueue never blocks: Handle runs on a queue-draining worker, so a full
// queue drops the reply (the peer retries) instead of stalling the pipeline.
func (h *NodeJoinHandler) Handle(env *message.Envelope) bool {
	h.log.Info("join request", zap.String("from", env.From))
	content, err := codec.Marshal(message.JoinResponse{Allowed: true, Address: h.self})
	if err != nil {
		return false
	}
	resp := &message.Envelope{
		Message: message.New(message.TypeNodeJoinResp, content),
		To:      env.From,
	}
	if err := h.queue.TryAdd(resp); err != nil {
		h.log.Warn("join response dropped", zap.String("to", env.From), zap.Error(err))
		return false
	}
	return true
}

// NodeJoinRespHandler records a peer's answer to our join request.
type NodeJoinRespHandler struct {
	log *zap.Logger
}

// NewNodeJoinRespHandler creates the handler.
func NewNodeJoinRespHandler(log *zap.Logger) *NodeJoinRespHandler {
	return &NodeJoinRespHandler{log: log}
}

// Handle logs the response.
func (h *NodeJoinRespHandler) Handle(env *message.Envelope) bool {
	var resp message.JoinResponse
	if err := codec.Unmarshal(env.Message.Content, &resp); err != nil {
		h.log.Warn("undecodable join response", zap.String("from", env.From), zap.Error(err))
		return false
	}
	h.log.Info("join response",
		zap.String("from", env.From), zap.Bool("allowed", resp.Allowed))
	return true
}
