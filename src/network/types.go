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

// go/src/network/types.go

// Package network tracks the node's live peer connections and fans
// broadcasts out over them through the message queue.
package network

import (
	"sync"

	orderedmap "github.com/elliotchance/orderedmap/v2"
	"go.uber.org/zap"

	"github.com/talust-core/go/src/message"
	"github.com/talust-core/go/src/queue"
)

// peerSendBuffer bounds each peer's outbound channel. Broadcast is fire and
// forget: a peer that cannot keep up loses messages rather than blocking the
// dispatch loop.
const peerSendBuffer = 64

// PeerChannel is the outbound half of one live peer connection. The
// transport's write loop drains Out.
type PeerChannel struct {
	Address string
	Out     chan *message.Envelope
	once    sync.Once
}

// ConnectionRegistry tracks live peer channels keyed by remote address, in
// connection order, and supplies the broadcast fan-out list.
type ConnectionRegistry struct {
	mu    sync.RWMutex
	peers *orderedmap.OrderedMap[string, *PeerChannel]
	self  string
	queue *queue.MessageQueue
	log   *zap.Logger
}
