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

// go/src/transport/types.go

// Package transport carries envelopes between peers. Inbound frames are
// decoded and pushed onto the message queue; outbound envelopes are drained
// from each peer's registry channel.
package transport

import (
	"net"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/talust-core/go/src/network"
	"github.com/talust-core/go/src/queue"
)

// maxFrameSize caps a single wire frame.
const maxFrameSize = 1024 * 1024

// TCPServer accepts peer connections carrying 4-byte length-prefixed frames.
type TCPServer struct {
	address  string
	registry *network.ConnectionRegistry
	queue    *queue.MessageQueue
	listener net.Listener
	log      *zap.Logger
}

// WebSocketServer accepts peer connections over WebSocket at /ws.
type WebSocketServer struct {
	address  string
	registry *network.ConnectionRegistry
	queue    *queue.MessageQueue
	upgrader websocket.Upgrader
	log      *zap.Logger
}
