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

// go/src/transport/websocket.go
package transport

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/talust-core/go/src/codec"
	"github.com/talust-core/go/src/message"
	"github.com/talust-core/go/src/network"
	"github.com/talust-core/go/src/queue"
)

// NewWebSocketServer creates a WebSocket server feeding the message queue.
func NewWebSocketServer(address string, registry *network.ConnectionRegistry, q *queue.MessageQueue, log *zap.Logger) *WebSocketServer {
	return &WebSocketServer{
		address:  address,
		registry: registry,
		queue:    q,
		upgrader: websocket.Upgrader{},
		log:      log,
	}
}

// Start serves /ws on the configured address. It blocks, so callers run it
// in a goroutine.
func (s *WebSocketServer) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	s.log.Info("WebSocket server listening", zap.String("address", s.address))
	return http.ListenAndServe(s.address, mux)
}

// handleWebSocket upgrades the connection and runs its read/write loops.
func (s *WebSocketServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("WebSocket upgrade error", zap.Error(err))
		return
	}
	remote := conn.RemoteAddr().String()
	pc := s.registry.Register(remote)
	defer func() {
		s.registry.Remove(remote)
		conn.Close()
	}()

	go wsWriteLoop(conn, pc, s.log)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.log.Debug("WebSocket read ended", zap.String("remote", remote), zap.Error(err))
			return
		}
		var msg message.Message
		if err := codec.Unmarshal(data, &msg); err != nil {
			s.log.Warn("undecodable WebSocket frame", zap.String("remote", remote), zap.Error(err))
			continue
		}
		if err := s.queue.Add(&message.Envelope{Message: &msg, From: remote}); err != nil {
			return
		}
	}
}

// DialWebSocket connects to a peer's WebSocket endpoint, registers it and
// starts its loops.
func DialWebSocket(address string, registry *network.ConnectionRegistry, q *queue.MessageQueue, log *zap.Logger) error {
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+address+"/ws", nil)
	if err != nil {
		return err
	}
	pc := registry.Register(address)
	go wsWriteLoop(conn, pc, log)
	go func() {
		defer func() {
			registry.Remove(address)
			conn.Close()
		}()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var msg message.Message
			if err := codec.Unmarshal(data, &msg); err != nil {
				continue
			}
			if err := q.Add(&message.Envelope{Message: &msg, From: address}); err != nil {
				return
			}
		}
	}()
	log.Info("WebSocket connected", zap.String("address", address))
	return nil
}

func wsWriteLoop(conn *websocket.Conn, pc *network.PeerChannel, log *zap.Logger) {
	for env := range pc.Out {
		data, err := codec.Marshal(env.Message)
		if err != nil {
			log.Warn("frame encode failed", zap.Error(err))
			continue
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
			log.Warn("WebSocket write error", zap.String("to", pc.Address), zap.Error(err))
			return
		}
	}
}
