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

// go/src/transport/tcp.go
package transport

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/talust-core/go/src/codec"
	"github.com/talust-core/go/src/message"
	"github.com/talust-core/go/src/network"
	"github.com/talust-core/go/src/queue"
)

// NewTCPServer creates a TCP server feeding the message queue.
func NewTCPServer(address string, registry *network.ConnectionRegistry, q *queue.MessageQueue, log *zap.Logger) *TCPServer {
	return &TCPServer{
		address:  address,
		registry: registry,
		queue:    q,
		log:      log,
	}
}

// Start binds the listener and begins accepting connections.
func (s *TCPServer) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("bind TCP listener on %s: %w", s.address, err)
	}
	s.listener = listener
	s.log.Info("TCP server bound", zap.String("address", s.address))
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				s.log.Warn("TCP accept error", zap.Error(err))
				return
			}
			s.log.Info("accepted connection", zap.String("remote", conn.RemoteAddr().String()))
			go s.handleConnection(conn)
		}
	}()
	return nil
}

// Stop closes the listener. Established connections terminate when their
// peers disconnect or the registry closes their channel.
func (s *TCPServer) Stop() error {
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

// handleConnection runs one peer connection: it registers the peer, drains
// its outbound channel onto the socket and pushes every decoded inbound
// frame onto the message queue.
func (s *TCPServer) handleConnection(conn net.Conn) {
	remote := conn.RemoteAddr().String()
	pc := s.registry.Register(remote)
	defer func() {
		s.registry.Remove(remote)
		conn.Close()
	}()

	go writeLoop(conn, pc, s.log)
	readLoop(conn, remote, s.queue, s.log)
}

// Dial connects to a peer, registers it and starts its read/write loops.
// Retries with capped exponential backoff.
func Dial(address string, registry *network.ConnectionRegistry, q *queue.MessageQueue, log *zap.Logger) error {
	var conn net.Conn
	var err error
	for attempt := 1; attempt <= 5; attempt++ {
		conn, err = net.DialTimeout("tcp", address, 2*time.Second)
		if err == nil {
			break
		}
		sleep := time.Second * time.Duration(1<<min(attempt-1, 3))
		log.Warn("TCP dial failed, retrying",
			zap.String("address", address), zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(sleep)
	}
	if err != nil {
		return fmt.Errorf("dial %s: %w", address, err)
	}

	pc := registry.Register(address)
	go writeLoop(conn, pc, log)
	go func() {
		defer func() {
			registry.Remove(address)
			conn.Close()
		}()
		readLoop(conn, address, q, log)
	}()
	log.Info("connected to peer", zap.String("address", address))
	return nil
}

func readLoop(conn net.Conn, remote string, q *queue.MessageQueue, log *zap.Logger) {
	reader := bufio.NewReader(conn)
	for {
		frame, err := readFrame(reader)
		if err != nil {
			if err != io.EOF {
				log.Warn("TCP read error", zap.String("remote", remote), zap.Error(err))
			}
			return
		}
		var msg message.Message
		if err := codec.Unmarshal(frame, &msg); err != nil {
			log.Warn("undecodable frame", zap.String("remote", remote), zap.Error(err))
			continue
		}
		if err := q.Add(&message.Envelope{Message: &msg, From: remote}); err != nil {
			return
		}
	}
}

func writeLoop(conn net.Conn, pc *network.PeerChannel, log *zap.Logger) {
	for env := range pc.Out {
		frame, err := codec.Marshal(env.Message)
		if err != nil {
			log.Warn("frame encode failed", zap.Error(err))
			continue
		}
		if err := writeFrame(conn, frame); err != nil {
			log.Warn("TCP write error", zap.String("to", pc.Address), zap.Error(err))
			return
		}
	}
}

func readFrame(reader *bufio.Reader) ([]byte, error) {
	lengthBuf := make([]byte, 4)
	if _, err := io.ReadFull(reader, lengthBuf); err != nil {
		return nil, err
	}
	length := binary.BigEndian.Uint32(lengthBuf)
	if length > maxFrameSize {
		return nil, fmt.Errorf("frame too large: %d bytes", length)
	}
	frame := make([]byte, length)
	if _, err := io.ReadFull(reader, frame); err != nil {
		return nil, err
	}
	return frame, nil
}

func writeFrame(conn net.Conn, frame []byte) error {
	lengthBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(lengthBuf, uint32(len(frame)))
	if _, err := conn.Write(lengthBuf); err != nil {
		return err
	}
	_, err := conn.Write(frame)
	return err
}
