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

// go/src/node/node.go

// Package node assembles the process: store, caches, queue, dispatch
// pipeline, transport and API servers, constructed once and passed
// explicitly to every component that needs them.
package node

import (
	"encoding/hex"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/talust-core/go/src/cache"
	"github.com/talust-core/go/src/codec"
	"github.com/talust-core/go/src/config"
	types "github.com/talust-core/go/src/core/transaction"
	"github.com/talust-core/go/src/dispatch"
	"github.com/talust-core/go/src/handlers"
	api "github.com/talust-core/go/src/http"
	"github.com/talust-core/go/src/message"
	"github.com/talust-core/go/src/network"
	"github.com/talust-core/go/src/queue"
	"github.com/talust-core/go/src/storage"
	"github.com/talust-core/go/src/transport"
)

// Node is one running peer.
type Node struct {
	cfg        *config.Config
	log        *zap.Logger
	store      *storage.ChainStore
	cache      *cache.TransientCache
	queue      *queue.MessageQueue
	conns      *network.ConnectionRegistry
	registry   *dispatch.Registry
	dispatcher *dispatch.Dispatcher
	tcp        *transport.TCPServer
	ws         *transport.WebSocketServer
	api        *api.Server
}

// New constructs a node from its configuration. Nothing starts running
// until Start.
func New(cfg *config.Config, log *zap.Logger) (*Node, error) {
	store, err := storage.Open(cfg.ChainStatePath(), log)
	if err != nil {
		return nil, err
	}

	transient := cache.New()
	if cfg.RootPublicKey != "" {
		rootPub, err := hex.DecodeString(cfg.RootPublicKey)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("invalid root public key: %w", err)
		}
		transient.SetRootPublicKey(rootPub)
	}
	transient.SetMiningAddresses(cfg.MiningAddresses)

	q := queue.New(cfg.QueueCapacity)
	conns := network.NewConnectionRegistry(cfg.ListenAddress, q, log)
	registry := dispatch.NewRegistry()
	metrics := dispatch.NewMetrics(prometheus.DefaultRegisterer)
	dispatcher := dispatch.NewDispatcher(q, registry, conns, cfg.Workers, metrics, log)

	n := &Node{
		cfg:        cfg,
		log:        log,
		store:      store,
		cache:      transient,
		queue:      q,
		conns:      conns,
		registry:   registry,
		dispatcher: dispatcher,
		tcp:        transport.NewTCPServer(cfg.ListenAddress, conns, q, log),
		api:        api.NewServer(cfg.HTTPAddress, q, conns, store, transient, log),
	}
	if cfg.WSAddress != "" {
		n.ws = transport.NewWebSocketServer(cfg.WSAddress, conns, q, log)
	}
	n.register()
	return n, nil
}

// register populates the validator/handler registry. Runs once, before the
// dispatch loop starts.
func (n *Node) register() {
	spent := types.NewSpentOutputSet()
	validator := types.NewTransactionValidator(n.store, n.cache, spent, n.cfg.StrictTransfers, n.log)
	n.registry.SetValidator(message.TypeTransaction, validator)
	n.registry.AddHandler(message.TypeTransaction, handlers.NewTransactionHandler(n.store, n.conns, n.log))

	n.registry.AddHandler(message.TypeNodeJoin, handlers.NewNodeJoinHandler(n.cfg.ListenAddress, n.queue, n.log))
	n.registry.AddHandler(message.TypeNodeJoinResp, handlers.NewNodeJoinRespHandler(n.log))
	n.registry.AddHandler(message.TypeHeightReq, handlers.NewHeightHandler(n.cache, n.queue, n.log))
	n.registry.AddHandler(message.TypeHeightResp, handlers.NewHeightRespHandler(n.cache, n.log))
}

// Start launches the dispatch pipeline, the peer listeners and the API, then
// dials the seed nodes and asks each to join.
func (n *Node) Start() error {
	n.dispatcher.Start()
	if err := n.tcp.Start(); err != nil {
		return err
	}
	if n.ws != nil {
		go func() {
			if err := n.ws.Start(); err != nil {
				n.log.Error("WebSocket server failed", zap.Error(err))
			}
		}()
	}
	go func() {
		if err := n.api.Start(); err != nil {
			n.log.Error("HTTP server failed", zap.Error(err))
		}
	}()

	for _, seed := range n.cfg.SeedNodes {
		if err := transport.Dial(seed, n.conns, n.queue, n.log); err != nil {
			n.log.Warn("seed dial failed", zap.String("seed", seed), zap.Error(err))
			continue
		}
		n.requestJoin(seed)
	}
	n.log.Info("node started",
		zap.String("listen", n.cfg.ListenAddress),
		zap.Int("seeds", len(n.cfg.SeedNodes)))
	return nil
}

// requestJoin enqueues a join request addressed to the given peer.
func (n *Node) requestJoin(peer string) {
	content, err := codec.Marshal(message.JoinResponse{Address: n.cfg.ListenAddress})
	if err != nil {
		return
	}
	env := &message.Envelope{
		Message: message.New(message.TypeNodeJoin, content),
		To:      peer,
	}
	if err := n.queue.Add(env); err != nil {
		n.log.Warn("join request enqueue failed", zap.String("peer", peer), zap.Error(err))
	}
}

// Stop shuts the node down: the listeners first, then the dispatch pipeline
// (draining queued envelopes), then the stores.
func (n *Node) Stop() {
	if err := n.tcp.Stop(); err != nil {
		n.log.Warn("TCP stop failed", zap.Error(err))
	}
	n.dispatcher.Stop()
	n.cache.Close()
	if err := n.store.Close(); err != nil {
		n.log.Warn("store close failed", zap.Error(err))
	}
	n.log.Info("node stopped")
}
