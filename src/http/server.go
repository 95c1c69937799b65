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

// go/src/http/server.go

// Package http is the node's local API: transaction submission and state
// queries, plus the Prometheus metrics endpoint.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/talust-core/go/src/cache"
	"github.com/talust-core/go/src/codec"
	types "github.com/talust-core/go/src/core/transaction"
	"github.com/talust-core/go/src/crypto"
	"github.com/talust-core/go/src/message"
	"github.com/talust-core/go/src/network"
	"github.com/talust-core/go/src/queue"
	"github.com/talust-core/go/src/storage"
)

// Server exposes the node API over HTTP.
type Server struct {
	address  string
	router   *gin.Engine
	queue    *queue.MessageQueue
	registry *network.ConnectionRegistry
	store    *storage.ChainStore
	cache    *cache.TransientCache
	log      *zap.Logger
}

// NewServer creates the API server.
func NewServer(address string, q *queue.MessageQueue, registry *network.ConnectionRegistry, store *storage.ChainStore, c *cache.TransientCache, log *zap.Logger) *Server {
	s := &Server{
		address:  address,
		router:   gin.Default(),
		queue:    q,
		registry: registry,
		store:    store,
		cache:    c,
		log:      log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.POST("/transaction", s.handleTransaction)
	s.router.GET("/account/:address", s.handleGetAccount)
	s.router.GET("/peers", s.handleGetPeers)
	s.router.GET("/height", s.handleGetHeight)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// handleTransaction submits a transaction into the dispatch pipeline. The
// transaction enters the same queue as peer traffic, so it passes the same
// validator and handlers.
func (s *Server) handleTransaction(c *gin.Context) {
	var tx types.Transaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	content, err := codec.Marshal(&tx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	env := &message.Envelope{Message: message.New(message.TypeTransaction, content)}
	if err := s.queue.Add(env); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "transaction submitted"})
}

// handleGetAccount returns the settled account record for a display address.
func (s *Server) handleGetAccount(c *gin.Context) {
	addr, err := crypto.DecodeAddress(c.Param("address"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address"})
		return
	}
	data, err := s.store.Get(storage.AccountKey(addr))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if data == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}
	var account types.Account
	if err := codec.Unmarshal(data, &account); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, account)
}

// handleGetPeers lists the live peer addresses.
func (s *Server) handleGetPeers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"peers": s.registry.Addresses()})
}

// handleGetHeight returns the node's working chain height.
func (s *Server) handleGetHeight(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"height": s.cache.CurrentHeight()})
}

// Start runs the API server. It blocks, so callers run it in a goroutine.
func (s *Server) Start() error {
	s.log.Info("HTTP server listening", zap.String("address", s.address))
	return s.router.Run(s.address)
}
