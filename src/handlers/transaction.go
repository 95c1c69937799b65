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

// go/src/handlers/transaction.go

// Package handlers holds the per-message-type handlers registered at node
// startup. Handlers run after the type's validator accepted the envelope
// and may mutate chain state and enqueue outbound envelopes.
package handlers

import (
	"go.uber.org/zap"

	"github.com/talust-core/go/src/codec"
	types "github.com/talust-core/go/src/core/transaction"
	"github.com/talust-core/go/src/message"
	"github.com/talust-core/go/src/network"
	"github.com/talust-core/go/src/storage"
)

// TransactionHandler settles validated transactions into the chain-state
// store and re-broadcasts them to the node's peers.
type TransactionHandler struct {
	store    *storage.ChainStore
	registry *network.ConnectionRegistry
	log      *zap.Logger
}

// NewTransactionHandler wires the handler against its collaborators.
func NewTransactionHandler(store *storage.ChainStore, registry *network.ConnectionRegistry, log *zap.Logger) *TransactionHandler {
	return &TransactionHandler{store: store, registry: registry, log: log}
}

// Handle persists the transaction's effects and fans the envelope out.
func (h *TransactionHandler) Handle(env *message.Envelope) bool {
	var tx types.Transaction
	if err := codec.Unmarshal(env.Message.Content, &tx); err != nil {
		h.log.Warn("transaction handler: undecodable payload", zap.Error(err))
		return false
	}

	if tx.TranType == types.TranTypeAccount {
		var account types.Account
		if err := codec.Unmarshal(tx.Datas, &account); err != nil {
			h.log.Warn("transaction handler: undecodable account record", zap.Error(err))
			return false
		}
		if err := h.store.Put(storage.AccountKey(account.Address), tx.Datas); err != nil {
			h.log.Error("account record write failed", zap.Error(err))
			return false
		}
		h.log.Info("account record settled",
			zap.Int32("accType", int32(account.AccType)))
	}

	// Settle outputs so later transfers can reference them by
	// (tranNumber, item).
	for item, out := range tx.Outs {
		data, err := codec.Marshal(out)
		if err != nil {
			h.log.Error("output encode failed", zap.Error(err))
			return false
		}
		if err := h.store.Put(storage.OutputKey(tx.TranNumber, item), data); err != nil {
			h.log.Error("output write failed", zap.Error(err))
			return false
		}
	}

	h.registry.Broadcast(env)
	return true
}
