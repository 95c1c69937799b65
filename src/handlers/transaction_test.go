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

// go/src/handlers/transaction_test.go
package handlers

import (
	"bytes"
	"testing"

	"go.uber.org/zap"

	"github.com/talust-core/go/src/codec"
	types "github.com/talust-core/go/src/core/transaction"
	"github.com/talust-core/go/src/crypto"
	"github.com/talust-core/go/src/message"
	"github.com/talust-core/go/src/network"
	"github.com/talust-core/go/src/queue"
	"github.com/talust-core/go/src/storage"
)

func testSetup(t *testing.T) (*TransactionHandler, *storage.ChainStore, *network.ConnectionRegistry, *queue.MessageQueue) {
	t.Helper()
	log := zap.NewNop()
	store, err := storage.Open(t.TempDir(), log)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	q := queue.New(64)
	registry := network.NewConnectionRegistry("self:30303", q, log)
	return NewTransactionHandler(store, registry, log), store, registry, q
}

func txEnvelope(t *testing.T, tx *types.Transaction, from string) *message.Envelope {
	t.Helper()
	content, err := codec.Marshal(tx)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return &message.Envelope{
		Message: message.New(message.TypeTransaction, content),
		From:    from,
	}
}

func TestHandleSettlesAccountRecord(t *testing.T) {
	h, store, _, _ := testSetup(t)

	priv, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	pub := crypto.PublicKeyBytes(&priv.PublicKey)
	account := types.Account{
		AccType:   types.AccountUser,
		PublicKey: pub,
		Status:    types.StatusEnable,
		Address:   crypto.AddressFromPublicKey(pub),
	}
	datas, err := codec.Marshal(account)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	tx := &types.Transaction{TranType: types.TranTypeAccount, Datas: datas}

	if !h.Handle(txEnvelope(t, tx, "")) {
		t.Fatal("Handle returned false")
	}

	stored, err := store.Get(storage.AccountKey(account.Address))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(stored, datas) {
		t.Fatal("stored account record differs from payload")
	}
}

func TestHandleSettlesOutputs(t *testing.T) {
	h, store, _, _ := testSetup(t)

	tx := &types.Transaction{
		TranType:   types.TranTypeTransfer,
		TranNumber: 77,
		Outs: []types.TransactionOut{
			{Address: []byte{0x01}, Amount: 3},
			{Address: []byte{0x02}, Amount: 7},
		},
	}
	if !h.Handle(txEnvelope(t, tx, "")) {
		t.Fatal("Handle returned false")
	}

	for item, want := range tx.Outs {
		data, err := store.Get(storage.OutputKey(77, item))
		if err != nil || data == nil {
			t.Fatalf("output %d not settled: %v", item, err)
		}
		var out types.TransactionOut
		if err := codec.Unmarshal(data, &out); err != nil {
			t.Fatalf("output %d undecodable: %v", item, err)
		}
		if out.Amount != want.Amount {
			t.Fatalf("output %d amount = %v, want %v", item, out.Amount, want.Amount)
		}
	}
}

func TestHandleRebroadcasts(t *testing.T) {
	h, _, registry, q := testSetup(t)
	registry.Register("b:30303")
	registry.Register("c:30303")

	tx := &types.Transaction{TranType: types.TranTypeTransfer, TranNumber: 5}
	env := txEnvelope(t, tx, "b:30303")
	if !h.Handle(env) {
		t.Fatal("Handle returned false")
	}

	// One copy per peer, minus the origin.
	if got := q.Len(); got != 1 {
		t.Fatalf("queued %d broadcast copies, want 1", got)
	}
	copyEnv, _ := q.Take()
	if copyEnv.To != "c:30303" {
		t.Fatalf("broadcast copy addressed to %q", copyEnv.To)
	}
}

func TestHandleRejectsGarbage(t *testing.T) {
	h, _, _, _ := testSetup(t)
	env := &message.Envelope{Message: message.New(message.TypeTransaction, []byte("junk"))}
	if h.Handle(env) {
		t.Fatal("Handle accepted undecodable payload")
	}
}
