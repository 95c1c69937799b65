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

// go/src/core/transaction/validator.go
package types

import (
	"bytes"
	"encoding/hex"
	"math"

	"go.uber.org/zap"

	"github.com/talust-core/go/src/cache"
	"github.com/talust-core/go/src/codec"
	"github.com/talust-core/go/src/crypto"
	"github.com/talust-core/go/src/message"
	"github.com/talust-core/go/src/storage"
)

// amountEpsilon is the absolute tolerance for all reward and balance
// comparisons; amounts are never compared with exact float equality.
const amountEpsilon = 1e-13

// accountCacheTTL is how long a freshly validated account payload stays in
// the transient cache. An optimization to absorb rapid re-validation, not a
// durability guarantee.
const accountCacheTTL = 5

// TransactionValidator validates single transactions arriving off the wire:
// envelope signature, transaction type classification and the type-specific
// rules. It never writes the chain-state store; its only side effect is the
// transient-cache entry for a freshly accepted account.
type TransactionValidator struct {
	store  storage.Reader
	cache  *cache.TransientCache
	spent  *SpentOutputSet
	strict bool // enforce transfer input/output accounting
	log    *zap.Logger
}

// NewTransactionValidator wires a validator against its collaborators.
// strict enables the transfer balance rules; when false, transfers pass on
// the envelope signature alone.
func NewTransactionValidator(store storage.Reader, c *cache.TransientCache, spent *SpentOutputSet, strict bool, log *zap.Logger) *TransactionValidator {
	return &TransactionValidator{store: store, cache: c, spent: spent, strict: strict, log: log}
}

// Check validates one transaction envelope.
func (v *TransactionValidator) Check(env *message.Envelope) bool {
	msg := env.Message
	if len(msg.Signer) > 0 && !msg.VerifySignature() {
		v.log.Info("transaction rejected: envelope signature invalid")
		return false
	}
	var tx Transaction
	if err := codec.Unmarshal(msg.Content, &tx); err != nil {
		v.log.Info("transaction rejected: undecodable payload", zap.Error(err))
		return false
	}
	switch tx.TranType {
	case TranTypeAccount:
		return v.checkAccount(&tx)
	case TranTypeTransfer:
		return v.checkTransfer(msg.Signer, &tx)
	case TranTypeCoinBase:
		return v.checkCoinBase(&tx)
	default:
		v.log.Info("transaction rejected: unsupported type", zap.Int32("tranType", int32(tx.TranType)))
		return false
	}
}

// checkAccount verifies an account-issuance transaction against the trust
// chain:
//
//	parent record absent  -> accept only the configured root key itself
//	account type TALUST   -> parent key must be the configured root key
//	any other type        -> parent must decode, be enabled and be TALUST
func (v *TransactionValidator) checkAccount(tx *Transaction) bool {
	var account Account
	if err := codec.Unmarshal(tx.Datas, &account); err != nil {
		v.log.Info("account rejected: undecodable record", zap.Error(err))
		return false
	}
	switch account.AccType {
	case AccountRoot, AccountTalust, AccountMining, AccountUser, AccountAdmin, AccountHR:
	default:
		v.log.Info("account rejected: unknown account type", zap.Int32("accType", int32(account.AccType)))
		return false
	}
	if len(account.ParentPub) == 0 {
		return false
	}
	if !crypto.Verify(crypto.Sha256(account.PublicKey), account.ParentSign, account.ParentPub) {
		v.log.Info("account rejected: parent signature invalid")
		return false
	}

	// The parent's authoritative record lives in the chain-state store; the
	// transient cache covers records accepted moments ago.
	parentKey := storage.AccountKey(crypto.AddressFromPublicKey(account.ParentPub))
	parentBytes, err := v.store.Get(parentKey)
	if err != nil {
		v.log.Error("account rejected: parent lookup failed", zap.Error(err))
		return false
	}
	if parentBytes == nil {
		parentBytes = v.cache.GetBytes(hex.EncodeToString(parentKey))
	}

	rootPub := v.cache.RootPublicKey()
	ok := false
	switch {
	case parentBytes == nil:
		// No parent anywhere: only the root key may self-certify.
		ok = len(rootPub) > 0 && bytes.Equal(account.PublicKey, rootPub)
	case account.AccType == AccountTalust:
		ok = len(rootPub) > 0 && bytes.Equal(account.ParentPub, rootPub)
	default:
		var parent Account
		if err := codec.Unmarshal(parentBytes, &parent); err == nil {
			ok = parent.Status == StatusEnable && parent.AccType == AccountTalust
		}
	}
	if ok {
		selfKey := storage.AccountKey(account.Address)
		v.cache.Put(hex.EncodeToString(selfKey), tx.Datas, accountCacheTTL)
	}
	return ok
}

// checkTransfer validates a value transfer. The default policy accepts any
// decodable transfer once the envelope signature passed; strict mode
// additionally requires every input to be unclaimed, to resolve to an output
// owned by the signer, and the input sum to cover the output sum. Accepted
// strict transfers claim their inputs so a second spend of the same output
// is rejected.
func (v *TransactionValidator) checkTransfer(signerPub []byte, tx *Transaction) bool {
	if !v.strict {
		return true
	}
	if len(tx.Ins) == 0 || len(tx.Outs) == 0 {
		return false
	}
	signAddr := crypto.AddressFromPublicKey(signerPub)

	var available float64
	inputs := make([]TransactionIn, 0, len(tx.Ins))
	for _, in := range tx.Ins {
		if v.spent.IsDisabled(in.TranNumber, in.Item) {
			v.log.Info("transfer rejected: input already spent",
				zap.Int64("tranNumber", in.TranNumber), zap.Int("item", in.Item))
			return false
		}
		outBytes, err := v.store.Get(storage.OutputKey(in.TranNumber, in.Item))
		if err != nil || outBytes == nil {
			continue
		}
		var out TransactionOut
		if err := codec.Unmarshal(outBytes, &out); err != nil {
			continue
		}
		if bytes.Equal(out.Address, signAddr) {
			available += out.Amount
			inputs = append(inputs, in)
		}
	}
	if len(inputs) == 0 {
		return false
	}

	var spend float64
	for _, out := range tx.Outs {
		spend += out.Amount
	}
	if spend-available > amountEpsilon {
		v.log.Info("transfer rejected: insufficient inputs",
			zap.Float64("available", available), zap.Float64("spend", spend))
		return false
	}

	// Claim is atomic per output, so two transfers racing over one output
	// cannot both pass.
	for _, in := range inputs {
		if !v.spent.Claim(in.TranNumber, in.Item) {
			return false
		}
	}
	return true
}

// checkCoinBase validates reward issuance: every MINING output must pay
// exactly the height-derived base reward to a configured mining address, and
// every DEPOSITION output the height-derived deposit reward. Proportional
// splitting between multiple depositors is not supported and such outputs
// are rejected.
func (v *TransactionValidator) checkCoinBase(tx *Transaction) bool {
	if len(tx.Outs) == 0 {
		return false
	}
	mining := v.cache.MiningAddresses()
	next := v.cache.CurrentHeight() + 1
	for _, out := range tx.Outs {
		display := crypto.ShowAddress(out.Address)
		switch out.CoinBaseType {
		case CoinBaseMining:
			if !containsAddress(mining, display) {
				v.log.Info("coinbase rejected: unknown mining address", zap.String("address", display))
				return false
			}
			if math.Abs(BaseCoin(next)-out.Amount) > amountEpsilon {
				v.log.Info("coinbase rejected: wrong base reward",
					zap.Float64("amount", out.Amount), zap.Float64("expected", BaseCoin(next)))
				return false
			}
		case CoinBaseDeposition:
			if !containsAddress(mining, display) {
				// Reward split across outside depositors is not specified.
				return false
			}
			if math.Abs(DepositCoin(next)-out.Amount) > amountEpsilon {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func containsAddress(list []string, addr string) bool {
	for _, a := range list {
		if a == addr {
			return true
		}
	}
	return false
}
