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

// go/src/core/transaction/types.go
package types

// TranType classifies a transaction. Unknown values are rejected by the
// validator.
type TranType int32

const (
	TranTypeAccount  TranType = iota + 1 // account issuance down the trust chain
	TranTypeTransfer                     // value transfer between addresses
	TranTypeCoinBase                     // mining / deposit reward issuance
	TranTypeBusiness                     // reserved, not yet validated
	TranTypeDeposit                      // reserved, not yet validated
)

// CoinBaseType tags a coinbase output with the reward it claims.
type CoinBaseType int32

const (
	CoinBaseMining     CoinBaseType = iota + 1 // block reward to a mining address
	CoinBaseDeposition                         // deposit reward
)

// AccountType is the tier of an account in the trust chain.
type AccountType int32

const (
	AccountRoot   AccountType = iota + 1 // the configured root
	AccountTalust                        // operator tier, parent must be root
	AccountMining                        // mining node account
	AccountUser                          // end user
	AccountAdmin                         // administrative account
	AccountHR                            // human-resources account
)

// AccountStatus is the lifecycle state of an account record.
type AccountStatus int32

const (
	StatusEnable  AccountStatus = iota + 1 // account may authorize children
	StatusDisable                          // account revoked
)

// Transaction is one chain transaction. Datas carries the type-specific
// payload (an Account record for TranTypeAccount).
type Transaction struct {
	TranType   TranType         `json:"tranType"`
	TranNumber int64            `json:"tranNumber"` // transaction identifier referenced by inputs
	Time       int64            `json:"time"`
	Datas      []byte           `json:"datas,omitempty"`
	Ins        []TransactionIn  `json:"ins,omitempty"`
	Outs       []TransactionOut `json:"outs,omitempty"`
}

// TransactionIn references a prior output by transaction number and output
// index.
type TransactionIn struct {
	TranNumber int64 `json:"tranNumber"`
	Item       int   `json:"item"`
}

// TransactionOut pays Amount to Address. CoinBaseType is set only on
// coinbase outputs.
type TransactionOut struct {
	Address      []byte       `json:"address"`
	Amount       float64      `json:"amount"`
	CoinBaseType CoinBaseType `json:"coinBaseType,omitempty"`
}

// Account is the payload of an account-issuance transaction. A non-root
// account carries its parent's public key and the parent's signature over
// SHA256(PublicKey).
type Account struct {
	AccType    AccountType   `json:"accType"`
	PublicKey  []byte        `json:"publicKey"`
	ParentPub  []byte        `json:"parentPub,omitempty"`
	ParentSign []byte        `json:"parentSign,omitempty"`
	Status     AccountStatus `json:"status"`
	Address    []byte        `json:"address"`
}
