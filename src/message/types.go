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

// go/src/message/types.go
package message

// Type is the integer wire tag that routes a message to its registered
// validator and handlers. Unrecognized values are discarded by the dispatch
// loop, not treated as errors: peers may run different feature sets.
type Type int32

const (
	TypeNodeJoin     Type = iota + 1 // node asks a peer whether it may connect
	TypeNodeJoinResp                 // answer to a join request
	TypeTransaction                  // transaction broadcast
	TypeBlock                        // block broadcast
	TypeHeightReq                    // ask a peer for its chain height
	TypeHeightResp                   // answer to a height request
	TypeError                        // error report between peers
)

// Message is the wire envelope payload. Signer and SignContent form an
// optional detached signature over Content.
type Message struct {
	Type        Type   `json:"type"`
	Content     []byte `json:"content"`
	Signer      []byte `json:"signer,omitempty"`      // compressed public key of the sender
	SignContent []byte `json:"signContent,omitempty"` // signature over SHA256(Content)
}

// Envelope pairs a wire message with its transport metadata. From is the
// remote address the message arrived on (empty for locally originated
// messages), To is the destination for outbound copies.
type Envelope struct {
	Message *Message
	From    string
	To      string
}

// JoinResponse is the content of a TypeNodeJoinResp message.
type JoinResponse struct {
	Allowed bool   `json:"allowed"`
	Address string `json:"address"`
}

// HeightResponse is the content of a TypeHeightResp message.
type HeightResponse struct {
	Height uint64 `json:"height"`
}
