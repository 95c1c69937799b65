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

// go/src/message/message.go
package message

import (
	"crypto/ecdsa"

	"github.com/talust-core/go/src/crypto"
)

// New builds an unsigned message of the given type.
func New(t Type, content []byte) *Message {
	return &Message{Type: t, Content: content}
}

// Sign attaches a detached signature over SHA256(Content) and records the
// signer's compressed public key.
func (m *Message) Sign(priv *ecdsa.PrivateKey) error {
	sig, err := crypto.Sign(priv, crypto.Sha256(m.Content))
	if err != nil {
		return err
	}
	m.Signer = crypto.PublicKeyBytes(&priv.PublicKey)
	m.SignContent = sig
	return nil
}

// VerifySignature checks the detached signature against Content and Signer.
// Messages without a signer have nothing to verify and pass.
func (m *Message) VerifySignature() bool {
	if len(m.Signer) == 0 {
		return true
	}
	return crypto.Verify(crypto.Sha256(m.Content), m.SignContent, m.Signer)
}
