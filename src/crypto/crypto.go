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

// go/src/crypto/crypto.go

// Package crypto holds the node's cryptographic primitives: SHA-256 hashing,
// RIPEMD160 address hashing and ECDSA signatures over P-256 with compressed
// public keys and ASN.1 encoded signatures.
package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"errors"

	"golang.org/x/crypto/ripemd160"
)

// ErrInvalidPublicKey is returned when a byte string is not a valid
// compressed P-256 point.
var ErrInvalidPublicKey = errors.New("crypto: invalid public key")

// Sha256 returns the SHA-256 digest of data.
func Sha256(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

// DoubleSha256 returns SHA256(SHA256(data)).
func DoubleSha256(data []byte) []byte {
	return Sha256(Sha256(data))
}

// Hash160 returns RIPEMD160(SHA256(data)), the 20-byte address hash.
func Hash160(data []byte) []byte {
	r := ripemd160.New()
	r.Write(Sha256(data))
	return r.Sum(nil)
}

// GenerateKey creates a fresh P-256 key pair.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	return ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
}

// PublicKeyBytes returns the compressed point encoding of pub.
func PublicKeyBytes(pub *ecdsa.PublicKey) []byte {
	return elliptic.MarshalCompressed(elliptic.P256(), pub.X, pub.Y)
}

// ParsePublicKey decodes a compressed P-256 point.
func ParsePublicKey(data []byte) (*ecdsa.PublicKey, error) {
	x, y := elliptic.UnmarshalCompressed(elliptic.P256(), data)
	if x == nil {
		return nil, ErrInvalidPublicKey
	}
	return &ecdsa.PublicKey{Curve: elliptic.P256(), X: x, Y: y}, nil
}

// Sign signs the given 256-bit hash with priv.
func Sign(priv *ecdsa.PrivateKey, hash []byte) ([]byte, error) {
	return ecdsa.SignASN1(rand.Reader, priv, hash)
}

// Verify reports whether sig is a valid signature of hash under the
// compressed public key pub. Any malformed input verifies as false.
func Verify(hash, sig, pub []byte) bool {
	key, err := ParsePublicKey(pub)
	if err != nil {
		return false
	}
	return ecdsa.VerifyASN1(key, hash, sig)
}
