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

// go/src/crypto/address.go
package crypto

import (
	"bytes"
	"errors"

	"github.com/btcsuite/btcutil/base58"
	"github.com/talust-core/go/src/common"
)

// Address layout: 20-byte Hash160 of the public key, one XOR parity byte over
// the raw public key, then the first 4 bytes of DoubleSha256 over the
// preceding 21 bytes.
const (
	addressBodyLen     = 21
	addressChecksumLen = 4
	// AddressLen is the raw length of every account address.
	AddressLen = addressBodyLen + addressChecksumLen
)

// ErrInvalidAddress is returned when an address fails structural or
// checksum verification.
var ErrInvalidAddress = errors.New("crypto: invalid address")

// AddressFromPublicKey derives the raw 25-byte address for a public key.
func AddressFromPublicKey(pub []byte) []byte {
	body := common.Concat(Hash160(pub), []byte{common.XORByte(pub)})
	return common.Concat(body, DoubleSha256(body)[:addressChecksumLen])
}

// VerifyAddress reports whether addr is well formed and checksummed.
func VerifyAddress(addr []byte) bool {
	if len(addr) != AddressLen {
		return false
	}
	sum := DoubleSha256(addr[:addressBodyLen])[:addressChecksumLen]
	return bytes.Equal(addr[addressBodyLen:], sum)
}

// ShowAddress renders a raw address in its base58 display form.
func ShowAddress(addr []byte) string {
	return base58.Encode(addr)
}

// DecodeAddress parses a base58 display address back into raw bytes,
// verifying length and checksum.
func DecodeAddress(encoded string) ([]byte, error) {
	addr := base58.Decode(encoded)
	if !VerifyAddress(addr) {
		return nil, ErrInvalidAddress
	}
	return addr, nil
}
