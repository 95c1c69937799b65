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

// go/src/crypto/address_test.go
package crypto

import (
	"bytes"
	"testing"
)

func testAddress(t *testing.T) []byte {
	t.Helper()
	priv, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	return AddressFromPublicKey(PublicKeyBytes(&priv.PublicKey))
}

func TestAddressFromPublicKey(t *testing.T) {
	addr := testAddress(t)
	if len(addr) != AddressLen {
		t.Fatalf("address length = %d, want %d", len(addr), AddressLen)
	}
	if !VerifyAddress(addr) {
		t.Fatal("derived address failed verification")
	}
}

func TestVerifyAddressRejectsTampering(t *testing.T) {
	addr := testAddress(t)
	for i := range addr {
		bad := make([]byte, len(addr))
		copy(bad, addr)
		bad[i] ^= 0x01
		if VerifyAddress(bad) {
			t.Fatalf("address with byte %d flipped passed verification", i)
		}
	}
	if VerifyAddress(addr[:AddressLen-1]) {
		t.Fatal("short address passed verification")
	}
	if VerifyAddress(nil) {
		t.Fatal("nil address passed verification")
	}
}

func TestShowDecodeRoundtrip(t *testing.T) {
	addr := testAddress(t)
	display := ShowAddress(addr)
	decoded, err := DecodeAddress(display)
	if err != nil {
		t.Fatalf("DecodeAddress: %v", err)
	}
	if !bytes.Equal(decoded, addr) {
		t.Fatalf("roundtrip = %x, want %x", decoded, addr)
	}

	if _, err := DecodeAddress("not-base58-%%"); err != ErrInvalidAddress {
		t.Fatalf("DecodeAddress(garbage) = %v, want ErrInvalidAddress", err)
	}
}
