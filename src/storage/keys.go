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

// go/src/storage/keys.go
package storage

import (
	"fmt"

	"github.com/talust-core/go/src/common"
)

// AccountPrefix namespaces account records in the chain-state store.
var AccountPrefix = []byte("acc-")

// AccountKey builds the store key for an account record: prefix plus the
// raw account address.
func AccountKey(address []byte) []byte {
	return common.Concat(AccountPrefix, address)
}

// OutputKey builds the store key for a settled transaction output, the
// ASCII form "{tranNumber}-{item}".
func OutputKey(tranNumber int64, item int) []byte {
	return []byte(fmt.Sprintf("%d-%d", tranNumber, item))
}
