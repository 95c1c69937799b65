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

// go/src/core/transaction/spent.go
package types

import (
	"fmt"
	"sync"
)

// SpentOutputSet tracks which (tranNumber, item) output references have
// already been consumed inside the validation window, preventing a second
// transaction from spending the same output.
type SpentOutputSet struct {
	mu    sync.Mutex
	spent map[string]struct{}
}

// NewSpentOutputSet creates an empty set.
func NewSpentOutputSet() *SpentOutputSet {
	return &SpentOutputSet{spent: make(map[string]struct{})}
}

func outputRef(tranNumber int64, item int) string {
	return fmt.Sprintf("%d-%d", tranNumber, item)
}

// IsDisabled reports whether the output has already been consumed.
func (s *SpentOutputSet) IsDisabled(tranNumber int64, item int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.spent[outputRef(tranNumber, item)]
	return ok
}

// Disable marks the output as consumed unconditionally.
func (s *SpentOutputSet) Disable(tranNumber int64, item int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spent[outputRef(tranNumber, item)] = struct{}{}
}

// Claim marks the output as consumed and reports whether this caller won the
// claim. Check and mark happen under one lock, so of any number of
// concurrent claims for the same output exactly one returns true.
func (s *SpentOutputSet) Claim(tranNumber int64, item int) bool {
	key := outputRef(tranNumber, item)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.spent[key]; ok {
		return false
	}
	s.spent[key] = struct{}{}
	return true
}
