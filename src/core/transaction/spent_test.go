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

// go/src/core/transaction/spent_test.go
package types

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestDisableIsDisabled(t *testing.T) {
	s := NewSpentOutputSet()
	if s.IsDisabled(7, 0) {
		t.Fatal("fresh output reported disabled")
	}
	s.Disable(7, 0)
	if !s.IsDisabled(7, 0) {
		t.Fatal("disabled output reported live")
	}
	if s.IsDisabled(7, 1) {
		t.Fatal("sibling output reported disabled")
	}
}

func TestClaimSingleWinner(t *testing.T) {
	s := NewSpentOutputSet()
	const racers = 64

	var wins int64
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if s.Claim(11, 2) {
				atomic.AddInt64(&wins, 1)
			}
		}()
	}
	close(start)
	wg.Wait()

	if wins != 1 {
		t.Fatalf("claim winners = %d, want exactly 1", wins)
	}
	if !s.IsDisabled(11, 2) {
		t.Fatal("claimed output not reported disabled")
	}
}
