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

// go/src/core/transaction/rewards_test.go
package types

import "testing"

func TestBaseCoin(t *testing.T) {
	tests := []struct {
		height uint64
		want   float64
	}{
		{0, 0},
		{1, 100},
		{rewardEra, 100},
		{rewardEra + 1, 50},
		{2*rewardEra + 1, 25},
		{maxRewardEras*rewardEra + 1, 0},
	}
	for _, tt := range tests {
		if got := BaseCoin(tt.height); got != tt.want {
			t.Errorf("BaseCoin(%d) = %v, want %v", tt.height, got, tt.want)
		}
	}
}

func TestDepositCoin(t *testing.T) {
	tests := []struct {
		height uint64
		want   float64
	}{
		{0, 0},
		{1, 10},
		{rewardEra, 10},
		{rewardEra + 1, 5},
	}
	for _, tt := range tests {
		if got := DepositCoin(tt.height); got != tt.want {
			t.Errorf("DepositCoin(%d) = %v, want %v", tt.height, got, tt.want)
		}
	}
}
