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

// go/src/core/transaction/rewards.go
package types

// Reward schedule: both rewards halve every rewardEra blocks, starting from
// the height-1 values below.
const (
	initialBaseReward    = 100.0
	initialDepositReward = 10.0
	rewardEra            = 1_000_000
	maxRewardEras        = 32 // beyond this the reward has rounded to zero
)

// BaseCoin returns the mining reward a coinbase output must pay at the given
// block height.
func BaseCoin(height uint64) float64 {
	return eraReward(initialBaseReward, height)
}

// DepositCoin returns the deposit reward a coinbase output must pay at the
// given block height.
func DepositCoin(height uint64) float64 {
	return eraReward(initialDepositReward, height)
}

func eraReward(initial float64, height uint64) float64 {
	if height == 0 {
		return 0
	}
	era := (height - 1) / rewardEra
	if era >= maxRewardEras {
		return 0
	}
	return initial / float64(uint64(1)<<era)
}
