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

// go/src/cache/cache.go

// Package cache provides the in-process transient cache shared by the worker
// pool: recently validated account payloads with a short expiry, plus the
// bootstrap constants (root public key, mining address list, chain height).
package cache

import (
	"encoding/hex"
	"sync"
	"time"
)

// Reserved keys.
const (
	KeyRootPublicKey   = "ROOT_PK"         // hex-encoded configured root public key
	KeyMiningAddresses = "MINING_ADDRESS"  // base58 display addresses allowed to mine
	KeyBlockHeight     = "CURRENT_HEIGHT"  // current chain height
)

// janitorInterval is how often expired entries are swept. Expiry is also
// checked lazily on Get, so the sweep only bounds memory.
const janitorInterval = 500 * time.Millisecond

type entry struct {
	value    any
	expireAt time.Time // zero means no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.expireAt.IsZero() && now.After(e.expireAt)
}

// TransientCache is a TTL key-value cache safe for concurrent use. All
// single-key operations are atomic.
type TransientCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	stop    chan struct{}
	once    sync.Once
}

// New creates a cache and starts its background sweeper.
func New() *TransientCache {
	c := &TransientCache{
		entries: make(map[string]entry),
		stop:    make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Put stores value under key. ttlSeconds <= 0 keeps the entry until it is
// overwritten or deleted.
func (c *TransientCache) Put(key string, value any, ttlSeconds int) {
	var expireAt time.Time
	if ttlSeconds > 0 {
		expireAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	}
	c.mu.Lock()
	c.entries[key] = entry{value: value, expireAt: expireAt}
	c.mu.Unlock()
}

// Get returns the live value under key, if any.
func (c *TransientCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || e.expired(time.Now()) {
		return nil, false
	}
	return e.value, true
}

// GetBytes returns the value under key as a byte slice, or nil when the
// entry is absent, expired or of another type.
func (c *TransientCache) GetBytes(key string) []byte {
	v, ok := c.Get(key)
	if !ok {
		return nil
	}
	b, _ := v.([]byte)
	return b
}

// Delete removes key.
func (c *TransientCache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Close stops the background sweeper.
func (c *TransientCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *TransientCache) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.mu.Lock()
			for k, e := range c.entries {
				if e.expired(now) {
					delete(c.entries, k)
				}
			}
			c.mu.Unlock()
		}
	}
}

// SetRootPublicKey records the configured root public key. Stored hex
// encoded under the reserved key, never expiring.
func (c *TransientCache) SetRootPublicKey(pub []byte) {
	c.Put(KeyRootPublicKey, hex.EncodeToString(pub), 0)
}

// RootPublicKey returns the configured root public key, or nil when the
// node was started without one.
func (c *TransientCache) RootPublicKey() []byte {
	v, ok := c.Get(KeyRootPublicKey)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	pub, err := hex.DecodeString(s)
	if err != nil {
		return nil
	}
	return pub
}

// SetMiningAddresses records the list of display addresses allowed to
// receive mining rewards.
func (c *TransientCache) SetMiningAddresses(addrs []string) {
	c.Put(KeyMiningAddresses, addrs, 0)
}

// MiningAddresses returns the configured mining address list.
func (c *TransientCache) MiningAddresses() []string {
	v, ok := c.Get(KeyMiningAddresses)
	if !ok {
		return nil
	}
	addrs, _ := v.([]string)
	return addrs
}

// SetCurrentHeight records the current chain height.
func (c *TransientCache) SetCurrentHeight(height uint64) {
	c.Put(KeyBlockHeight, height, 0)
}

// CurrentHeight returns the current chain height, zero when unknown.
func (c *TransientCache) CurrentHeight() uint64 {
	v, ok := c.Get(KeyBlockHeight)
	if !ok {
		return 0
	}
	h, _ := v.(uint64)
	return h
}
