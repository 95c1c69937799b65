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

// go/src/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the node's startup parameters.
type Config struct {
	ListenAddress   string   `json:"listenAddress"`   // TCP peer listener
	WSAddress       string   `json:"wsAddress"`       // WebSocket peer listener, empty disables
	HTTPAddress     string   `json:"httpAddress"`     // local API listener
	SeedNodes       []string `json:"seedNodes"`       // peers dialed at startup
	DataDir         string   `json:"dataDir"`         // chain-state database location
	Workers         int      `json:"workers"`         // worker pool size
	QueueCapacity   int      `json:"queueCapacity"`   // message queue bound
	RootPublicKey   string   `json:"rootPublicKey"`   // hex-encoded root public key
	MiningAddresses []string `json:"miningAddresses"` // base58 addresses allowed to mine
	StrictTransfers bool     `json:"strictTransfers"` // enforce transfer accounting
	LogLevel        string   `json:"logLevel"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		ListenAddress: "127.0.0.1:30303",
		HTTPAddress:   "127.0.0.1:8545",
		DataDir:       "data",
		Workers:       8,
		QueueCapacity: 4096,
		LogLevel:      "info",
	}
}

// Load reads a JSON config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ChainStatePath returns the chain-state database directory.
func (c *Config) ChainStatePath() string {
	return filepath.Join(c.DataDir, "chainstate")
}
