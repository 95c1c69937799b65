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

// go/src/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node.json")
	body := `{
		"listenAddress": "0.0.0.0:40404",
		"seedNodes": ["seed1:30303", "seed2:30303"],
		"strictTransfers": true
	}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddress != "0.0.0.0:40404" {
		t.Errorf("ListenAddress = %q", cfg.ListenAddress)
	}
	if len(cfg.SeedNodes) != 2 {
		t.Errorf("SeedNodes = %v", cfg.SeedNodes)
	}
	if !cfg.StrictTransfers {
		t.Error("StrictTransfers not set")
	}
	// Untouched fields keep their defaults.
	if cfg.Workers != 8 || cfg.QueueCapacity != 4096 || cfg.LogLevel != "info" {
		t.Errorf("defaults clobbered: workers=%d queue=%d level=%q",
			cfg.Workers, cfg.QueueCapacity, cfg.LogLevel)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load(missing) succeeded")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{not json"), 0o600)
	if _, err := Load(path); err == nil {
		t.Error("Load(malformed) succeeded")
	}
}

func TestChainStatePath(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/var/lib/talust"
	if got := cfg.ChainStatePath(); got != filepath.Join("/var/lib/talust", "chainstate") {
		t.Errorf("ChainStatePath = %q", got)
	}
}
