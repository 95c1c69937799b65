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

// go/src/main.go
package main

import (
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/talust-core/go/src/config"
	logger "github.com/talust-core/go/src/log"
	"github.com/talust-core/go/src/node"
)

func main() {
	configPath := flag.String("config", "", "Path to JSON config file")
	listen := flag.String("listen", "", "TCP peer listen address")
	httpAddr := flag.String("http", "", "Local API listen address")
	seeds := flag.String("seeds", "", "Comma-separated seed nodes")
	dataDir := flag.String("datadir", "", "Data directory")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			panic(err)
		}
		cfg = loaded
	}
	if *listen != "" {
		cfg.ListenAddress = *listen
	}
	if *httpAddr != "" {
		cfg.HTTPAddress = *httpAddr
	}
	if *seeds != "" {
		cfg.SeedNodes = strings.Split(*seeds, ",")
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	n, err := node.New(cfg, log)
	if err != nil {
		log.Fatal("node init failed", zap.Error(err))
	}
	if err := n.Start(); err != nil {
		log.Fatal("node start failed", zap.Error(err))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info("shutting down")
	n.Stop()
}
