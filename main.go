package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/sybil-v-zakone/kiloex-airdrop-checker/internal/config"
	"github.com/sybil-v-zakone/kiloex-airdrop-checker/internal/coordinator"
	"github.com/sybil-v-zakone/kiloex-airdrop-checker/internal/fetcher"
	"github.com/sybil-v-zakone/kiloex-airdrop-checker/internal/fileutil"
	"github.com/sybil-v-zakone/kiloex-airdrop-checker/internal/kiloex"
	"github.com/sybil-v-zakone/kiloex-airdrop-checker/internal/logging"
	"github.com/sybil-v-zakone/kiloex-airdrop-checker/internal/proxy"
	"github.com/sybil-v-zakone/kiloex-airdrop-checker/internal/ratelimit"
)

func main() {
	// Pick up a local .env if one exists; real env still wins.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Setup(cfg.LogLevel, cfg.LogFile)

	// The address file is required; without it there is nothing to do.
	// The run still reports via diagnostics and exits cleanly.
	addresses, err := fileutil.ReadLines(cfg.AddressesPath)
	if err != nil {
		logrus.Errorf("Error reading addresses file: %v", err)
		return
	}

	// The proxy file is optional; any failure to read it just means
	// every request goes out directly.
	proxies, err := fileutil.ReadLines(cfg.ProxiesPath)
	if err != nil {
		proxies = nil
	}

	// Assign proxies round-robin before fan-out so each address keeps
	// the same proxy across all of its retries.
	assignments := proxy.NewCycle(proxies).Assign(len(addresses))

	tasks := make([]coordinator.Task, 0, len(addresses))
	for i, address := range addresses {
		tasks = append(tasks, coordinator.Task{
			Address: address,
			Fetcher: kiloex.NewAwardFetcher(address, assignments[i], cfg.BaseURL, cfg.HTTPTimeout),
		})
	}

	policy := fetcher.Policy{MaxRetries: cfg.MaxRetries, Delay: cfg.RetryDelay}

	var limiter *ratelimit.Limiter
	if cfg.RequestRate > 0 {
		limiter = ratelimit.New(cfg.RequestRate)
	}

	coord := coordinator.New(tasks, policy, limiter, cfg.Concurrency)

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logrus.Info("Received interrupt signal, shutting down...")
		cancel()
	}()

	coord.Run(ctx)
}
