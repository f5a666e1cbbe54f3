package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sybil-v-zakone/kiloex-airdrop-checker/internal/coordinator"
	"github.com/sybil-v-zakone/kiloex-airdrop-checker/internal/fetcher"
	"github.com/sybil-v-zakone/kiloex-airdrop-checker/internal/fileutil"
	"github.com/sybil-v-zakone/kiloex-airdrop-checker/internal/kiloex"
	"github.com/sybil-v-zakone/kiloex-airdrop-checker/internal/proxy"
)

func fastPolicy() fetcher.Policy {
	return fetcher.Policy{MaxRetries: 10, Delay: time.Millisecond}
}

// buildTasks wires addresses and proxies into coordinator tasks the same
// way main does.
func buildTasks(addresses, proxies []string, baseURL string) []coordinator.Task {
	assignments := proxy.NewCycle(proxies).Assign(len(addresses))

	tasks := make([]coordinator.Task, 0, len(addresses))
	for i, address := range addresses {
		tasks = append(tasks, coordinator.Task{
			Address: address,
			Fetcher: kiloex.NewAwardFetcher(address, assignments[i], baseURL, 5*time.Second),
		})
	}
	return tasks
}

// TestIntegration_FullRun drives the whole pipeline from an address file
// to the printed total against a mock upstream.
func TestIntegration_FullRun(t *testing.T) {
	amounts := map[string]string{
		"0xaaa": `{"data": [{"amount": 1.5}, {"amount": 2.25}]}`,
		"0xbbb": `{"data": [{"amount": 10}]}`,
		"0xccc": `{"data": []}`,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := amounts[r.URL.Query().Get("account")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	defer server.Close()

	addressFile := filepath.Join(t.TempDir(), "addresses.txt")
	if err := os.WriteFile(addressFile, []byte("0xaaa\n\n0xbbb\n0xccc\n"), 0o644); err != nil {
		t.Fatalf("failed to write address file: %v", err)
	}

	addresses, err := fileutil.ReadLines(addressFile)
	if err != nil {
		t.Fatalf("ReadLines() returned unexpected error: %v", err)
	}
	if len(addresses) != 3 {
		t.Fatalf("ReadLines() returned %d addresses, want 3", len(addresses))
	}

	coord := coordinator.New(buildTasks(addresses, nil, server.URL), fastPolicy(), nil, 0)
	var out bytes.Buffer
	coord.SetOutput(&out)

	total := coord.Run(context.Background())
	if total != 13.75 {
		t.Errorf("Run() total = %v, want 13.75", total)
	}

	got := out.String()
	for _, line := range []string{
		"Address 0xaaa: 3.75 KILO",
		"Address 0xbbb: 10 KILO",
		"Address 0xccc: 0 KILO",
		"Total sum across all addresses: 13.75 KILO",
	} {
		if !strings.Contains(got, line) {
			t.Errorf("output missing line %q:\n%s", line, got)
		}
	}
}

// TestIntegration_RetryRecovers exercises the retry path end to end: the
// upstream fails twice for one address, then succeeds.
func TestIntegration_RetryRecovers(t *testing.T) {
	var failures atomic.Int64
	failures.Store(2)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("account") == "0xflaky" && failures.Add(-1) >= 0 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [{"amount": 7}]}`))
	}))
	defer server.Close()

	coord := coordinator.New(buildTasks([]string{"0xflaky", "0xsteady"}, nil, server.URL), fastPolicy(), nil, 0)
	var out bytes.Buffer
	coord.SetOutput(&out)

	total := coord.Run(context.Background())
	if total != 14.0 {
		t.Errorf("Run() total = %v, want 14", total)
	}
}

// TestIntegration_PartialFailure checks that an address whose retries
// never succeed is reported but does not poison the batch.
func TestIntegration_PartialFailure(t *testing.T) {
	var doomedAttempts atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("account") == "0xdoomed" {
			doomedAttempts.Add(1)
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [{"amount": 5}]}`))
	}))
	defer server.Close()

	policy := fetcher.Policy{MaxRetries: 3, Delay: time.Millisecond}
	coord := coordinator.New(buildTasks([]string{"0xok", "0xdoomed"}, nil, server.URL), policy, nil, 0)
	var out bytes.Buffer
	coord.SetOutput(&out)

	total := coord.Run(context.Background())
	if total != 5.0 {
		t.Errorf("Run() total = %v, want 5", total)
	}
	// The original call plus max_retries retries.
	if got := doomedAttempts.Load(); got != 4 {
		t.Errorf("doomed address attempted %d times, want 4", got)
	}
	if strings.Contains(out.String(), "0xdoomed") {
		t.Errorf("failed address leaked into result output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Address 0xok: 5 KILO") {
		t.Errorf("output missing success line:\n%s", out.String())
	}
}

// TestIntegration_ProxyAssignment verifies the static round-robin
// mapping main builds before fan-out.
func TestIntegration_ProxyAssignment(t *testing.T) {
	proxies := []string{"10.0.0.1:8080", "10.0.0.2:8080"}

	var addresses []string
	for i := 0; i < 5; i++ {
		addresses = append(addresses, fmt.Sprintf("0x%03d", i))
	}

	assignments := proxy.NewCycle(proxies).Assign(len(addresses))
	for i, got := range assignments {
		want := proxies[i%len(proxies)]
		if got != want {
			t.Errorf("address %d assigned proxy %q, want %q", i, got, want)
		}
	}
}

// TestIntegration_MissingAddressFile mirrors the fatal-to-run setup
// failure: the read error surfaces to the caller before any work starts.
func TestIntegration_MissingAddressFile(t *testing.T) {
	_, err := fileutil.ReadLines(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Error("ReadLines() expected error for missing address file, got nil")
	}
}
