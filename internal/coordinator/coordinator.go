package coordinator

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/sybil-v-zakone/kiloex-airdrop-checker/internal/fetcher"
	"github.com/sybil-v-zakone/kiloex-airdrop-checker/internal/ratelimit"
)

// Task pairs one address with the fetcher that will query it. The proxy
// assignment is already baked into the fetcher, so each task is fully
// self-contained before fan-out begins.
type Task struct {
	Address string
	Fetcher fetcher.Fetcher
}

// Coordinator runs one retrying fetch per address concurrently and
// aggregates the successful amounts into a grand total.
type Coordinator struct {
	tasks       []Task
	policy      fetcher.Policy
	limiter     *ratelimit.Limiter
	concurrency int
	out         io.Writer
}

// New creates a Coordinator for the given tasks. concurrency bounds the
// number of in-flight fetches; zero means one goroutine per address with
// no cap. limiter may be nil to dispatch without rate limiting.
func New(tasks []Task, policy fetcher.Policy, limiter *ratelimit.Limiter, concurrency int) *Coordinator {
	return &Coordinator{
		tasks:       tasks,
		policy:      policy,
		limiter:     limiter,
		concurrency: concurrency,
		out:         os.Stdout,
	}
}

// SetOutput redirects the result lines, which default to stdout.
// Diagnostics are unaffected.
func (c *Coordinator) SetOutput(w io.Writer) {
	c.out = w
}

// Run executes all tasks concurrently, waits for every one to finish,
// and returns the sum of the successful amounts. Results are printed as
// they arrive:
//   - Success: "Address <address>: <amount> KILO" on the output writer
//   - Failure: "Failed after retries for address <address>: <error>"
//     on the diagnostic stream
//
// A failed address is excluded from the total; it never aborts the run.
// After all tasks complete the total line is printed.
func (c *Coordinator) Run(ctx context.Context) float64 {
	resultChan := make(chan fetcher.Result, len(c.tasks))

	var sem chan struct{}
	if c.concurrency > 0 {
		sem = make(chan struct{}, c.concurrency)
	}

	var wg sync.WaitGroup

	for _, t := range c.tasks {
		wg.Add(1)
		go func(task Task) {
			defer wg.Done()

			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			if c.limiter != nil {
				if err := c.limiter.Wait(ctx); err != nil {
					resultChan <- fetcher.Result{Address: task.Address, Error: err}
					return
				}
			}

			amount, err := fetcher.WithRetry(ctx, task.Fetcher, task.Address, c.policy)

			resultChan <- fetcher.Result{
				Address: task.Address,
				Amount:  amount,
				Error:   err,
			}
		}(t)
	}

	// Close the result channel when all workers are done.
	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var total float64
	for result := range resultChan {
		if result.Error != nil {
			logrus.Errorf("Failed after retries for address %s: %v", result.Address, result.Error)
			continue
		}
		fmt.Fprintf(c.out, "Address %s: %v KILO\n", result.Address, result.Amount)
		total += result.Amount
	}

	fmt.Fprintf(c.out, "Total sum across all addresses: %v KILO\n", total)

	return total
}
