package fetcher

import "context"

// Fetcher is the core interface for retrieving a single numeric amount
// from an upstream API. Each fetcher knows how to query one account and
// provides a hierarchical key identifying it.
type Fetcher interface {
	// Fetch retrieves the amount and returns it as a float64.
	// Returns an error if the fetch operation fails.
	Fetch(ctx context.Context) (float64, error)

	// Key returns a hierarchical key for this fetcher.
	// Format: fetcher:{source}:{identifier}
	// Example: fetcher:kiloex:0x742d35Cc6634C0532925a3b844Bc9e7595f0bEb
	Key() string
}
