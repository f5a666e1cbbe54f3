package testutil

import (
	"context"

	"github.com/sybil-v-zakone/kiloex-airdrop-checker/internal/fetcher"
)

// MockFetcher is a mock implementation of the Fetcher interface for testing
type MockFetcher struct {
	FetchFunc func(ctx context.Context) (float64, error)
	KeyFunc   func() string
}

// Fetch implements the Fetcher interface
func (m *MockFetcher) Fetch(ctx context.Context) (float64, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}
	return 0, nil
}

// Key implements the Fetcher interface
func (m *MockFetcher) Key() string {
	if m.KeyFunc != nil {
		return m.KeyFunc()
	}
	return "mock:key"
}

// NewMockFetcher creates a simple mock fetcher with predefined values
func NewMockFetcher(key string, amount float64, err error) fetcher.Fetcher {
	return &MockFetcher{
		FetchFunc: func(ctx context.Context) (float64, error) {
			return amount, err
		},
		KeyFunc: func() string {
			return key
		},
	}
}

// NewFlakyFetcher creates a mock fetcher that fails with err for the
// first failures calls, then succeeds with amount. It also reports how
// many calls were made via the returned counter.
func NewFlakyFetcher(amount float64, err error, failures int) (*MockFetcher, *int) {
	calls := 0
	return &MockFetcher{
		FetchFunc: func(ctx context.Context) (float64, error) {
			calls++
			if calls <= failures {
				return 0, err
			}
			return amount, nil
		},
	}, &calls
}
