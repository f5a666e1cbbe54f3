package fetcher

// Result represents the terminal outcome of one address's full retry
// sequence. It's designed to be sent through channels from worker
// goroutines to a coordinator that aggregates the results.
type Result struct {
	// Address is the account the fetch was made for.
	Address string

	// Amount is the fetched airdrop amount. May legitimately be 0 when
	// the upstream reports no records.
	Amount float64

	// Error contains the last error after retries were exhausted.
	// If Error is not nil, Amount should be considered invalid.
	Error error
}
