package kiloex

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"resty.dev/v3"
)

const awardFlowPath = "/point/queryKiloAccountAwardFlow"

// AwardFlowResponse represents the KiloEx API response for the account
// award flow. Extra fields are ignored.
type AwardFlowResponse struct {
	Data []AwardRecord `json:"data"`
}

// AwardRecord is a single award entry for an account.
type AwardRecord struct {
	Amount float64 `json:"amount"`
}

// AwardFetcher fetches the total airdrop amount for one account,
// optionally routing the request through an HTTP proxy.
type AwardFetcher struct {
	address string
	proxy   string // host:port, empty for a direct connection
	baseURL string
	timeout time.Duration
}

// NewAwardFetcher creates a new airdrop amount fetcher. proxy may be
// empty. A zero timeout leaves the transport default in place.
func NewAwardFetcher(address, proxy, baseURL string, timeout time.Duration) *AwardFetcher {
	return &AwardFetcher{
		address: address,
		proxy:   proxy,
		baseURL: baseURL,
		timeout: timeout,
	}
}

// Fetch performs one GET against the award-flow endpoint and reduces the
// response to a single amount by summing every record. An empty data
// array is a valid zero amount, not an error. The query timestamp is
// taken at call time so each retry carries a fresh one.
func (f *AwardFetcher) Fetch(ctx context.Context) (float64, error) {
	// Each call builds its own client so the per-address proxy applies
	// without any shared client state.
	client := resty.New().
		SetBaseURL(f.baseURL).
		SetHeader("Accept", "application/json").
		SetRedirectPolicy(resty.NoRedirectPolicy())
	defer client.Close()

	if f.proxy != "" {
		client.SetProxy("http://" + f.proxy)
	}
	if f.timeout > 0 {
		client.SetTimeout(f.timeout)
	}

	var result AwardFlowResponse

	resp, err := client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"type":    "0",
			"account": f.address,
			"t":       strconv.FormatInt(time.Now().Unix(), 10),
		}).
		SetResult(&result).
		Get(awardFlowPath)

	if err != nil {
		return 0, fmt.Errorf("failed to fetch award flow for %s: %w", f.address, err)
	}

	if !resp.IsSuccess() {
		return 0, fmt.Errorf("kiloex API returned status %d", resp.StatusCode())
	}

	var total float64
	for _, record := range result.Data {
		total += record.Amount
	}

	return total, nil
}

// Key returns the hierarchical key for this fetcher.
func (f *AwardFetcher) Key() string {
	return fmt.Sprintf("fetcher:kiloex:%s", f.address)
}
