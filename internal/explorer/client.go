package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// Client reads token transfers and transaction details from the chain's
// blockscout-style explorer. It performs no retries: failures are
// classified and surfaced to the caller, which owns the policy.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// LatestTransfers fetches the most-recent-first transfer page for a
// token. The watcher only inspects the first item.
func (c *Client) LatestTransfers(ctx context.Context, tokenAddress string) (*TransferPage, error) {
	url := fmt.Sprintf("%s/tokens/%s/transfers", c.BaseURL, tokenAddress)

	var page TransferPage
	if err := c.getJSON(ctx, url, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// TransactionDetail fetches fee and metadata for one transaction.
func (c *Client) TransactionDetail(ctx context.Context, txHash string) (*TxInfo, error) {
	url := fmt.Sprintf("%s/transactions/%s", c.BaseURL, txHash)

	var info TxInfo
	if err := c.getJSON(ctx, url, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return &NetworkError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		log.Errorf("deserialization error for %s: %v, raw payload: %s", url, err, body)
		return &DecodeError{URL: url, Raw: string(body), Err: err}
	}
	return nil
}
