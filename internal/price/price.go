package price

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"apechain-buybot/internal/explorer"

	log "github.com/sirupsen/logrus"
)

// TokenOverview is the price-API view of a token. Only Price feeds the
// alert math; the flags are kept for logging suspicious tokens.
type TokenOverview struct {
	ID             string  `json:"id"`
	Chain          string  `json:"chain"`
	Name           string  `json:"name"`
	Symbol         string  `json:"symbol"`
	Decimals       uint64  `json:"decimals"`
	Price          float64 `json:"price"`
	Price24hChange float64 `json:"price_24h_change"`
	IsVerified     bool    `json:"is_verified"`
	IsScam         bool    `json:"is_scam"`
	IsSuspicious   bool    `json:"is_suspicious"`
}

// Client fetches token overviews from the DeBank-style price API.
// Failures are classified with the same explorer error types the
// watcher's fetch policy switches on.
type Client struct {
	BaseURL    string
	APIKey     string
	ChainID    string
	HTTPClient *http.Client
}

func NewClient(baseURL, apiKey, chainID string) *Client {
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		ChainID:    chainID,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// TokenOverview fetches the current price overview for a token.
func (c *Client) TokenOverview(ctx context.Context, tokenAddress string) (*TokenOverview, error) {
	url := fmt.Sprintf("%s/v1/token?chain_id=%s&id=%s", c.BaseURL, c.ChainID, tokenAddress)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &explorer.NetworkError{URL: url, Err: err}
	}
	req.Header.Set("Accesskey", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &explorer.NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &explorer.NetworkError{URL: url, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &explorer.NetworkError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var overview TokenOverview
	if err := json.Unmarshal(body, &overview); err != nil {
		log.Errorf("deserialization error for %s: %v, raw payload: %s", url, err, body)
		return nil, &explorer.DecodeError{URL: url, Raw: string(body), Err: err}
	}

	if overview.IsScam || overview.IsSuspicious {
		log.Warnf("token %s flagged by price API: scam=%v suspicious=%v",
			tokenAddress, overview.IsScam, overview.IsSuspicious)
	}

	return &overview, nil
}
