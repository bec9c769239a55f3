package watcher

import (
	"context"

	"apechain-buybot/internal/explorer"
	"apechain-buybot/internal/price"
	"apechain-buybot/internal/types"
)

// Ledger reads transfer activity from the chain explorer.
type Ledger interface {
	LatestTransfers(ctx context.Context, tokenAddress string) (*explorer.TransferPage, error)
	TransactionDetail(ctx context.Context, txHash string) (*explorer.TxInfo, error)
}

// PriceSource provides the current USD price overview of a token.
type PriceSource interface {
	TokenOverview(ctx context.Context, tokenAddress string) (*price.TokenOverview, error)
}

// Notification is the payload handed to the Dispatcher. MediaKind is
// one of the types.Media* values; MediaRef is the backend-owned file id.
type Notification struct {
	ChatID    int64
	Text      string
	MediaKind string
	MediaRef  string
}

// Dispatcher delivers a rendered notification. Delivery failures are
// non-fatal to the session.
type Dispatcher interface {
	Dispatch(n Notification) error
}

// BuyEvent carries the derived figures for one qualifying transfer.
type BuyEvent struct {
	Transfer    explorer.TransferItem
	Price       float64
	TokenAmount float64 // transfer total, scaled
	FeeScaled   float64
	SpendUSD    float64 // net of fee
	TotalUSD    float64 // gross
	MarketCap   float64
}

// Renderer turns a buy event into the message text for one settings
// record. The template itself lives with the telegram layer.
type Renderer interface {
	RenderBuyAlert(opts types.SettingOpts, ev BuyEvent) string
}

// ErrorPolicy decides what a session does when a fetch fails.
type ErrorPolicy string

const (
	// PolicyContinue logs the failure and keeps polling.
	PolicyContinue ErrorPolicy = "continue"
	// PolicyTerminate notifies the chat and ends the session.
	PolicyTerminate ErrorPolicy = "terminate"
)

// ParseErrorPolicy maps a config string to a policy, defaulting to
// continue on anything unrecognized.
func ParseErrorPolicy(s string) ErrorPolicy {
	if ErrorPolicy(s) == PolicyTerminate {
		return PolicyTerminate
	}
	return PolicyContinue
}
