package watcher

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"apechain-buybot/internal/explorer"
	"apechain-buybot/internal/price"
	"apechain-buybot/internal/types"
	"apechain-buybot/lib/calc"

	"github.com/stretchr/testify/require"
)

const (
	testToken = "0x48b62137EdfA95a428D35C09E44256a739F6B557"
	testUser  = int64(7)
	testChat  = int64(-100200)
)

type fakeLedger struct {
	page    *explorer.TransferPage
	pageErr error
	tx      *explorer.TxInfo
	txErr   error
}

func (f *fakeLedger) LatestTransfers(_ context.Context, _ string) (*explorer.TransferPage, error) {
	return f.page, f.pageErr
}

func (f *fakeLedger) TransactionDetail(_ context.Context, _ string) (*explorer.TxInfo, error) {
	return f.tx, f.txErr
}

type fakePrices struct {
	priceUSD float64
	err      error
}

func (f *fakePrices) TokenOverview(_ context.Context, _ string) (*price.TokenOverview, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &price.TokenOverview{Price: f.priceUSD}, nil
}

type fakeDispatcher struct {
	sent []Notification
	err  error
}

func (f *fakeDispatcher) Dispatch(n Notification) error {
	f.sent = append(f.sent, n)
	return f.err
}

type stubRenderer struct{}

func (stubRenderer) RenderBuyAlert(opts types.SettingOpts, ev BuyEvent) string {
	return fmt.Sprintf("%s spend=%.2f",
		strings.Repeat(opts.Emoji, calc.EmojiRepeatCount(ev.SpendUSD, opts.BuyStep)), ev.SpendUSD)
}

func strptr(s string) *string { return &s }

// transferPage builds a one-item page: 160 tokens moved, 18 decimals.
func transferPage(txHash, toName string) *explorer.TransferPage {
	var namePtr *string
	if toName != "" {
		namePtr = strptr(toName)
	}
	return &explorer.TransferPage{
		Items: []explorer.TransferItem{{
			TxHash:    txHash,
			BlockHash: "0xblock",
			To:        explorer.AddressInfo{Hash: "0xto", Name: namePtr},
			Token: explorer.TokenInfo{
				Address:     testToken,
				Name:        "Wrapped ApeCoin",
				Symbol:      "WAPE",
				Decimals:    "18",
				TotalSupply: "1000000000000000000000000", // 1M tokens
				Holders:     "10039",
			},
			Total: explorer.Total{Decimals: "18", Value: "160000000000000000000"}, // 160 tokens
		}},
	}
}

// feeTx charges 10 tokens worth of fee at 18 decimals.
func feeTx() *explorer.TxInfo {
	return &explorer.TxInfo{Fee: explorer.Fee{Value: "10000000000000000000"}}
}

func newTestSession(ledger *fakeLedger, prices *fakePrices, dispatcher *fakeDispatcher, policy ErrorPolicy, minBuy float64) *session {
	return &session{
		opts: types.SettingOpts{
			UserID:       testUser,
			GroupChatID:  testChat,
			TokenAddress: testToken,
			MinBuyAmount: minBuy,
			BuyStep:      30,
			Emoji:        "💎",
		},
		ledger:     ledger,
		prices:     prices,
		dispatcher: dispatcher,
		renderer:   stubRenderer{},
		interval:   time.Millisecond,
		policy:     policy,
	}
}

func TestTickNotifiesAndDeduplicates(t *testing.T) {
	ledger := &fakeLedger{page: transferPage("0xaaa", "UTB"), tx: feeTx()}
	dispatcher := &fakeDispatcher{}
	s := newTestSession(ledger, &fakePrices{priceUSD: 1.0}, dispatcher, PolicyContinue, 100)

	// (160 - 10) * 1.0 = 150 USD spend, above the 100 USD threshold.
	require.Equal(t, tickContinue, s.tick(context.Background()))
	require.Len(t, dispatcher.sent, 1)
	require.Equal(t, testChat, dispatcher.sent[0].ChatID)
	require.Equal(t, "0xaaa", s.lastSeenTx)

	// Emoji row repeats floor(150/30)+1 = 6 times.
	require.Equal(t, 6, strings.Count(dispatcher.sent[0].Text, "💎"))

	// Second identical poll produces nothing further.
	require.Equal(t, tickContinue, s.tick(context.Background()))
	require.Len(t, dispatcher.sent, 1)

	// A new hash notifies again.
	ledger.page = transferPage("0xbbb", "UTB")
	require.Equal(t, tickContinue, s.tick(context.Background()))
	require.Len(t, dispatcher.sent, 2)
}

func TestTickSkipsUnattributedRecipient(t *testing.T) {
	ledger := &fakeLedger{page: transferPage("0xaaa", ""), tx: feeTx()}
	dispatcher := &fakeDispatcher{}
	s := newTestSession(ledger, &fakePrices{priceUSD: 1.0}, dispatcher, PolicyContinue, 0)

	require.Equal(t, tickContinue, s.tick(context.Background()))
	require.Empty(t, dispatcher.sent)
	require.Empty(t, s.lastSeenTx, "unattributed transfers stay unseen")

	// Once the explorer attributes the recipient the same hash fires.
	ledger.page = transferPage("0xaaa", "UTB")
	require.Equal(t, tickContinue, s.tick(context.Background()))
	require.Len(t, dispatcher.sent, 1)
}

func TestThresholdIsStrict(t *testing.T) {
	ledger := &fakeLedger{page: transferPage("0xaaa", "UTB"), tx: feeTx()}
	dispatcher := &fakeDispatcher{}
	// Spend is exactly 150; equal never notifies.
	s := newTestSession(ledger, &fakePrices{priceUSD: 1.0}, dispatcher, PolicyContinue, 150)

	require.Equal(t, tickContinue, s.tick(context.Background()))
	require.Empty(t, dispatcher.sent)
	require.Equal(t, "0xaaa", s.lastSeenTx, "filtered transfers still count as seen")

	// One cent above the threshold notifies.
	ledger.page = transferPage("0xbbb", "UTB")
	s.opts.MinBuyAmount = 149.99
	require.Equal(t, tickContinue, s.tick(context.Background()))
	require.Len(t, dispatcher.sent, 1)
}

func TestEmptyStreakNotifiesOnce(t *testing.T) {
	ledger := &fakeLedger{page: &explorer.TransferPage{}}
	dispatcher := &fakeDispatcher{}
	s := newTestSession(ledger, &fakePrices{priceUSD: 1.0}, dispatcher, PolicyContinue, 0)

	require.Equal(t, tickContinue, s.tick(context.Background()))
	require.Equal(t, tickContinue, s.tick(context.Background()))
	require.Equal(t, tickContinue, s.tick(context.Background()))
	require.Len(t, dispatcher.sent, 1, "one notice per empty streak")

	// Activity resets the streak; a later empty page notifies again.
	ledger.page = transferPage("0xaaa", "")
	require.Equal(t, tickContinue, s.tick(context.Background()))
	ledger.page = &explorer.TransferPage{}
	require.Equal(t, tickContinue, s.tick(context.Background()))
	require.Len(t, dispatcher.sent, 2)
}

func TestFetchErrorPolicies(t *testing.T) {
	netErr := &explorer.NetworkError{URL: "http://x", Err: fmt.Errorf("timeout")}

	ledger := &fakeLedger{pageErr: netErr}
	dispatcher := &fakeDispatcher{}
	s := newTestSession(ledger, &fakePrices{priceUSD: 1.0}, dispatcher, PolicyContinue, 0)
	require.Equal(t, tickContinue, s.tick(context.Background()), "continue policy keeps polling")
	require.Empty(t, dispatcher.sent)

	s = newTestSession(ledger, &fakePrices{priceUSD: 1.0}, dispatcher, PolicyTerminate, 0)
	require.Equal(t, tickTerminate, s.tick(context.Background()), "terminate policy ends the session")
	require.Len(t, dispatcher.sent, 1, "termination is announced to the chat")
}

func TestEnrichmentErrorDoesNotMarkSeen(t *testing.T) {
	netErr := &explorer.NetworkError{URL: "http://x", Err: fmt.Errorf("timeout")}

	ledger := &fakeLedger{page: transferPage("0xaaa", "UTB"), tx: feeTx()}
	dispatcher := &fakeDispatcher{}
	prices := &fakePrices{err: netErr}
	s := newTestSession(ledger, prices, dispatcher, PolicyContinue, 0)

	require.Equal(t, tickContinue, s.tick(context.Background()))
	require.Empty(t, dispatcher.sent)
	require.Empty(t, s.lastSeenTx, "never mark seen on a fetch error")

	// Next tick re-evaluates the same transfer successfully.
	prices.err = nil
	prices.priceUSD = 1.0
	require.Equal(t, tickContinue, s.tick(context.Background()))
	require.Len(t, dispatcher.sent, 1)
	require.Equal(t, "0xaaa", s.lastSeenTx)
}

func TestMediaAttachedWhenConfigured(t *testing.T) {
	ledger := &fakeLedger{page: transferPage("0xaaa", "UTB"), tx: feeTx()}
	dispatcher := &fakeDispatcher{}
	s := newTestSession(ledger, &fakePrices{priceUSD: 1.0}, dispatcher, PolicyContinue, 0)
	s.opts.MediaToggle = true
	s.opts.MediaType = types.MediaPhoto
	s.opts.MediaFileID = "file-1"

	require.Equal(t, tickContinue, s.tick(context.Background()))
	require.Len(t, dispatcher.sent, 1)
	require.Equal(t, types.MediaPhoto, dispatcher.sent[0].MediaKind)
	require.Equal(t, "file-1", dispatcher.sent[0].MediaRef)
}
