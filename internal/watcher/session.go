package watcher

import (
	"context"
	"time"

	"apechain-buybot/internal/explorer"
	"apechain-buybot/internal/types"
	"apechain-buybot/lib/calc"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type tickResult int

const (
	tickContinue tickResult = iota
	tickTerminate
)

// session is one watch loop bound to an immutable settings snapshot.
// It runs single-threaded: the dedup check and its write are never
// separated by a point another tick of the same session could reach.
type session struct {
	opts   types.SettingOpts
	cancel context.CancelFunc

	ledger     Ledger
	prices     PriceSource
	dispatcher Dispatcher
	renderer   Renderer
	interval   time.Duration
	policy     ErrorPolicy

	lastSeenTx    string
	inEmptyStreak bool
}

func (s *session) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if s.tick(ctx) == tickTerminate {
			return
		}
	}
}

func (s *session) tick(ctx context.Context) tickResult {
	page, err := s.ledger.LatestTransfers(ctx, s.opts.TokenAddress)
	if err != nil {
		return s.onFetchError(err)
	}

	if len(page.Items) == 0 {
		if !s.inEmptyStreak {
			s.inEmptyStreak = true
			log.Debugf("no transfers yet for token %s", s.opts.TokenAddress)
			s.notifyText("Not found any new transfer")
		}
		return tickContinue
	}
	s.inEmptyStreak = false

	first := page.Items[0]
	transfersInspected.Inc()
	log.Debugf("latest transfer for %s: %s", s.opts.TokenAddress, spew.Sdump(first))

	// Transfers whose recipient has no attributed name yet are treated
	// as not indexed and re-checked on the next tick.
	if first.TxHash == s.lastSeenTx || first.To.DisplayName() == "" {
		return tickContinue
	}

	prevSeen := s.lastSeenTx
	s.lastSeenTx = first.TxHash

	ev, err := s.enrich(ctx, first)
	if err != nil {
		// The transfer was never evaluated, so it must not count as
		// seen.
		s.lastSeenTx = prevSeen
		return s.onFetchError(err)
	}

	if ev.SpendUSD <= s.opts.MinBuyAmount {
		log.Debugf("transfer %s below threshold: %.4f <= %.4f", first.TxHash, ev.SpendUSD, s.opts.MinBuyAmount)
		return tickContinue
	}

	n := Notification{
		ChatID: s.opts.GroupChatID,
		Text:   s.renderer.RenderBuyAlert(s.opts, *ev),
	}
	if s.opts.HasMedia() {
		n.MediaKind = s.opts.MediaType
		n.MediaRef = s.opts.MediaFileID
	}

	if err := s.dispatcher.Dispatch(n); err != nil {
		log.Errorf("failed to dispatch buy alert for %s: %v", s.opts.TokenAddress, err)
	} else {
		notificationsSent.Inc()
	}
	return tickContinue
}

// enrich fetches price and fee data for a transfer and derives the
// alert figures. The fee arrives denominated in the chain's native coin
// but is scaled with the token's decimals, matching the explorer's
// display convention.
func (s *session) enrich(ctx context.Context, t explorer.TransferItem) (*BuyEvent, error) {
	overview, err := s.prices.TokenOverview(ctx, s.opts.TokenAddress)
	if err != nil {
		return nil, err
	}

	txInfo, err := s.ledger.TransactionDetail(ctx, t.TxHash)
	if err != nil {
		return nil, err
	}

	tokenAmount := calc.Scale(t.Total.Value, t.Total.Decimals)
	feeScaled := calc.Scale(txInfo.Fee.Value, t.Token.Decimals)
	supply := calc.Scale(t.Token.TotalSupply, t.Token.Decimals)

	return &BuyEvent{
		Transfer:    t,
		Price:       overview.Price,
		TokenAmount: tokenAmount,
		FeeScaled:   feeScaled,
		SpendUSD:    calc.TxSpendUSD(tokenAmount, feeScaled, overview.Price),
		TotalUSD:    tokenAmount * overview.Price,
		MarketCap:   calc.MarketCap(supply, overview.Price),
	}, nil
}

func (s *session) onFetchError(err error) tickResult {
	var decodeErr *explorer.DecodeError
	kind := "network"
	if errors.As(err, &decodeErr) {
		kind = "decode"
	}
	fetchErrors.WithLabelValues(kind).Inc()
	log.Errorf("fetch failed for token %s: %v", s.opts.TokenAddress, err)

	if s.policy == PolicyTerminate {
		s.notifyText("Invalid token address, watcher stopped")
		return tickTerminate
	}
	return tickContinue
}

func (s *session) notifyText(text string) {
	err := s.dispatcher.Dispatch(Notification{ChatID: s.opts.GroupChatID, Text: text})
	if err != nil {
		log.Errorf("failed to notify chat %d: %v", s.opts.GroupChatID, err)
	}
}
