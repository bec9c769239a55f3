package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"apechain-buybot/internal/types"
	"apechain-buybot/internal/watcher"
	"apechain-buybot/lib/calc"
	"apechain-buybot/lib/helpers"

	"github.com/dustin/go-humanize"
)

// AlertRenderer builds the HTML buy-alert message for a settings
// record. Chain constants live here so the watcher stays template-free.
type AlertRenderer struct {
	DexScreenerBase string
	ExplorerTxBase  string
}

func NewAlertRenderer() *AlertRenderer {
	return &AlertRenderer{
		DexScreenerBase: "https://dexscreener.com/apechain",
		ExplorerTxBase:  "https://apechain.calderaexplorer.xyz/tx",
	}
}

// RenderBuyAlert implements watcher.Renderer.
func (r *AlertRenderer) RenderBuyAlert(opts types.SettingOpts, ev watcher.BuyEvent) string {
	t := ev.Transfer
	emojiRow := strings.Repeat(opts.Emoji, calc.EmojiRepeatCount(ev.SpendUSD, opts.BuyStep))

	var b strings.Builder
	fmt.Fprintf(&b, "<a href=\"%s/%s\">🚀</a> <code>%s</code>\n\n",
		r.DexScreenerBase, t.Token.Address, t.Token.Address)
	b.WriteString(emojiRow + "\n\n")
	fmt.Fprintf(&b, "💲 Spent: $%s ($%s) %s\n",
		calc.FormatCompact(ev.SpendUSD), calc.FormatCompact(ev.TotalUSD), helpers.EscapeHTML(t.Token.Name))
	fmt.Fprintf(&b, "💰 Got: %v $%s\n",
		calc.RoundTo(ev.TokenAmount, 5), helpers.EscapeHTML(t.Token.Symbol))
	fmt.Fprintf(&b, "💸 Fee: %s\n", calc.FormatCompact(ev.FeeScaled))
	fmt.Fprintf(&b, "🏷️ Price: $%v\n", calc.RoundTo(ev.Price, 5))
	fmt.Fprintf(&b, "📊 Marketcap: $%s\n", calc.FormatCompact(ev.MarketCap))
	if holders, err := strconv.ParseInt(t.Token.Holders, 10, 64); err == nil && holders > 0 {
		fmt.Fprintf(&b, "👥 Holders: %s\n", humanize.Comma(holders))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "<a href=\"%s/%s\">TX</a> | <a href=\"%s/%s\">Chart</a>",
		r.ExplorerTxBase, t.TxHash, r.DexScreenerBase, t.Token.Address)
	if opts.TGLink != "" {
		fmt.Fprintf(&b, " | <a href=\"%s\">TG</a>", opts.TGLink)
	}
	if opts.TwitterLink != "" {
		fmt.Fprintf(&b, " | <a href=\"%s\">X</a>", opts.TwitterLink)
	}
	if opts.WebsiteLink != "" {
		fmt.Fprintf(&b, " | <a href=\"%s\">Website</a>", opts.WebsiteLink)
	}

	return b.String()
}
