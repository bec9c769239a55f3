package calc

import (
	"fmt"
	"math"
	"strconv"
)

// Scale converts a raw string-encoded on-chain amount into a float using
// the given decimals field. Both fields arrive as strings from the
// explorer API; unparsable input counts as zero rather than failing the
// caller.
func Scale(raw, decimals string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		v = 0
	}
	d, err := strconv.ParseFloat(decimals, 64)
	if err != nil {
		d = 0
	}
	return v / math.Pow(10, d)
}

// TxSpendUSD is the USD value of a transfer net of the transaction fee.
func TxSpendUSD(totalScaled, feeScaled, price float64) float64 {
	return (totalScaled - feeScaled) * price
}

// MarketCap is total supply times current price, both already scaled.
func MarketCap(totalSupplyScaled, price float64) float64 {
	return totalSupplyScaled * price
}

// FormatCompact renders a USD figure in the alert's compact notation.
func FormatCompact(v float64) string {
	if v > 1_000_000 {
		return fmt.Sprintf("%.1fM", v/1_000_000)
	}
	if v > 1_000 {
		return fmt.Sprintf("%.2fK", v/1_000)
	}
	return fmt.Sprintf("%.3f", v)
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

// EmojiRepeatCount is how many times the configured emoji is repeated
// for a buy of the given USD value: floor(value/step)+1, never below 1.
func EmojiRepeatCount(spendUSD float64, buyStep int) int {
	if buyStep <= 0 {
		return 1
	}
	n := int(math.Floor(spendUSD/float64(buyStep))) + 1
	if n < 1 {
		return 1
	}
	return n
}
