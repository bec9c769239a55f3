package helpers

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"html"
	"strings"
)

// EscapeHTML escapes token names and symbols interpolated into
// HTML-mode telegram messages.
func EscapeHTML(text string) string {
	return html.EscapeString(text)
}

// FormatPriceUS renders a USD price with thousands separators and a
// precision that follows the magnitude of the value.
func FormatPriceUS(price float64) string {
	decimals := 6

	if price >= 1000 {
		decimals = 0
	} else if price > 1.2 {
		decimals = 2
	} else if price < 0.00001 {
		decimals = 8
	}

	thousandSeparator := ","

	p := message.NewPrinter(language.English)
	withCommaThousandSep := p.Sprintf("%.*f", decimals, price)
	return strings.ReplaceAll(withCommaThousandSep, ",", thousandSeparator)
}
