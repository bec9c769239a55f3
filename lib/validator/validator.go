package validator

import (
	"regexp"
	"strconv"
)

var (
	tokenAddressRe = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	tgLinkRe       = regexp.MustCompile(`^https://t\.me/[a-zA-Z0-9_]+$`)
	twitterLinkRe  = regexp.MustCompile(`^https://x\.com/[a-zA-Z0-9_]+$`)
	websiteLinkRe  = regexp.MustCompile(`^https://[a-zA-Z0-9_.]+$`)
)

// IsTokenAddress reports whether text is a 0x-prefixed 40-hex-digit
// contract address.
func IsTokenAddress(text string) bool {
	return tokenAddressRe.MatchString(text)
}

func IsTGLink(text string) bool {
	return tgLinkRe.MatchString(text)
}

func IsTwitterLink(text string) bool {
	return twitterLinkRe.MatchString(text)
}

func IsWebsiteLink(text string) bool {
	return websiteLinkRe.MatchString(text)
}

// ParseAmount parses a non-negative USD amount.
func ParseAmount(text string) (float64, bool) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// ParseStep parses a positive integer USD step.
func ParseStep(text string) (int, bool) {
	v, err := strconv.Atoi(text)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
