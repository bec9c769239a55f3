package validator

// Go's regexp has no \p{Emoji} class, so the single-grapheme emoji check
// walks the runes directly: one emoji base rune, optionally followed by
// a variation selector, skin-tone modifier, or a ZWJ-joined continuation.

const (
	zwj        = 0x200D
	vs16       = 0xFE0F
	keycap     = 0x20E3
	skinToneLo = 0x1F3FB
	skinToneHi = 0x1F3FF
)

var emojiRanges = [][2]rune{
	{0x1F300, 0x1F5FF}, // symbols & pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport
	{0x1F900, 0x1F9FF}, // supplemental symbols
	{0x1FA70, 0x1FAFF}, // extended-A
	{0x1F1E6, 0x1F1FF}, // regional indicators
	{0x2600, 0x27BF},   // misc symbols & dingbats
	{0x2190, 0x21FF},   // arrows
	{0x2B00, 0x2BFF},   // misc arrows & symbols
}

func isEmojiBase(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}

// IsEmoji reports whether text is exactly one emoji grapheme.
func IsEmoji(text string) bool {
	runes := []rune(text)
	if len(runes) == 0 {
		return false
	}
	expectBase := true
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if expectBase {
			if !isEmojiBase(r) {
				return false
			}
			expectBase = false
			continue
		}
		switch {
		case r == zwj:
			expectBase = true
		case r == vs16, r == keycap:
		case r >= skinToneLo && r <= skinToneHi:
		default:
			return false
		}
	}
	return !expectBase
}
