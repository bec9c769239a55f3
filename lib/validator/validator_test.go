package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsTokenAddress(t *testing.T) {
	valid := []string{
		"0x48b62137EdfA95a428D35C09E44256a739F6B557",
		"0x0000000000000000000000000000000000000000",
		"0xabcdefabcdefabcdefabcdefabcdefabcdefabcd",
		"0xABCDEFABCDEFABCDEFABCDEFABCDEFABCDEFABCD",
	}
	for _, a := range valid {
		require.True(t, IsTokenAddress(a), a)
	}

	invalid := []string{
		"",
		"0x",
		"48b62137EdfA95a428D35C09E44256a739F6B557",                // no prefix
		"0x48b62137EdfA95a428D35C09E44256a739F6B55",               // 39 hex chars
		"0x48b62137EdfA95a428D35C09E44256a739F6B5577",             // 41 hex chars
		"0xZZb62137EdfA95a428D35C09E44256a739F6B557",              // non-hex
		"1x48b62137EdfA95a428D35C09E44256a739F6B557",              // bad prefix
		" 0x48b62137EdfA95a428D35C09E44256a739F6B557",             // whitespace
		"0x48b62137EdfA95a428D35C09E44256a739F6B557\n",            // trailing newline
	}
	for _, a := range invalid {
		require.False(t, IsTokenAddress(a), a)
	}
}

func TestLinkValidators(t *testing.T) {
	require.True(t, IsTGLink("https://t.me/ApechainTrending_Bot"))
	require.False(t, IsTGLink("http://t.me/foo"))
	require.False(t, IsTGLink("https://t.me/"))
	require.False(t, IsTGLink("https://t.me/foo bar"))

	require.True(t, IsTwitterLink("https://x.com/Apechain_xyz"))
	require.False(t, IsTwitterLink("https://twitter.com/Apechain_xyz"))
	require.False(t, IsTwitterLink("https://x.com/"))

	require.True(t, IsWebsiteLink("https://book.trending.xyz"))
	require.False(t, IsWebsiteLink("https://example.com/path"))
	require.False(t, IsWebsiteLink("ftp://example.com"))
}

func TestIsEmoji(t *testing.T) {
	valid := []string{"💎", "🚀", "🔥", "✅", "🐸", "👍🏽", "❤️"}
	for _, e := range valid {
		require.True(t, IsEmoji(e), e)
	}

	invalid := []string{"", "a", "ab", "💎💎", "1", " ", "💎a"}
	for _, e := range invalid {
		require.False(t, IsEmoji(e), e)
	}
}

func TestParseAmount(t *testing.T) {
	v, ok := ParseAmount("100.5")
	require.True(t, ok)
	require.Equal(t, 100.5, v)

	_, ok = ParseAmount("-1")
	require.False(t, ok)
	_, ok = ParseAmount("abc")
	require.False(t, ok)

	v, ok = ParseAmount("0")
	require.True(t, ok)
	require.Equal(t, 0.0, v)
}

func TestParseStep(t *testing.T) {
	v, ok := ParseStep("30")
	require.True(t, ok)
	require.Equal(t, 30, v)

	_, ok = ParseStep("0")
	require.False(t, ok)
	_, ok = ParseStep("-5")
	require.False(t, ok)
	_, ok = ParseStep("3.5")
	require.False(t, ok)
}
