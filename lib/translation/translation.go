package translation

import (
	"github.com/leonelquinteros/gotext"
)

// GetLanguage returns the active gotext language, falling back to
// English when none is configured.
func GetLanguage() string {
	lang := gotext.GetLanguage()

	if lang == "und" || lang == "" {
		return "en"
	}

	return lang
}

// Translate resolves a user-facing message in the configured locale.
func Translate(msgID string, vars ...interface{}) string {
	return gotext.Get(msgID, vars...)
}
