package telegram

import (
	"fmt"
	"strings"

	"apechain-buybot/internal/settings"
	"apechain-buybot/internal/types"
	"apechain-buybot/lib/helpers"
	"apechain-buybot/lib/translation"
	"apechain-buybot/lib/validator"
)

// WatcherControl is the part of the watcher manager the conversational
// flow drives.
type WatcherControl interface {
	Start(opts types.SettingOpts) error
	Stop(userID int64, tokenAddress string) bool
}

// Flow implements the interactive configuration boundary: drafts are
// edited in the store's per-user selection slot and only enter the
// canonical collection (and get a watcher) on Confirm.
type Flow struct {
	store   *settings.Store
	watcher WatcherControl
}

func NewFlow(store *settings.Store, watcher WatcherControl) *Flow {
	return &Flow{store: store, watcher: watcher}
}

// BeginDraft opens a draft for the token, seeded from the stored record
// or the defaults when none exists.
func (f *Flow) BeginDraft(userID, chatID int64, tokenAddress string) (string, error) {
	if !validator.IsTokenAddress(tokenAddress) {
		return translation.Translate("That doesn't look like a token address. Send a 0x-prefixed 40-hex-character address."), fmt.Errorf("invalid token address: %q", tokenAddress)
	}

	draft := f.store.Find(userID, tokenAddress)
	draft.GroupChatID = chatID
	f.store.Select(userID, draft)

	return fmt.Sprintf(
		translation.Translate("Configuring buy alerts for %s. Use /set field value to adjust, then /confirm."),
		tokenAddress,
	), nil
}

// ApplyField validates and applies one field of the user's draft.
// Validation failures re-prompt without touching the draft.
func (f *Flow) ApplyField(userID int64, field, rawText string) (string, error) {
	draft, ok := f.store.Selected(userID)
	if !ok {
		return translation.Translate("No draft in progress. Start one with /add followed by the token address."), fmt.Errorf("no draft for user %d", userID)
	}

	rawText = strings.TrimSpace(rawText)

	switch field {
	case "min_buy_amount":
		v, ok := validator.ParseAmount(rawText)
		if !ok {
			return translation.Translate("Minimum buy amount must be a number of USD, 0 or more."), fmt.Errorf("invalid min_buy_amount: %q", rawText)
		}
		draft.MinBuyAmount = v
	case "buy_step":
		v, ok := validator.ParseStep(rawText)
		if !ok {
			return translation.Translate("Buy step must be a whole number of USD above 0."), fmt.Errorf("invalid buy_step: %q", rawText)
		}
		draft.BuyStep = v
	case "emoji":
		if !validator.IsEmoji(rawText) {
			return translation.Translate("Send exactly one emoji."), fmt.Errorf("invalid emoji: %q", rawText)
		}
		draft.Emoji = rawText
	case "media_toggle":
		switch rawText {
		case "on":
			draft.MediaToggle = true
		case "off":
			draft.MediaToggle = false
		default:
			return translation.Translate("Media toggle accepts on or off."), fmt.Errorf("invalid media_toggle: %q", rawText)
		}
	case "media_type":
		if rawText != types.MediaPhoto && rawText != types.MediaVideo {
			return translation.Translate("Media type accepts photo or video."), fmt.Errorf("invalid media_type: %q", rawText)
		}
		draft.MediaType = rawText
	case "tg_link":
		if !validator.IsTGLink(rawText) {
			return translation.Translate("Telegram link must look like https://t.me/yourgroup."), fmt.Errorf("invalid tg_link: %q", rawText)
		}
		draft.TGLink = rawText
	case "twitter_link":
		if !validator.IsTwitterLink(rawText) {
			return translation.Translate("Twitter link must look like https://x.com/youraccount."), fmt.Errorf("invalid twitter_link: %q", rawText)
		}
		draft.TwitterLink = rawText
	case "website_link":
		if !validator.IsWebsiteLink(rawText) {
			return translation.Translate("Website link must be an https:// domain."), fmt.Errorf("invalid website_link: %q", rawText)
		}
		draft.WebsiteLink = rawText
	default:
		return translation.Translate("Unknown field. Fields: min_buy_amount, buy_step, emoji, media_toggle, media_type, tg_link, twitter_link, website_link."), fmt.Errorf("unknown field: %q", field)
	}

	f.store.Select(userID, draft)
	return fmt.Sprintf(translation.Translate("%s updated."), field), nil
}

// AttachMedia stores a media file id on the draft, captured from an
// uploaded photo or video.
func (f *Flow) AttachMedia(userID int64, mediaType, fileID string) (string, error) {
	draft, ok := f.store.Selected(userID)
	if !ok {
		return translation.Translate("No draft in progress. Start one with /add followed by the token address."), fmt.Errorf("no draft for user %d", userID)
	}

	draft.MediaType = mediaType
	draft.MediaFileID = fileID
	f.store.Select(userID, draft)
	return translation.Translate("Media saved for your buy alerts."), nil
}

// Confirm activates the draft: it becomes the canonical record and a
// watch session starts from this snapshot. Edits made afterwards only
// take effect on the next Confirm.
func (f *Flow) Confirm(userID int64) (string, error) {
	draft, ok := f.store.Selected(userID)
	if !ok {
		return translation.Translate("No draft in progress. Start one with /add followed by the token address."), fmt.Errorf("no draft for user %d", userID)
	}

	f.store.Upsert(draft)
	f.store.ClearSelected(userID)

	if err := f.watcher.Start(draft); err != nil {
		return translation.Translate("Settings saved, but the watcher could not start."), err
	}

	return fmt.Sprintf(
		translation.Translate("Watching %s. Buys above $%s will be posted."),
		draft.TokenAddress, helpers.FormatPriceUS(draft.MinBuyAmount),
	), nil
}

// Remove deletes the record and stops its watcher. Reports not-found
// without failing the conversation.
func (f *Flow) Remove(userID int64, tokenAddress string) (string, bool) {
	removed := f.store.Delete(userID, tokenAddress)
	f.watcher.Stop(userID, tokenAddress)

	if !removed {
		return fmt.Sprintf(translation.Translate("No settings found for %s."), tokenAddress), false
	}
	return fmt.Sprintf(translation.Translate("Stopped watching %s."), tokenAddress), true
}

// List renders the user's stored records.
func (f *Flow) List(userID int64) string {
	snapshot := f.store.SnapshotAll()

	var b strings.Builder
	for _, opt := range snapshot {
		if opt.UserID != userID {
			continue
		}
		fmt.Fprintf(&b, "%s  min $%.2f, step $%d %s\n", opt.TokenAddress, opt.MinBuyAmount, opt.BuyStep, opt.Emoji)
	}

	if b.Len() == 0 {
		return translation.Translate("You are not watching any tokens yet.")
	}
	return b.String()
}
