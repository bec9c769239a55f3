package types

// Media kinds attachable to a buy alert.
const (
	MediaNone  = ""
	MediaPhoto = "photo"
	MediaVideo = "video"
)

// SettingOpts is a single buy-alert configuration owned by one user for
// one token, delivered to one group chat. The composite key is
// (UserID, TokenAddress).
type SettingOpts struct {
	UserID       int64   `json:"user_id"`
	GroupChatID  int64   `json:"group_chat_id"`
	TokenAddress string  `json:"token_address"`
	MinBuyAmount float64 `json:"min_buy_amount"`
	BuyStep      int     `json:"buy_step"`
	Emoji        string  `json:"emoji"`
	MediaToggle  bool    `json:"media_toggle"`
	MediaType    string  `json:"media_type"` // "", "photo" or "video"
	MediaFileID  string  `json:"media_file_id"`
	TGLink       string  `json:"tg_link"`
	TwitterLink  string  `json:"twitter_link"`
	WebsiteLink  string  `json:"website_link"`
}

// SameKey reports whether the record matches the composite key.
func (s SettingOpts) SameKey(userID int64, tokenAddress string) bool {
	return s.UserID == userID && s.TokenAddress == tokenAddress
}

// HasMedia reports whether a dispatched alert should carry media.
func (s SettingOpts) HasMedia() bool {
	return s.MediaToggle && s.MediaFileID != "" && s.MediaType != MediaNone
}
