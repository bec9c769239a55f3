package database

import (
	"apechain-buybot/internal/types"
	"fmt"
)

// ReplaceAllSettings rewrites the settings table from an in-memory
// snapshot. The whole collection is replaced in one transaction so a
// crashed flush never leaves a partial mix of old and new rows.
func ReplaceAllSettings(settings []types.SettingOpts) error {
	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin settings flush: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM settings;`); err != nil {
		return fmt.Errorf("failed to clear settings table: %w", err)
	}

	stmt, err := tx.Prepare(`
	INSERT INTO settings (
		user_id, group_chat_id, token_address, min_buy_amount, buy_step, emoji,
		media_toggle, media_type, media_file_id, tg_link, twitter_link, website_link
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("failed to prepare settings insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range settings {
		_, err := stmt.Exec(
			s.UserID, s.GroupChatID, s.TokenAddress, s.MinBuyAmount, s.BuyStep, s.Emoji,
			s.MediaToggle, s.MediaType, s.MediaFileID, s.TGLink, s.TwitterLink, s.WebsiteLink,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settings row (%d, %s): %w", s.UserID, s.TokenAddress, err)
		}
	}

	return tx.Commit()
}

// LoadAllSettings fetches every persisted settings record in key order.
func LoadAllSettings() ([]types.SettingOpts, error) {
	rows, err := DB.Query(`
	SELECT user_id, group_chat_id, token_address, min_buy_amount, buy_step, emoji,
		media_toggle, media_type, media_file_id, tg_link, twitter_link, website_link
	FROM settings ORDER BY user_id, token_address;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	var settings []types.SettingOpts
	for rows.Next() {
		var s types.SettingOpts
		if err := rows.Scan(
			&s.UserID, &s.GroupChatID, &s.TokenAddress, &s.MinBuyAmount, &s.BuyStep, &s.Emoji,
			&s.MediaToggle, &s.MediaType, &s.MediaFileID, &s.TGLink, &s.TwitterLink, &s.WebsiteLink,
		); err != nil {
			return nil, fmt.Errorf("failed to scan settings row: %w", err)
		}
		settings = append(settings, s)
	}

	return settings, rows.Err()
}
