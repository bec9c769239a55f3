package database

import (
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(dbPath string) error {
	var err error
	DB, err = sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	createSettingsTable := `
	CREATE TABLE IF NOT EXISTS settings (
		user_id INTEGER NOT NULL,
		group_chat_id INTEGER NOT NULL,
		token_address TEXT NOT NULL,
		min_buy_amount REAL NOT NULL DEFAULT 0,
		buy_step INTEGER NOT NULL DEFAULT 30,
		emoji TEXT NOT NULL DEFAULT '💎',
		media_toggle INTEGER NOT NULL DEFAULT 1,
		media_type TEXT NOT NULL DEFAULT '',
		media_file_id TEXT NOT NULL DEFAULT '',
		tg_link TEXT NOT NULL DEFAULT '',
		twitter_link TEXT NOT NULL DEFAULT '',
		website_link TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (user_id, token_address)
	);`
	_, err = DB.Exec(createSettingsTable)
	if err != nil {
		return fmt.Errorf("failed to create settings table: %w", err)
	}

	createMetricsTable := `
	CREATE TABLE IF NOT EXISTS metrics (
		metric_name TEXT NOT NULL PRIMARY KEY,
		metric_value REAL NOT NULL
	);`
	_, err = DB.Exec(createMetricsTable)
	if err != nil {
		return fmt.Errorf("failed to create metrics table: %w", err)
	}

	log.Info("Database initialized successfully.")
	return nil
}

func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
