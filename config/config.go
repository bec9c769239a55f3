package config

import (
	"github.com/spf13/viper"
	"sync"
)

var once sync.Once

func InitConfig() {
	once.Do(func() {
		viper.AutomaticEnv()

		viper.BindEnv("telegram_bot_token", "TELEGRAM_BOT_TOKEN")
		viper.BindEnv("explorer_base_url", "EXPLORER_BASE_URL")
		viper.BindEnv("price_api_url", "PRICE_API_URL")
		viper.BindEnv("price_api_key", "PRICE_API_KEY")
		viper.BindEnv("chain_id", "CHAIN_ID")
		viper.BindEnv("db_path", "DB_PATH")
		viper.BindEnv("poll_interval_seconds", "POLL_INTERVAL_SECONDS")
		viper.BindEnv("flush_interval_seconds", "FLUSH_INTERVAL_SECONDS")
		viper.BindEnv("fetch_error_policy", "FETCH_ERROR_POLICY")
		viper.BindEnv("metrics_port", "METRICS_PORT")
		viper.BindEnv("debug", "DEBUG")
		viper.BindEnv("lang", "LANG")

		viper.SetDefault("explorer_base_url", "https://apechain.calderaexplorer.xyz/api/v2")
		viper.SetDefault("price_api_url", "https://pro-openapi.debank.com")
		viper.SetDefault("chain_id", "ape")
		viper.SetDefault("db_path", "/app/data/bot.db")
		viper.SetDefault("poll_interval_seconds", 5)
		viper.SetDefault("flush_interval_seconds", 30)
		viper.SetDefault("fetch_error_policy", "continue")
		viper.SetDefault("metrics_port", 9090)
		viper.SetDefault("debug", false)
		viper.SetDefault("lang", "en")
	})
}

func GetString(key string) string {
	InitConfig()
	return viper.GetString(key)
}

func GetInt(key string) int {
	InitConfig()
	return viper.GetInt(key)
}

func GetBool(key string) bool {
	InitConfig()
	return viper.GetBool(key)
}
