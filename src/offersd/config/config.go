package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/substytucje-pro/offers-backend/src/offersd/types"
)

// Config is built once at process start and injected into each component.
type Config struct {
	Port string
	Env  string // PROD suppression gate for outbound email

	MySQLDSN string
	RedisURL string

	JWTSecret string
	BotAPIKey string // ingest endpoints

	OpenAIKey   string
	OpenAIModel string

	MailerSendAPIKey string
	AdminEmail       string
	AppDomain        string
	AppURL           string

	DiscordToken     string
	DiscordChannelID string

	// Offers are understood in the timezone of the target institutions.
	LocalZone *time.Location

	DefaultExpiryDays int
	ExpiryGrace       time.Duration
}

// Load reads the settings table with env-var fallbacks. Settings rows win so
// operators can reconfigure without redeploying.
func Load(db *gorm.DB) Config {
	settings := loadSettings(db)

	get := func(name, envKey, def string) string {
		if v := settings[name]; v != "" {
			return v
		}
		if v := os.Getenv(envKey); v != "" {
			return v
		}
		return def
	}

	zoneName := get("local_timezone", "LOCAL_TIMEZONE", "Europe/Warsaw")
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		log.Fatalf("timezone %q: %v", zoneName, err)
	}

	expiryDays, err := strconv.Atoi(get("default_expiry_days", "DEFAULT_EXPIRY_DAYS", "7"))
	if err != nil || expiryDays <= 0 {
		log.Fatalf("default_expiry_days must be a positive integer")
	}

	graceHours, err := strconv.Atoi(get("expiry_grace_hours", "EXPIRY_GRACE_HOURS", "12"))
	if err != nil || graceHours < 0 {
		log.Fatalf("expiry_grace_hours must be a non-negative integer")
	}

	return Config{
		Port:              get("port", "PORT", "8080"),
		Env:               get("app_env", "APP_ENV", "DEV"),
		MySQLDSN:          getenv("MYSQL_DSN", "offers:offers@tcp(127.0.0.1:3306)/offers"),
		RedisURL:          getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		JWTSecret:         get("jwt_secret", "JWT_SECRET", ""),
		BotAPIKey:         get("bot_api_key", "BOT_API_KEY", ""),
		OpenAIKey:         get("openai_api_key", "API_KEY_OPENAI", ""),
		OpenAIModel:       get("openai_model", "OPENAI_MODEL", "gpt-4.1-nano"),
		MailerSendAPIKey:  get("mailersend_api_key", "API_KEY_MAILERSEND", ""),
		AdminEmail:        get("admin_email", "APP_ADMIN_MAIL", ""),
		AppDomain:         get("app_domain", "APP_DOMAIN", ""),
		AppURL:            get("app_url", "APP_URL", ""),
		DiscordToken:      get("discord_token", "DISCORD_TOKEN", ""),
		DiscordChannelID:  get("discord_channel_id", "DISCORD_CHANNEL_ID", ""),
		LocalZone:         loc,
		DefaultExpiryDays: expiryDays,
		ExpiryGrace:       time.Duration(graceHours) * time.Hour,
	}
}

func loadSettings(db *gorm.DB) map[string]string {
	out := make(map[string]string)
	if db == nil {
		return out
	}
	var rows []types.Setting
	if err := db.Find(&rows).Error; err != nil {
		log.Printf("failed to load settings: %v", err)
		return out
	}
	for _, s := range rows {
		out[s.Name] = s.Value
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
