package config

import (
	"os"
	"strconv"
	"time"
)

// Config collects every environment knob the app reads. Values come from the
// process environment; cmd/app loads .env first via godotenv.
type Config struct {
	DatabaseURL string
	JWTSecret   string

	RazorpayKeyID     string
	RazorpayKeySecret string

	GoldAPIKey  string
	GoldAPIURL  string
	RateCron    string
	HTTPTimeout time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AMQPURL       string
	OrderExchange string

	SMTPHost   string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	EmailFrom  string
	StoreInbox string

	TelegramBotToken string
	TelegramChatID   int64

	CloudinaryURL    string
	CloudinaryFolder string
}

func Load() *Config {
	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),

		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),

		GoldAPIKey:  getEnv("GOLD_API_KEY", ""),
		GoldAPIURL:  getEnv("GOLD_API_URL", "https://www.goldapi.io/api/XAG/INR"),
		RateCron:    getEnv("SILVER_RATE_CRON", "0 */6 * * *"),
		HTTPTimeout: getDuration("HTTP_CLIENT_TIMEOUT", 10*time.Second),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),

		AMQPURL:       getEnv("AMQP_URL", ""),
		OrderExchange: getEnv("ORDER_EXCHANGE", "orders_exchange"),

		SMTPHost:   getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:   getInt("SMTP_PORT", 587),
		SMTPUser:   getEnv("EMAIL_USER", ""),
		SMTPPass:   getEnv("EMAIL_PASS", ""),
		EmailFrom:  getEnv("EMAIL_FROM", getEnv("EMAIL_USER", "")),
		StoreInbox: getEnv("STORE_INBOX", getEnv("EMAIL_USER", "")),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getInt64("TELEGRAM_CHAT_ID", 0),

		CloudinaryURL:    getEnv("CLOUDINARY_URL", ""),
		CloudinaryFolder: getEnv("CLOUDINARY_FOLDER", "products"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
