package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	AppEnv        string
	ServerPort    string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SMS      SMSGatewayConfig
	WhatsApp WhatsAppGatewayConfig
	Pricing  PricingConfig

	DispatchWorkers int
	SendTimeout     time.Duration
	SuggestLimit    int
	SuggestCacheTTL time.Duration
}

type SMSGatewayConfig struct {
	URL      string
	APIKey   string
	UserID   string
	Password string
	SenderID string
}

type WhatsAppGatewayConfig struct {
	URL    string
	Token  string
	Sender string
}

// PricingConfig is informational only: credits, not money, gate sending.
type PricingConfig struct {
	SMS      decimal.Decimal
	WhatsApp decimal.Decimal
	Currency string
}

func LoadConfig() *Config {
	// a missing .env is fine, the process environment wins anyway
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return &Config{
		AppEnv:        getEnv("APP_ENV", "production"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		SMS: SMSGatewayConfig{
			URL:      getEnv("SMS_API_URL", "https://smsportal.hostpinnacle.co.ke/SMSApi/send"),
			APIKey:   getEnv("SMS_API_KEY", ""),
			UserID:   getEnv("SMS_USER_ID", ""),
			Password: getEnv("SMS_PASSWORD", ""),
			SenderID: getEnv("SMS_SENDER_ID", ""),
		},
		WhatsApp: WhatsAppGatewayConfig{
			URL:    getEnv("WHATSAPP_API_URL", ""),
			Token:  getEnv("WHATSAPP_TOKEN", ""),
			Sender: getEnv("WHATSAPP_SENDER", ""),
		},
		Pricing: PricingConfig{
			SMS:      getDecimal("SMS_PRICE", "0.80"),
			WhatsApp: getDecimal("WHATSAPP_PRICE", "0.50"),
			Currency: getEnv("PRICE_CURRENCY", "KES"),
		},
		DispatchWorkers: getInt("DISPATCH_WORKERS", 10),
		SendTimeout:     getDuration("SEND_TIMEOUT", 10*time.Second),
		SuggestLimit:    getInt("SUGGEST_LIMIT", 10),
		SuggestCacheTTL: getDuration("SUGGEST_CACHE_TTL", 30*time.Second),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDecimal(key, fallback string) decimal.Decimal {
	if v, err := decimal.NewFromString(getEnv(key, fallback)); err == nil {
		return v
	}
	return decimal.RequireFromString(fallback)
}
