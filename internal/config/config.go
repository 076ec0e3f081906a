package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers
const (
	DriverRemote   = "remote"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Telegram  TelegramConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
	// TrustProxy honours X-Forwarded-For and X-Real-IP. Only enable it behind
	// a proxy that overwrites those headers.
	TrustProxy bool
}

type StoreConfig struct {
	Driver  string
	URL     string
	Timeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

// DSN returns the postgres connection string
func (c DatabaseConfig) DSN() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port + "/" + c.Database +
		"?sslmode=disable&search_path=" + c.Schema
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	CartTTL  time.Duration
}

// Enabled reports whether a redis host is configured
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type JWTConfig struct {
	Secret       string
	AccessExpiry int // in minutes
}

type TelegramConfig struct {
	BotToken string
	APIURL   string
	Timeout  time.Duration
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// IsDevelopment reports whether the server runs outside production
func (c *Config) IsDevelopment() bool {
	return c.Server.Env != "production"
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("TRUST_PROXY", false)
	viper.SetDefault("STORE_DRIVER", DriverRemote)
	viper.SetDefault("DATASTORE_TIMEOUT", 15)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CART_TTL_DAYS", 30)
	viper.SetDefault("JWT_ACCESS_EXPIRY", 720)
	viper.SetDefault("TELEGRAM_API_URL", "https://api.telegram.org")
	viper.SetDefault("TELEGRAM_TIMEOUT", 10)
	viper.SetDefault("RATE_LIMIT_REQUESTS", 10)
	viper.SetDefault("RATE_LIMIT_WINDOW", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Env:            viper.GetString("SERVER_ENV"),
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
			TrustProxy:     viper.GetBool("TRUST_PROXY"),
		},
		Store: StoreConfig{
			Driver:  strings.ToLower(viper.GetString("STORE_DRIVER")),
			URL:     strings.TrimRight(viper.GetString("DATASTORE_URL"), "/"),
			Timeout: time.Duration(viper.GetInt("DATASTORE_TIMEOUT")) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Database: viper.GetString("DB_DATABASE"),
			Schema:   viper.GetString("DB_SCHEMA"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			CartTTL:  time.Duration(viper.GetInt("CART_TTL_DAYS")) * 24 * time.Hour,
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: viper.GetInt("JWT_ACCESS_EXPIRY"),
		},
		Telegram: TelegramConfig{
			BotToken: viper.GetString("TELEGRAM_BOT_TOKEN"),
			APIURL:   strings.TrimRight(viper.GetString("TELEGRAM_API_URL"), "/"),
			Timeout:  time.Duration(viper.GetInt("TELEGRAM_TIMEOUT")) * time.Second,
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   time.Duration(viper.GetInt("RATE_LIMIT_WINDOW")) * time.Second,
		},
	}
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
