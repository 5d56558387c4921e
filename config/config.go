package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log          Logger             `mapstructure:"logger"`
	API          API                `mapstructure:"api"`
	Auth         Auth               `mapstructure:"auth"`
	Quota        Quota              `mapstructure:"quota"`
	Cache        Cache              `mapstructure:"cache"`
	YahooFinance YahooFinanceConfig `mapstructure:"yahoo_finance"`
	NewsAPI      NewsAPIConfig      `mapstructure:"news_api"`
	Gemini       GeminiConfig       `mapstructure:"gemini"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type API struct {
	Port           int    `mapstructure:"port"`
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

type Auth struct {
	SecretKey     string        `mapstructure:"secret_key"`
	TokenDuration time.Duration `mapstructure:"token_duration"`
}

type Quota struct {
	DailyLimit int `mapstructure:"daily_limit"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type YahooFinanceConfig struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

type NewsAPIConfig struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
}

type GeminiConfig struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	BaseModel           string        `mapstructure:"base_model"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int           `mapstructure:"max_token_per_minute"`
}

func Load() (*Config, error) {
	// .env is optional, real environment variables win either way.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Running from environment variables only is fine.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")

	viper.SetDefault("api.port", 8000)
	viper.SetDefault("api.allowed_origins", "http://localhost:8501,http://127.0.0.1:8501")

	viper.SetDefault("auth.secret_key", "supersecretkey")
	viper.SetDefault("auth.token_duration", 30*time.Minute)

	viper.SetDefault("quota.daily_limit", 30)

	viper.SetDefault("cache.default_expiration", time.Minute)
	viper.SetDefault("cache.cleanup_interval", 5*time.Minute)

	viper.SetDefault("yahoo_finance.base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	viper.SetDefault("yahoo_finance.timeout", 10*time.Second)
	viper.SetDefault("yahoo_finance.max_request_per_minute", 60)

	viper.SetDefault("news_api.base_url", "https://newsapi.org/v2")
	viper.SetDefault("news_api.timeout", 10*time.Second)
	viper.SetDefault("news_api.max_request_per_minute", 60)

	viper.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta/models")
	viper.SetDefault("gemini.base_model", "gemini-2.0-flash")
	viper.SetDefault("gemini.timeout", 60*time.Second)
	viper.SetDefault("gemini.max_request_per_minute", 10)
	viper.SetDefault("gemini.max_token_per_minute", 250000)
}
