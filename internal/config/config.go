package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr             string   `env:"HTTP_ADDR" env-default:":8080"`
	DatabaseURL          string   `env:"DATABASE_URL" env-required:"true"`
	CORSAllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"`
	CORSAllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`

	JWTSecret string `env:"JWT_SECRET" env-required:"true"`

	// Summarization backend (HuggingFace inference style API).
	SummarizerURL     string        `env:"SUMMARIZER_URL" env-default:"https://api-inference.huggingface.co/models/facebook/bart-large-cnn"`
	SummarizerToken   string        `env:"SUMMARIZER_TOKEN"`
	SummarizerTimeout time.Duration `env:"SUMMARIZER_TIMEOUT" env-default:"30s"`

	// Optional summary cache. Disabled when REDIS_ADDR is empty.
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" env-default:"0"`
	SummaryCacheTTL time.Duration `env:"SUMMARY_CACHE_TTL" env-default:"24h"`

	LogMode string `env:"LOG_MODE" env-default:"development"` // development/production
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}
