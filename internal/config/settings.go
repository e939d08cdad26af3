package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	Port     string `mapstructure:"port" validate:"required,numeric"`
	LogLevel string `mapstructure:"log_level"`

	DatabaseDSN string `mapstructure:"database_dsn" validate:"required"`

	JWTSecret string        `mapstructure:"jwt_secret" validate:"required,min=16"`
	JWTTTL    time.Duration `mapstructure:"jwt_ttl" validate:"gt=0"`

	GeminiAPIKey     string        `mapstructure:"gemini_api_key"`
	GeminiModel      string        `mapstructure:"gemini_model" validate:"required"`
	GeminiTimeout    time.Duration `mapstructure:"gemini_timeout" validate:"gt=0"`
	GeminiMaxRetries int           `mapstructure:"gemini_max_retries" validate:"gte=0,lte=10"`
	GeminiBackoff    time.Duration `mapstructure:"gemini_backoff" validate:"gte=0"`

	QuizStore            string        `mapstructure:"quiz_store" validate:"oneof=memory redis"`
	QuizTTL              time.Duration `mapstructure:"quiz_ttl" validate:"gt=0"`
	QuizCompletedGrace   time.Duration `mapstructure:"quiz_completed_grace" validate:"gt=0"`
	QuizSweepInterval    time.Duration `mapstructure:"quiz_sweep_interval" validate:"gt=0"`
	QuizDefaultQuestions int           `mapstructure:"quiz_default_questions" validate:"gte=1"`
	QuizMaxQuestions     int           `mapstructure:"quiz_max_questions" validate:"gtefield=QuizDefaultQuestions"`

	RedisAddr     string `mapstructure:"redis_addr" validate:"required_if=QuizStore redis,omitempty,hostname_port"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db" validate:"gte=0"`
	CryptoKey     string `mapstructure:"crypto_key" validate:"omitempty,len=32"`

	AMQPURL      string `mapstructure:"amqp_url" validate:"omitempty,url"`
	AMQPExchange string `mapstructure:"amqp_exchange" validate:"required"`

	CorsOrigins []string `mapstructure:"cors_origins"`
}

var defaults = map[string]interface{}{
	"port":                   "8080",
	"log_level":              "info",
	"database_dsn":           "",
	"jwt_secret":             "",
	"jwt_ttl":                "24h",
	"gemini_api_key":         "",
	"gemini_model":           "gemini-2.0-flash",
	"gemini_timeout":         "60s",
	"gemini_max_retries":     2,
	"gemini_backoff":         "500ms",
	"quiz_store":             "memory",
	"quiz_ttl":               "30m",
	"quiz_completed_grace":   "15m",
	"quiz_sweep_interval":    "1m",
	"quiz_default_questions": 5,
	"quiz_max_questions":     20,
	"redis_addr":             "",
	"redis_password":         "",
	"redis_db":               0,
	"crypto_key":             "",
	"amqp_url":               "",
	"amqp_exchange":          "codecourse.events",
	"cors_origins":           "*",
}

// Load reads .env (when present) and the environment into Settings.
func Load() (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if err := validator.New().Struct(&s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}
