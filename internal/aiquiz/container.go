package aiquiz

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/saulo-duarte/codecourse-api/internal/config"
)

type AIQuizContainer struct {
	Handler *Handler
	Store   SessionStore
}

// NewAIQuizContainer wires the quiz service. With the memory store a sweeper runs until
// ctx is cancelled.
func NewAIQuizContainer(ctx context.Context, cfg *config.Settings) (*AIQuizContainer, error) {
	log := config.WithContext(ctx)

	var base Provider
	gemini, err := NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.WithError(err).Warn("Gemini provider unavailable, AI endpoints will fail")
		base = unavailableProvider{cause: err}
	} else {
		base = gemini
	}
	provider, hints := buildProviders(base, cfg)

	var store SessionStore
	switch cfg.QuizStore {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		store = NewRedisStore(client)
	default:
		store = NewMemoryStore()
		go RunSweeper(ctx, store, cfg.QuizSweepInterval)
	}

	service := NewService(provider, store, Options{
		DefaultQuestions: cfg.QuizDefaultQuestions,
		MaxQuestions:     cfg.QuizMaxQuestions,
		SessionTTL:       cfg.QuizTTL,
		CompletedGrace:   cfg.QuizCompletedGrace,
		HintProvider:     hints,
	})

	return &AIQuizContainer{
		Handler: NewHandler(service),
		Store:   store,
	}, nil
}

// buildProviders returns the retrying provider used for generation and a single-attempt
// provider for hints. Both are bounded by the configured timeout.
func buildProviders(base Provider, cfg *config.Settings) (Provider, Provider) {
	generation := WithRetry(base, RetryPolicy{
		MaxRetries: cfg.GeminiMaxRetries,
		Backoff:    cfg.GeminiBackoff,
		Timeout:    cfg.GeminiTimeout,
	})
	hints := WithRetry(base, RetryPolicy{Timeout: cfg.GeminiTimeout})
	return generation, hints
}
