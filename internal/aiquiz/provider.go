package aiquiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/saulo-duarte/codecourse-api/internal/config"
	"github.com/saulo-duarte/codecourse-api/internal/metrics"
	"google.golang.org/genai"
)

// Provider sends a prompt to the content generation model and returns its raw text.
// Errors wrap ErrUpstream.
type Provider interface {
	GenerateText(ctx context.Context, system, user string) (string, error)
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) GenerateText(ctx context.Context, system, user string) (string, error) {
	log := config.WithContext(ctx)
	start := time.Now()

	var cfg *genai.GenerateContentConfig
	if system != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		}
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(user), cfg)
	if err != nil {
		metrics.GeminiDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		log.WithError(err).Error("Gemini content generation failed")
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	metrics.GeminiDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())

	raw := result.Text()
	log.Debugf("[AIQUIZ] Raw Gemini response:\n%s", raw)

	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: empty model response", ErrUpstream)
	}
	return raw, nil
}

// unavailableProvider stands in when no Gemini client could be built, so the rest of the
// API keeps serving.
type unavailableProvider struct {
	cause error
}

func (p unavailableProvider) GenerateText(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("%w: %v", ErrUpstream, p.cause)
}

type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
	Timeout    time.Duration
}

type retryingProvider struct {
	next   Provider
	policy RetryPolicy
}

// WithRetry bounds every attempt by policy.Timeout and retries upstream failures with
// exponential backoff.
func WithRetry(next Provider, policy RetryPolicy) Provider {
	return &retryingProvider{next: next, policy: policy}
}

func (p *retryingProvider) GenerateText(ctx context.Context, system, user string) (string, error) {
	log := config.WithContext(ctx)
	wait := p.policy.Backoff

	var lastErr error
	for attempt := 0; attempt <= p.policy.MaxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", fmt.Errorf("%w: %v", ErrUpstream, ctx.Err())
			case <-timer.C:
			}
			wait *= 2
		}

		text, err := p.attempt(ctx, system, user)
		if err == nil {
			return text, nil
		}
		lastErr = err
		log.WithError(err).Warnf("Content generation attempt %d/%d failed", attempt+1, p.policy.MaxRetries+1)
	}

	if !errors.Is(lastErr, ErrUpstream) {
		lastErr = fmt.Errorf("%w: %v", ErrUpstream, lastErr)
	}
	return "", lastErr
}

func (p *retryingProvider) attempt(ctx context.Context, system, user string) (string, error) {
	if p.policy.Timeout <= 0 {
		return p.next.GenerateText(ctx, system, user)
	}
	callCtx, cancel := context.WithTimeout(ctx, p.policy.Timeout)
	defer cancel()
	return p.next.GenerateText(callCtx, system, user)
}
