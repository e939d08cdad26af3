package aiquiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/saulo-duarte/codecourse-api/internal/config"
)

const redisKeyPrefix = "quiz:session:"

// redisStore maps the session deadline onto the key TTL. Payloads are AES-GCM encrypted
// when a crypto key is configured since they hold the answer key.
type redisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStore(client *redis.Client) SessionStore {
	return &redisStore{client: client, now: time.Now}
}

func (r *redisStore) Get(ctx context.Context, id string) (*Session, error) {
	payload, err := r.client.Get(ctx, redisKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	if config.CryptoEnabled() {
		if payload, err = config.Decrypt(payload); err != nil {
			return nil, fmt.Errorf("decrypt session: %w", err)
		}
	}

	var s Session
	if err := json.Unmarshal([]byte(payload), &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Expired(r.now()) {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

func (r *redisStore) Put(ctx context.Context, s *Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return r.Delete(ctx, s.ID)
	}

	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	payload := string(b)
	if config.CryptoEnabled() {
		if payload, err = config.Encrypt(payload); err != nil {
			return fmt.Errorf("encrypt session: %w", err)
		}
	}

	if err := r.client.Set(ctx, redisKeyPrefix+s.ID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *redisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

// SweepExpired is a no-op: Redis expires keys on its own.
func (r *redisStore) SweepExpired(context.Context) (int, error) {
	return 0, nil
}
