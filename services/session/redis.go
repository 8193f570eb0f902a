package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bookline/models"

	"github.com/go-redis/redis/v8"
)

const (
	sessionKeyPrefix = "agent:session:"
	lastSessionKey   = "agent:session:last"
)

// RedisStore is a redis-backed Store with a TTL on every session.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, sess *models.SearchSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal search session: %w", err)
	}
	key := sessionKeyPrefix + sess.SessionID
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store search session: %w", err)
	}
	return s.client.Set(ctx, lastSessionKey, sess.SessionID, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.SearchSession, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch search session: %w", err)
	}
	var sess models.SearchSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to parse search session: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) Last(ctx context.Context) (*models.SearchSession, error) {
	lastID, err := s.client.Get(ctx, lastSessionKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch last session id: %w", err)
	}
	return s.Get(ctx, lastID)
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
