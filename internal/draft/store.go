package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// KeyPrefix scopes persisted drafts to the campaign builder.
const KeyPrefix = "campaign-builder:draft:"

// Store persists builder snapshots per session key.
type Store interface {
	// Load returns the stored snapshot, or a fresh one when nothing is stored.
	Load(ctx context.Context, sessionKey string) (Snapshot, error)
	Save(ctx context.Context, sessionKey string, snap Snapshot) error
	Delete(ctx context.Context, sessionKey string) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a Store backed by redis. Every save refreshes the TTL,
// so a draft expires only after ttl of inactivity.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func key(sessionKey string) string {
	return KeyPrefix + sessionKey
}

func (s *redisStore) Load(ctx context.Context, sessionKey string) (Snapshot, error) {
	data, err := s.client.Get(ctx, key(sessionKey)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return NewSnapshot(), nil
		}
		return Snapshot{}, fmt.Errorf("load draft failed: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode draft failed: %w", err)
	}
	if snap.Draft.Lines == nil {
		snap.Draft.Lines = []Line{}
	}
	return snap, nil
}

func (s *redisStore) Save(ctx context.Context, sessionKey string, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode draft failed: %w", err)
	}
	if err := s.client.Set(ctx, key(sessionKey), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save draft failed: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, sessionKey string) error {
	if err := s.client.Del(ctx, key(sessionKey)).Err(); err != nil {
		return fmt.Errorf("delete draft failed: %w", err)
	}
	return nil
}
