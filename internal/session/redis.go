package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore drží session ve Valkey/Redis. Každý zápis obnoví TTL klíče,
// takže neaktivní session samy zmizí.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore vytvoří úložiště nad existujícím klientem.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Klíč: "session:prediction:{id}"
func redisKey(id string) string {
	return fmt.Sprintf("session:prediction:%s", id)
}

func (s *RedisStore) Load(ctx context.Context, id string) (Submission, bool, error) {
	raw, err := s.rdb.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Submission{}, false, nil
	}
	if err != nil {
		return Submission{}, false, fmt.Errorf("chyba čtení z Valkey: %w", err)
	}

	var sub Submission
	if err := json.Unmarshal(raw, &sub); err != nil {
		return Submission{}, false, fmt.Errorf("poškozená session %s: %w", id, err)
	}
	return sub, true, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, sub Submission) error {
	raw, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	// ttl 0 = bez expirace (stejně jako u MemoryStore)
	if err := s.rdb.Set(ctx, redisKey(id), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("chyba zápisu do Valkey: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("chyba mazání z Valkey: %w", err)
	}
	return nil
}
