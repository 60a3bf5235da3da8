package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/echtwell/echt-crm/internal/entity"
)

// Abandoned flows expire instead of leaking.
const DefaultTTL = 30 * time.Minute

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects and pings the instance before handing the store back.
func NewRedisStore(ctx context.Context, addr string, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis instance: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Get(ctx context.Context, phone string) (*entity.ConversationSession, error) {
	val, err := s.client.Get(ctx, sessionKey(phone)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	sess := &entity.ConversationSession{}
	if err := json.Unmarshal([]byte(val), sess); err != nil {
		return nil, err
	}

	return sess, nil
}

func (s *RedisStore) Put(ctx context.Context, sess *entity.ConversationSession) error {
	sess.UpdatedAt = time.Now().UTC()

	val, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, sessionKey(sess.Phone), string(val), s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, sessionKey(phone)).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func sessionKey(phone string) string {
	return "wa_session:" + phone
}
