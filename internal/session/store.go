package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const TTL = 7 * 24 * time.Hour

// Session is the server-side record behind the session_id cookie. Bearer
// tokens are the identity authority; sessions exist only so logout has
// something to destroy.
type Session struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

type Store interface {
	Create(ctx context.Context, s Session) (string, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Create(ctx context.Context, s Session) (string, error) {
	id := uuid.New().String()

	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}

	if err := r.client.Set(ctx, key(id), data, TTL).Err(); err != nil {
		return "", err
	}

	return id, nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, key(id)).Err()
}

func key(id string) string {
	return "session:" + id
}
