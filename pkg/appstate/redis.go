package appstate

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces keys written by RedisStorage.
const DefaultRedisPrefix = "projector:"

// RedisStorage keeps keys as plain Redis strings.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage connects to the server at addr. No connection is made
// until the first call.
func NewRedisStorage(addr, password string, db int) *RedisStorage {
	return NewRedisStorageFromClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}))
}

// NewRedisStorageFromClient wraps an existing client.
func NewRedisStorageFromClient(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client, prefix: DefaultRedisPrefix}
}

// Ping checks the connection.
func (s *RedisStorage) Ping(ctx context.Context) error {
	return errors.WithStack(s.client.Ping(ctx).Err())
}

func (s *RedisStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.WithStack(err)
	}
	return data, true, nil
}

func (s *RedisStorage) Set(ctx context.Context, key string, data []byte) error {
	return errors.WithStack(s.client.Set(ctx, s.prefix+key, data, 0).Err())
}

func (s *RedisStorage) Close() error {
	return errors.WithStack(s.client.Close())
}
