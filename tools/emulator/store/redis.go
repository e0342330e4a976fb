package store

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix é o prefixo dos hashes criados no Redis (um hash por kind).
const KeyPrefix = "fast-sns:"

type redisStore struct {
	client redis.UniversalClient
}

// NewRedis cria um Store que guarda cada kind em um hash "fast-sns:<kind>".
func NewRedis(client redis.UniversalClient) Store {
	return &redisStore{client: client}
}

func (r *redisStore) key(kind string) string { return KeyPrefix + kind }

func (r *redisStore) Put(ctx context.Context, kind, id string, data []byte) error {
	if err := r.client.HSet(ctx, r.key(kind), id, data).Err(); err != nil {
		return fmt.Errorf("redisstore: put failed: %w", err)
	}
	return nil
}

func (r *redisStore) Get(ctx context.Context, kind, id string) ([]byte, error) {
	data, err := r.client.HGet(ctx, r.key(kind), id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redisstore: get failed: %w", err)
	}
	return data, nil
}

func (r *redisStore) Delete(ctx context.Context, kind, id string) error {
	if err := r.client.HDel(ctx, r.key(kind), id).Err(); err != nil {
		return fmt.Errorf("redisstore: delete failed: %w", err)
	}
	return nil
}

func (r *redisStore) List(ctx context.Context, kind string) ([]Record, error) {
	all, err := r.client.HGetAll(ctx, r.key(kind)).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstore: list failed: %w", err)
	}
	out := make([]Record, 0, len(all))
	for _, id := range slices.Sorted(maps.Keys(all)) {
		out = append(out, Record{ID: id, Data: []byte(all[id])})
	}
	return out, nil
}
