package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	corehistory "github.com/kilianp07/nhltiers/core/history"
	"github.com/kilianp07/nhltiers/core/model"
)

// DefaultRedisKey is the hash holding the history when no key is configured.
const DefaultRedisKey = "nhltiers:prediction_history"

// hashStore is the subset of Redis operations used by RedisBackend.
type hashStore interface {
	ReadAll(ctx context.Context, key string) (map[string]string, error)
	Replace(ctx context.Context, key string, fields map[string]any) error
	Close() error
}

type redisHashStore struct {
	client *redis.Client
}

func (r redisHashStore) ReadAll(ctx context.Context, key string) (map[string]string, error) {
	return r.client.HGetAll(ctx, key).Result()
}

func (r redisHashStore) Replace(ctx context.Context, key string, fields map[string]any) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(fields) > 0 {
			pipe.HSet(ctx, key, fields)
		}
		return nil
	})
	return err
}

func (r redisHashStore) Close() error { return r.client.Close() }

// RedisBackend stores each player's predictions as a JSON field of one hash.
type RedisBackend struct {
	store hashStore
	key   string
}

// NewRedisBackend connects to the Redis server at url and pings it.
func NewRedisBackend(url, key string) (*RedisBackend, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return newRedisBackend(redisHashStore{client: client}, key), nil
}

func newRedisBackend(store hashStore, key string) *RedisBackend {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisBackend{store: store, key: key}
}

// Read decodes every field of the hash.
func (b *RedisBackend) Read(ctx context.Context) (corehistory.Snapshot, error) {
	fields, err := b.store.ReadAll(ctx, b.key)
	if err != nil {
		return nil, err
	}
	snap := corehistory.Snapshot{}
	for id, raw := range fields {
		var preds []model.Prediction
		if err := json.Unmarshal([]byte(raw), &preds); err != nil {
			return nil, fmt.Errorf("decode history of %s: %w", id, err)
		}
		snap[id] = preds
	}
	return snap, nil
}

// Write replaces the hash atomically. An OOM reply maps to ErrQuotaExceeded.
func (b *RedisBackend) Write(ctx context.Context, snap corehistory.Snapshot) error {
	fields := make(map[string]any, len(snap))
	for id, preds := range snap {
		raw, err := json.Marshal(preds)
		if err != nil {
			return err
		}
		fields[id] = string(raw)
	}
	if err := b.store.Replace(ctx, b.key, fields); err != nil {
		if strings.HasPrefix(err.Error(), "OOM") {
			return fmt.Errorf("%v: %w", err, corehistory.ErrQuotaExceeded)
		}
		return err
	}
	return nil
}

// Close closes the Redis connection.
func (b *RedisBackend) Close() error { return b.store.Close() }
