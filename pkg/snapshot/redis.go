package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sketchdoc/sketchdoc/pkg/errors"
)

// DefaultRedisPrefix namespaces snapshot keys in a shared instance.
const DefaultRedisPrefix = "sketchdoc:snapshot:"

// RedisConfig configures a redis-backed store.
type RedisConfig struct {
	Addr     string // host:port
	Password string // optional
	DB       int    // optional, defaults to 0
	Prefix   string // key prefix, defaults to DefaultRedisPrefix
}

// RedisStore keeps snapshots in redis, one JSON value per snapshot.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore connects to redis and verifies the connection with a
// ping before returning the store.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) key(name string) string {
	return s.prefix + hashName(name)
}

func (s *RedisStore) Put(ctx context.Context, snap *Snapshot) error {
	if err := errors.ValidateSnapshotName(snap.Name); err != nil {
		return err
	}
	stored := snap.clone()
	stored.stamp()

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key(stored.Name), data, 0).Err(); err != nil {
		return fmt.Errorf("store snapshot %s: %w", stored.Name, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, name string) (*Snapshot, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", name, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", name, err)
	}
	return &snap, nil
}

func (s *RedisStore) List(ctx context.Context) ([]Info, error) {
	var infos []Info
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load snapshot key %s: %w", iter.Val(), err)
		}
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			continue
		}
		infos = append(infos, snap.Info())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan snapshots: %w", err)
	}
	sortInfos(infos)
	return infos, nil
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	removed, err := s.client.Del(ctx, s.key(name)).Result()
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", name, err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
