package dataset

import (
	"context"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"ti-tracker/logger"
	"ti-tracker/pkg/common"
	"ti-tracker/pkg/models"
)

const snapshotKeyPrefix = "ti-tracker:snapshot:"

// SnapshotStore 已解码比赛表的外部缓存, 避免每次启动都解析 parquet
type SnapshotStore interface {
	Get(ctx context.Context, key string) ([]models.MatchRecord, bool, error)
	Put(ctx context.Context, key string, records []models.MatchRecord) error
}

// RedisSnapshotStore 基于 Redis 的快照存储
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, ttl: ttl}
}

func (s *RedisSnapshotStore) Get(ctx context.Context, key string) ([]models.MatchRecord, bool, error) {
	data, err := s.client.Get(ctx, snapshotKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, eris.Wrap(err, "redis get snapshot")
	}

	var records []models.MatchRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, eris.Wrapf(common.ErrMalformedData, "decode snapshot %s: %v", key, err)
	}
	return records, true, nil
}

func (s *RedisSnapshotStore) Put(ctx context.Context, key string, records []models.MatchRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return eris.Wrap(err, "encode snapshot")
	}
	if err := s.client.Set(ctx, snapshotKeyPrefix+key, data, s.ttl).Err(); err != nil {
		return eris.Wrapf(common.ErrStorageFailed, "redis set snapshot: %v", err)
	}
	return nil
}

// CachedSource 在 Source 外包一层快照缓存; 缓存故障只记录日志, 不影响加载
type CachedSource struct {
	inner Source
	store SnapshotStore
	log   zerolog.Logger
}

func NewCachedSource(inner Source, store SnapshotStore) *CachedSource {
	return &CachedSource{inner: inner, store: store, log: logger.For("snapshot")}
}

func (c *CachedSource) Matches(ctx context.Context) ([]models.MatchRecord, error) {
	fp, ok := c.inner.(Fingerprinter)
	if !ok {
		return c.inner.Matches(ctx)
	}
	key, err := fp.Fingerprint()
	if err != nil {
		return nil, err
	}

	records, hit, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("snapshot read failed, decoding source")
	}
	if hit {
		c.log.Info().Str("key", key).Int("records", len(records)).Msg("snapshot hit")
		return records, nil
	}

	records, err = c.inner.Matches(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.store.Put(ctx, key, records); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("snapshot write failed")
	} else {
		c.log.Info().Str("key", key).Int("records", len(records)).Msg("snapshot stored")
	}
	return records, nil
}

func (c *CachedSource) Heroes(ctx context.Context) ([]models.Hero, error) {
	return c.inner.Heroes(ctx)
}
