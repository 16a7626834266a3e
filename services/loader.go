package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"

	"ti-tracker/config"
	"ti-tracker/database"
	"ti-tracker/logger"
	"ti-tracker/pkg/dataset"
)

// LoadDataset 按配置选择数据源并加载数据集
// 返回的 closer 释放数据库 / Redis 连接
func LoadDataset(ctx context.Context, cfg *config.Config) (*dataset.Dataset, func(), error) {
	src, closer, err := OpenSource(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	data, err := dataset.Load(ctx, src)
	if err != nil {
		closer()
		return nil, nil, err
	}

	logger.Printf("[Dataset] ✅ Loaded %d TI matches and %d heroes from %s source in %s",
		data.Len(), data.Heroes().Len(), cfg.DataSource, time.Since(start).Round(time.Millisecond))
	return data, closer, nil
}

// OpenSource 构造数据源 (file 可选 Redis 快照, 或 postgres)
func OpenSource(ctx context.Context, cfg *config.Config) (dataset.Source, func(), error) {
	switch cfg.DataSource {
	case config.SourcePostgres:
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return database.NewPostgresSource(db), func() { closeDB(db) }, nil

	default:
		var src dataset.Source = dataset.NewFileSource(cfg.MatchesPath, cfg.HeroesPath)
		if !cfg.SnapshotEnabled() {
			return src, func() {}, nil
		}

		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			// Redis 不可用时直接读文件
			logger.Errorf("[Dataset] ⚠️  Redis %s unavailable, snapshot disabled: %v", cfg.RedisAddr, err)
			client.Close()
			return src, func() {}, nil
		}

		logger.Printf("[Dataset] Using Redis snapshot cache at %s (ttl %s)", cfg.RedisAddr, cfg.SnapshotTTL())
		store := dataset.NewRedisSnapshotStore(client, cfg.SnapshotTTL())
		return dataset.NewCachedSource(src, store), func() { client.Close() }, nil
	}
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		logger.Errorf("[Dataset] Failed to close database: %v", err)
	}
}
