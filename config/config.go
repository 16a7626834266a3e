package config

import (
	"strings"
	"time"

	envconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"

	"ti-tracker/pkg/common"
)

// 数据源类型
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

type Config struct {
	// 服务器配置
	Port               string `config:"PORT"`
	StaticDir          string `config:"STATIC_DIR"`
	CORSAllowedOrigins string `config:"CORS_ALLOWED_ORIGINS"`

	// 其他配置
	Environment string `config:"ENVIRONMENT"`
	LogLevel    string `config:"LOG_LEVEL"`
	LogFormat   string `config:"LOG_FORMAT"` // json | console

	// 数据源配置
	DataSource  string `config:"DATA_SOURCE"` // file | postgres
	MatchesPath string `config:"MATCHES_PATH"`
	HeroesPath  string `config:"HEROES_PATH"`
	DatabaseURL string `config:"DATABASE_URL"`

	// 快照缓存 (REDIS_ADDR 为空时不启用)
	RedisAddr          string `config:"REDIS_ADDR"`
	RedisPassword      string `config:"REDIS_PASSWORD"`
	RedisDB            int    `config:"REDIS_DB"`
	SnapshotTTLSeconds int    `config:"SNAPSHOT_TTL_SECONDS"`

	// 比赛详情缓存
	DetailCacheTTLSeconds int `config:"DETAIL_CACHE_TTL_SECONDS"`
}

// Default 默认配置
func Default() *Config {
	return &Config{
		Port:                  "8080",
		StaticDir:             "./static",
		CORSAllowedOrigins:    "*",
		Environment:           "development",
		LogLevel:              "info",
		LogFormat:             "json",
		DataSource:            SourceFile,
		MatchesPath:           "dota2_matches.parquet",
		HeroesPath:            "All_Heroes_ID.csv",
		SnapshotTTLSeconds:    86400,
		DetailCacheTTLSeconds: 300,
	}
}

// Load 默认值 + 环境变量
func Load() (*Config, error) {
	cfg := Default()
	if err := envconfig.FromEnv().To(cfg); err != nil {
		return nil, eris.Wrap(err, "failed to read environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置组合
func (c *Config) Validate() error {
	switch c.DataSource {
	case SourceFile:
		if c.MatchesPath == "" || c.HeroesPath == "" {
			return eris.Wrap(common.ErrInvalidInput, "file source requires MATCHES_PATH and HEROES_PATH")
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return eris.Wrap(common.ErrInvalidInput, "postgres source requires DATABASE_URL")
		}
	default:
		return eris.Wrapf(common.ErrInvalidInput, "unknown DATA_SOURCE %q (want %s or %s)", c.DataSource, SourceFile, SourcePostgres)
	}

	if c.LogFormat != "json" && c.LogFormat != "console" {
		return eris.Wrapf(common.ErrInvalidInput, "unknown LOG_FORMAT %q", c.LogFormat)
	}
	if c.SnapshotTTLSeconds < 0 || c.DetailCacheTTLSeconds < 0 {
		return eris.Wrap(common.ErrInvalidInput, "cache TTLs must not be negative")
	}
	return nil
}

// AllowedOrigins 解析 CORS 来源列表
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func (c *Config) SnapshotTTL() time.Duration {
	return time.Duration(c.SnapshotTTLSeconds) * time.Second
}

func (c *Config) DetailCacheTTL() time.Duration {
	return time.Duration(c.DetailCacheTTLSeconds) * time.Second
}

// SnapshotEnabled 是否启用 Redis 快照
func (c *Config) SnapshotEnabled() bool {
	return c.RedisAddr != "" && c.DataSource == SourceFile
}
