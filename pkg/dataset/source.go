package dataset

import (
	"context"

	"ti-tracker/pkg/models"
)

// Source 数据来源 (parquet/CSV 文件, Postgres 等)
type Source interface {
	Matches(ctx context.Context) ([]models.MatchRecord, error)
	Heroes(ctx context.Context) ([]models.Hero, error)
}

// Fingerprinter 可选接口: 返回标识当前数据版本的指纹, 用作快照缓存键
type Fingerprinter interface {
	Fingerprint() (string, error)
}
