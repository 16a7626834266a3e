package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ti-tracker/config"
	"ti-tracker/pkg/dataset"
)

func TestOpenSourceFile(t *testing.T) {
	cfg := config.Default()

	src, closer, err := OpenSource(context.Background(), cfg)
	require.NoError(t, err)
	defer closer()

	_, ok := src.(*dataset.FileSource)
	assert.True(t, ok)
}

func TestOpenSourceWithSnapshot(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.RedisAddr = mr.Addr()

	src, closer, err := OpenSource(context.Background(), cfg)
	require.NoError(t, err)
	defer closer()

	_, ok := src.(*dataset.CachedSource)
	assert.True(t, ok)
}

func TestOpenSourceRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.Default()
	cfg.RedisAddr = addr

	src, closer, err := OpenSource(context.Background(), cfg)
	require.NoError(t, err)
	defer closer()

	_, ok := src.(*dataset.FileSource)
	assert.True(t, ok)
}

func TestLoadDatasetMissingFiles(t *testing.T) {
	cfg := config.Default()
	cfg.MatchesPath = t.TempDir() + "/missing.parquet"

	_, _, err := LoadDataset(context.Background(), cfg)
	assert.Error(t, err)
}
