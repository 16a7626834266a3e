package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	prev := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(prev)

	require.NoError(t, Init("WARN", "console"))
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	require.NoError(t, Init("", "json"))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	err := Init("loud", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid log level "loud"`)
}
