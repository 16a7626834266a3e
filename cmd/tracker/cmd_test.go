package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ti-tracker/config"
	"ti-tracker/pkg/common"
	"ti-tracker/pkg/dataset"
	"ti-tracker/pkg/models"
	"ti-tracker/pkg/testutil"
	"ti-tracker/services"
)

func fixtureLoader(ctx context.Context, cfg *config.Config) (*services.DashboardService, func(), error) {
	records := []models.MatchRecord{
		testutil.WithHeroes(testutil.Match(1, "The International 2023"), "Axe", "Lina"),
		testutil.WithHeroes(testutil.Match(2, "The International 2023"), "Pudge"),
	}
	data := dataset.New(records, []models.Hero{{ID: 2, Name: "Axe"}})
	return services.NewDashboardService(data, nil), func() {}, nil
}

func runCmd(t *testing.T, args ...string) (map[string]interface{}, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd(fixtureLoader)
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return nil, err
	}

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &body))
	return body, nil
}

func TestFilterCmd(t *testing.T) {
	body, err := runCmd(t, "filter", "--hero", "Axe,Lina")
	require.NoError(t, err)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, false, body["fell_back"])

	body, err = runCmd(t, "filter", "--team", "nobody")
	require.NoError(t, err)
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, true, body["fell_back"])

	body, err = runCmd(t, "filter", "--team", " Dire 2 ")
	require.NoError(t, err)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, false, body["fell_back"])

	_, err = runCmd(t, "filter", "--mode", "xor")
	assert.True(t, eris.Is(err, common.ErrInvalidInput))
}

func TestMatchCmd(t *testing.T) {
	body, err := runCmd(t, "match", "2")
	require.NoError(t, err)
	assert.Equal(t, float64(2), body["match_id"])
	assert.Equal(t, "40:00", body["duration"])

	_, err = runCmd(t, "match", "42")
	assert.True(t, eris.Is(err, common.ErrNotFound))

	_, err = runCmd(t, "match")
	assert.Error(t, err)
}

func TestChartCmd(t *testing.T) {
	body, err := runCmd(t, "chart", "1", "--kind", "kda")
	require.NoError(t, err)
	assert.Equal(t, "kda", body["kind"])
	assert.Len(t, body["points"], 10)

	_, err = runCmd(t, "chart", "1", "--kind", "gold")
	assert.True(t, eris.Is(err, common.ErrInvalidInput))
}
