package chart

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ti-tracker/pkg/models"
	"ti-tracker/pkg/projection"
	"ti-tracker/pkg/testutil"
)

func projected(t *testing.T) *projection.ProjectedMatch {
	t.Helper()
	rec := testutil.Match(1, "The International 2023")
	rec.Radiant[0].Deaths = 0
	rec.Radiant[0].Kills = 7
	rec.Radiant[0].Assists = 5
	return projection.ProjectRecord(&rec)
}

func TestSeriesOrder(t *testing.T) {
	pm := projected(t)
	for name, points := range map[string][]Point{
		"networth": NetWorthSeries(pm),
		"kda":      KDASeries(pm),
	} {
		t.Run(name, func(t *testing.T) {
			require.Len(t, points, 10)
			want := []string{"d1", "d2", "d3", "d4", "d5", "r1", "r2", "r3", "r4", "r5"}
			for i, p := range points {
				assert.Equal(t, want[i], p.Name)
				if i < 5 {
					assert.Equal(t, models.SideDire, p.Side)
					assert.Equal(t, ColorDire, p.Color)
				} else {
					assert.Equal(t, models.SideRadiant, p.Side)
					assert.Equal(t, ColorRadiant, p.Color)
				}
			}
		})
	}
}

func TestNetWorthValues(t *testing.T) {
	points := NetWorthSeries(projected(t))
	assert.Equal(t, float64(8000), points[0].Value)
	assert.Equal(t, float64(14000), points[9].Value)
}

func TestKDA(t *testing.T) {
	assert.Equal(t, 2.0, KDA(3, 2, 1))
	assert.Equal(t, 0.25, KDA(0, 4, 1))
	assert.Equal(t, 12.0, KDA(7, 0, 5), "zero deaths counts as one")
	assert.Equal(t, 0.0, KDA(0, 0, 0))
}

func TestKDASeriesZeroDeathsIsFinite(t *testing.T) {
	points := KDASeries(projected(t))
	r1 := points[5]
	assert.Equal(t, "r1", r1.Name)
	assert.Equal(t, 12.0, r1.Value)
	for _, p := range points {
		assert.False(t, math.IsInf(p.Value, 0) || math.IsNaN(p.Value), p.Name)
	}
	_, err := json.Marshal(points)
	assert.NoError(t, err)
}

func TestBuild(t *testing.T) {
	pm := projected(t)

	c, err := Build(pm, KindNetWorth)
	require.NoError(t, err)
	assert.Equal(t, "Player Net Worth", c.Title)
	assert.Len(t, c.Points, 10)

	c, err = Build(pm, KindKDA)
	require.NoError(t, err)
	assert.Equal(t, "Player KDA Ratio", c.Title)
	assert.Equal(t, "KDA Ratio", c.XAxisTitle)

	_, err = Build(pm, Kind("gold"))
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("NetWorth")
	require.NoError(t, err)
	assert.Equal(t, KindNetWorth, k)

	k, err = ParseKind("kda")
	require.NoError(t, err)
	assert.Equal(t, KindKDA, k)

	_, err = ParseKind("xp")
	assert.Error(t, err)
}
