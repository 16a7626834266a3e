package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ti-tracker/pkg/models"
	"ti-tracker/pkg/testutil"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{125, "02:05"},
		{59, "00:59"},
		{3600, "60:00"},
		{0, "00:00"},
		{6001, "100:01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestPositionLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"POSITION_1", "Carry"},
		{"POSITION_2", "Mid"},
		{"POSITION_3", "Offlane"},
		{"POSITION_4", "Soft Support"},
		{"POSITION_5", "Hard Support"},
		{"POSITION_6", "POSITION_6"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PositionLabel(tt.in))
	}
}

func TestParseMatchID(t *testing.T) {
	id, ok := ParseMatchID(" 7391234567 ")
	assert.True(t, ok)
	assert.Equal(t, int64(7391234567), id)

	for _, raw := range []string{"", "abc", "12.5", "7e9"} {
		_, ok := ParseMatchID(raw)
		assert.False(t, ok, raw)
	}
}

func TestProjectNotFound(t *testing.T) {
	recs := testutil.Pointers(testutil.Match(1, "The International 2023"))
	pm, ok := Project(recs, 42)
	assert.False(t, ok)
	assert.Nil(t, pm)

	_, ok = Project(nil, 1)
	assert.False(t, ok)
}

func TestProjectFound(t *testing.T) {
	rec := testutil.WithHeroes(testutil.Match(5, "The International 2023"), "Axe")
	rec.Dire[2].Position = nil
	rec.Dire[3].Position = models.StringPtr("UNKNOWN")
	rec.DurationSeconds = 125

	pm, ok := Project(testutil.Pointers(testutil.Match(4, "The International 2023"), rec), 5)
	require.True(t, ok)

	assert.Equal(t, int64(5), pm.MatchID)
	assert.Len(t, pm.Radiant.Players, 5)
	assert.Len(t, pm.Dire.Players, 5)
	assert.Equal(t, "r1", pm.Radiant.Players[0].Name)
	assert.Equal(t, "d5", pm.Dire.Players[4].Name)

	require.NotNil(t, pm.Radiant.Players[0].Hero)
	assert.Equal(t, "Axe", *pm.Radiant.Players[0].Hero)
	assert.Nil(t, pm.Radiant.Players[1].Hero)

	require.NotNil(t, pm.Radiant.Players[0].Position)
	assert.Equal(t, "Carry", *pm.Radiant.Players[0].Position)
	assert.Equal(t, "Hard Support", *pm.Radiant.Players[4].Position)
	assert.Nil(t, pm.Dire.Players[2].Position)
	assert.Equal(t, "UNKNOWN", *pm.Dire.Players[3].Position)

	assert.Equal(t, Score{Radiant: 30, Dire: 20}, pm.Score)
	assert.Equal(t, "02:05", pm.Duration)
	assert.Equal(t, "Radiant 5", pm.Radiant.TeamName)
	assert.Equal(t, "Dire 5", pm.Dire.TeamName)
}

func TestProjectWinner(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(r *models.MatchRecord)
		radiantWon bool
		direWon    bool
		wantWinner Winner
	}{
		{"radiant", func(r *models.MatchRecord) { r.WinnerID = r.RadiantTeamID }, true, false, WinnerRadiant},
		{"dire", func(r *models.MatchRecord) { r.WinnerID = r.DireTeamID }, false, true, WinnerDire},
		{"neither", func(r *models.MatchRecord) { r.WinnerID = 0 }, false, false, WinnerUndetermined},
		{"both ids equal", func(r *models.MatchRecord) {
			r.DireTeamID = r.RadiantTeamID
			r.WinnerID = r.RadiantTeamID
		}, false, false, WinnerUndetermined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.Match(9, "The International 2023")
			tt.mutate(&rec)
			pm := ProjectRecord(&rec)
			assert.Equal(t, tt.radiantWon, pm.Radiant.Won)
			assert.Equal(t, tt.direWon, pm.Dire.Won)
			assert.Equal(t, tt.wantWinner, pm.Winner)
		})
	}
}
