// Package testutil builds match fixtures for tests.
package testutil

import (
	"fmt"
	"time"

	"ti-tracker/pkg/models"
)

// Match 构造一场完整比赛: 选手名 r1..r5 / d1..d5, 英雄缺失, 位置 POSITION_1..5
func Match(id int64, league string) models.MatchRecord {
	rec := models.MatchRecord{
		MatchID:         id,
		League:          league,
		StartTime:       time.Date(2023, 10, 29, 12, 0, 0, 0, time.UTC),
		RadiantTeamID:   100 + id,
		RadiantTeamName: fmt.Sprintf("Radiant %d", id),
		DireTeamID:      200 + id,
		DireTeamName:    fmt.Sprintf("Dire %d", id),
		WinnerID:        100 + id,
		RadiantKills:    30,
		DireKills:       20,
		DurationSeconds: 2400,
	}
	for i := 0; i < models.PlayersPerSide; i++ {
		pos := fmt.Sprintf("POSITION_%d", i+1)
		rec.Radiant[i] = models.Player{
			Name:     fmt.Sprintf("r%d", i+1),
			Position: models.StringPtr(pos),
			Kills:    i + 1,
			Deaths:   2,
			Assists:  3,
			NetWorth: 10000 + i*1000,
		}
		rec.Dire[i] = models.Player{
			Name:     fmt.Sprintf("d%d", i+1),
			Position: models.StringPtr(pos),
			Kills:    i,
			Deaths:   4,
			Assists:  2,
			NetWorth: 8000 + i*1000,
		}
	}
	return rec
}

// WithHeroes 依次设置 radiant 1..5, dire 1..5 的英雄, 空串表示缺失
func WithHeroes(rec models.MatchRecord, heroes ...string) models.MatchRecord {
	for i, h := range heroes {
		var hero *string
		if h != "" {
			hero = models.StringPtr(h)
		}
		if i < models.PlayersPerSide {
			rec.Radiant[i].Hero = hero
		} else if i < 2*models.PlayersPerSide {
			rec.Dire[i-models.PlayersPerSide].Hero = hero
		}
	}
	return rec
}

// Pointers 把记录切片转换为指针切片
func Pointers(records ...models.MatchRecord) []*models.MatchRecord {
	out := make([]*models.MatchRecord, len(records))
	for i := range records {
		out[i] = &records[i]
	}
	return out
}
