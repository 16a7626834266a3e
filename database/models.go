package database

import (
	"database/sql"
	"time"

	"ti-tracker/pkg/models"
)

// MatchRow matches 表
type MatchRow struct {
	MatchID         int64          `db:"match_id"`
	Ordinal         int            `db:"ordinal"`
	League          string         `db:"league"`
	StartTime       sql.NullTime   `db:"start_time"`
	RadiantTeamID   sql.NullInt64  `db:"radiant_team_id"`
	RadiantTeamName sql.NullString `db:"radiant_team_name"`
	DireTeamID      sql.NullInt64  `db:"dire_team_id"`
	DireTeamName    sql.NullString `db:"dire_team_name"`
	WinnerID        sql.NullInt64  `db:"winner_id"`
	RadiantKills    int            `db:"radiant_kills"`
	DireKills       int            `db:"dire_kills"`
	DurationSeconds int            `db:"duration_seconds"`
}

// PlayerRow match_players 表
type PlayerRow struct {
	MatchID  int64          `db:"match_id"`
	Side     string         `db:"side"`
	Slot     int            `db:"slot"` // 1..5
	Name     string         `db:"name"`
	Hero     sql.NullString `db:"hero"`
	Position sql.NullString `db:"position"`
	Kills    int            `db:"kills"`
	Deaths   int            `db:"deaths"`
	Assists  int            `db:"assists"`
	NetWorth int            `db:"networth"`
}

func (r MatchRow) record() models.MatchRecord {
	var start time.Time
	if r.StartTime.Valid {
		start = r.StartTime.Time
	}
	return models.MatchRecord{
		MatchID:         r.MatchID,
		League:          r.League,
		StartTime:       start,
		RadiantTeamID:   r.RadiantTeamID.Int64,
		RadiantTeamName: r.RadiantTeamName.String,
		DireTeamID:      r.DireTeamID.Int64,
		DireTeamName:    r.DireTeamName.String,
		WinnerID:        r.WinnerID.Int64,
		RadiantKills:    r.RadiantKills,
		DireKills:       r.DireKills,
		DurationSeconds: r.DurationSeconds,
	}
}

func (r PlayerRow) player() models.Player {
	return models.Player{
		Name:     r.Name,
		Hero:     nullStringPtr(r.Hero),
		Position: nullStringPtr(r.Position),
		Kills:    r.Kills,
		Deaths:   r.Deaths,
		Assists:  r.Assists,
		NetWorth: r.NetWorth,
	}
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func ptrValue(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
