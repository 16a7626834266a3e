package database

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"

	"ti-tracker/pkg/common"
	"ti-tracker/pkg/models"
)

// PostgresSource 从 matches / match_players / heroes 表读取数据集
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// Matches 按导入顺序 (ordinal) 返回比赛
func (s *PostgresSource) Matches(ctx context.Context) ([]models.MatchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT match_id, ordinal, league, start_time, radiant_team_id, radiant_team_name,
		       dire_team_id, dire_team_name, winner_id, radiant_kills, dire_kills, duration_seconds
		FROM matches
		ORDER BY ordinal`)
	if err != nil {
		return nil, eris.Wrapf(common.ErrSourceUnavailable, "query matches: %v", err)
	}
	defer rows.Close()

	var matches []MatchRow
	for rows.Next() {
		var m MatchRow
		if err := rows.Scan(
			&m.MatchID, &m.Ordinal, &m.League, &m.StartTime,
			&m.RadiantTeamID, &m.RadiantTeamName,
			&m.DireTeamID, &m.DireTeamName,
			&m.WinnerID, &m.RadiantKills, &m.DireKills, &m.DurationSeconds,
		); err != nil {
			return nil, eris.Wrap(err, "scan match")
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "iterate matches")
	}

	players, err := s.players(ctx)
	if err != nil {
		return nil, err
	}
	return assemble(matches, players)
}

func (s *PostgresSource) players(ctx context.Context) ([]PlayerRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT match_id, side, slot, name, hero, position, kills, deaths, assists, networth
		FROM match_players`)
	if err != nil {
		return nil, eris.Wrapf(common.ErrSourceUnavailable, "query match_players: %v", err)
	}
	defer rows.Close()

	var players []PlayerRow
	for rows.Next() {
		var p PlayerRow
		if err := rows.Scan(
			&p.MatchID, &p.Side, &p.Slot, &p.Name, &p.Hero, &p.Position,
			&p.Kills, &p.Deaths, &p.Assists, &p.NetWorth,
		); err != nil {
			return nil, eris.Wrap(err, "scan player")
		}
		players = append(players, p)
	}
	return players, eris.Wrap(rows.Err(), "iterate players")
}

// Heroes 按导入顺序返回英雄目录
func (s *PostgresSource) Heroes(ctx context.Context) ([]models.Hero, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM heroes ORDER BY ordinal`)
	if err != nil {
		return nil, eris.Wrapf(common.ErrSourceUnavailable, "query heroes: %v", err)
	}
	defer rows.Close()

	var heroes []models.Hero
	for rows.Next() {
		var h models.Hero
		if err := rows.Scan(&h.ID, &h.Name); err != nil {
			return nil, eris.Wrap(err, "scan hero")
		}
		heroes = append(heroes, h)
	}
	return heroes, eris.Wrap(rows.Err(), "iterate heroes")
}

// assemble 把选手行挂到对应比赛的固定槽位上
func assemble(matches []MatchRow, players []PlayerRow) ([]models.MatchRecord, error) {
	records := make([]models.MatchRecord, len(matches))
	index := make(map[int64]int, len(matches))
	for i, m := range matches {
		records[i] = m.record()
		index[m.MatchID] = i
	}

	for _, p := range players {
		i, ok := index[p.MatchID]
		if !ok {
			continue
		}
		if p.Slot < 1 || p.Slot > models.PlayersPerSide {
			return nil, eris.Wrapf(common.ErrMalformedData, "match %d: slot %d out of range", p.MatchID, p.Slot)
		}
		switch models.Side(p.Side) {
		case models.SideRadiant:
			records[i].Radiant[p.Slot-1] = p.player()
		case models.SideDire:
			records[i].Dire[p.Slot-1] = p.player()
		default:
			return nil, eris.Wrapf(common.ErrMalformedData, "match %d: unknown side %q", p.MatchID, p.Side)
		}
	}
	return records, nil
}
