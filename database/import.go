package database

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rotisserie/eris"

	"ti-tracker/logger"
	"ti-tracker/pkg/common"
	"ti-tracker/pkg/dataset"
	"ti-tracker/pkg/models"
)

// Import 用 COPY 整表替换比赛与英雄数据 (单事务)
func Import(ctx context.Context, db *sql.DB, records []models.MatchRecord, heroes []models.Hero) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "begin import transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `TRUNCATE match_players, matches, heroes`); err != nil {
		return eris.Wrapf(common.ErrStorageFailed, "truncate: %v", err)
	}

	heroes = HeroRows(heroes)
	if err := copyRows(ctx, tx, "heroes", []string{"id", "name", "ordinal"}, len(heroes), func(i int) []interface{} {
		return []interface{}{heroes[i].ID, heroes[i].Name, i}
	}); err != nil {
		return err
	}

	if err := copyRows(ctx, tx, "matches", []string{
		"match_id", "ordinal", "league", "start_time", "radiant_team_id", "radiant_team_name",
		"dire_team_id", "dire_team_name", "winner_id", "radiant_kills", "dire_kills", "duration_seconds",
	}, len(records), func(i int) []interface{} {
		r := records[i]
		return []interface{}{
			r.MatchID, i, r.League, r.StartTime, r.RadiantTeamID, r.RadiantTeamName,
			r.DireTeamID, r.DireTeamName, r.WinnerID, r.RadiantKills, r.DireKills, r.DurationSeconds,
		}
	}); err != nil {
		return err
	}

	players := PlayerRows(records)
	if err := copyRows(ctx, tx, "match_players", []string{
		"match_id", "side", "slot", "name", "hero", "position", "kills", "deaths", "assists", "networth",
	}, len(players), func(i int) []interface{} {
		p := players[i]
		return []interface{}{
			p.MatchID, p.Side, p.Slot, p.Name, ptrValue(nullStringPtr(p.Hero)), ptrValue(nullStringPtr(p.Position)),
			p.Kills, p.Deaths, p.Assists, p.NetWorth,
		}
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "commit import")
	}
	logger.Printf("[Import] ✅ Imported %d matches, %d players, %d heroes", len(records), len(players), len(heroes))
	return nil
}

// HeroRows 按名称去重 (heroes.name 为主键), 保留首次出现的顺序
func HeroRows(heroes []models.Hero) []models.Hero {
	return dataset.NewHeroCatalog(heroes).All()
}

// PlayerRows 把每场比赛展开为 10 行选手数据
func PlayerRows(records []models.MatchRecord) []PlayerRow {
	rows := make([]PlayerRow, 0, len(records)*2*models.PlayersPerSide)
	for _, r := range records {
		for _, side := range []models.Side{models.SideRadiant, models.SideDire} {
			roster := r.Roster(side)
			for slot, p := range roster {
				rows = append(rows, PlayerRow{
					MatchID:  r.MatchID,
					Side:     string(side),
					Slot:     slot + 1,
					Name:     p.Name,
					Hero:     nullString(p.Hero),
					Position: nullString(p.Position),
					Kills:    p.Kills,
					Deaths:   p.Deaths,
					Assists:  p.Assists,
					NetWorth: p.NetWorth,
				})
			}
		}
	}
	return rows
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func copyRows(ctx context.Context, tx *sql.Tx, table string, columns []string, n int, row func(i int) []interface{}) error {
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, columns...))
	if err != nil {
		return eris.Wrapf(common.ErrStorageFailed, "prepare copy %s: %v", table, err)
	}
	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, row(i)...); err != nil {
			stmt.Close()
			return eris.Wrapf(common.ErrStorageFailed, "copy %s row %d: %v", table, i, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return eris.Wrapf(common.ErrStorageFailed, "flush copy %s: %v", table, err)
	}
	return stmt.Close()
}
