package dataset

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/parquet-go/parquet-go"
	"github.com/rotisserie/eris"

	"ti-tracker/pkg/common"
	"ti-tracker/pkg/models"
)

// FileSource 从 parquet 比赛表与英雄 CSV 读取
type FileSource struct {
	MatchesPath string
	HeroesPath  string
}

func NewFileSource(matchesPath, heroesPath string) *FileSource {
	return &FileSource{MatchesPath: matchesPath, HeroesPath: heroesPath}
}

// Matches 读取 parquet 比赛表
func (s *FileSource) Matches(ctx context.Context) ([]models.MatchRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := parquet.ReadFile[matchRow](s.MatchesPath)
	if err != nil {
		return nil, eris.Wrapf(common.ErrSourceUnavailable, "read parquet %s: %v", s.MatchesPath, err)
	}
	records := make([]models.MatchRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].record()
	}
	return records, nil
}

// Heroes 读取英雄 CSV (列 Name, ID)
func (s *FileSource) Heroes(ctx context.Context) ([]models.Hero, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.HeroesPath)
	if err != nil {
		return nil, eris.Wrapf(common.ErrSourceUnavailable, "open heroes csv %s: %v", s.HeroesPath, err)
	}
	defer f.Close()

	var rows []heroRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, eris.Wrapf(common.ErrMalformedData, "parse heroes csv %s: %v", s.HeroesPath, err)
	}
	heroes := make([]models.Hero, 0, len(rows))
	for _, r := range rows {
		heroes = append(heroes, models.Hero{ID: r.ID, Name: r.Name})
	}
	return heroes, nil
}

// Fingerprint 路径 + 大小 + 修改时间
func (s *FileSource) Fingerprint() (string, error) {
	h := sha256.New()
	for _, p := range []string{s.MatchesPath, s.HeroesPath} {
		st, err := os.Stat(p)
		if err != nil {
			return "", eris.Wrapf(common.ErrSourceUnavailable, "stat %s: %v", p, err)
		}
		fmt.Fprintf(h, "%s|%d|%d\n", p, st.Size(), st.ModTime().UnixNano())
	}
	return fmt.Sprintf("%x", h.Sum(nil)[:16]), nil
}

type heroRow struct {
	ID   int    `csv:"ID"`
	Name string `csv:"Name"`
}

// matchRow parquet 文件的扁平列布局
type matchRow struct {
	MatchID         int64     `parquet:"match_id"`
	League          string    `parquet:"league,optional"`
	StartTime       time.Time `parquet:"match_start_date_time,optional"`
	RadiantTeamID   int64     `parquet:"radiant_team_id,optional"`
	RadiantTeamName string    `parquet:"radiant_team_name,optional"`
	DireTeamID      int64     `parquet:"dire_team_id,optional"`
	DireTeamName    string    `parquet:"dire_team_name,optional"`
	WinnerID        int64     `parquet:"winner_id,optional"`
	RadiantKills    int64     `parquet:"radiant_kills,optional"`
	DireKills       int64     `parquet:"dire_kills,optional"`
	DurationSeconds int64     `parquet:"match_duration_seconds,optional"`

	R1Name     string  `parquet:"radiant_player_1_name,optional"`
	R1Hero     *string `parquet:"radiant_player_1_hero,optional"`
	R1Position *string `parquet:"radiant_player_1_position,optional"`
	R1Kills    int64   `parquet:"radiant_player_1_kills,optional"`
	R1Deaths   int64   `parquet:"radiant_player_1_deaths,optional"`
	R1Assists  int64   `parquet:"radiant_player_1_assists,optional"`
	R1NetWorth int64   `parquet:"radiant_player_1_networth,optional"`

	R2Name     string  `parquet:"radiant_player_2_name,optional"`
	R2Hero     *string `parquet:"radiant_player_2_hero,optional"`
	R2Position *string `parquet:"radiant_player_2_position,optional"`
	R2Kills    int64   `parquet:"radiant_player_2_kills,optional"`
	R2Deaths   int64   `parquet:"radiant_player_2_deaths,optional"`
	R2Assists  int64   `parquet:"radiant_player_2_assists,optional"`
	R2NetWorth int64   `parquet:"radiant_player_2_networth,optional"`

	R3Name     string  `parquet:"radiant_player_3_name,optional"`
	R3Hero     *string `parquet:"radiant_player_3_hero,optional"`
	R3Position *string `parquet:"radiant_player_3_position,optional"`
	R3Kills    int64   `parquet:"radiant_player_3_kills,optional"`
	R3Deaths   int64   `parquet:"radiant_player_3_deaths,optional"`
	R3Assists  int64   `parquet:"radiant_player_3_assists,optional"`
	R3NetWorth int64   `parquet:"radiant_player_3_networth,optional"`

	R4Name     string  `parquet:"radiant_player_4_name,optional"`
	R4Hero     *string `parquet:"radiant_player_4_hero,optional"`
	R4Position *string `parquet:"radiant_player_4_position,optional"`
	R4Kills    int64   `parquet:"radiant_player_4_kills,optional"`
	R4Deaths   int64   `parquet:"radiant_player_4_deaths,optional"`
	R4Assists  int64   `parquet:"radiant_player_4_assists,optional"`
	R4NetWorth int64   `parquet:"radiant_player_4_networth,optional"`

	R5Name     string  `parquet:"radiant_player_5_name,optional"`
	R5Hero     *string `parquet:"radiant_player_5_hero,optional"`
	R5Position *string `parquet:"radiant_player_5_position,optional"`
	R5Kills    int64   `parquet:"radiant_player_5_kills,optional"`
	R5Deaths   int64   `parquet:"radiant_player_5_deaths,optional"`
	R5Assists  int64   `parquet:"radiant_player_5_assists,optional"`
	R5NetWorth int64   `parquet:"radiant_player_5_networth,optional"`

	D1Name     string  `parquet:"dire_player_1_name,optional"`
	D1Hero     *string `parquet:"dire_player_1_hero,optional"`
	D1Position *string `parquet:"dire_player_1_position,optional"`
	D1Kills    int64   `parquet:"dire_player_1_kills,optional"`
	D1Deaths   int64   `parquet:"dire_player_1_deaths,optional"`
	D1Assists  int64   `parquet:"dire_player_1_assists,optional"`
	D1NetWorth int64   `parquet:"dire_player_1_networth,optional"`

	D2Name     string  `parquet:"dire_player_2_name,optional"`
	D2Hero     *string `parquet:"dire_player_2_hero,optional"`
	D2Position *string `parquet:"dire_player_2_position,optional"`
	D2Kills    int64   `parquet:"dire_player_2_kills,optional"`
	D2Deaths   int64   `parquet:"dire_player_2_deaths,optional"`
	D2Assists  int64   `parquet:"dire_player_2_assists,optional"`
	D2NetWorth int64   `parquet:"dire_player_2_networth,optional"`

	D3Name     string  `parquet:"dire_player_3_name,optional"`
	D3Hero     *string `parquet:"dire_player_3_hero,optional"`
	D3Position *string `parquet:"dire_player_3_position,optional"`
	D3Kills    int64   `parquet:"dire_player_3_kills,optional"`
	D3Deaths   int64   `parquet:"dire_player_3_deaths,optional"`
	D3Assists  int64   `parquet:"dire_player_3_assists,optional"`
	D3NetWorth int64   `parquet:"dire_player_3_networth,optional"`

	D4Name     string  `parquet:"dire_player_4_name,optional"`
	D4Hero     *string `parquet:"dire_player_4_hero,optional"`
	D4Position *string `parquet:"dire_player_4_position,optional"`
	D4Kills    int64   `parquet:"dire_player_4_kills,optional"`
	D4Deaths   int64   `parquet:"dire_player_4_deaths,optional"`
	D4Assists  int64   `parquet:"dire_player_4_assists,optional"`
	D4NetWorth int64   `parquet:"dire_player_4_networth,optional"`

	D5Name     string  `parquet:"dire_player_5_name,optional"`
	D5Hero     *string `parquet:"dire_player_5_hero,optional"`
	D5Position *string `parquet:"dire_player_5_position,optional"`
	D5Kills    int64   `parquet:"dire_player_5_kills,optional"`
	D5Deaths   int64   `parquet:"dire_player_5_deaths,optional"`
	D5Assists  int64   `parquet:"dire_player_5_assists,optional"`
	D5NetWorth int64   `parquet:"dire_player_5_networth,optional"`
}

func player(name string, hero, position *string, kills, deaths, assists, networth int64) models.Player {
	return models.Player{
		Name:     name,
		Hero:     hero,
		Position: position,
		Kills:    int(kills),
		Deaths:   int(deaths),
		Assists:  int(assists),
		NetWorth: int(networth),
	}
}

func (r *matchRow) record() models.MatchRecord {
	return models.MatchRecord{
		MatchID:         r.MatchID,
		League:          r.League,
		StartTime:       r.StartTime,
		RadiantTeamID:   r.RadiantTeamID,
		RadiantTeamName: r.RadiantTeamName,
		DireTeamID:      r.DireTeamID,
		DireTeamName:    r.DireTeamName,
		WinnerID:        r.WinnerID,
		RadiantKills:    int(r.RadiantKills),
		DireKills:       int(r.DireKills),
		DurationSeconds: int(r.DurationSeconds),
		Radiant: [models.PlayersPerSide]models.Player{
			player(r.R1Name, r.R1Hero, r.R1Position, r.R1Kills, r.R1Deaths, r.R1Assists, r.R1NetWorth),
			player(r.R2Name, r.R2Hero, r.R2Position, r.R2Kills, r.R2Deaths, r.R2Assists, r.R2NetWorth),
			player(r.R3Name, r.R3Hero, r.R3Position, r.R3Kills, r.R3Deaths, r.R3Assists, r.R3NetWorth),
			player(r.R4Name, r.R4Hero, r.R4Position, r.R4Kills, r.R4Deaths, r.R4Assists, r.R4NetWorth),
			player(r.R5Name, r.R5Hero, r.R5Position, r.R5Kills, r.R5Deaths, r.R5Assists, r.R5NetWorth),
		},
		Dire: [models.PlayersPerSide]models.Player{
			player(r.D1Name, r.D1Hero, r.D1Position, r.D1Kills, r.D1Deaths, r.D1Assists, r.D1NetWorth),
			player(r.D2Name, r.D2Hero, r.D2Position, r.D2Kills, r.D2Deaths, r.D2Assists, r.D2NetWorth),
			player(r.D3Name, r.D3Hero, r.D3Position, r.D3Kills, r.D3Deaths, r.D3Assists, r.D3NetWorth),
			player(r.D4Name, r.D4Hero, r.D4Position, r.D4Kills, r.D4Deaths, r.D4Assists, r.D4NetWorth),
			player(r.D5Name, r.D5Hero, r.D5Position, r.D5Kills, r.D5Deaths, r.D5Assists, r.D5NetWorth),
		},
	}
}
