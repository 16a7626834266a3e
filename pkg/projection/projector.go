package projection

import (
	"fmt"
	"strconv"
	"strings"

	"ti-tracker/pkg/models"
)

// Winner 胜方
type Winner string

const (
	WinnerRadiant      Winner = "radiant"
	WinnerDire         Winner = "dire"
	WinnerUndetermined Winner = "undetermined"
)

var positionLabels = map[string]string{
	"POSITION_1": "Carry",
	"POSITION_2": "Mid",
	"POSITION_3": "Offlane",
	"POSITION_4": "Soft Support",
	"POSITION_5": "Hard Support",
}

// PositionLabel 位置枚举转显示名, 未知值原样返回
func PositionLabel(position string) string {
	if label, ok := positionLabels[position]; ok {
		return label
	}
	return position
}

// FormatDuration 秒数转 MM:SS, 分钟不截断
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ParseMatchID 解析用户输入的比赛 ID
func ParseMatchID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// PlayerView 详情页中的一名选手
type PlayerView struct {
	Name     string  `json:"name"`
	Hero     *string `json:"hero"`
	Position *string `json:"position"`
	Kills    int     `json:"kills"`
	Deaths   int     `json:"deaths"`
	Assists  int     `json:"assists"`
	NetWorth int     `json:"networth"`
}

// RosterView 一方阵容
type RosterView struct {
	Side     models.Side                       `json:"side"`
	TeamID   int64                             `json:"team_id"`
	TeamName string                            `json:"team_name"`
	Won      bool                              `json:"won"`
	Players  [models.PlayersPerSide]PlayerView `json:"players"`
}

// Score 比分(击杀数)
type Score struct {
	Radiant int `json:"radiant"`
	Dire    int `json:"dire"`
}

// ProjectedMatch 比赛详情视图
type ProjectedMatch struct {
	MatchID         int64      `json:"match_id"`
	League          string     `json:"league"`
	Radiant         RosterView `json:"radiant"`
	Dire            RosterView `json:"dire"`
	Winner          Winner     `json:"winner"`
	Score           Score      `json:"score"`
	DurationSeconds int        `json:"duration_seconds"`
	Duration        string     `json:"duration"`
}

// Project 按 ID 查找比赛并生成详情视图; 未找到时 ok 为 false
func Project(records []*models.MatchRecord, matchID int64) (*ProjectedMatch, bool) {
	for _, rec := range records {
		if rec.MatchID == matchID {
			return ProjectRecord(rec), true
		}
	}
	return nil, false
}

// ProjectRecord 生成单场比赛的详情视图
func ProjectRecord(rec *models.MatchRecord) *ProjectedMatch {
	radiantWon := rec.WinnerID == rec.RadiantTeamID
	direWon := rec.WinnerID == rec.DireTeamID
	if radiantWon && direWon {
		// 两队 ID 相同, 无法判定
		radiantWon, direWon = false, false
	}

	winner := WinnerUndetermined
	switch {
	case radiantWon:
		winner = WinnerRadiant
	case direWon:
		winner = WinnerDire
	}

	return &ProjectedMatch{
		MatchID:         rec.MatchID,
		League:          rec.League,
		Radiant:         roster(models.SideRadiant, rec.RadiantTeamID, rec.RadiantTeamName, radiantWon, rec.Radiant),
		Dire:            roster(models.SideDire, rec.DireTeamID, rec.DireTeamName, direWon, rec.Dire),
		Winner:          winner,
		Score:           Score{Radiant: rec.RadiantKills, Dire: rec.DireKills},
		DurationSeconds: rec.DurationSeconds,
		Duration:        FormatDuration(rec.DurationSeconds),
	}
}

func roster(side models.Side, teamID int64, teamName string, won bool, players [models.PlayersPerSide]models.Player) RosterView {
	rv := RosterView{Side: side, TeamID: teamID, TeamName: teamName, Won: won}
	for i, p := range players {
		var position *string
		if p.Position != nil {
			label := PositionLabel(*p.Position)
			position = &label
		}
		rv.Players[i] = PlayerView{
			Name:     p.Name,
			Hero:     p.Hero,
			Position: position,
			Kills:    p.Kills,
			Deaths:   p.Deaths,
			Assists:  p.Assists,
			NetWorth: p.NetWorth,
		}
	}
	return rv
}
