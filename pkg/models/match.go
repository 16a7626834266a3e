package models

import "time"

// PlayersPerSide 每方固定 5 名选手
const PlayersPerSide = 5

// Side 阵营
type Side string

const (
	SideRadiant Side = "radiant"
	SideDire    Side = "dire"
)

// Player 单个选手在一场比赛中的数据
// Hero / Position 为 nil 表示数据缺失(未选英雄、未分配位置)
type Player struct {
	Name     string  `json:"name"`
	Hero     *string `json:"hero"`
	Position *string `json:"position"`
	Kills    int     `json:"kills"`
	Deaths   int     `json:"deaths"`
	Assists  int     `json:"assists"`
	NetWorth int     `json:"networth"`
}

// MatchRecord 一场历史比赛(加载后只读)
type MatchRecord struct {
	MatchID         int64     `json:"match_id"`
	League          string    `json:"league"`
	StartTime       time.Time `json:"match_start_date_time"`
	RadiantTeamID   int64     `json:"radiant_team_id"`
	RadiantTeamName string    `json:"radiant_team_name"`
	DireTeamID      int64     `json:"dire_team_id"`
	DireTeamName    string    `json:"dire_team_name"`
	WinnerID        int64     `json:"winner_id"`
	RadiantKills    int       `json:"radiant_kills"`
	DireKills       int       `json:"dire_kills"`
	DurationSeconds int       `json:"match_duration_seconds"`

	Radiant [PlayersPerSide]Player `json:"radiant_players"`
	Dire    [PlayersPerSide]Player `json:"dire_players"`
}

// Roster 返回指定阵营的选手
func (m *MatchRecord) Roster(side Side) [PlayersPerSide]Player {
	if side == SideDire {
		return m.Dire
	}
	return m.Radiant
}

// Players 按 radiant 1..5, dire 1..5 的顺序返回全部 10 名选手
func (m *MatchRecord) Players() []Player {
	players := make([]Player, 0, 2*PlayersPerSide)
	players = append(players, m.Radiant[:]...)
	players = append(players, m.Dire[:]...)
	return players
}

// Hero 英雄目录条目
type Hero struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// StringPtr 便于构造可选字段
func StringPtr(s string) *string {
	return &s
}
