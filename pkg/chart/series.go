// Package chart reshapes a projected match into horizontal bar chart series.
package chart

import (
	"strings"

	"ti-tracker/pkg/common"
	"ti-tracker/pkg/models"
	"ti-tracker/pkg/projection"
)

// Kind 图表类型, 每次请求只展示一种
type Kind string

const (
	KindNetWorth Kind = "networth"
	KindKDA      Kind = "kda"
)

// 显示颜色, 仅用于区分阵营
const (
	ColorRadiant = "green"
	ColorDire    = "red"
)

// ParseKind 解析图表类型
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindNetWorth:
		return KindNetWorth, nil
	case KindKDA:
		return KindKDA, nil
	default:
		return "", common.InvalidInput("chart kind must be 'networth' or 'kda'")
	}
}

// Point 一根柱子
type Point struct {
	Name  string      `json:"name"`
	Value float64     `json:"value"`
	Side  models.Side `json:"side"`
	Color string      `json:"color"`
}

// Chart 图表数据及标题
type Chart struct {
	Kind       Kind    `json:"kind"`
	Title      string  `json:"title"`
	XAxisTitle string  `json:"x_axis_title"`
	YAxisTitle string  `json:"y_axis_title"`
	Points     []Point `json:"points"`
}

// KDA (kills + assists) / deaths; deaths 为 0 时按 1 计算, 即 kills + assists
func KDA(kills, deaths, assists int) float64 {
	if deaths == 0 {
		deaths = 1
	}
	return float64(kills+assists) / float64(deaths)
}

// NetWorthSeries 经济序列: Dire 1..5 在前, Radiant 1..5 在后
func NetWorthSeries(pm *projection.ProjectedMatch) []Point {
	return series(pm, func(p projection.PlayerView) float64 {
		return float64(p.NetWorth)
	})
}

// KDASeries KDA 序列, 顺序同 NetWorthSeries
func KDASeries(pm *projection.ProjectedMatch) []Point {
	return series(pm, func(p projection.PlayerView) float64 {
		return KDA(p.Kills, p.Deaths, p.Assists)
	})
}

// Build 生成指定类型的图表
func Build(pm *projection.ProjectedMatch, kind Kind) (*Chart, error) {
	switch kind {
	case KindNetWorth:
		return &Chart{
			Kind:       kind,
			Title:      "Player Net Worth",
			XAxisTitle: "Net Worth",
			YAxisTitle: "Player",
			Points:     NetWorthSeries(pm),
		}, nil
	case KindKDA:
		return &Chart{
			Kind:       kind,
			Title:      "Player KDA Ratio",
			XAxisTitle: "KDA Ratio",
			YAxisTitle: "Player",
			Points:     KDASeries(pm),
		}, nil
	default:
		return nil, common.InvalidInput("unknown chart kind " + string(kind))
	}
}

func series(pm *projection.ProjectedMatch, value func(projection.PlayerView) float64) []Point {
	points := make([]Point, 0, 2*models.PlayersPerSide)
	for _, rv := range []projection.RosterView{pm.Dire, pm.Radiant} {
		color := ColorRadiant
		if rv.Side == models.SideDire {
			color = ColorDire
		}
		for _, p := range rv.Players {
			points = append(points, Point{
				Name:  p.Name,
				Value: value(p),
				Side:  rv.Side,
				Color: color,
			})
		}
	}
	return points
}
