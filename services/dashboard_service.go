package services

import (
	"github.com/rs/zerolog"

	"ti-tracker/logger"
	"ti-tracker/pkg/chart"
	"ti-tracker/pkg/dataset"
	"ti-tracker/pkg/filter"
	"ti-tracker/pkg/models"
	"ti-tracker/pkg/projection"
)

// SummaryTimeLayout 比赛列表中开始时间的显示格式
const SummaryTimeLayout = "2 Jan 2006, 3:04 pm"

// MatchSummary 比赛列表中的一行
type MatchSummary struct {
	MatchID     int64  `json:"match_id"`
	League      string `json:"league"`
	StartTime   string `json:"match_start_date_time"`
	RadiantTeam string `json:"radiant_team_name"`
	DireTeam    string `json:"dire_team_name"`
}

// Summarize 生成比赛列表行
func Summarize(rec *models.MatchRecord) MatchSummary {
	start := ""
	if !rec.StartTime.IsZero() {
		start = rec.StartTime.Format(SummaryTimeLayout)
	}
	return MatchSummary{
		MatchID:     rec.MatchID,
		League:      rec.League,
		StartTime:   start,
		RadiantTeam: rec.RadiantTeamName,
		DireTeam:    rec.DireTeamName,
	}
}

// DashboardService 面板查询服务, 数据集加载后只读, 可并发调用
type DashboardService struct {
	data   *dataset.Dataset
	detail *QueryCache
	log    zerolog.Logger
}

// NewDashboardService 创建面板服务, detail 可为 nil (不缓存)
func NewDashboardService(data *dataset.Dataset, detail *QueryCache) *DashboardService {
	return &DashboardService{
		data:   data,
		detail: detail,
		log:    logger.For("dashboard"),
	}
}

// Dataset 返回底层数据集
func (s *DashboardService) Dataset() *dataset.Dataset {
	return s.data
}

// Heroes 英雄下拉选项
func (s *DashboardService) Heroes() []models.Hero {
	return s.data.Heroes().All()
}

// Filter 在全部比赛上执行筛选
func (s *DashboardService) Filter(c filter.Criteria) filter.Result {
	result := filter.Apply(s.data.Records(), c)
	s.log.Debug().
		Strs("heroes", c.Heroes).
		Str("player", c.Player).
		Str("team", c.Team).
		Str("mode", string(c.Combinator)).
		Int("matches", len(result.Matches)).
		Bool("fell_back", result.FellBack).
		Msg("filter applied")
	return result
}

// MatchDetail 根据用户输入的比赛 ID 查询详情
// 返回 (详情, 是否找到, 是否命中缓存)
func (s *DashboardService) MatchDetail(raw string) (*projection.ProjectedMatch, bool, bool) {
	id, ok := projection.ParseMatchID(raw)
	if !ok {
		return nil, false, false
	}

	key := GenerateCacheKey("match_detail", id)
	if cached, found := s.detail.Get(key); found {
		if pm, ok := cached.(*projection.ProjectedMatch); ok {
			return pm, true, true
		}
	}

	pm, found := projection.Project(s.data.Records(), id)
	if !found {
		return nil, false, false
	}
	s.detail.Set(key, pm)
	return pm, true, false
}

// Chart 构建比赛图表, 未找到比赛时返回 (nil, false, nil)
func (s *DashboardService) Chart(raw string, kind chart.Kind) (*chart.Chart, bool, error) {
	pm, found, _ := s.MatchDetail(raw)
	if !found {
		return nil, false, nil
	}
	c, err := chart.Build(pm, kind)
	if err != nil {
		return nil, true, err
	}
	return c, true, nil
}
