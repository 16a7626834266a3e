package filter

import "ti-tracker/pkg/models"

// Condition 作用于单场比赛的布尔谓词
type Condition interface {
	Matches(rec *models.MatchRecord) bool
}

// HeroCondition 任一英雄字段(非空)属于所选英雄集合
type HeroCondition struct {
	Heroes map[string]struct{}
}

func (c HeroCondition) Matches(rec *models.MatchRecord) bool {
	return heroHits(rec, c.Heroes) >= 1
}

// HeroThreshold 至少 Min 个英雄字段命中所选集合
type HeroThreshold struct {
	Heroes map[string]struct{}
	Min    int
}

func (c HeroThreshold) Matches(rec *models.MatchRecord) bool {
	return heroHits(rec, c.Heroes) >= c.Min
}

// PlayerCondition 任一选手昵称与输入完全相等
type PlayerCondition struct {
	Name string
}

func (c PlayerCondition) Matches(rec *models.MatchRecord) bool {
	for i := range rec.Radiant {
		if rec.Radiant[i].Name == c.Name || rec.Dire[i].Name == c.Name {
			return true
		}
	}
	return false
}

// TeamCondition 任一方队名与输入完全相等
type TeamCondition struct {
	Name string
}

func (c TeamCondition) Matches(rec *models.MatchRecord) bool {
	return rec.RadiantTeamName == c.Name || rec.DireTeamName == c.Name
}

type and struct {
	conditions []Condition
}

// And 全部条件成立
func And(conditions ...Condition) Condition {
	return &and{conditions: conditions}
}

func (f *and) Matches(rec *models.MatchRecord) bool {
	for _, c := range f.conditions {
		if !c.Matches(rec) {
			return false
		}
	}
	return true
}

type or struct {
	conditions []Condition
}

// Or 任一条件成立
func Or(conditions ...Condition) Condition {
	return &or{conditions: conditions}
}

func (f *or) Matches(rec *models.MatchRecord) bool {
	for _, c := range f.conditions {
		if c.Matches(rec) {
			return true
		}
	}
	return false
}

// heroHits 统计 10 个英雄字段中命中集合的数量; 缺失值从不命中
func heroHits(rec *models.MatchRecord, heroes map[string]struct{}) int {
	hits := 0
	for i := range rec.Radiant {
		for _, h := range []*string{rec.Radiant[i].Hero, rec.Dire[i].Hero} {
			if h == nil {
				continue
			}
			if _, ok := heroes[*h]; ok {
				hits++
			}
		}
	}
	return hits
}
