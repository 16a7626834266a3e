// Package filter builds typed predicates from user criteria and applies them to match records.
package filter

import "ti-tracker/pkg/models"

// MinHeroHitsAnd AND 模式下英雄条件需要的最少命中数
const MinHeroHitsAnd = 2

// Result 筛选结果, Matches 指向数据集中的记录, 顺序与输入一致
type Result struct {
	Matches []*models.MatchRecord
	// FellBack 组合查询为空时回退为全部记录
	FellBack bool
}

// Build 把条件组合成谓词; 没有任何激活条件时返回 nil
func Build(c Criteria) Condition {
	var conds []Condition
	heroes := c.heroSet()
	if c.heroActive() {
		conds = append(conds, HeroCondition{Heroes: heroes})
	}
	if c.Player != "" {
		conds = append(conds, PlayerCondition{Name: c.Player})
	}
	if c.Team != "" {
		conds = append(conds, TeamCondition{Name: c.Team})
	}
	if len(conds) == 0 {
		return nil
	}

	if c.Combinator == CombinatorOr {
		return Or(conds...)
	}
	combined := And(conds...)
	if c.heroActive() {
		// AND 模式: 组合结果再按英雄命中数 >= 2 细化
		return And(combined, HeroThreshold{Heroes: heroes, Min: MinHeroHitsAnd})
	}
	return combined
}

// Apply 对记录执行筛选, 条件先经 Normalize
func Apply(records []*models.MatchRecord, c Criteria) Result {
	cond := Build(c.Normalize())
	if cond == nil {
		return Result{Matches: records}
	}

	matched := make([]*models.MatchRecord, 0)
	for _, rec := range records {
		if cond.Matches(rec) {
			matched = append(matched, rec)
		}
	}
	if len(matched) == 0 {
		return Result{Matches: records, FellBack: true}
	}
	return Result{Matches: matched}
}
