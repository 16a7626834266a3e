package filter

import (
	"strings"

	"ti-tracker/pkg/common"
)

// Combinator 条件组合方式
type Combinator string

const (
	CombinatorAnd Combinator = "and"
	CombinatorOr  Combinator = "or"
)

// ParseCombinator 解析 "and" / "or" (大小写不敏感); 空串默认为 AND
func ParseCombinator(s string) (Combinator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "and":
		return CombinatorAnd, nil
	case "or":
		return CombinatorOr, nil
	default:
		return "", common.InvalidInput("mode must be 'and' or 'or'")
	}
}

// Criteria 一次用户交互的筛选条件
type Criteria struct {
	Heroes     []string   `json:"heroes"`
	Player     string     `json:"player"`
	Team       string     `json:"team"`
	Combinator Combinator `json:"combinator"`
}

// Normalize 去掉首尾空白并丢弃空英雄名; 之后按精确相等匹配
func (c Criteria) Normalize() Criteria {
	out := Criteria{
		Player:     strings.TrimSpace(c.Player),
		Team:       strings.TrimSpace(c.Team),
		Combinator: c.Combinator,
	}
	for _, h := range c.Heroes {
		if h = strings.TrimSpace(h); h != "" {
			out.Heroes = append(out.Heroes, h)
		}
	}
	return out
}

func (c Criteria) heroSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Heroes))
	for _, h := range c.Heroes {
		set[h] = struct{}{}
	}
	return set
}

func (c Criteria) heroActive() bool {
	return len(c.Heroes) > 0
}

// Active 是否存在任一非空条件
func (c Criteria) Active() bool {
	return c.heroActive() || c.Player != "" || c.Team != ""
}
