// Package dataset holds the immutable match table shared by all queries.
package dataset

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"ti-tracker/pkg/models"
)

// TargetLeague 只保留 league 中包含该子串的比赛
const TargetLeague = "The International"

// Dataset 只读数据集: 显式构造, 按引用传给过滤与投影组件
type Dataset struct {
	records []*models.MatchRecord
	heroes  *HeroCatalog
}

// New 构造数据集; 非 TI 比赛在此一次性剔除, 原始顺序保留
func New(records []models.MatchRecord, heroes []models.Hero) *Dataset {
	kept := make([]*models.MatchRecord, 0, len(records))
	for i := range records {
		if !strings.Contains(records[i].League, TargetLeague) {
			continue
		}
		rec := records[i]
		kept = append(kept, &rec)
	}
	return &Dataset{
		records: kept,
		heroes:  NewHeroCatalog(heroes),
	}
}

// Load 从数据源读取比赛与英雄并构造数据集
func Load(ctx context.Context, src Source) (*Dataset, error) {
	matches, err := src.Matches(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "failed to load matches")
	}
	heroes, err := src.Heroes(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "failed to load heroes")
	}
	return New(matches, heroes), nil
}

// Records 返回全部比赛 (新切片, 元素指向数据集内部记录, 调用方不得修改)
func (d *Dataset) Records() []*models.MatchRecord {
	out := make([]*models.MatchRecord, len(d.records))
	copy(out, d.records)
	return out
}

// Len 比赛数量
func (d *Dataset) Len() int {
	return len(d.records)
}

// Heroes 英雄目录
func (d *Dataset) Heroes() *HeroCatalog {
	return d.heroes
}
