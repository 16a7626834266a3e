package dataset

import "ti-tracker/pkg/models"

// HeroCatalog 英雄名 -> ID, 名称按文件中首次出现的顺序去重
type HeroCatalog struct {
	byName map[string]int
	heroes []models.Hero
}

func NewHeroCatalog(heroes []models.Hero) *HeroCatalog {
	c := &HeroCatalog{
		byName: make(map[string]int, len(heroes)),
		heroes: make([]models.Hero, 0, len(heroes)),
	}
	for _, h := range heroes {
		if h.Name == "" {
			continue
		}
		if _, dup := c.byName[h.Name]; dup {
			continue
		}
		c.byName[h.Name] = h.ID
		c.heroes = append(c.heroes, h)
	}
	return c
}

// ID 查询英雄 ID
func (c *HeroCatalog) ID(name string) (int, bool) {
	id, ok := c.byName[name]
	return id, ok
}

// Contains 是否为已知英雄
func (c *HeroCatalog) Contains(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Names 多选框选项
func (c *HeroCatalog) Names() []string {
	names := make([]string, len(c.heroes))
	for i, h := range c.heroes {
		names[i] = h.Name
	}
	return names
}

// All 全部英雄
func (c *HeroCatalog) All() []models.Hero {
	out := make([]models.Hero, len(c.heroes))
	copy(out, c.heroes)
	return out
}

func (c *HeroCatalog) Len() int {
	return len(c.heroes)
}
