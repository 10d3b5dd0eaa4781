package core

import "github.com/rushteam/affinity/pkg/utils"

// Item 是推荐链路中的统一承载结构：分数、元信息、标签。
// Labels 用于解释与策略驱动；Score 用于排序决策。
type Item struct {
	ID       string
	Score    float64
	Features map[string]float64
	Meta     map[string]any
	Labels   map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:       id,
		Score:    0,
		Features: make(map[string]float64),
		Meta:     make(map[string]any),
		Labels:   make(map[string]utils.Label),
	}
}

// NewContentItem 由目录条目构造 Item，内容属性放入 Meta，
// category 同时写入 Label 方便 rerank/filter 读取。
func NewContentItem(ci ContentItem) *Item {
	it := NewItem(ci.ID)
	it.Meta["type"] = ci.Type
	it.Meta["title"] = ci.Title
	it.Meta["category"] = ci.Category
	it.Meta["base_score"] = ci.BaseScore
	it.PutLabel("category", utils.Label{Value: ci.Category, Source: "catalog"})
	return it
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
