package builders

import (
	"fmt"

	"github.com/rushteam/affinity/config"
	"github.com/rushteam/affinity/core"
	"github.com/rushteam/affinity/filter"
	"github.com/rushteam/affinity/pipeline"
	"github.com/rushteam/affinity/pkg/conv"
	"github.com/rushteam/affinity/recall"
	"github.com/rushteam/affinity/rerank"
)

func init() {
	config.Register("recall.content", BuildContentNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.diversity", BuildDiversityNode)
	config.Register("filter", BuildFilterNode)
}

// BuildContentNode 构建内容召回 Node。
//
// 配置示例：
//
//	type: recall.content
//	config:
//	  top_k: 5
//	  default_k: 3
//	  pref_floor: 0.1
//	  catalog:
//	    - {id: tech-001, type: article, title: "Future of AI", category: technology, score: 0.9}
//
// catalog 省略时使用内置目录。
func BuildContentNode(cfg map[string]interface{}) (pipeline.Node, error) {
	node := &recall.Content{
		Catalog:   core.DefaultCatalog(),
		TopK:      conv.ConfigGetInt(cfg, "top_k", 0),
		DefaultK:  conv.ConfigGetInt(cfg, "default_k", 0),
		PrefFloor: conv.ConfigGet(cfg, "pref_floor", 0.0),
	}

	if rawCatalog, ok := cfg["catalog"].([]interface{}); ok {
		catalog := make(core.Catalog, 0, len(rawCatalog))
		for _, rc := range rawCatalog {
			itemMap, ok := rc.(map[string]interface{})
			if !ok {
				continue
			}
			item := core.ContentItem{
				ID:       conv.ConfigGet(itemMap, "id", ""),
				Type:     conv.ConfigGet(itemMap, "type", ""),
				Title:    conv.ConfigGet(itemMap, "title", ""),
				Category: conv.ConfigGet(itemMap, "category", ""),
			}
			if item.ID == "" {
				return nil, fmt.Errorf("catalog item missing id")
			}
			if score, ok := conv.ToFloat64(itemMap["score"]); ok {
				item.BaseScore = score
			}
			catalog = append(catalog, item)
		}
		node.Catalog = catalog
	}

	if seed := conv.ConfigGetInt(cfg, "sample_seed", 0); seed != 0 {
		node.Sampler = recall.NewRandSampler(int64(seed))
	}

	return node, nil
}

// BuildTopNNode 构建 Top-N 截断 Node。
func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &rerank.TopNNode{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
}

// BuildDiversityNode 构建类目多样性 Node。
func BuildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	labelKey := conv.ConfigGet(cfg, "label_key", "category")
	if labelKey == "" {
		labelKey = "category"
	}
	return &rerank.Diversity{LabelKey: labelKey}, nil
}

// BuildFilterNode 构建过滤 Node。
//
// 配置示例：
//
//	type: filter
//	config:
//	  filters:
//	    - {type: blacklist, item_ids: [tech-002]}
//	    - {type: expr, keep: 'item.score > 0.1'}
func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]interface{})
		if !ok {
			continue
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "blacklist":
			ids := conv.SliceAnyToString(filterMap["item_ids"])
			if ids == nil {
				ids = []string{}
			}
			filters = append(filters, &filter.Blacklist{
				ItemIDs: ids,
				Key:     conv.ConfigGet(filterMap, "key", ""),
			})
		case "expr":
			filters = append(filters, &filter.Expr{
				Keep: conv.ConfigGet(filterMap, "keep", ""),
			})
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}

	return &filter.Node{Filters: filters}, nil
}
