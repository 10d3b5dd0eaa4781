package filter

import (
	"context"
	"encoding/json"

	"github.com/rushteam/affinity/core"
)

// Blacklist 是黑名单过滤器，过滤掉被下架/屏蔽的内容条目。
type Blacklist struct {
	// ItemIDs 是内存中的黑名单条目 ID 列表
	ItemIDs []string

	// Store 用于从存储中读取黑名单（可选，JSON 数组）
	Store core.Store

	// Key 是 Store 中的黑名单 key（可选）
	Key string
}

func (f *Blacklist) Name() string {
	return "filter.blacklist"
}

func (f *Blacklist) ShouldFilter(
	ctx context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}

	// 从内存列表检查
	for _, id := range f.ItemIDs {
		if item.ID == id {
			return true, nil
		}
	}

	// 从 Store 检查
	if f.Store != nil && f.Key != "" {
		data, err := f.Store.Get(ctx, f.Key)
		if err == nil {
			var blacklist []string
			if json.Unmarshal(data, &blacklist) == nil {
				for _, id := range blacklist {
					if item.ID == id {
						return true, nil
					}
				}
			}
		}
	}

	return false, nil
}
