package recall

import (
	"context"
	"encoding/json"

	"github.com/rushteam/affinity/core"
)

// Trending 是趋势推荐块的提供方。不包含任何算法内容，只为三路合并
// 提供统一的接口形态。
//
// 数据来源优先级：
//   - 如果配置了 Store 和 Key，从 Store 读取 JSON 编码的榜单
//     （生产环境通常由离线任务定期写入）
//   - 读取失败或为空时，使用内存中的 Blocks 作为 fallback
//   - Blocks 也为空时，返回内置的模拟榜单
type Trending struct {
	Store core.Store
	Key   string // 存储 key，例如 "trending:weekly"

	// Blocks 是 fallback 榜单
	Blocks []core.TrendingBlock
}

func (r *Trending) Name() string { return "recall.trending" }

// Load 读取当前趋势榜单。存储不可用时静默回退到内置数据，
// 趋势块永远不会让整个请求失败。
func (r *Trending) Load(ctx context.Context) []core.TrendingBlock {
	if r.Store != nil && r.Key != "" {
		if data, err := r.Store.Get(ctx, r.Key); err == nil {
			var parsed []core.TrendingBlock
			if json.Unmarshal(data, &parsed) == nil && len(parsed) > 0 {
				return parsed
			}
		}
	}

	if len(r.Blocks) > 0 {
		return r.Blocks
	}
	return DefaultTrending()
}

// DefaultTrending 返回内置的模拟趋势榜单。
func DefaultTrending() []core.TrendingBlock {
	return []core.TrendingBlock{
		{
			ID:    "trend-001",
			Type:  "trending",
			Title: "Most Popular This Week",
			Items: []core.TrendingItem{
				{Title: "AI Breakthrough in Healthcare", Views: 15420, Category: "technology"},
				{Title: "Sustainable Living Tips", Views: 12350, Category: "lifestyle"},
				{Title: "New Music Releases", Views: 9876, Category: "music"},
			},
			Reason: "Trending content across all categories",
		},
	}
}
