package core

// ContentItem 是候选内容条目。目录（Catalog）是内存中的静态常量表，
// 在单次请求处理期间不可变。
type ContentItem struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	BaseScore float64 `json:"score"`
}

// Catalog 是内容目录。
type Catalog []ContentItem

// DefaultCatalog 返回内置的模拟内容目录。
// 生产环境通常由离线任务产出并通过 Store 下发；这里保留一份内置数据
// 作为 fallback 与测试基线。
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: "tech-001", Type: "article", Title: "Future of AI", Category: "technology", BaseScore: 0.9},
		{ID: "tech-002", Type: "article", Title: "Web3 Explained", Category: "technology", BaseScore: 0.8},
		{ID: "sports-001", Type: "article", Title: "Olympics 2024", Category: "sports", BaseScore: 0.85},
		{ID: "music-001", Type: "playlist", Title: "Indie Rock Hits", Category: "music", BaseScore: 0.9},
		{ID: "travel-001", Type: "guide", Title: "Hidden Gems in Europe", Category: "travel", BaseScore: 0.87},
		{ID: "cook-001", Type: "recipe", Title: "Quick Healthy Meals", Category: "cooking", BaseScore: 0.75},
	}
}
