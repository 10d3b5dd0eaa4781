package core

import "time"

// UserRef 是推荐结果中对用户的引用（User 的只读子集，不含偏好）。
type UserRef struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserMatch 是协同召回的单条结果：相似用户及其相似度。
type UserMatch struct {
	Type            string  `json:"type"` // 固定 "user_connection"
	User            UserRef `json:"user"`
	SimilarityScore float64 `json:"similarity_score"` // 保留 3 位小数
	Reason          string  `json:"reason"`
}

// ScoredContent 是内容召回的单条结果：目录条目加推荐分。
type ScoredContent struct {
	ContentItem
	RecommendationScore float64 `json:"recommendation_score,omitempty"` // 保留 3 位小数
	Reason              string  `json:"reason,omitempty"`
}

// TrendingItem 是趋势榜单中的单个条目。
type TrendingItem struct {
	Title    string `json:"title"`
	Views    int64  `json:"views"`
	Category string `json:"category"`
}

// TrendingBlock 是趋势推荐块：无算法内容，静态/模拟数据。
type TrendingBlock struct {
	ID     string         `json:"id"`
	Type   string         `json:"type"` // 固定 "trending"
	Title  string         `json:"title"`
	Items  []TrendingItem `json:"items"`
	Reason string         `json:"reason"`
}

// Recommendations 是三路召回的合并结果。
type Recommendations struct {
	Collaborative []UserMatch     `json:"collaborative"`
	Content       []ScoredContent `json:"content"`
	Trending      []TrendingBlock `json:"trending"`
}

// ResultMeta 是结果元信息。
type ResultMeta struct {
	Algorithm        string  `json:"algorithm"`
	Confidence       float64 `json:"confidence"`
	ProcessingTimeMS int64   `json:"processing_time_ms"`
}

// Result 是推荐引擎返回给 Router 的结构化结果。
// 核心不关心它如何被序列化为某种线上协议，那是 Router 的职责。
type Result struct {
	// UserID 为 0 表示匿名请求
	UserID          int64           `json:"user_id,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
	Recommendations Recommendations `json:"recommendations"`
	Metadata        ResultMeta      `json:"metadata"`
}
