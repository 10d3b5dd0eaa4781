package recall

import (
	"context"

	"github.com/rushteam/affinity/core"
)

// Source 表示一个可复用的内容召回源（偏好加权/趋势/...）。
// 你可以把它理解为"可并发 fan-out 的策略单元"。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
