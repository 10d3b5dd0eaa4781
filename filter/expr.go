package filter

import (
	"context"

	"github.com/rushteam/affinity/core"
	"github.com/rushteam/affinity/pkg/dsl"
)

// Expr 是基于 CEL 表达式的规则过滤器。
// 表达式对"保留"求值：结果为 false 的物品被过滤掉。
//
// 示例：
//   - `item.score > 0.1`                → 剔除保底分以下的候选
//   - `label.category != "sports"`      → 按类目屏蔽
//   - `rctx.scene == "feed" || item.score > 0.5`
type Expr struct {
	// Keep 是保留条件表达式；为空时保留所有物品
	Keep string
}

func (f *Expr) Name() string {
	return "filter.expr"
}

func (f *Expr) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if f.Keep == "" || item == nil {
		return false, nil
	}

	keep, err := dsl.NewEval(item, rctx).Evaluate(f.Keep)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
