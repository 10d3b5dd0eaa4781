package recall

import (
	"context"
	"fmt"
	"sort"

	"github.com/rushteam/affinity/core"
	"github.com/rushteam/affinity/pipeline"
	"github.com/rushteam/affinity/pref"
	"github.com/rushteam/affinity/pkg/utils"
)

// Content 是基于偏好的内容召回源（Content-Based Recommendation）。
//
// 两种模式：
//   - 个性化：用户有至少一条偏好时，对目录中每个条目取
//     user_pref = prefs.Get(item.category, 0.1)，
//     recommendation_score = base_score * user_pref（保留 3 位小数），
//     按分数稳定降序排序取 TopK。
//   - 默认：匿名或无偏好时，从目录中随机抽取 DefaultK 个条目，
//     顺序无意义。抽样通过注入的 Sampler 完成。
//
// 个性化分支不含任何随机性：同一用户同一目录快照重复调用，输出完全一致。
// Content 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Content struct {
	// Catalog 是内容目录快照，处理期间不可变
	Catalog core.Catalog

	// Sampler 是默认模式的抽样器；为 nil 时按目录顺序取前 DefaultK 个
	Sampler Sampler

	// TopK 个性化模式返回的条目数，默认 5
	TopK int

	// DefaultK 默认模式抽取的条目数，默认 3
	DefaultK int

	// PrefFloor 目录类目在用户偏好中缺失时的保底偏好分，默认 0.1
	PrefFloor float64
}

func (r *Content) Name() string        { return "recall.content" }
func (r *Content) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *Content) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。目录为空时返回空结果，不是错误。
func (r *Content) Recall(
	_ context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if len(r.Catalog) == 0 {
		return nil, nil
	}

	if rctx != nil && !rctx.Prefs.Empty() {
		return r.personalized(rctx.Prefs), nil
	}
	return r.sampled(), nil
}

func (r *Content) personalized(prefs core.PreferenceMap) []*core.Item {
	floor := r.PrefFloor
	if floor <= 0 {
		floor = 0.1
	}

	out := make([]*core.Item, 0, len(r.Catalog))
	for _, ci := range r.Catalog {
		it := core.NewContentItem(ci)
		it.Score = pref.Round3(ci.BaseScore * prefs.Get(ci.Category, floor))
		it.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
		it.PutLabel("mode", utils.Label{Value: "personalized", Source: "recall"})
		it.PutLabel("reason", utils.Label{
			Value:  fmt.Sprintf("Matches your %s preferences", ci.Category),
			Source: "recall",
		})
		out = append(out, it)
	}

	// 稳定排序：同分条目保持目录原始顺序
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	topK := r.TopK
	if topK <= 0 {
		topK = 5
	}
	if len(out) > topK {
		out = out[:topK]
	}
	return out
}

func (r *Content) sampled() []*core.Item {
	k := r.DefaultK
	if k <= 0 {
		k = 3
	}

	var idx []int
	if r.Sampler != nil {
		idx = r.Sampler.Sample(len(r.Catalog), k)
	} else {
		idx = FixedSampler{}.Sample(len(r.Catalog), k)
	}

	out := make([]*core.Item, 0, len(idx))
	for _, i := range idx {
		if i < 0 || i >= len(r.Catalog) {
			continue
		}
		it := core.NewContentItem(r.Catalog[i])
		it.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
		it.PutLabel("mode", utils.Label{Value: "default", Source: "recall"})
		out = append(out, it)
	}
	return out
}

// ScoredContentFromItems 将 Pipeline 输出的 Item 还原为对外的 ScoredContent。
// 内容属性从 Meta 读取，推荐理由从 reason Label 读取；默认模式下
// 分数与理由为空，与存量接口行为一致。
func ScoredContentFromItems(items []*core.Item) []core.ScoredContent {
	out := make([]core.ScoredContent, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		sc := core.ScoredContent{
			ContentItem: core.ContentItem{
				ID: it.ID,
			},
			RecommendationScore: it.Score,
		}
		if v, ok := it.Meta["type"].(string); ok {
			sc.Type = v
		}
		if v, ok := it.Meta["title"].(string); ok {
			sc.Title = v
		}
		if v, ok := it.Meta["category"].(string); ok {
			sc.Category = v
		}
		if v, ok := it.Meta["base_score"].(float64); ok {
			sc.BaseScore = v
		}
		if lbl, ok := it.Labels["reason"]; ok {
			sc.Reason = lbl.Value
		}
		out = append(out, sc)
	}
	return out
}
