package core

import "github.com/rushteam/affinity/pkg/utils"

// RecommendContext 承载用户/场景信息，贯穿整个 Pipeline 透传。
// 每个请求使用独立的 RecommendContext 与数据快照，核心不跨请求共享状态。
type RecommendContext struct {
	// UserID 为 0 表示匿名请求（未知用户）
	UserID int64
	Scene  string

	// Prefs 是入口处解析好的用户偏好；匿名或无偏好时为空
	Prefs PreferenceMap

	// Labels 是用户级标签，可驱动整个 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级上下文参数（query、device_type 等）
	Params map[string]any
}

// Anonymous 判断是否匿名请求。
func (rctx *RecommendContext) Anonymous() bool {
	return rctx == nil || rctx.UserID == 0
}

// PutLabel 写入用户级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取用户级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
