// Package affinity 是一个推荐打分模块（Recommendation Scoring）。
//
// 设计要点：
// - 核心是打分逻辑本身：用户偏好余弦相似度（u2u）与偏好加权的内容排序
// - Pipeline-first: 内容链路通过 Node 串联（Recall → Filter → ReRank）
// - 三路合并: 协同 / 内容 / 趋势并发执行，由 engine 合并为统一结果
// - 周边皆为薄胶水: HTTP 路由（server）、数据源（store / feast）可替换
package affinity

import "github.com/rushteam/affinity/pipeline"

// 轻量 facade：便于用户直接 import "affinity" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
