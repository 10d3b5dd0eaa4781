package pref

import (
	"math"

	"github.com/rushteam/affinity/core"
)

// FloorSimilarity 是无法进行有效比较时的保底相似度。
//
// 三种情况共用同一个保底值：任一方没有任何偏好、双方没有共同类目、
// 任一方的 L2 范数为 0。返回 0.1 而不是 0 是刻意的：让"未知"用户在
// 下游排序中排在"明确不相似"的用户之上。下游系统依赖当前的并列
// 顺序，请勿区分这三种情况或调整数值。
const FloorSimilarity = 0.1

// Cosine 计算两个偏好映射的余弦相似度。
//
// 点积只在双方共同出现的类目上累加；分母使用各自完整向量的 L2 范数
// （不限于交集）。正常输入下结果落在 [0,1]，不做硬性截断。
func Cosine(a, b core.PreferenceMap) float64 {
	if len(a) == 0 || len(b) == 0 {
		return FloorSimilarity
	}

	var dot float64
	shared := false
	for cat, va := range a {
		if vb, ok := b[cat]; ok {
			shared = true
			dot += va * vb
		}
	}
	if !shared {
		return FloorSimilarity
	}

	normA := norm(a)
	normB := norm(b)
	if normA == 0 || normB == 0 {
		return FloorSimilarity
	}
	return dot / (normA * normB)
}

func norm(p core.PreferenceMap) float64 {
	var sum float64
	for _, v := range p {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Round3 将分数保留 3 位小数，用于对外输出的相似度/推荐分。
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
