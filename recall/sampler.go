package recall

import (
	"math/rand"
	"sync"
)

// Sampler 是默认模式（无用户/无偏好）下的抽样能力。
// 这是核心里唯一的非确定性来源，抽出来作为可注入依赖，
// 测试可替换为确定性实现来固定抽样结果。
type Sampler interface {
	// Sample 从 [0, n) 中无放回地抽取 k 个下标。k >= n 时返回全排列前缀。
	Sample(n, k int) []int
}

// RandSampler 是基于 math/rand 的默认实现。
// 内部持锁：Rand 本身不是并发安全的，而同一个 Sampler 可能被多个请求共享。
type RandSampler struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandSampler 创建抽样器；seed 相同则序列相同（便于回放问题现场）。
func NewRandSampler(seed int64) *RandSampler {
	return &RandSampler{r: rand.New(rand.NewSource(seed))}
}

func (s *RandSampler) Sample(n, k int) []int {
	if n <= 0 || k <= 0 {
		return nil
	}
	if k > n {
		k = n
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Perm(n)[:k]
}

// FixedSampler 是确定性实现：总是返回前 k 个下标。用于测试固定抽样结果。
type FixedSampler struct{}

func (FixedSampler) Sample(n, k int) []int {
	if n <= 0 || k <= 0 {
		return nil
	}
	if k > n {
		k = n
	}
	out := make([]int, k)
	for i := range out {
		out[i] = i
	}
	return out
}
