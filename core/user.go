package core

// User 是数据源（Data Store）提供的用户记录，对核心只读。
//
// RawPreferences 保留外部/遗留的编码格式 "category:score,category:score"，
// 与存量数据保持兼容；进入核心后立即由 pref.Parse 转换为 PreferenceMap，
// 不在链路中反复拆分字符串。
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	// RawPreferences 为空表示"未记录任何偏好"，不是错误。
	RawPreferences string `json:"preferences,omitempty"`
}

// PreferenceMap 是用户的类目→偏好分映射（通常落在 [0,1]，不做硬性约束）。
// 由 RawPreferences 派生，仅在单次请求内存在，不持久化。
type PreferenceMap map[string]float64

// Get 读取某个类目的偏好分，不存在时返回 fallback。
func (p PreferenceMap) Get(category string, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	if v, ok := p[category]; ok {
		return v
	}
	return fallback
}

// Empty 判断是否没有任何已记录的偏好。
func (p PreferenceMap) Empty() bool {
	return len(p) == 0
}
