// Package pref 负责用户偏好的解析与相似度计算。
//
// 偏好在外部系统中以遗留的紧凑编码存储："category:score" 以逗号连接，
// 例如 "technology:0.9,music:0.7"。该格式需要保持兼容；进入核心后立即
// 转换为 core.PreferenceMap，不在链路中反复拆分字符串。
package pref

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rushteam/affinity/core"
)

// Parse 将遗留编码解析为 PreferenceMap。
//
// 约定：
//   - 空串/纯空白输入返回空 map，不是错误
//   - 不含 ':' 的片段被静默跳过（与存量数据行为一致）
//   - 分值只在第一个 ':' 处切分，后缀必须是合法浮点数，否则返回
//     PARSE_ERROR（向上传播，由调用方决定跳过该用户还是中断）
func Parse(raw string) (core.PreferenceMap, error) {
	prefs := make(core.PreferenceMap)
	if strings.TrimSpace(raw) == "" {
		return prefs, nil
	}

	for _, pair := range strings.Split(raw, ",") {
		cat, score, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(score), 64)
		if err != nil {
			return nil, core.NewDomainError(core.ModulePref, core.ErrorCodeParseError,
				fmt.Sprintf("pref: malformed score %q in pair %q", score, pair))
		}
		prefs[strings.TrimSpace(cat)] = v
	}
	return prefs, nil
}

// ParseUser 解析用户记录上的偏好字段。RawPreferences 为空表示
// "未记录偏好"，返回空 map。
func ParseUser(u *core.User) (core.PreferenceMap, error) {
	if u == nil {
		return core.PreferenceMap{}, nil
	}
	return Parse(u.RawPreferences)
}
