package recall

import (
	"context"
	"sort"

	"github.com/rushteam/affinity/core"
	"github.com/rushteam/affinity/pref"
)

// Collaborative 是基于用户的协同召回（User-based Collaborative Filtering）。
//
// 核心思想："兴趣相似的用户，值得互相推荐"
//
// 算法流程：
//  1. 按 id 定位目标用户；不存在时返回空结果（不是错误）
//  2. 对其余每个用户计算偏好余弦相似度（pref.Cosine，含 0.1 保底）
//  3. 稳定降序排序，取 TopK
//
// 稳定性是契约的一部分：同分用户保持 LoadAll 快照中的原始顺序。
// 保底相似度 0.1 让"无数据"的用户排在"明确不相似"的用户之上，
// 并与零重叠用户按原始顺序并列。
type Collaborative struct {
	// Users 是用户数据源（Data Store 协作方）
	Users core.UserStore

	// TopK 返回的相似用户数，默认 3
	TopK int
}

func (r *Collaborative) Name() string { return "recall.u2u" }

// Recommend 返回与目标用户最相似的用户列表，最相似在前。
// 偏好字符串解析失败时返回 PARSE_ERROR，由调用方决定跳过还是中断。
func (r *Collaborative) Recommend(ctx context.Context, targetID int64) ([]core.UserMatch, error) {
	if r.Users == nil || targetID == 0 {
		return nil, nil
	}

	users, err := r.Users.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	var target *core.User
	for i := range users {
		if users[i].ID == targetID {
			target = &users[i]
			break
		}
	}
	if target == nil {
		// 未知用户：空结果，不是硬错误
		return nil, nil
	}

	targetPrefs, err := pref.ParseUser(target)
	if err != nil {
		return nil, err
	}

	type scored struct {
		user core.User
		sim  float64
	}
	candidates := make([]scored, 0, len(users))
	for _, u := range users {
		if u.ID == targetID {
			continue // 跳过自己
		}
		prefs, err := pref.ParseUser(&u)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, scored{user: u, sim: pref.Cosine(targetPrefs, prefs)})
	}

	// 稳定排序：同分保持快照原始顺序
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].sim > candidates[j].sim
	})

	topK := r.TopK
	if topK <= 0 {
		topK = 3
	}
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	out := make([]core.UserMatch, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, core.UserMatch{
			Type: "user_connection",
			User: core.UserRef{
				ID:    c.user.ID,
				Name:  c.user.Name,
				Email: c.user.Email,
			},
			SimilarityScore: pref.Round3(c.sim),
			Reason:          "Similar interests and interaction patterns",
		})
	}
	return out, nil
}
