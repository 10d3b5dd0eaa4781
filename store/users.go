package store

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/rushteam/affinity/core"
)

// UserAdapter 是基于 core.Store 接口的用户数据源适配器，
// 实现 core.UserStore 接口。
//
// key 约定：
//   单个用户记录：{KeyPrefix}:user:{id}      （JSON 编码的 core.User）
//   全量用户索引：{KeyPrefix}:ids           （JSON 编码的 id 数组，顺序稳定）
//
// 用户记录中的偏好沿用遗留的 "category:score" 字符串编码；
// 适配器只做记录形状的验证，偏好解析由 pref 包在核心入口完成。
type UserAdapter struct {
	store core.Store

	// KeyPrefix 是存储 key 的前缀
	KeyPrefix string
}

// NewUserAdapter 创建一个基于 core.Store 的用户数据源。
func NewUserAdapter(s core.Store, keyPrefix string) *UserAdapter {
	if keyPrefix == "" {
		keyPrefix = "users"
	}
	return &UserAdapter{
		store:     s,
		KeyPrefix: keyPrefix,
	}
}

func (a *UserAdapter) Name() string { return "store_users" }

func (a *UserAdapter) userKey(id int64) string {
	return a.KeyPrefix + ":user:" + strconv.FormatInt(id, 10)
}

// LoadUser 按 id 读取单个用户。key 不存在时返回 ErrUserNotFound。
func (a *UserAdapter) LoadUser(ctx context.Context, id int64) (*core.User, error) {
	data, err := a.store.Get(ctx, a.userKey(id))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.ErrUserNotFound
		}
		return nil, err
	}

	var u core.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// LoadAll 按索引顺序读取全量用户快照。索引缺失时返回空快照。
func (a *UserAdapter) LoadAll(ctx context.Context) ([]core.User, error) {
	data, err := a.store.Get(ctx, a.KeyPrefix+":ids")
	if err != nil {
		if core.IsStoreNotFound(err) {
			return []core.User{}, nil
		}
		return nil, err
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, a.userKey(id))
	}
	rows, err := a.store.BatchGet(ctx, keys)
	if err != nil {
		return nil, err
	}

	// 保持索引顺序：下游排序的并列顺序依赖它
	out := make([]core.User, 0, len(ids))
	for i, id := range ids {
		raw, ok := rows[keys[i]]
		if !ok {
			continue // 索引里有但记录已删除
		}
		var u core.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, err
		}
		if u.ID == 0 {
			u.ID = id
		}
		out = append(out, u)
	}
	return out, nil
}

// SaveUser 写入用户记录并维护索引。测试与原型用；生产环境通常由
// 上游任务直接写入存储。
func (a *UserAdapter) SaveUser(ctx context.Context, u core.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := a.store.Set(ctx, a.userKey(u.ID), data); err != nil {
		return err
	}

	ids, err := a.loadIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == u.ID {
			return nil
		}
	}
	ids = append(ids, u.ID)
	idx, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.KeyPrefix+":ids", idx)
}

func (a *UserAdapter) loadIDs(ctx context.Context) ([]int64, error) {
	data, err := a.store.Get(ctx, a.KeyPrefix+":ids")
	if err != nil {
		if core.IsStoreNotFound(err) {
			return []int64{}, nil
		}
		return nil, err
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// 确保实现 core.UserStore 接口
var _ core.UserStore = (*UserAdapter)(nil)
