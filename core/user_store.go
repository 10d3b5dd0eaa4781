package core

import "context"

// UserStore 是用户数据源（Data Store 协作方）的领域接口。
//
// 约定：
//   - LoadUser 按 id 返回单个用户；不存在时返回 ErrUserNotFound
//   - LoadAll 返回全量用户快照，顺序稳定（下游排序的并列顺序依赖它）
//   - User.RawPreferences 使用遗留的 "category:score" 编码；为空表示
//     "未记录偏好"，不是错误
//
// 实现：
//   - store.UserAdapter 基于 core.Store（Memory/Redis）实现
//   - feast.UserStore 基于 Feast Feature Store 实现
type UserStore interface {
	// Name 返回数据源名称（用于日志/监控）
	Name() string

	// LoadUser 按 id 读取单个用户记录
	LoadUser(ctx context.Context, id int64) (*User, error)

	// LoadAll 读取全量用户快照
	LoadAll(ctx context.Context) ([]User, error)
}

// ErrUserNotFound 表示用户不存在。
// 协同召回对此不视为硬错误：返回空结果而不是失败。
var ErrUserNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: user not found")

// IsUserNotFound 检查错误是否为用户不存在
func IsUserNotFound(err error) bool {
	return IsStoreNotFound(err)
}
