package feast

import (
	"context"
	"fmt"

	"github.com/rushteam/affinity/core"
)

// 默认的用户画像特征视图与实体键
const (
	DefaultFeatureView = "user_profile"
	DefaultEntityKey   = "user_id"
)

// UserStore 是基于 Feast Feature Store 的用户数据源实现。
//
// 将用户画像（姓名、邮箱、偏好编码）建模为在线特征：
//   - {view}:name        用户名（STRING）
//   - {view}:email       邮箱（STRING）
//   - {view}:preferences 偏好编码 "category:score,..."（STRING）
//
// 约束：
//   - Feature Store 不提供全量扫描语义，LoadAll 返回 NOT_SUPPORTED；
//     需要全量用户快照的协同召回应使用 store.UserAdapter
type UserStore struct {
	// Client Feast 客户端
	Client Client

	// FeatureView 特征视图名称，默认 "user_profile"
	FeatureView string

	// EntityKey 实体键名称，默认 "user_id"
	EntityKey string
}

// NewUserStore 创建基于 Feast 的用户数据源
func NewUserStore(client Client) *UserStore {
	return &UserStore{
		Client:      client,
		FeatureView: DefaultFeatureView,
		EntityKey:   DefaultEntityKey,
	}
}

// Name 返回数据源名称
func (s *UserStore) Name() string {
	return "feast"
}

// LoadUser 按 id 读取单个用户画像
func (s *UserStore) LoadUser(ctx context.Context, id int64) (*core.User, error) {
	if s.Client == nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "feast: client is nil")
	}

	view := s.FeatureView
	if view == "" {
		view = DefaultFeatureView
	}
	entityKey := s.EntityKey
	if entityKey == "" {
		entityKey = DefaultEntityKey
	}

	nameFeature := view + ":name"
	emailFeature := view + ":email"
	prefsFeature := view + ":preferences"

	resp, err := s.Client.GetOnlineFeatures(ctx, &GetOnlineFeaturesRequest{
		Features:   []string{nameFeature, emailFeature, prefsFeature},
		EntityRows: []map[string]interface{}{{entityKey: id}},
	})
	if err != nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeInternalError,
			fmt.Sprintf("feast: get online features: %v", err))
	}
	if len(resp.FeatureVectors) == 0 {
		return nil, core.ErrUserNotFound
	}

	values := resp.FeatureVectors[0].Values
	if len(values) == 0 {
		// 所有特征缺失视为用户不存在
		return nil, core.ErrUserNotFound
	}

	user := &core.User{ID: id}
	if v, ok := values[nameFeature].(string); ok {
		user.Name = v
	}
	if v, ok := values[emailFeature].(string); ok {
		user.Email = v
	}
	if v, ok := values[prefsFeature].(string); ok {
		user.RawPreferences = v
	}
	return user, nil
}

// LoadAll 读取全量用户快照。
// Feature Store 按实体键在线查询，没有全量扫描能力。
func (s *UserStore) LoadAll(ctx context.Context) ([]core.User, error) {
	return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeNotSupported,
		"feast: full user scan is not supported")
}

// 确保 UserStore 实现了 core.UserStore 接口
var _ core.UserStore = (*UserStore)(nil)
