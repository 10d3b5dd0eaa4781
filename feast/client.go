package feast

import (
	"context"
	"time"
)

// Client 是 Feast Feature Store 的客户端接口（遵循 DDD 原则，高内聚低耦合）。
//
// Feast 是一个开源的 Feature Store，提供：
//   - 在线特征存储（Online Store）：用于实时推荐
//   - Feature Server：提供特征服务
//
// 本包只依赖在线特征读取能力；训练侧的历史特征、物化等操作
// 不在推荐服务的职责范围内。
//
// 参考：https://github.com/feast-dev/feast
type Client interface {
	// GetOnlineFeatures 获取在线特征（用于实时推荐）
	//
	// 参数：
	//   - features: 特征名称列表，例如 ["user_profile:name", "user_profile:preferences"]
	//   - entityRows: 实体行，例如 [{"user_id": 1001}]
	//
	// 返回：
	//   - FeatureVector: 特征向量，key 为特征名称，value 为特征值
	//   - error: 错误信息
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，例如 ["user_profile:name", "user_profile:email"]
	Features []string

	// EntityRows 实体行，例如 [{"user_id": 1001}, {"user_id": 1002}]
	EntityRows []map[string]interface{}

	// Project 项目名称（可选，为空时使用客户端默认项目）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 特征向量列表，每个元素对应一个实体行
	FeatureVectors []FeatureVector
}

// FeatureVector 特征向量
type FeatureVector struct {
	// Values 特征值，key 为特征名称，value 为特征值
	Values map[string]interface{}

	// EntityRow 对应的实体行
	EntityRow map[string]interface{}
}

// ClientOption Feast 客户端配置选项
type ClientOption func(*ClientConfig)

// ClientConfig Feast 客户端配置
type ClientConfig struct {
	// Endpoint 服务端点
	Endpoint string

	// Project 项目名称
	Project string

	// Timeout 超时时间
	Timeout time.Duration

	// Auth 认证信息
	Auth *AuthConfig
}

// AuthConfig 认证配置
type AuthConfig struct {
	// Type 认证类型：static（gRPC 静态 Token 认证）
	Type string

	// Token 静态 Token
	Token string
}

// WithTimeout 设置超时时间
func WithTimeout(d time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = d
	}
}

// WithStaticToken 启用静态 Token 认证
func WithStaticToken(token string) ClientOption {
	return func(c *ClientConfig) {
		c.Auth = &AuthConfig{Type: "static", Token: token}
	}
}
