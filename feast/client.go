// Package feast 提供 Feast Feature Store 的在线特征客户端，
// 用于拉取用户口味画像特征（如偏好类目）驱动推荐结果提权。
package feast

import (
	"context"
	"time"
)

// Client 是 Feast 在线特征客户端的领域接口。
//
// 设计原则（DDD）：
//   - 领域层：Client 接口，打分节点只依赖此接口
//   - 基础设施层：GrpcClient（官方 SDK）实现此接口
//
// 参考：https://github.com/feast-dev/feast
type Client interface {
	// GetOnlineFeatures 获取在线特征（用于实时打分）
	GetOnlineFeatures(ctx context.Context, req *GetOnlineFeaturesRequest) (*GetOnlineFeaturesResponse, error)

	// Close 关闭客户端连接
	Close() error
}

// GetOnlineFeaturesRequest 获取在线特征请求。
type GetOnlineFeaturesRequest struct {
	// Features 特征名称列表，例如 ["dish_taste:favorite_category"]
	Features []string

	// EntityRows 实体行，例如 [{"user_id": "u-1001"}]
	EntityRows []map[string]interface{}

	// Project 项目名称（可选，为空时取客户端默认）
	Project string
}

// GetOnlineFeaturesResponse 获取在线特征响应。
type GetOnlineFeaturesResponse struct {
	// FeatureVectors 特征向量列表，每个元素对应一个实体行
	FeatureVectors []FeatureVector
}

// FeatureVector 特征向量，key 为特征名称。
type FeatureVector struct {
	Values    map[string]interface{}
	EntityRow map[string]interface{}
}

// String 按特征名取字符串特征值。
func (v FeatureVector) String(feature string) (string, bool) {
	s, ok := v.Values[feature].(string)
	return s, ok
}

// Float64 按特征名取数值特征值。
func (v FeatureVector) Float64(feature string) (float64, bool) {
	f, ok := v.Values[feature].(float64)
	return f, ok
}

// ClientOption 客户端配置选项。
type ClientOption func(*ClientConfig)

// ClientConfig 客户端配置。
type ClientConfig struct {
	Project string
	Timeout time.Duration

	// StaticToken 静态 Token 认证（可选）
	StaticToken string
}

// WithTimeout 配置选项：设置超时时间。
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithStaticToken 配置选项：设置静态 Token 认证。
func WithStaticToken(token string) ClientOption {
	return func(c *ClientConfig) {
		c.StaticToken = token
	}
}
