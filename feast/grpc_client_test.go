package feast

import (
	"context"
	"testing"
)

// 需要连接真实的 Feast 服务器才能跑通的集成用例，默认跳过。
func TestGrpcClient_GetOnlineFeatures(t *testing.T) {
	t.Skip("需要连接真实的 Feast 服务器才能运行")

	client, err := NewGrpcClient("localhost", 6565, "dishrec")
	if err != nil {
		t.Fatalf("创建客户端失败: %v", err)
	}
	defer client.Close()

	resp, err := client.GetOnlineFeatures(context.Background(), &GetOnlineFeaturesRequest{
		Features:   []string{"dish_taste:favorite_category", "dish_taste:favorite_weight"},
		EntityRows: []map[string]interface{}{{"user_id": "u-1001"}},
	})
	if err != nil {
		t.Fatalf("获取特征失败: %v", err)
	}
	if len(resp.FeatureVectors) != 1 {
		t.Errorf("期望 1 个特征向量，实际得到 %d 个", len(resp.FeatureVectors))
	}
}

func TestFromSDKValue(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected interface{}
	}{
		{"nil", nil, nil},
		{"string", "cat-rice", "cat-rice"},
		{"int64 to float64", int64(3), float64(3)},
		{"float64", 3.14, 3.14},
		{"bool true", true, float64(1)},
		{"bool false", false, float64(0)},
		{"bytes to string", []byte("abc"), "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fromSDKValue(tt.input); got != tt.expected {
				t.Errorf("fromSDKValue(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFeatureVectorAccessors(t *testing.T) {
	vec := FeatureVector{Values: map[string]interface{}{
		"dish_taste:favorite_category": "cat-noodle",
		"dish_taste:favorite_weight":   2.5,
	}}

	if s, ok := vec.String("dish_taste:favorite_category"); !ok || s != "cat-noodle" {
		t.Errorf("String() = (%q, %v)", s, ok)
	}
	if f, ok := vec.Float64("dish_taste:favorite_weight"); !ok || f != 2.5 {
		t.Errorf("Float64() = (%v, %v)", f, ok)
	}
	if _, ok := vec.String("missing"); ok {
		t.Error("missing feature must report !ok")
	}
	if _, ok := vec.Float64("dish_taste:favorite_category"); ok {
		t.Error("type mismatch must report !ok")
	}
}
