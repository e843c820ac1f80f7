package score

import (
	"context"
	"log"
	"sort"

	"github.com/rushteam/dishrec/core"
	"github.com/rushteam/dishrec/feast"
	"github.com/rushteam/dishrec/pipeline"
	"github.com/rushteam/dishrec/pkg/utils"
)

// 口味画像特征名（Feast 特征视图 dish_taste）。
const (
	FeatureFavoriteCategory = "dish_taste:favorite_category"
	FeatureFavoriteWeight   = "dish_taste:favorite_weight"
)

// DefaultTasteBoost 命中偏好类目时加到优先级分上的基础提权值。
const DefaultTasteBoost = 5.0

// TasteBoostNode 是可选的后处理节点：从 Feast 在线特征库拉取用户的
// 偏好类目画像，对命中类目的菜品做优先级提权后重新稳定排序。
//
// 画像缺失或特征服务故障时不影响主链路：记日志后原样返回。
type TasteBoostNode struct {
	Client feast.Client

	// Project Feast 项目名（可选）
	Project string

	// Boost 基础提权值，<= 0 时取 DefaultTasteBoost；
	// 实际提权 = Boost * favorite_weight（无权重特征时视为 1.0）
	Boost float64
}

func (n *TasteBoostNode) Name() string        { return "score.taste_boost" }
func (n *TasteBoostNode) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *TasteBoostNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	dishes []*core.Dish,
) ([]*core.Dish, error) {
	if n.Client == nil || rctx == nil || rctx.UserID == "" || len(dishes) == 0 {
		return dishes, nil
	}

	resp, err := n.Client.GetOnlineFeatures(ctx, &feast.GetOnlineFeaturesRequest{
		Features:   []string{FeatureFavoriteCategory, FeatureFavoriteWeight},
		EntityRows: []map[string]interface{}{{"user_id": rctx.UserID}},
		Project:    n.Project,
	})
	if err != nil {
		log.Printf("用户 %s 口味画像获取失败: %v", rctx.UserID, err)
		return dishes, nil
	}
	if len(resp.FeatureVectors) == 0 {
		return dishes, nil
	}

	vec := resp.FeatureVectors[0]
	category, ok := vec.String(FeatureFavoriteCategory)
	if !ok || category == "" {
		return dishes, nil
	}
	weight, ok := vec.Float64(FeatureFavoriteWeight)
	if !ok || weight <= 0 {
		weight = 1.0
	}

	boost := n.Boost
	if boost <= 0 {
		boost = DefaultTasteBoost
	}

	boosted := false
	for _, d := range dishes {
		if d.CategoryID != category {
			continue
		}
		d.Scores.Priority += boost * weight
		d.PutLabel("taste_boost", utils.Label{Value: category, Source: "boost"})
		boosted = true
	}
	if boosted {
		sort.SliceStable(dishes, func(i, j int) bool {
			return dishes[i].Scores.Priority > dishes[j].Scores.Priority
		})
	}
	return dishes, nil
}
