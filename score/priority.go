package score

import (
	"context"
	"sort"

	"github.com/rushteam/dishrec/core"
	"github.com/rushteam/dishrec/pipeline"
)

// 融合权重：行为 / 相关度 / 新鲜度 = 40 / 40 / 20。
const (
	BlendBehaviorWeight  = 0.4
	BlendRelevanceWeight = 0.4
	BlendRecencyWeight   = 0.2
)

// RecencyScale 新鲜度归一系数：原始值已被窗口限制在 [0, 14]，
// 乘 10 后截断到 100 即可，不走 min-max。
const RecencyScale = 10.0

// PriorityNode 把三个维度的分数各自归一到 0-100 后加权融合，
// 写入菜品的最终分数字段并按优先级分稳定降序排序。
//
// 归一化（各维度独立 min-max）：
//   - 行为分：无方差时统一取 50（避免除零，也不引入偏置）
//   - 相关度：只在 relevance > 0 的菜品间做 min-max；无任何正相关度时全部为 0
//   - 新鲜度：min(100, raw * 10)
//
// 并列分数保留原始顺序（稳定排序），顺序本身不作契约。
type PriorityNode struct{}

func (n *PriorityNode) Name() string        { return "score.priority" }
func (n *PriorityNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *PriorityNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	dishes []*core.Dish,
) ([]*core.Dish, error) {
	if len(dishes) == 0 {
		return dishes, nil
	}

	if rctx != nil && rctx.Scorecard != nil {
		sc := rctx.Scorecard
		for _, d := range dishes {
			d.Scores.Behavior = sc.Behavior[d.ID]
			d.Scores.Recency = sc.Recency[d.ID]
		}
	}

	normalizeBehavior(dishes)
	normalizeRelevance(dishes)

	for _, d := range dishes {
		norm := d.Scores.Recency * RecencyScale
		if norm > 100 {
			norm = 100
		}
		d.Scores.NormalizedRecency = norm

		d.Scores.Priority = BlendBehaviorWeight*d.Scores.NormalizedBehavior +
			BlendRelevanceWeight*d.Scores.NormalizedRelevance +
			BlendRecencyWeight*d.Scores.NormalizedRecency
	}

	sort.SliceStable(dishes, func(i, j int) bool {
		return dishes[i].Scores.Priority > dishes[j].Scores.Priority
	})
	return dishes, nil
}

func normalizeBehavior(dishes []*core.Dish) {
	minVal, maxVal := dishes[0].Scores.Behavior, dishes[0].Scores.Behavior
	for _, d := range dishes[1:] {
		if d.Scores.Behavior < minVal {
			minVal = d.Scores.Behavior
		}
		if d.Scores.Behavior > maxVal {
			maxVal = d.Scores.Behavior
		}
	}
	for _, d := range dishes {
		if maxVal > minVal {
			d.Scores.NormalizedBehavior = (d.Scores.Behavior - minVal) / (maxVal - minVal) * 100
		} else {
			// 无方差（包括全零）：统一取中位 50，绝不产生 NaN
			d.Scores.NormalizedBehavior = 50
		}
	}
}

// normalizeRelevance 只在有正相关度的菜品之间做 min-max。
// relevance = 0 意味着全文检索无命中，归一后恒为 0，不参与极值计算，
// 否则零命中菜品会把下界拉到 0、稀释真实命中的区分度。
func normalizeRelevance(dishes []*core.Dish) {
	var minVal, maxVal float64
	found := false
	for _, d := range dishes {
		if d.Scores.Relevance <= 0 {
			continue
		}
		if !found {
			minVal, maxVal = d.Scores.Relevance, d.Scores.Relevance
			found = true
			continue
		}
		if d.Scores.Relevance < minVal {
			minVal = d.Scores.Relevance
		}
		if d.Scores.Relevance > maxVal {
			maxVal = d.Scores.Relevance
		}
	}

	for _, d := range dishes {
		switch {
		case !found || d.Scores.Relevance <= 0:
			d.Scores.NormalizedRelevance = 0
		case maxVal > minVal:
			d.Scores.NormalizedRelevance = (d.Scores.Relevance - minVal) / (maxVal - minVal) * 100
		default:
			d.Scores.NormalizedRelevance = 50
		}
	}
}
