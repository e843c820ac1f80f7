package score

import (
	"context"

	"github.com/rushteam/dishrec/core"
	"github.com/rushteam/dishrec/pipeline"
)

// RecencyWindowHours 新鲜度窗口：交互后线性衰减，14 小时归零。
const RecencyWindowHours = 14.0

// RecencyNode 从最近一次交互时间计算每个菜品的新鲜度分。
//
// 公式：recency = max(0, 14 - 距今小时数)，早于窗口的事件贡献 0、不为负。
// 每个菜品取全部事件中的最大值（最近一次交互主导），不取和。
type RecencyNode struct{}

func (n *RecencyNode) Name() string        { return "score.recency" }
func (n *RecencyNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *RecencyNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	dishes []*core.Dish,
) ([]*core.Dish, error) {
	if rctx == nil || rctx.Scorecard == nil {
		return dishes, nil
	}
	sc := rctx.Scorecard
	now := rctx.At()

	for _, e := range sc.Events {
		if e == nil || e.ItemID == "" || e.ActionType == core.ActionSearch {
			continue
		}
		hoursSince := now.Sub(e.Timestamp).Hours()
		recency := RecencyWindowHours - hoursSince
		if recency < 0 {
			recency = 0
		}
		if recency > sc.Recency[e.ItemID] {
			sc.Recency[e.ItemID] = recency
		}
	}

	return dishes, nil
}
