// Package score 实现打分链路的各个 Rank 阶段 Node：
// 行为打分、协同扩散、新鲜度衰减、归一融合。
//
// 各 Node 只写 Scorecard 中自己负责的维度，菜品上的最终分数字段
// 统一由 PriorityNode 落定。常量均为产品调参值，保留不重推导。
package score

import (
	"context"

	"github.com/rushteam/dishrec/core"
	"github.com/rushteam/dishrec/pipeline"
)

// BaseScore 单次行为的基础分，乘以动作权重后累加。
const BaseScore = 0.2

// ActionWeights 各动作类型的权重。CANCEL 为负：取消过的菜品应被压制。
// 未知动作权重为 0（no-op）。
var ActionWeights = map[core.ActionType]float64{
	core.ActionOrder:  1.0,
	core.ActionClick:  0.6,
	core.ActionView:   0.3,
	core.ActionCancel: -0.5,
}

// BehaviorNode 把行为事件转换为按菜品累加的行为分，并记录每个菜品
// 被哪些动作类型触达过（供扩散阶段选取最强动作）。
//
// 边界：
//   - 缺失 ItemID 的事件静默跳过（脏数据不拖垮推荐）
//   - 纯 CANCEL 的菜品行为分可为负，不会作为扩散种子
type BehaviorNode struct{}

func (n *BehaviorNode) Name() string        { return "score.behavior" }
func (n *BehaviorNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *BehaviorNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	dishes []*core.Dish,
) ([]*core.Dish, error) {
	if rctx == nil || rctx.Scorecard == nil {
		return dishes, nil
	}
	sc := rctx.Scorecard

	for _, e := range sc.Events {
		if e == nil || e.ItemID == "" || e.ActionType == core.ActionSearch {
			continue
		}
		weight := ActionWeights[e.ActionType] // 未知动作取零值
		sc.Behavior[e.ItemID] += BaseScore * weight
		sc.RecordAction(e.ItemID, e.ActionType)
	}

	return dishes, nil
}
